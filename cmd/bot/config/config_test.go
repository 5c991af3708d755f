package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "defaults",
			env: map[string]string{
				EnvBotToken:    "token",
				EnvOwnerUserId: "123",
			},
			check: func(t *testing.T, c *Config) {
				require.Equal(t, "token", c.BotToken)
				require.Equal(t, "123", c.OwnerUserId)
				require.Equal(t, "8080", c.MonitoringPort)
				require.Equal(t, StorageFile, c.StorageDriver)
				require.Equal(t, "data", c.DataDir)
				require.Equal(t, "backups", c.BackupDir)
				require.Equal(t, 5*time.Second, c.CloseDelay)
				require.False(t, c.ArchiveOnClose)
				require.Equal(t, 1.0, c.InteractionRate)
				require.Equal(t, 5, c.InteractionBurst)
			},
		},
		{
			name: "legacy token",
			env: map[string]string{
				EnvLegacyToken: "legacy",
				EnvOwnerUserId: "123",
			},
			check: func(t *testing.T, c *Config) {
				require.Equal(t, "legacy", c.BotToken)
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				EnvBotToken:       "token",
				EnvOwnerUserId:    "123",
				EnvStorageDriver:  StorageSQLite,
				EnvCloseDelay:     "0s",
				EnvArchiveOnClose: "true",
				EnvBackupSchedule: "@daily",
			},
			check: func(t *testing.T, c *Config) {
				require.Equal(t, StorageSQLite, c.StorageDriver)
				require.Zero(t, c.CloseDelay)
				require.True(t, c.ArchiveOnClose)
				require.Equal(t, "@daily", c.BackupSchedule)
			},
		},
		{
			name:    "missing token",
			env:     map[string]string{EnvOwnerUserId: "123"},
			wantErr: ErrMissingToken,
		},
		{
			name:    "missing owner",
			env:     map[string]string{EnvBotToken: "token"},
			wantErr: ErrMissingOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{EnvBotToken, EnvLegacyToken, EnvOwnerUserId} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			c, err := Parse(testLogger())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "driver", key: EnvStorageDriver, val: "postgres"},
		{name: "mongo without uri", key: EnvStorageDriver, val: StorageMongo},
		{name: "close delay", key: EnvCloseDelay, val: "soon"},
		{name: "negative close delay", key: EnvCloseDelay, val: "-1s"},
		{name: "archive", key: EnvArchiveOnClose, val: "maybe"},
		{name: "rate", key: EnvInteractionRate, val: "0"},
		{name: "burst", key: EnvInteractionBurst, val: "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvBotToken, "token")
			t.Setenv(EnvOwnerUserId, "123")
			t.Setenv(EnvMongoUri, "")
			t.Setenv(tt.key, tt.val)

			_, err := Parse(testLogger())
			require.Error(t, err)
		})
	}
}
