package main

import (
	"testing"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "empty", in: "", want: 0},
		{name: "red", in: "FF0000", want: 0xFF0000},
		{name: "hash lower", in: "#00ff00", want: 0x00FF00},
		{name: "short", in: "40", want: 0x40},
		{name: "too big", in: "1000000", wantErr: true},
		{name: "not hex", in: "blue", wantErr: true},
		{name: "negative", in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseColor(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, errInvalidColor)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	require.Equal(t, "héll", truncateRunes("héllo", 4))
	require.Equal(t, "hi", truncateRunes("hi", 4))
}

func TestKeyPermissions(t *testing.T) {
	tests := []struct {
		name  string
		perms int64
		want  string
	}{
		{name: "admin", perms: discordgo.PermissionAdministrator | discordgo.PermissionManageRoles, want: "✅ Administrator"},
		{name: "some", perms: discordgo.PermissionManageRoles | discordgo.PermissionManageEvents, want: "✅ Manage Roles\n✅ Manage Events"},
		{name: "none", perms: discordgo.PermissionSendMessages, want: "❌ Limited permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, keyPermissions(tt.perms))
		})
	}
}

func TestCommandEmbed(t *testing.T) {
	cmd, category, ok := findCommand("/" + cmdSendEmbed)
	require.True(t, ok)

	embed := commandEmbed(cmd, category)
	require.Equal(t, "/send_embed", embed.Title)
	require.Equal(t, "General", embed.Fields[0].Value)
	require.Contains(t, embed.Fields[1].Value, "• `channel` (required)")
	require.Contains(t, embed.Fields[1].Value, "• `color` (optional)")
}

func TestStatusEmbed(t *testing.T) {
	got := statusEmbed(&statusInfo{
		server:      "Wolf Pack",
		members:     42,
		openTickets: 3,
		latency:     120 * time.Millisecond,
		permissions: discordgo.PermissionAdministrator,
		uptime:      90 * time.Minute,
	})

	values := make(map[string]string, len(got.Fields))
	for _, f := range got.Fields {
		values[f.Name] = f.Value
	}
	require.Equal(t, map[string]string{
		"Server":          "Wolf Pack",
		"Members":         "42",
		"Open Tickets":    "3",
		"Ping":            "120ms",
		"Key Permissions": "✅ Administrator",
		"Uptime":          "1h30m0s",
	}, values)
}
