package tickets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateTitleFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr error
	}{
		{name: "username", format: "ticket-{username}"},
		{name: "userid", format: "{userid}-support"},
		{name: "both", format: "{username}-{userid}"},
		{name: "none", format: "ticket", wantErr: ErrInvalidTitleFormat},
		{name: "wrong case", format: "ticket-{Username}", wantErr: ErrInvalidTitleFormat},
		{name: "too long", format: "{userid}" + strings.Repeat("x", 100), wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitleFormat(tt.format)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFormatTitle(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		username string
		userID   string
		want     string
	}{
		{name: "username", format: "ticket-{username}", username: "wolf", userID: "1", want: "ticket-wolf"},
		{name: "userid", format: "ticket-{userid}", username: "wolf", userID: "123", want: "ticket-123"},
		{name: "repeated", format: "{username}-{username}-{userid}", username: "a", userID: "9", want: "a-a-9"},
		{name: "username containing placeholder", format: "t-{username}", username: "{userid}", userID: "9", want: "t-{userid}"},
		{name: "truncated", format: "{username}", username: strings.Repeat("é", 120), userID: "9", want: strings.Repeat("é", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatTitle(tt.format, tt.username, tt.userID))
		})
	}
}

func TestFormatTitle_RemovesPlaceholders(t *testing.T) {
	formats := []string{"ticket-{username}", "{userid}", "{username}/{userid}", "support {userid} {username} {userid}"}
	users := [][2]string{{"wolf", "1"}, {"jane.doe", "123456789012345678"}, {"x", "0"}}

	for _, f := range formats {
		require.NoError(t, ValidateTitleFormat(f))
		for _, u := range users {
			got := FormatTitle(f, u[0], u[1])
			require.NotContains(t, got, PlaceholderUsername)
			require.NotContains(t, got, PlaceholderUserID)
		}
	}
}
