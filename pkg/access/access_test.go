package access

import (
	"context"
	"testing"

	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/stretchr/testify/require"
)

func newTestPolicy(t *testing.T) *Policy {
	t.Helper()

	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	s, err := dataaccess.NewFileStore(l, t.TempDir())
	require.NoError(t, err)

	locks := dataaccess.NewLocker()
	guilds := dataaccess.NewGuildDal(l, s, locks)
	trusted := dataaccess.NewTrustedDal(l, s, locks)

	ctx := context.Background()
	_, err = guilds.AddStaffRole(ctx, "g", "staff")
	require.NoError(t, err)
	_, err = trusted.AddTrustedUser(ctx, "trusted")
	require.NoError(t, err)

	return NewPolicy(l, guilds, trusted, "owner")
}

func TestPolicy(t *testing.T) {
	p := newTestPolicy(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		actor       *Actor
		adminOrOwn  bool
		eventAccess bool
		trusted     bool
	}{
		{
			name:  "nil actor",
			actor: nil,
		},
		{
			name:  "outside guild administrator",
			actor: &Actor{UserID: "u", Permissions: discordgo.PermissionAdministrator},
		},
		{
			name:        "guild owner",
			actor:       &Actor{UserID: "u", GuildID: "g", GuildOwnerID: "u"},
			adminOrOwn:  true,
			eventAccess: true,
		},
		{
			name:        "administrator",
			actor:       &Actor{UserID: "u", GuildID: "g", GuildOwnerID: "x", Permissions: discordgo.PermissionAdministrator | discordgo.PermissionSendMessages},
			adminOrOwn:  true,
			eventAccess: true,
		},
		{
			name:        "staff role",
			actor:       &Actor{UserID: "u", GuildID: "g", GuildOwnerID: "x", RoleIDs: []string{"other", "staff"}},
			eventAccess: true,
		},
		{
			name:  "staff role of another guild",
			actor: &Actor{UserID: "u", GuildID: "h", GuildOwnerID: "x", RoleIDs: []string{"staff"}},
		},
		{
			name:  "member",
			actor: &Actor{UserID: "u", GuildID: "g", GuildOwnerID: "x", RoleIDs: []string{"other"}},
		},
		{
			name:    "trusted user outside guild",
			actor:   &Actor{UserID: "trusted"},
			trusted: true,
		},
		{
			name:    "bot owner",
			actor:   &Actor{UserID: "owner", GuildID: "g", GuildOwnerID: "x"},
			trusted: true,
		},
		{
			name:  "empty user id",
			actor: &Actor{GuildID: "g"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.adminOrOwn, p.IsAdminOrOwner(tt.actor))
			require.Equal(t, tt.eventAccess, p.HasEventAccess(ctx, tt.actor))
			require.Equal(t, tt.trusted, p.IsTrustedUser(ctx, tt.actor))
		})
	}
}

func TestPolicy_IsBotOwner(t *testing.T) {
	p := newTestPolicy(t)

	require.True(t, p.IsBotOwner(&Actor{UserID: "owner"}))
	require.False(t, p.IsBotOwner(&Actor{UserID: "trusted"}))
	require.False(t, p.IsBotOwner(nil))
}
