package dataaccess

import (
	"context"
	"testing"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/custom"
	"github.com/Jacobbrewer1/concierge/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestGuildDal_TicketCount(t *testing.T) {
	tests := []struct {
		name  string
		prior int
	}{
		{name: "from zero", prior: 0},
		{name: "from one", prior: 1},
		{name: "from many", prior: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tickets, guilds := newTestDals(t)
			ctx := context.Background()
			now := custom.NewDatetime(time.Now())

			open := func(threadID string) int {
				n, err := tickets.Commit(ctx, "g", &entities.ActiveTicket{UserID: "u", ThreadID: threadID, CreatedAt: now})
				require.NoError(t, err)
				return n
			}

			// Every commit counts an opened ticket.
			for i := 0; i < tt.prior; i++ {
				open("t")
			}
			require.Equal(t, tt.prior+1, open("t"))

			_, err := tickets.Remove(ctx, "g", "t")
			require.NoError(t, err)

			counts, err := guilds.TicketCounts(ctx, "g")
			require.NoError(t, err)
			require.Equal(t, 0, counts["u"])
		})
	}
}

func TestGuildDal_StaffRoles(t *testing.T) {
	_, guilds := newTestDals(t)
	ctx := context.Background()

	added, err := guilds.AddStaffRole(ctx, "g", "r1")
	require.NoError(t, err)
	require.True(t, added)

	added, err = guilds.AddStaffRole(ctx, "g", "r1")
	require.NoError(t, err)
	require.False(t, added)

	added, err = guilds.AddStaffRole(ctx, "g", "r2")
	require.NoError(t, err)
	require.True(t, added)

	roles, err := guilds.StaffRoles(ctx, "g")
	require.NoError(t, err)
	require.Equal(t, []string{"r1", "r2"}, roles)

	removed, err := guilds.RemoveStaffRole(ctx, "g", "r1")
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = guilds.RemoveStaffRole(ctx, "g", "r1")
	require.NoError(t, err)
	require.False(t, removed)

	roles, err = guilds.StaffRoles(ctx, "g")
	require.NoError(t, err)
	require.Equal(t, []string{"r2"}, roles)
}

func TestGuildDal_Timezone(t *testing.T) {
	_, guilds := newTestDals(t)
	ctx := context.Background()

	_, ok, err := guilds.Timezone(ctx, "g", "u")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, guilds.SetTimezone(ctx, "g", "u", "UTC+2"))

	tz, ok, err := guilds.Timezone(ctx, "g", "u")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "UTC+2", tz)
}
