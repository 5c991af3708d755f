package dataaccess

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/custom"
	"github.com/Jacobbrewer1/concierge/pkg/entities"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/stretchr/testify/require"
)

func newTestDals(t *testing.T) (TicketDal, GuildDal) {
	t.Helper()

	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	s, err := NewFileStore(l, t.TempDir())
	require.NoError(t, err)

	locks := NewLocker()
	return NewTicketDal(l, s, locks), NewGuildDal(l, s, locks)
}

func TestTicketDal_ReserveRejectsSecondTicket(t *testing.T) {
	tickets, guilds := newTestDals(t)
	ctx := context.Background()
	now := custom.NewDatetime(time.Now())

	require.NoError(t, tickets.Reserve(ctx, "g", &entities.ActiveTicket{UserID: "u", CreatedAt: now}))
	err := tickets.Reserve(ctx, "g", &entities.ActiveTicket{UserID: "u", CreatedAt: now})
	require.ErrorIs(t, err, ErrAlreadyExists)

	// Another guild is independent.
	require.NoError(t, tickets.Reserve(ctx, "h", &entities.ActiveTicket{UserID: "u", CreatedAt: now}))

	all, err := tickets.ActiveTickets(ctx, "g")
	require.NoError(t, err)
	require.Len(t, all, 1)

	counts, err := guilds.TicketCounts(ctx, "g")
	require.NoError(t, err)
	require.Zero(t, counts["u"])
}

func TestTicketDal_ReserveConcurrent(t *testing.T) {
	tickets, _ := newTestDals(t)
	ctx := context.Background()
	now := custom.NewDatetime(time.Now())

	const attempts = 10
	var (
		wg       sync.WaitGroup
		mut      sync.Mutex
		reserved int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := tickets.Reserve(ctx, "g", &entities.ActiveTicket{UserID: "u", CreatedAt: now}); err == nil {
				mut.Lock()
				reserved++
				mut.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, reserved)
}

func TestTicketDal_ReserveReplacesStaleReservation(t *testing.T) {
	tickets, _ := newTestDals(t)
	ctx := context.Background()
	then := time.Now().Add(-ReservationTTL - time.Minute)

	require.NoError(t, tickets.Reserve(ctx, "g", &entities.ActiveTicket{UserID: "u", CreatedAt: custom.NewDatetime(then)}))
	require.NoError(t, tickets.Reserve(ctx, "g", &entities.ActiveTicket{UserID: "u", CreatedAt: custom.NewDatetime(time.Now())}))
}

func TestTicketDal_Lifecycle(t *testing.T) {
	tickets, guilds := newTestDals(t)
	ctx := context.Background()
	now := custom.NewDatetime(time.Now())

	require.NoError(t, tickets.Reserve(ctx, "g", &entities.ActiveTicket{UserID: "u", CreatedAt: now}))

	count, err := tickets.Commit(ctx, "g", &entities.ActiveTicket{
		UserID:          "u",
		ThreadID:        "t",
		HandleMessageID: "m",
		SetupID:         "p",
		CreatedAt:       now,
		JoinedStaff:     []*entities.JoinedStaff{},
	})
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// Release leaves committed tickets alone.
	require.NoError(t, tickets.Release(ctx, "g", "u"))

	got, err := tickets.ByThread(ctx, "g", "t")
	require.NoError(t, err)
	require.Equal(t, "u", got.UserID)

	got, err = tickets.Update(ctx, "g", "t", func(at *entities.ActiveTicket) bool {
		at.JoinedStaff = append(at.JoinedStaff, &entities.JoinedStaff{ID: "s", Name: "staff", JoinedAt: now})
		return true
	})
	require.NoError(t, err)
	require.True(t, got.HasStaff("s"))

	all, err := tickets.ActiveTickets(ctx, "g")
	require.NoError(t, err)
	require.Len(t, all["u"].JoinedStaff, 1)

	removed, err := tickets.Remove(ctx, "g", "t")
	require.NoError(t, err)
	require.Equal(t, "p", removed.SetupID)

	counts, err := guilds.TicketCounts(ctx, "g")
	require.NoError(t, err)
	require.Equal(t, 0, counts["u"])

	// Removing again reports not found.
	_, err = tickets.Remove(ctx, "g", "t")
	require.ErrorIs(t, err, ErrNotFound)

	all, err = tickets.ActiveTickets(ctx, "g")
	require.NoError(t, err)
	require.NotContains(t, all, "u")
}

func TestTicketDal_ReleasePending(t *testing.T) {
	tickets, _ := newTestDals(t)
	ctx := context.Background()

	require.NoError(t, tickets.Reserve(ctx, "g", &entities.ActiveTicket{UserID: "u", CreatedAt: custom.NewDatetime(time.Now())}))
	require.NoError(t, tickets.Release(ctx, "g", "u"))

	all, err := tickets.ActiveTickets(ctx, "g")
	require.NoError(t, err)
	require.Empty(t, all)

	// Pending tickets are not found by an empty thread ID.
	_, err = tickets.ByThread(ctx, "g", "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTicketDal_ReserveSurvivesUnlockedReader(t *testing.T) {
	tickets, _ := newTestDals(t)
	ctx := context.Background()
	now := custom.NewDatetime(time.Now())

	const guilds = 200
	for i := 0; i < guilds; i++ {
		guildID := "g" + strconv.Itoa(i)

		wg := new(sync.WaitGroup)
		wg.Add(2)
		go func() {
			defer wg.Done()
			require.NoError(t, tickets.Reserve(ctx, guildID, &entities.ActiveTicket{UserID: "u", CreatedAt: now}))
		}()
		go func() {
			defer wg.Done()
			_, err := tickets.ByThread(ctx, guildID, "t")
			require.ErrorIs(t, err, ErrNotFound)
		}()
		wg.Wait()

		all, err := tickets.ActiveTickets(ctx, guildID)
		require.NoError(t, err)
		require.Contains(t, all, "u", "reservation lost in %s", guildID)
	}
}
