package events

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/stretchr/testify/require"
)

type fakePlatform struct {
	nextID int
	events map[string]*Event
}

func (p *fakePlatform) CreateEvent(_ context.Context, _ string, e *Event) (*Event, error) {
	p.nextID++
	e.ID = strconv.Itoa(1000 + p.nextID)
	e.Status = StatusScheduled
	p.events[e.ID] = e
	return e, nil
}

func (p *fakePlatform) Event(_ context.Context, _, eventID string) (*Event, error) {
	e, ok := p.events[eventID]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	return e, nil
}

func (p *fakePlatform) Events(_ context.Context, _ string) ([]*Event, error) {
	all := make([]*Event, 0, len(p.events))
	for _, e := range p.events {
		all = append(all, e)
	}
	return all, nil
}

func (p *fakePlatform) UpdateEventTime(ctx context.Context, guildID, eventID string, start, end time.Time) (*Event, error) {
	e, err := p.Event(ctx, guildID, eventID)
	if err != nil {
		return nil, err
	}
	e.Start, e.End = start, end
	return e, nil
}

func (p *fakePlatform) DeleteEvent(_ context.Context, _, eventID string) error {
	if _, ok := p.events[eventID]; !ok {
		return fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	delete(p.events, eventID)
	return nil
}

func newTestService(t *testing.T, now time.Time) (*Service, *fakePlatform) {
	t.Helper()

	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	s, err := dataaccess.NewFileStore(l, t.TempDir())
	require.NoError(t, err)

	p := &fakePlatform{events: make(map[string]*Event)}
	svc := NewService(l, dataaccess.NewGuildDal(l, s, dataaccess.NewLocker()), p)
	svc.now = func() time.Time { return now }
	return svc, p
}

func TestService_CreateRequiresTimezone(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.Create(context.Background(), "g", "u", &CreateInput{Name: "Game night", Start: "18:00", Location: "Hall"})
	require.ErrorIs(t, err, ErrTimezoneNotSet)
}

func TestService_SetTimezone(t *testing.T) {
	svc, _ := newTestService(t, time.Now())
	ctx := context.Background()

	require.ErrorIs(t, svc.SetTimezone(ctx, "g", "u", "UTC+20"), ErrInvalidTimezone)
	require.NoError(t, svc.SetTimezone(ctx, "g", "u", "UTC-5"))

	loc, err := svc.Location(ctx, "g", "u")
	require.NoError(t, err)
	require.Equal(t, "UTC-5", loc.String())

	// Timezones are per guild.
	_, err = svc.Location(ctx, "h", "u")
	require.ErrorIs(t, err, ErrTimezoneNotSet)
}

func TestService_Create(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	require.NoError(t, svc.SetTimezone(ctx, "g", "u", "UTC+2"))

	tests := []struct {
		name        string
		in          *CreateInput
		wantStart   time.Time
		wantEnd     time.Time
		wantChannel string
		wantErr     error
	}{
		{
			name:      "external with default duration",
			in:        &CreateInput{Name: "Game night", Start: "2024-06-10 20:00", Location: "Hall"},
			wantStart: time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 6, 10, 19, 30, 0, 0, time.UTC),
		},
		{
			name:        "voice channel",
			in:          &CreateInput{Name: "Voice", Start: "06-11 10:00", Location: "<#42>", Duration: time.Hour},
			wantStart:   time.Date(2024, 6, 11, 8, 0, 0, 0, time.UTC),
			wantEnd:     time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC),
			wantChannel: "42",
		},
		{
			name:    "past",
			in:      &CreateInput{Name: "Old", Start: "2024-06-09 10:00", Location: "Hall"},
			wantErr: ErrPastTime,
		},
		{
			name:    "not enough lead time",
			in:      &CreateInput{Name: "Soon", Start: "2024-06-10 14:20", Location: "Hall"},
			wantErr: ErrLeadTime,
		},
		{
			name:    "bad format",
			in:      &CreateInput{Name: "Bad", Start: "noon", Location: "Hall"},
			wantErr: ErrInvalidTime,
		},
		{
			name:    "negative duration",
			in:      &CreateInput{Name: "Neg", Start: "2024-06-10 20:00", Location: "Hall", Duration: -time.Minute},
			wantErr: ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := svc.Create(ctx, "g", "u", tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, e.ID)
			require.True(t, tt.wantStart.Equal(e.Start))
			require.True(t, tt.wantEnd.Equal(e.End))
			require.Equal(t, tt.wantChannel, e.ChannelID)
			if tt.wantChannel != "" {
				require.Empty(t, e.Location)
			}
		})
	}
}

func TestService_Reschedule(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	require.NoError(t, svc.SetTimezone(ctx, "g", "u", "UTC+0"))

	e, err := svc.Create(ctx, "g", "u", &CreateInput{Name: "Meet", Start: "2024-06-10 18:00", Location: "Hall", Duration: 2 * time.Hour})
	require.NoError(t, err)

	got, err := svc.Reschedule(ctx, "g", "u", e.ID, "2024-06-12 09:00")
	require.NoError(t, err)
	require.True(t, time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC).Equal(got.Start))
	require.Equal(t, 2*time.Hour, got.Duration())

	_, err = svc.Reschedule(ctx, "g", "u", "999", "2024-06-12 09:00")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Reschedule(ctx, "g", "u", "not-an-id", "2024-06-12 09:00")
	require.ErrorIs(t, err, ErrInvalidEventID)

	_, err = svc.Reschedule(ctx, "g", "u", e.ID, "2024-06-10 12:10")
	require.ErrorIs(t, err, ErrLeadTime)
}

func TestService_ListGetDelete(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	require.NoError(t, svc.SetTimezone(ctx, "g", "u", "UTC+0"))

	late, err := svc.Create(ctx, "g", "u", &CreateInput{Name: "Late", Start: "2024-06-20 18:00", Location: "Hall"})
	require.NoError(t, err)
	early, err := svc.Create(ctx, "g", "u", &CreateInput{Name: "Early", Start: "2024-06-11 18:00", Location: "Hall"})
	require.NoError(t, err)

	all, err := svc.List(ctx, "g")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, early.ID, all[0].ID)
	require.Equal(t, late.ID, all[1].ID)

	got, err := svc.Get(ctx, "g", " "+late.ID+" ")
	require.NoError(t, err)
	require.Equal(t, "Late", got.Name)

	require.NoError(t, svc.Delete(ctx, "g", late.ID))
	_, err = svc.Get(ctx, "g", late.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "g", late.ID), ErrNotFound)
}

func TestService_LocalTime(t *testing.T) {
	svc, _ := newTestService(t, time.Now())
	ctx := context.Background()
	at := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	require.Equal(t, "Jun 10, 2024 12:00 UTC", svc.LocalTime(ctx, "g", "u", at))

	require.NoError(t, svc.SetTimezone(ctx, "g", "u", "UTC+3"))
	require.Equal(t, "Jun 10, 2024 15:00 (UTC+3)", svc.LocalTime(ctx, "g", "u", at))
}
