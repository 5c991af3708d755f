package events

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
)

const (
	maxName        = 100
	maxDescription = 1000
	maxLocation    = 100
)

// Status is the status of a scheduled event.
type Status int

const (
	StatusScheduled Status = iota + 1
	StatusActive
	StatusCompleted
	StatusCanceled
)

// Event is a scheduled guild event.
type Event struct {
	ID          string
	Name        string
	Description string
	Start       time.Time
	End         time.Time
	Status      Status

	// Location is the external location. It is empty for voice events.
	Location string

	// ChannelID is the voice channel of the event. It is empty for external events.
	ChannelID string
}

// Duration is the planned length of the event.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Platform schedules events on the chat platform. Implementations return an error wrapping
// ErrNotFound when the event does not exist.
type Platform interface {
	CreateEvent(ctx context.Context, guildID string, e *Event) (*Event, error)
	Event(ctx context.Context, guildID, eventID string) (*Event, error)
	Events(ctx context.Context, guildID string) ([]*Event, error)
	UpdateEventTime(ctx context.Context, guildID, eventID string, start, end time.Time) (*Event, error)
	DeleteEvent(ctx context.Context, guildID, eventID string) error
}

// CreateInput describes an event to create. Start is in the creator's timezone.
type CreateInput struct {
	Name        string
	Description string
	Start       string
	Location    string
	Duration    time.Duration
}

// Service schedules events using the timezone each user set for the guild.
type Service struct {
	// l is the logger.
	l *slog.Logger

	// guilds gives access to user timezones.
	guilds dataaccess.GuildDal

	// platform is the chat platform the events live on.
	platform Platform

	// now returns the current time.
	now func() time.Time
}

// NewService creates a new event service.
func NewService(l *slog.Logger, guilds dataaccess.GuildDal, platform Platform) *Service {
	return &Service{
		l:        l,
		guilds:   guilds,
		platform: platform,
		now:      time.Now,
	}
}

// SetTimezone validates and stores the user's timezone for the guild.
func (s *Service) SetTimezone(ctx context.Context, guildID, userID, tz string) error {
	tz = strings.TrimSpace(tz)
	if _, err := ParseTimezone(tz); err != nil {
		return err
	}

	if err := s.guilds.SetTimezone(ctx, guildID, userID, tz); err != nil {
		return fmt.Errorf("error saving timezone: %w", err)
	}
	return nil
}

// Location returns the user's timezone for the guild.
func (s *Service) Location(ctx context.Context, guildID, userID string) (*time.Location, error) {
	tz, ok, err := s.guilds.Timezone(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting timezone: %w", err)
	} else if !ok {
		return nil, ErrTimezoneNotSet
	}
	return ParseTimezone(tz)
}

// Create schedules a new event. The start time is read in the creator's timezone.
func (s *Service) Create(ctx context.Context, guildID, userID string, in *CreateInput) (*Event, error) {
	loc, err := s.Location(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	start, err := ParseTime(in.Start, loc, now)
	if err != nil {
		return nil, err
	}
	if err := ValidateStart(start, now); err != nil {
		return nil, err
	}

	duration := in.Duration
	if duration == 0 {
		duration = DefaultDuration
	} else if duration < 0 {
		return nil, ErrInvalidDuration
	}

	e := &Event{
		Name:        truncate(strings.TrimSpace(in.Name), maxName),
		Description: truncate(in.Description, maxDescription),
		Start:       start.UTC(),
		End:         start.Add(duration).UTC(),
	}
	if channelID, ok := ParseChannelMention(in.Location); ok {
		e.ChannelID = channelID
	} else {
		e.Location = truncate(strings.TrimSpace(in.Location), maxLocation)
	}

	created, err := s.platform.CreateEvent(ctx, guildID, e)
	if err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	s.l.Info("Event created",
		slog.String(logging.KeyGuildID, guildID),
		slog.String(logging.KeyUserID, userID),
		slog.String("event_id", created.ID),
	)
	return created, nil
}

// Reschedule moves an event to a new start time, keeping its duration.
func (s *Service) Reschedule(ctx context.Context, guildID, userID, eventID, newStart string) (*Event, error) {
	eventID, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}

	loc, err := s.Location(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	start, err := ParseTime(newStart, loc, now)
	if err != nil {
		return nil, err
	}
	if err := ValidateStart(start, now); err != nil {
		return nil, err
	}

	e, err := s.platform.Event(ctx, guildID, eventID)
	if err != nil {
		return nil, err
	}

	updated, err := s.platform.UpdateEventTime(ctx, guildID, eventID, start.UTC(), start.Add(e.Duration()).UTC())
	if err != nil {
		return nil, fmt.Errorf("error updating event: %w", err)
	}
	return updated, nil
}

// List returns the guild's events ordered by start time.
func (s *Service) List(ctx context.Context, guildID string) ([]*Event, error) {
	all, err := s.platform.Events(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Start.Before(all[j].Start)
	})
	return all, nil
}

// Get returns the event with the given ID.
func (s *Service) Get(ctx context.Context, guildID, eventID string) (*Event, error) {
	eventID, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}
	return s.platform.Event(ctx, guildID, eventID)
}

// Delete deletes the event with the given ID.
func (s *Service) Delete(ctx context.Context, guildID, eventID string) error {
	eventID, err := parseEventID(eventID)
	if err != nil {
		return err
	}

	if err := s.platform.DeleteEvent(ctx, guildID, eventID); err != nil {
		return err
	}

	s.l.Info("Event deleted",
		slog.String(logging.KeyGuildID, guildID),
		slog.String("event_id", eventID),
	)
	return nil
}

// LocalTime renders the time in the user's timezone, or UTC when the user has none.
func (s *Service) LocalTime(ctx context.Context, guildID, userID string, t time.Time) string {
	loc, err := s.Location(ctx, guildID, userID)
	if err != nil {
		return t.UTC().Format("Jan 02, 2006 15:04 UTC")
	}
	return fmt.Sprintf("%s (%s)", t.In(loc).Format("Jan 02, 2006 15:04"), loc.String())
}

func parseEventID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if !isSnowflake(id) {
		return "", ErrInvalidEventID
	}
	return id, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
