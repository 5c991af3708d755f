package main

import (
	"context"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/events"
	"github.com/Jacobbrewer1/discordgo"
)

// eventPlatform schedules events as discord guild scheduled events.
type eventPlatform struct {
	s *discordgo.Session
}

// NewEventPlatform creates the discord backed event platform.
func NewEventPlatform(s *discordgo.Session) events.Platform {
	return &eventPlatform{s: s}
}

func (p *eventPlatform) CreateEvent(ctx context.Context, guildID string, e *events.Event) (*events.Event, error) {
	start, end := e.Start, e.End
	params := &discordgo.GuildScheduledEventParams{
		Name:               e.Name,
		Description:        e.Description,
		ScheduledStartTime: &start,
		ScheduledEndTime:   &end,
		PrivacyLevel:       discordgo.GuildScheduledEventPrivacyLevelGuildOnly,
	}

	if e.ChannelID != "" {
		params.ChannelID = e.ChannelID
		params.EntityType = discordgo.GuildScheduledEventEntityTypeVoice
	} else {
		params.EntityType = discordgo.GuildScheduledEventEntityTypeExternal
		location := e.Location
		if location == "" {
			location = "TBD"
		}
		params.EntityMetadata = &discordgo.GuildScheduledEventEntityMetadata{Location: location}
	}

	created, err := p.s.GuildScheduledEventCreate(guildID, params, discordgo.WithContext(ctx))
	if err != nil {
		return nil, platformError(err, events.ErrNotFound, "error creating scheduled event")
	}
	return toEvent(created), nil
}

func (p *eventPlatform) Event(ctx context.Context, guildID, eventID string) (*events.Event, error) {
	e, err := p.s.GuildScheduledEvent(guildID, eventID, false, discordgo.WithContext(ctx))
	if err != nil {
		return nil, platformError(err, events.ErrNotFound, "error getting scheduled event %s", eventID)
	}
	return toEvent(e), nil
}

func (p *eventPlatform) Events(ctx context.Context, guildID string) ([]*events.Event, error) {
	all, err := p.s.GuildScheduledEvents(guildID, false, discordgo.WithContext(ctx))
	if err != nil {
		return nil, platformError(err, events.ErrNotFound, "error listing scheduled events")
	}

	list := make([]*events.Event, 0, len(all))
	for _, e := range all {
		list = append(list, toEvent(e))
	}
	return list, nil
}

func (p *eventPlatform) UpdateEventTime(ctx context.Context, guildID, eventID string, start, end time.Time) (*events.Event, error) {
	e, err := p.s.GuildScheduledEventEdit(guildID, eventID, &discordgo.GuildScheduledEventParams{
		ScheduledStartTime: &start,
		ScheduledEndTime:   &end,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, platformError(err, events.ErrNotFound, "error updating scheduled event %s", eventID)
	}
	return toEvent(e), nil
}

func (p *eventPlatform) DeleteEvent(ctx context.Context, guildID, eventID string) error {
	err := p.s.GuildScheduledEventDelete(guildID, eventID, discordgo.WithContext(ctx))
	return platformError(err, events.ErrNotFound, "error deleting scheduled event %s", eventID)
}

func toEvent(e *discordgo.GuildScheduledEvent) *events.Event {
	ev := &events.Event{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Start:       e.ScheduledStartTime.UTC(),
		Status:      events.Status(e.Status),
		Location:    e.EntityMetadata.Location,
	}

	if e.EntityType != discordgo.GuildScheduledEventEntityTypeExternal {
		ev.ChannelID = e.ChannelID
	}

	if e.ScheduledEndTime != nil {
		ev.End = e.ScheduledEndTime.UTC()
	} else {
		ev.End = ev.Start.Add(events.DefaultDuration)
	}
	return ev
}
