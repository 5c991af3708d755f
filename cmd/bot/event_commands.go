package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/events"
	"github.com/Jacobbrewer1/concierge/pkg/messages"
	"github.com/Jacobbrewer1/discordgo"
)

const eventTimeLayout = "2006-01-02 15:04 UTC"

func (a *App) setTimezone(ctx context.Context, ix *interaction) error {
	act, err := a.guildActor(ix)
	if err != nil {
		return err
	}
	tz := strings.ToUpper(strings.TrimSpace(commandOptions(ix.InteractionCreate).str("timezone", "")))

	if err := a.events.SetTimezone(ctx, ix.GuildID, act.UserID, tz); err != nil {
		return err
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.EventTimezoneSet, tz))
}

func (a *App) createEvent(ctx context.Context, ix *interaction) error {
	act, err := a.staffActor(ctx, ix)
	if err != nil {
		return err
	}
	opts := commandOptions(ix.InteractionCreate)

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	e, err := a.events.Create(ctx, ix.GuildID, act.UserID, &events.CreateInput{
		Name:        opts.str("name", ""),
		Description: opts.str("description", ""),
		Start:       opts.str("start", ""),
		Location:    opts.str("location", ""),
		Duration:    time.Duration(opts.num("duration", 0)) * time.Minute,
	})
	if err != nil {
		return err
	}

	local := a.events.LocalTime(ctx, ix.GuildID, act.UserID, e.Start)
	return a.respondEphemeral(ix, fmt.Sprintf(messages.EventCreated, e.Name, local))
}

func (a *App) changeEventTime(ctx context.Context, ix *interaction) error {
	act, err := a.staffActor(ctx, ix)
	if err != nil {
		return err
	}
	opts := commandOptions(ix.InteractionCreate)

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	e, err := a.events.Reschedule(ctx, ix.GuildID, act.UserID, opts.str("event_id", ""), opts.str("start", ""))
	if err != nil {
		return err
	}

	local := a.events.LocalTime(ctx, ix.GuildID, act.UserID, e.Start)
	return a.respondEphemeral(ix, fmt.Sprintf(messages.EventRescheduled, e.Name, local))
}

func (a *App) listEvents(ctx context.Context, ix *interaction) error {
	act, err := a.guildActor(ix)
	if err != nil {
		return err
	}

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	all, err := a.events.List(ctx, ix.GuildID)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return a.respondEphemeral(ix, messages.EventNone)
	}

	embed := &discordgo.MessageEmbed{
		Title: "📅 Upcoming Events",
		Color: colorBlue,
	}
	for _, e := range all {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  e.Name,
			Value: fmt.Sprintf("ID: `%s`\n%s", e.ID, a.events.LocalTime(ctx, ix.GuildID, act.UserID, e.Start)),
		})
	}
	return a.respondEmbed(ix, limitFields(embed))
}

func (a *App) eventInfo(ctx context.Context, ix *interaction) error {
	if _, err := a.guildActor(ix); err != nil {
		return err
	}

	e, err := a.events.Get(ctx, ix.GuildID, commandOptions(ix.InteractionCreate).str("event_id", ""))
	if err != nil {
		return err
	}
	return a.respondEmbed(ix, eventEmbed(e))
}

func (a *App) deleteEvent(ctx context.Context, ix *interaction) error {
	if _, err := a.staffActor(ctx, ix); err != nil {
		return err
	}
	eventID := strings.TrimSpace(commandOptions(ix.InteractionCreate).str("event_id", ""))

	if err := a.events.Delete(ctx, ix.GuildID, eventID); err != nil {
		return err
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.EventDeleted, eventID))
}

func eventEmbed(e *events.Event) *discordgo.MessageEmbed {
	kind, location := "External", e.Location
	if e.ChannelID != "" {
		kind, location = "Voice", fmt.Sprintf("<#%s>", e.ChannelID)
	}
	if location == "" {
		location = "Not specified"
	}

	description := e.Description
	if description == "" {
		description = "No description"
	}

	return &discordgo.MessageEmbed{
		Title:       "📅 " + e.Name,
		Description: description,
		Color:       colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: fmt.Sprintf("`%s`", e.ID), Inline: true},
			{Name: "Status", Value: eventStatus(e.Status), Inline: true},
			{Name: "Type", Value: kind, Inline: true},
			{Name: "Start Time", Value: e.Start.UTC().Format(eventTimeLayout), Inline: true},
			{Name: "End Time", Value: e.End.UTC().Format(eventTimeLayout), Inline: true},
			{Name: "Location", Value: location, Inline: true},
		},
	}
}

func eventStatus(s events.Status) string {
	switch s {
	case events.StatusScheduled:
		return "Scheduled"
	case events.StatusActive:
		return "Active"
	case events.StatusCompleted:
		return "Completed"
	case events.StatusCanceled:
		return "Canceled"
	}
	return "Unknown"
}
