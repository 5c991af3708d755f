package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Jacobbrewer1/concierge/pkg/entities"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/Jacobbrewer1/concierge/pkg/messages"
	"github.com/Jacobbrewer1/concierge/pkg/tickets"
	"github.com/Jacobbrewer1/discordgo"
)

const (
	defaultTitleFormat = "ticket-{username}"
	defaultSetupLabel  = "Open Ticket"
)

// optionInput reads the ticket option fields of a panel command.
func optionInput(opts options, defaultLabel string) *tickets.OptionInput {
	return &tickets.OptionInput{
		ButtonLabel:          opts.str("button_label", defaultLabel),
		ButtonEmoji:          opts.str("button_emoji", ""),
		TitleFormat:          opts.str("title_format", defaultTitleFormat),
		OpenMessage:          opts.str("open_message", ""),
		HandleChannelID:      opts.id("handle_channel"),
		TranscriptsChannelID: opts.id("transcripts_channel"),
	}
}

func (a *App) setupTicket(ctx context.Context, ix *interaction) error {
	if _, err := a.adminActor(ix); err != nil {
		return err
	}
	opts := commandOptions(ix.InteractionCreate)

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	panel, err := a.registry.CreateSetup(ctx, ix.GuildID, &tickets.PanelInput{
		ChannelID:   opts.id("ticket_channel"),
		Title:       opts.str("embed_title", ""),
		Description: opts.str("embed_description", ""),
		Options:     []*tickets.OptionInput{optionInput(opts, defaultSetupLabel)},
	})
	if err != nil {
		return err
	}

	if err := a.publishPanel(ctx, ix.GuildID, panel); err != nil {
		return err
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.TicketPanelCreated, panel.ID, panel.ChannelID))
}

func (a *App) createTicketPanel(ctx context.Context, ix *interaction) error {
	if _, err := a.adminActor(ix); err != nil {
		return err
	}
	opts := commandOptions(ix.InteractionCreate)

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	panel, err := a.registry.CreatePanel(ctx, ix.GuildID, &tickets.PanelInput{
		ChannelID:   opts.id("channel"),
		Title:       opts.str("title", ""),
		Description: opts.str("description", ""),
		Options:     []*tickets.OptionInput{optionInput(opts, "")},
	})
	if err != nil {
		return err
	}

	if err := a.publishPanel(ctx, ix.GuildID, panel); err != nil {
		return err
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.TicketPanelCreated, panel.ID, panel.ChannelID))
}

func (a *App) addTicketOption(ctx context.Context, ix *interaction) error {
	if _, err := a.adminActor(ix); err != nil {
		return err
	}
	opts := commandOptions(ix.InteractionCreate)
	panelID := strings.TrimSpace(opts.str("panel_id", ""))

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	panel, option, err := a.registry.AddOptionToPanel(ctx, ix.GuildID, panelID, optionInput(opts, ""))
	if errors.Is(err, tickets.ErrNotFound) {
		return a.respondEphemeral(ix, fmt.Sprintf(messages.TicketPanelNotFound, panelID))
	} else if err != nil {
		return err
	}

	if panel.MessageID != "" {
		// Refresh the posted panel so the new button shows up.
		if err := a.publishPanel(ctx, ix.GuildID, panel); err != nil {
			return err
		}
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.TicketOptionAdded, option.ID, panel.ID))
}

func (a *App) postTicketPanel(ctx context.Context, ix *interaction) error {
	if _, err := a.adminActor(ix); err != nil {
		return err
	}
	panelID := strings.TrimSpace(commandOptions(ix.InteractionCreate).str("panel_id", ""))

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	panel, err := a.registry.FindByID(ctx, ix.GuildID, panelID)
	if errors.Is(err, tickets.ErrNotFound) {
		return a.respondEphemeral(ix, fmt.Sprintf(messages.TicketPanelNotFound, panelID))
	} else if err != nil {
		return err
	}

	if err := a.publishPanel(ctx, ix.GuildID, panel); err != nil {
		return err
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.TicketPanelPosted, panel.ChannelID))
}

// publishPanel edits the posted panel message, or posts a new one when there is none.
func (a *App) publishPanel(ctx context.Context, guildID string, p *entities.TicketPanel) error {
	embeds := []*discordgo.MessageEmbed{panelEmbed(p)}
	components := panelComponents(p)

	if p.MessageID != "" {
		_, err := a.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			ID:         p.MessageID,
			Channel:    p.ChannelID,
			Embeds:     embeds,
			Components: components,
		}, discordgo.WithContext(ctx))
		if err == nil {
			return nil
		} else if !isNotFound(err) {
			return fmt.Errorf("error editing panel message: %w", err)
		}
		a.Debug("Panel message is gone, posting a new one",
			slog.String(logging.KeyGuildID, guildID),
			slog.String("panel_id", p.ID),
		)
	}

	msg, err := a.s.ChannelMessageSendComplex(p.ChannelID, &discordgo.MessageSend{
		Embeds:     embeds,
		Components: components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error posting panel message: %w", err)
	}

	if err := a.registry.SetPanelMessage(ctx, guildID, p.ID, p.ChannelID, msg.ID); err != nil {
		return fmt.Errorf("error recording panel message: %w", err)
	}
	p.MessageID = msg.ID
	return nil
}

func (a *App) listTicketSetups(ctx context.Context, ix *interaction) error {
	if _, err := a.adminActor(ix); err != nil {
		return err
	}

	setups, err := a.registry.ListSetups(ctx, ix.GuildID)
	if err != nil {
		return err
	}
	if len(setups) == 0 {
		return a.respondEphemeral(ix, messages.TicketNoSetups)
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎫 Ticket Setups",
		Color: colorBlue,
	}
	for _, s := range setups {
		value := fmt.Sprintf("Channel: <#%s>\nHandle: <#%s>\nTitle: `%s`", s.TicketChannelID, s.HandleChannelID, s.TitleFormat)
		if s.TranscriptsChannelID != "" {
			value += fmt.Sprintf("\nTranscripts: <#%s>", s.TranscriptsChannelID)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("ID: %s", s.ID),
			Value: value,
		})
	}
	return a.respondEmbed(ix, limitFields(embed))
}

func (a *App) listTicketPanels(ctx context.Context, ix *interaction) error {
	if _, err := a.adminActor(ix); err != nil {
		return err
	}

	panels, err := a.registry.ListPanels(ctx, ix.GuildID)
	if err != nil {
		return err
	}
	if len(panels) == 0 {
		return a.respondEphemeral(ix, messages.TicketNoPanels)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎫 Ticket Panels",
		Description: messages.TicketPanelListHeader,
		Color:       colorBlue,
	}
	for _, p := range panels {
		labels := make([]string, 0, len(p.Options))
		for _, o := range p.Options {
			labels = append(labels, fmt.Sprintf("`%s` %s", o.ID, o.ButtonLabel))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (ID: %s)", p.Title, p.ID),
			Value: fmt.Sprintf("Channel: <#%s>\nOptions: %s", p.ChannelID, strings.Join(labels, ", ")),
		})
	}
	return a.respondEmbed(ix, limitFields(embed))
}

func (a *App) deleteTicketSetup(ctx context.Context, ix *interaction) error {
	return a.deletePanel(ctx, ix, "setup_id", a.registry.DeleteSetup)
}

func (a *App) deleteTicketPanel(ctx context.Context, ix *interaction) error {
	return a.deletePanel(ctx, ix, "panel_id", a.registry.DeletePanel)
}

func (a *App) deletePanel(ctx context.Context, ix *interaction, option string, del func(ctx context.Context, guildID, id string) error) error {
	if _, err := a.adminActor(ix); err != nil {
		return err
	}
	id := strings.TrimSpace(commandOptions(ix.InteractionCreate).str(option, ""))

	panel, err := a.registry.FindByID(ctx, ix.GuildID, id)
	if errors.Is(err, tickets.ErrNotFound) {
		return a.respondEphemeral(ix, fmt.Sprintf(messages.TicketPanelNotFound, id))
	} else if err != nil {
		return err
	}

	if err := del(ctx, ix.GuildID, id); errors.Is(err, tickets.ErrNotFound) {
		return a.respondEphemeral(ix, fmt.Sprintf(messages.TicketPanelNotFound, id))
	} else if err != nil {
		return err
	}

	if panel.MessageID != "" {
		if err := a.s.ChannelMessageDelete(panel.ChannelID, panel.MessageID, discordgo.WithContext(ctx)); err != nil && !isNotFound(err) {
			a.Warn("Error deleting panel message",
				slog.String(logging.KeyGuildID, ix.GuildID),
				slog.String("panel_id", id),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.TicketSetupDeleted, id))
}

func (a *App) ticketCount(ctx context.Context, ix *interaction) error {
	act, err := a.guildActor(ix)
	if err != nil {
		return err
	}

	userID := commandOptions(ix.InteractionCreate).id("user")
	if userID == "" {
		userID = act.UserID
	}

	counts, err := a.guilds.TicketCounts(ctx, ix.GuildID)
	if err != nil {
		return fmt.Errorf("error getting ticket counts: %w", err)
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.TicketUserCount, userID, counts[userID]))
}
