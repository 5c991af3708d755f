package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Jacobbrewer1/concierge/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/Jacobbrewer1/concierge/pkg/messages"
	"github.com/Jacobbrewer1/concierge/pkg/tickets"
	"github.com/Jacobbrewer1/discordgo"
)

// componentArgs returns the arguments encoded in the custom ID of a component or modal.
func componentArgs(ix *interaction) []string {
	var id string
	switch ix.Type {
	case discordgo.InteractionMessageComponent:
		id = ix.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		id = ix.ModalSubmitData().CustomID
	}
	_, args := parseCustomID(id)
	return args
}

func (a *App) openTicket(ctx context.Context, ix *interaction) error {
	args := componentArgs(ix)
	if len(args) != 2 {
		return a.respondEphemeral(ix, messages.TicketSetupNotFound)
	}

	act, err := a.guildActor(ix)
	if err != nil {
		return err
	}

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	ticket, err := a.tickets.Open(ctx, &tickets.OpenRequest{
		GuildID:   ix.GuildID,
		PanelID:   args[0],
		OptionID:  args[1],
		ChannelID: ix.ChannelID,
		User:      act,
	})
	if errors.Is(err, tickets.ErrNotFound) {
		return a.respondEphemeral(ix, messages.TicketSetupNotFound)
	} else if err != nil {
		return err
	}

	monitoring.TicketsOpened.Inc()
	return a.respondEphemeral(ix, fmt.Sprintf(messages.TicketCreated, ticket.ThreadID))
}

func (a *App) joinTicket(ctx context.Context, ix *interaction) error {
	args := componentArgs(ix)
	if len(args) != 1 {
		return a.respondEphemeral(ix, messages.TicketNotFound)
	}
	threadID := args[0]

	act, err := a.guildActor(ix)
	if err != nil {
		return err
	}

	_, joined, err := a.tickets.Join(ctx, ix.GuildID, threadID, act)
	if err != nil {
		return err
	}

	if !joined {
		return a.respondEphemeral(ix, fmt.Sprintf(messages.TicketAlreadyJoined, threadID))
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.TicketJoined, threadID))
}

// closableTicket returns the ticket behind the thread the interaction happened in, if the
// actor may close it.
func (a *App) closableTicket(ctx context.Context, ix *interaction) (string, error) {
	act, err := a.guildActor(ix)
	if err != nil {
		return "", err
	}

	ticket, err := a.tickets.FindByThread(ctx, ix.GuildID, ix.ChannelID)
	if errors.Is(err, tickets.ErrNotFound) {
		return "", errThreadOnly
	} else if err != nil {
		return "", err
	}

	if !a.tickets.CanClose(ctx, ticket, act) {
		return "", tickets.ErrPermissionDenied
	}
	return ticket.ThreadID, nil
}

func (a *App) closeTicket(ctx context.Context, ix *interaction) error {
	return a.requestClose(ctx, ix, ix.ChannelID, "")
}

func (a *App) closeTicketWithReason(ctx context.Context, ix *interaction) error {
	threadID, err := a.closableTicket(ctx, ix)
	if err != nil {
		return err
	}

	if err := a.s.InteractionRespond(ix.Interaction, closeReasonModal(threadID)); err != nil {
		return fmt.Errorf("error showing close reason modal: %w", err)
	}
	ix.replied = true
	return nil
}

func (a *App) submitCloseReason(ctx context.Context, ix *interaction) error {
	args := componentArgs(ix)
	if len(args) != 1 {
		return errThreadOnly
	}
	return a.requestClose(ctx, ix, args[0], modalValue(ix.ModalSubmitData(), closeReasonInputID))
}

// requestClose records a close request and asks the actor to confirm it.
func (a *App) requestClose(ctx context.Context, ix *interaction, threadID, reason string) error {
	act, err := a.guildActor(ix)
	if err != nil {
		return err
	}

	if _, err := a.tickets.RequestClose(ctx, ix.GuildID, threadID, act, reason); errors.Is(err, tickets.ErrNotFound) {
		return errThreadOnly
	} else if err != nil {
		return err
	}

	if reason == "" {
		reason = messages.TicketNoReason
	}
	return a.respondComplex(ix, &discordgo.InteractionResponseData{
		Content:    fmt.Sprintf(messages.TicketCloseConfirm, reason),
		Components: confirmCloseComponents(threadID),
	})
}

func (a *App) confirmCloseTicket(ctx context.Context, ix *interaction) error {
	args := componentArgs(ix)
	if len(args) != 1 {
		return errThreadOnly
	}
	threadID := args[0]

	act, err := a.guildActor(ix)
	if err != nil {
		return err
	}

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	result, err := a.tickets.ConfirmClose(ctx, ix.GuildID, threadID, act)
	if err != nil {
		return err
	}

	monitoring.TicketsClosed.WithLabelValues(strconv.FormatBool(result.Delivered)).Inc()

	reply := fmt.Sprintf(messages.TicketClosing, result.Reason)
	if !result.Delivered {
		reply += "\n" + messages.TicketTranscriptNotSent
	}

	// The thread may be gone by now, taking the deferred reply with it.
	if err := a.respondEphemeral(ix, reply); err != nil && !isNotFound(err) {
		return err
	} else if err != nil {
		a.Debug("Ticket thread removed before the close reply",
			slog.String(logging.KeyThreadID, threadID),
		)
	}
	return nil
}

func (a *App) cancelCloseTicket(_ context.Context, ix *interaction) error {
	args := componentArgs(ix)
	if len(args) != 1 {
		return errThreadOnly
	}

	a.tickets.CancelClose(args[0])
	return a.updateMessage(ix, messages.TicketCloseCancelled)
}
