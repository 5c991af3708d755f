package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/concierge/pkg/access"
	"github.com/Jacobbrewer1/concierge/pkg/datatransfer"
	"github.com/Jacobbrewer1/concierge/pkg/events"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/Jacobbrewer1/concierge/pkg/messages"
	"github.com/Jacobbrewer1/concierge/pkg/tickets"
	"github.com/Jacobbrewer1/discordgo"
)

var (
	errServerOnly   = errors.New("command used outside a server")
	errAdminOnly    = errors.New("actor is not an administrator or the owner")
	errStaffOnly    = errors.New("actor is not staff")
	errTrustedOnly  = errors.New("actor is not a trusted user")
	errBotOwnerOnly = errors.New("actor is not the bot owner")
	errThreadOnly   = errors.New("ticket control used outside a ticket thread")
)

// interaction is an interaction being handled. Every reply is ephemeral.
type interaction struct {
	*discordgo.InteractionCreate

	// deferred is set once the interaction was acknowledged without a reply.
	deferred bool

	// replied is set once a reply was sent.
	replied bool
}

// userMessage maps an error to the reply shown to the user. It reports false for unexpected
// errors.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, errServerOnly):
		return messages.ErrServerOnly, true
	case errors.Is(err, errAdminOnly):
		return messages.ErrAdminOnly, true
	case errors.Is(err, errStaffOnly):
		return messages.ErrStaffOnly, true
	case errors.Is(err, errTrustedOnly):
		return messages.ErrTrustedOnly, true
	case errors.Is(err, errBotOwnerOnly):
		return messages.ErrBotOwnerOnly, true
	case errors.Is(err, errThreadOnly):
		return messages.TicketThreadOnly, true
	case errors.Is(err, tickets.ErrAlreadyOpen):
		return messages.TicketAlreadyOpen, true
	case errors.Is(err, tickets.ErrNotFound):
		return messages.TicketNotFound, true
	case errors.Is(err, tickets.ErrPermissionDenied):
		return messages.ErrStaffOnly, true
	case errors.Is(err, tickets.ErrCloseNotRequested):
		return messages.TicketCloseExpired, true
	case errors.Is(err, tickets.ErrValidation):
		return "❌ " + err.Error(), true
	case errors.Is(err, events.ErrInvalidTimezone):
		return messages.EventInvalidTimezone, true
	case errors.Is(err, events.ErrTimezoneNotSet):
		return messages.EventTimezoneNotSet, true
	case errors.Is(err, events.ErrInvalidTime):
		return messages.EventInvalidTime, true
	case errors.Is(err, events.ErrPastTime):
		return messages.EventPastTime, true
	case errors.Is(err, events.ErrLeadTime):
		return messages.EventLeadTime, true
	case errors.Is(err, events.ErrInvalidDuration):
		return messages.EventInvalidDuration, true
	case errors.Is(err, events.ErrInvalidEventID):
		return messages.EventInvalidID, true
	case errors.Is(err, events.ErrNotFound):
		return messages.EventNotFound, true
	case errors.Is(err, datatransfer.ErrTooLarge):
		return messages.DataTooLarge, true
	case errors.Is(err, datatransfer.ErrUnknownKind):
		return messages.DataUnknownKind, true
	case errors.Is(err, datatransfer.ErrNotClearable):
		return messages.DataNotClearable, true
	case errors.Is(err, datatransfer.ErrInvalidFormat):
		return fmt.Sprintf(messages.DataInvalid, err.Error()), true
	}
	return "", false
}

func (a *App) respondError(ix *interaction) error {
	return a.respondEphemeral(ix, messages.ErrUserErrorProcessing)
}

// respondEphemeral replies to the interaction, or follows up when it was deferred or already
// answered.
func (a *App) respondEphemeral(ix *interaction, content string) error {
	return a.respondComplex(ix, &discordgo.InteractionResponseData{
		Content: content,
	})
}

func (a *App) respondEmbed(ix *interaction, embed *discordgo.MessageEmbed) error {
	return a.respondComplex(ix, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}

func (a *App) respondComplex(ix *interaction, data *discordgo.InteractionResponseData) error {
	if ix.deferred || ix.replied {
		_, err := a.s.FollowupMessageCreate(ix.Interaction, true, &discordgo.WebhookParams{
			Content:    data.Content,
			Embeds:     data.Embeds,
			Components: data.Components,
			Files:      data.Files,
			Flags:      discordgo.MessageFlagsEphemeral,
		})
		if err != nil {
			return fmt.Errorf("error sending followup: %w", err)
		}
		return nil
	}

	data.Flags = discordgo.MessageFlagsEphemeral
	if err := a.s.InteractionRespond(ix.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}); err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	ix.replied = true
	return nil
}

// deferEphemeral acknowledges the interaction so a reply can follow after slow work.
func (a *App) deferEphemeral(ix *interaction) error {
	if ix.deferred || ix.replied {
		return nil
	}

	if err := a.s.InteractionRespond(ix.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		return fmt.Errorf("error deferring interaction: %w", err)
	}
	ix.deferred = true
	return nil
}

// updateMessage replaces the message the component is attached to.
func (a *App) updateMessage(ix *interaction, content string) error {
	if err := a.s.InteractionRespond(ix.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{},
		},
	}); err != nil {
		return fmt.Errorf("error updating message: %w", err)
	}
	ix.replied = true
	return nil
}

// interactionUserID is the ID of the user behind the interaction.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	} else if i.User != nil {
		return i.User.ID
	}
	return ""
}

// actor describes the user behind the interaction.
func (a *App) actor(ix *interaction) *access.Actor {
	act := new(access.Actor)
	if ix.Member != nil {
		act.GuildID = ix.GuildID
		act.RoleIDs = ix.Member.Roles
		act.Permissions = ix.Member.Permissions
		if ix.Member.User != nil {
			act.UserID = ix.Member.User.ID
			act.Name = ix.Member.User.Username
		}
	} else if ix.User != nil {
		act.UserID = ix.User.ID
		act.Name = ix.User.Username
	}

	if act.GuildID != "" {
		act.GuildOwnerID = a.guildOwner(act.GuildID)
	}
	return act
}

// guildActor is the actor of an interaction that must happen in a server.
func (a *App) guildActor(ix *interaction) (*access.Actor, error) {
	act := a.actor(ix)
	if !act.InGuild() {
		return nil, errServerOnly
	}
	return act, nil
}

// adminActor is the actor of an interaction restricted to administrators and the owner.
func (a *App) adminActor(ix *interaction) (*access.Actor, error) {
	act, err := a.guildActor(ix)
	if err != nil {
		return nil, err
	}
	if !a.policy.IsAdminOrOwner(act) {
		return nil, errAdminOnly
	}
	return act, nil
}

// staffActor is the actor of an interaction restricted to staff.
func (a *App) staffActor(ctx context.Context, ix *interaction) (*access.Actor, error) {
	act, err := a.guildActor(ix)
	if err != nil {
		return nil, err
	}
	if !a.policy.HasEventAccess(ctx, act) {
		return nil, errStaffOnly
	}
	return act, nil
}

// trustedActor is the actor of an interaction restricted to trusted users. Trust is not tied
// to a server.
func (a *App) trustedActor(ctx context.Context, ix *interaction) (*access.Actor, error) {
	act := a.actor(ix)
	if !a.policy.IsTrustedUser(ctx, act) {
		return nil, errTrustedOnly
	}
	return act, nil
}

// ownerActor is the actor of an interaction restricted to the bot owner.
func (a *App) ownerActor(ix *interaction) (*access.Actor, error) {
	act := a.actor(ix)
	if !a.policy.IsBotOwner(act) {
		return nil, errBotOwnerOnly
	}
	return act, nil
}

// guildOwner returns the owner of the guild, from the state cache when possible.
func (a *App) guildOwner(guildID string) string {
	if a.s.State != nil {
		if g, err := a.s.State.Guild(guildID); err == nil && g.OwnerID != "" {
			return g.OwnerID
		}
	}

	g, err := a.s.Guild(guildID)
	if err != nil {
		a.Warn("Error getting guild owner",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyError, err.Error()),
		)
		return ""
	}
	return g.OwnerID
}

// options indexes the options of a slash command by name.
type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func commandOptions(i *discordgo.InteractionCreate) options {
	m := make(options)
	for _, opt := range i.ApplicationCommandData().Options {
		m[opt.Name] = opt
	}
	return m
}

func (o options) str(name, def string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return def
}

func (o options) num(name string, def int64) int64 {
	if opt, ok := o[name]; ok {
		return opt.IntValue()
	}
	return def
}

// id returns the snowflake of a channel, role or user option.
func (o options) id(name string) string {
	if opt, ok := o[name]; ok {
		if v, ok := opt.Value.(string); ok {
			return v
		}
	}
	return ""
}

// attachment resolves an attachment option.
func (o options) attachment(i *discordgo.InteractionCreate, name string) (*discordgo.MessageAttachment, bool) {
	id := o.id(name)
	data := i.ApplicationCommandData()
	if id == "" || data.Resolved == nil {
		return nil, false
	}
	att, ok := data.Resolved.Attachments[id]
	return att, ok
}
