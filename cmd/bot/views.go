package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Jacobbrewer1/concierge/pkg/entities"
	"github.com/Jacobbrewer1/concierge/pkg/messages"
	"github.com/Jacobbrewer1/concierge/pkg/tickets"
	"github.com/Jacobbrewer1/discordgo"
)

const (
	// OpenTicketButtonID prefixes the panel option buttons: ticket_open:<panel>:<option>.
	OpenTicketButtonID = "ticket_open"

	// JoinTicketButtonID prefixes the join button of a handle notice: ticket_join:<thread>.
	JoinTicketButtonID = "ticket_join"

	// CloseTicketButtonID is the close button of a ticket thread.
	CloseTicketButtonID = "ticket_close"

	// CloseReasonButtonID is the close-with-reason button of a ticket thread.
	CloseReasonButtonID = "ticket_close_reason"

	// ConfirmCloseButtonID prefixes the close confirmation button: ticket_close_confirm:<thread>.
	ConfirmCloseButtonID = "ticket_close_confirm"

	// CancelCloseButtonID prefixes the close cancellation button: ticket_close_cancel:<thread>.
	CancelCloseButtonID = "ticket_close_cancel"

	// CloseReasonModalID prefixes the close reason modal: ticket_close_modal:<thread>.
	CloseReasonModalID = "ticket_close_modal"

	// closeReasonInputID is the text input of the close reason modal.
	closeReasonInputID = "reason"
)

const (
	// TicketEmoji is the emoji of the join button. (Ticket)
	TicketEmoji = "\U0001F3AB"

	// CloseEmoji is the emoji of the close buttons. (Padlock)
	CloseEmoji = "\U0001F512"

	// ReasonEmoji is the emoji of the close-with-reason button. (Memo)
	ReasonEmoji = "\U0001F4DD"

	// CancelEmoji is the emoji of the cancel button. (Cross)
	CancelEmoji = "\u274C"
)

const (
	colorGreen = 0x2ECC71
	colorBlue  = 0x3498DB
	colorGrey  = 0x95A5A6

	buttonsPerRow  = 5
	maxCloseReason = 500
)

var customEmojiRegex = regexp.MustCompile(`^<(a?):([A-Za-z0-9_]+):(\d+)>$`)

// customID joins a component prefix and its arguments.
func customID(prefix string, args ...string) string {
	return strings.Join(append([]string{prefix}, args...), ":")
}

// parseCustomID splits a component custom ID into its prefix and arguments.
func parseCustomID(id string) (string, []string) {
	parts := strings.Split(id, ":")
	return parts[0], parts[1:]
}

// componentEmoji converts a unicode emoji or a custom emoji mention to a component emoji.
func componentEmoji(s string) discordgo.ComponentEmoji {
	s = strings.TrimSpace(s)
	if m := customEmojiRegex.FindStringSubmatch(s); m != nil {
		return discordgo.ComponentEmoji{
			Name:     m[2],
			ID:       m[3],
			Animated: m[1] == "a",
		}
	}
	return discordgo.ComponentEmoji{Name: s}
}

func panelEmbed(p *entities.TicketPanel) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       p.Title,
		Description: p.Description,
		Color:       colorGreen,
	}

	if len(p.Options) > 1 {
		lines := make([]string, 0, len(p.Options))
		for _, o := range p.Options {
			lines = append(lines, strings.TrimSpace(fmt.Sprintf("%s **%s**", o.ButtonEmoji, o.ButtonLabel)))
		}
		embed.Fields = []*discordgo.MessageEmbedField{
			{
				Name:  "📋 Available Support Options",
				Value: strings.Join(lines, "\n"),
			},
		}
	}
	return embed
}

// panelComponents lays the option buttons out in rows of five.
func panelComponents(p *entities.TicketPanel) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, (len(p.Options)+buttonsPerRow-1)/buttonsPerRow)
	var row []discordgo.MessageComponent
	for _, o := range p.Options {
		row = append(row, discordgo.Button{
			Label:    o.ButtonLabel,
			Style:    discordgo.PrimaryButton,
			Emoji:    componentEmoji(o.ButtonEmoji),
			CustomID: customID(OpenTicketButtonID, p.ID, o.ID),
		})
		if len(row) == buttonsPerRow {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}
	return rows
}

func handleNoticeEmbed(n *tickets.HandleNotice) *discordgo.MessageEmbed {
	staff := "None yet"
	if len(n.Staff) > 0 {
		names := make([]string, 0, len(n.Staff))
		for _, s := range n.Staff {
			names = append(names, fmt.Sprintf("<@%s>", s.ID))
		}
		staff = strings.Join(names, ", ")
	}

	return &discordgo.MessageEmbed{
		Title:       "🎫 New Ticket",
		Description: fmt.Sprintf("Ticket <#%s> was opened by <@%s>", n.ThreadID, n.CreatorID),
		Color:       colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📋 Support Option", Value: n.OptionLabel, Inline: true},
			{Name: "👥 Staff Joined", Value: staff, Inline: true},
		},
	}
}

func handleNoticeComponents(n *tickets.HandleNotice) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Join Ticket",
					Style:    discordgo.PrimaryButton,
					Emoji:    discordgo.ComponentEmoji{Name: TicketEmoji},
					CustomID: customID(JoinTicketButtonID, n.ThreadID),
				},
			},
		},
	}
}

func welcomeContent(w *tickets.Welcome) string {
	msg := w.Message
	if strings.TrimSpace(msg) == "" {
		msg = messages.TicketDefaultOpenMessage
	}
	return fmt.Sprintf("<@%s> welcome! **%s**\n\n%s", w.UserID, w.OptionLabel, msg)
}

func closeComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Close Ticket",
					Style:    discordgo.DangerButton,
					Emoji:    discordgo.ComponentEmoji{Name: CloseEmoji},
					CustomID: CloseTicketButtonID,
				},
				discordgo.Button{
					Label:    "Close With Reason",
					Style:    discordgo.SecondaryButton,
					Emoji:    discordgo.ComponentEmoji{Name: ReasonEmoji},
					CustomID: CloseReasonButtonID,
				},
			},
		},
	}
}

func confirmCloseComponents(threadID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Confirm Close",
					Style:    discordgo.DangerButton,
					Emoji:    discordgo.ComponentEmoji{Name: CloseEmoji},
					CustomID: customID(ConfirmCloseButtonID, threadID),
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.SecondaryButton,
					Emoji:    discordgo.ComponentEmoji{Name: CancelEmoji},
					CustomID: customID(CancelCloseButtonID, threadID),
				},
			},
		},
	}
}

func closeReasonModal(threadID string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: customID(CloseReasonModalID, threadID),
			Title:    "🔒 Close Ticket",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    closeReasonInputID,
							Label:       "Reason for closing",
							Style:       discordgo.TextInputParagraph,
							Placeholder: "Optional reason for closing...",
							Required:    false,
							MaxLength:   maxCloseReason,
						},
					},
				},
			},
		},
	}
}

// modalValue returns the value of a text input of a submitted modal.
func modalValue(data discordgo.ModalSubmitInteractionData, id string) string {
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if in, ok := rc.(*discordgo.TextInput); ok && in.CustomID == id {
				return strings.TrimSpace(in.Value)
			}
		}
	}
	return ""
}

// maxEmbedFields is the most fields an embed may carry.
const maxEmbedFields = 25

// limitFields drops the fields past the embed limit and notes how many were left out.
func limitFields(embed *discordgo.MessageEmbed) *discordgo.MessageEmbed {
	if len(embed.Fields) <= maxEmbedFields {
		return embed
	}
	dropped := len(embed.Fields) - (maxEmbedFields - 1)
	embed.Fields = append(embed.Fields[:maxEmbedFields-1], &discordgo.MessageEmbedField{
		Name:  "…",
		Value: fmt.Sprintf("and %d more", dropped),
	})
	return embed
}
