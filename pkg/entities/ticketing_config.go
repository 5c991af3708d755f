package entities

import (
	"github.com/Jacobbrewer1/concierge/pkg/custom"
)

// TicketPanel is a persistent message that offers one or more ticket options.
// A panel with a single option is what users know as a "ticket setup".
type TicketPanel struct {
	// ID is the identifier of the panel. It is unique within a guild.
	ID string `json:"id"`

	// ChannelID is the ID of the channel the panel is posted in.
	ChannelID string `json:"panel_channel_id"`

	// Title is the title of the panel embed.
	Title string `json:"panel_title"`

	// Description is the description of the panel embed.
	Description string `json:"panel_description"`

	// MessageID is the ID of the posted panel message, if it has been posted.
	MessageID string `json:"panel_message_id,omitempty"`

	// Options are the ticket options offered by the panel.
	Options []*TicketOption `json:"ticket_options"`

	// CreatedAt is the time the panel was created.
	CreatedAt custom.Datetime `json:"created_at"`
}

// Option returns the option with the given ID.
func (p *TicketPanel) Option(id string) (*TicketOption, bool) {
	for _, o := range p.Options {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// IsSingle reports whether the panel offers exactly one option.
func (p *TicketPanel) IsSingle() bool {
	return len(p.Options) == 1
}

// Setup returns the single-option view of the panel.
func (p *TicketPanel) Setup() (*TicketSetup, bool) {
	if !p.IsSingle() {
		return nil, false
	}

	o := p.Options[0]
	return &TicketSetup{
		ID:                   p.ID,
		TicketChannelID:      p.ChannelID,
		HandleChannelID:      o.HandleChannelID,
		TranscriptsChannelID: o.TranscriptsChannelID,
		TitleFormat:          o.TitleFormat,
		OpenMessage:          o.OpenMessage,
		ButtonLabel:          o.ButtonLabel,
		ButtonEmoji:          o.ButtonEmoji,
		CreatedAt:            p.CreatedAt,
	}, true
}

// TicketOption is a single button on a ticket panel.
type TicketOption struct {
	// ID is the identifier of the option. It is unique within a panel.
	ID string `json:"id"`

	// ButtonLabel is the label of the button.
	ButtonLabel string `json:"button_label"`

	// ButtonEmoji is the optional emoji shown on the button.
	ButtonEmoji string `json:"button_emoji,omitempty"`

	// TitleFormat is the format of the ticket thread name.
	TitleFormat string `json:"title_format"`

	// OpenMessage is posted in the thread when the ticket is opened.
	OpenMessage string `json:"open_message"`

	// HandleChannelID is the staff channel notified when a ticket opens.
	HandleChannelID string `json:"handle_channel_id"`

	// TranscriptsChannelID is the optional channel transcripts are delivered to.
	TranscriptsChannelID string `json:"transcripts_channel_id,omitempty"`

	// CreatedAt is the time the option was created.
	CreatedAt custom.Datetime `json:"created_at"`
}

// TicketSetup is the single-option shape of a ticket configuration.
// It is the legacy layout of ticket_configs.json.
type TicketSetup struct {
	ID                   string          `json:"id"`
	TicketChannelID      string          `json:"ticket_channel_id"`
	HandleChannelID      string          `json:"handle_channel_id"`
	TranscriptsChannelID string          `json:"transcripts_channel_id,omitempty"`
	TitleFormat          string          `json:"title_format"`
	OpenMessage          string          `json:"open_message"`
	ButtonLabel          string          `json:"button_label,omitempty"`
	ButtonEmoji          string          `json:"button_emoji,omitempty"`
	CreatedAt            custom.Datetime `json:"created_at"`
}
