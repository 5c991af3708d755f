package entities

import (
	"github.com/Jacobbrewer1/concierge/pkg/custom"
)

// ActiveTicket is an open ticket. Active tickets are keyed by the ID of the user that opened them.
type ActiveTicket struct {
	// UserID is the ID of the user that opened the ticket.
	UserID string `json:"user_id"`

	// Username is the name of the user that opened the ticket.
	Username string `json:"username,omitempty"`

	// ThreadID is the ID of the private thread backing the ticket.
	// It is empty while the ticket is still being created.
	ThreadID string `json:"thread_id"`

	// HandleMessageID is the ID of the notification posted in the handle channel.
	HandleMessageID string `json:"handle_msg_id"`

	// HandleChannelID is the ID of the channel the handle notification was posted in.
	HandleChannelID string `json:"handle_channel_id,omitempty"`

	// SetupID is the ID of the panel the ticket was opened from.
	SetupID string `json:"setup_id"`

	// OptionID is the ID of the panel option the ticket was opened from.
	OptionID string `json:"option_id,omitempty"`

	// CreatedAt is the time the ticket was opened.
	CreatedAt custom.Datetime `json:"created_at"`

	// JoinedStaff is the roster of staff that joined the ticket.
	JoinedStaff []*JoinedStaff `json:"joined_staff"`
}

// Pending reports whether the ticket is reserved but its thread is not yet created.
func (t *ActiveTicket) Pending() bool {
	return t.ThreadID == ""
}

// HasStaff reports whether the staff member is already on the roster.
func (t *ActiveTicket) HasStaff(id string) bool {
	for _, s := range t.JoinedStaff {
		if s.ID == id {
			return true
		}
	}
	return false
}

// JoinedStaff is a staff member that joined a ticket.
type JoinedStaff struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	JoinedAt custom.Datetime `json:"joined_at"`
}
