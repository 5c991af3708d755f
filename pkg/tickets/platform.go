package tickets

import (
	"context"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/entities"
)

// Thread is a ticket thread as seen by the chat platform.
type Thread struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Message is a message in a ticket thread.
type Message struct {
	AuthorName string
	Content    string
	Timestamp  time.Time

	// HasExtras reports whether the message carries attachments or embeds.
	HasExtras bool
}

// HandleNotice is the staff notification of a ticket.
type HandleNotice struct {
	ThreadID    string
	CreatorID   string
	OptionLabel string
	Staff       []*entities.JoinedStaff
}

// Welcome is the first message posted in a ticket thread.
type Welcome struct {
	UserID      string
	OptionLabel string
	Message     string
}

// Transcript is a generated transcript ready for delivery.
type Transcript struct {
	FileName string
	Summary  string
	Body     string
}

// Platform is the chat platform the tickets live on. Implementations return an error wrapping
// ErrPlatformNotFound when the target resource no longer exists.
type Platform interface {
	// CreateThread creates a private, non-invitable thread under the channel.
	CreateThread(ctx context.Context, channelID, name string) (*Thread, error)

	// GrantRole lets the role see the thread.
	GrantRole(ctx context.Context, threadID, roleID string) error

	// AddMember adds the user to the thread.
	AddMember(ctx context.Context, threadID, userID string) error

	// SendHandleNotice posts the staff notification and returns its message ID.
	SendHandleNotice(ctx context.Context, channelID string, n *HandleNotice) (string, error)

	// EditHandleNotice replaces a posted staff notification.
	EditHandleNotice(ctx context.Context, channelID, messageID string, n *HandleNotice) error

	// SendWelcome posts the welcome message with the close controls.
	SendWelcome(ctx context.Context, threadID string, w *Welcome) error

	// SendMessage posts a plain message.
	SendMessage(ctx context.Context, channelID, content string) error

	// DeleteMessage deletes a message.
	DeleteMessage(ctx context.Context, channelID, messageID string) error

	// Thread returns the thread with the given ID.
	Thread(ctx context.Context, threadID string) (*Thread, error)

	// History returns every message of the thread, oldest first.
	History(ctx context.Context, threadID string) ([]*Message, error)

	// SendTranscript delivers a transcript as a file attachment.
	SendTranscript(ctx context.Context, channelID string, t *Transcript) error

	// DeleteThread deletes the thread.
	DeleteThread(ctx context.Context, threadID string) error

	// ArchiveThread archives and locks the thread.
	ArchiveThread(ctx context.Context, threadID string) error
}
