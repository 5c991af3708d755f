package tickets

import (
	"fmt"
	"strings"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/entities"
)

const (
	transcriptDateLayout = "2006-01-02 15:04 UTC"
	transcriptTimeLayout = "15:04:05"
	placeholderExtras    = "[Attachment/Embed]"
)

// TranscriptInfo is the metadata written at the top of a transcript.
type TranscriptInfo struct {
	ThreadName  string
	CreatedAt   time.Time
	CreatorName string
	CreatorID   string
	ClosedAt    time.Time
	CloserName  string
	CloserID    string
	Reason      string
	Staff       []*entities.JoinedStaff
}

// GenerateTranscript renders the plain-text transcript of a ticket. Messages must be ordered
// oldest first. All times are rendered in UTC.
func GenerateTranscript(info *TranscriptInfo, msgs []*Message) string {
	b := new(strings.Builder)

	fmt.Fprintf(b, "=== Ticket Transcript - %s ===\n", info.ThreadName)
	fmt.Fprintf(b, "Created: %s\n", info.CreatedAt.UTC().Format(transcriptDateLayout))
	fmt.Fprintf(b, "Creator: %s (ID: %s)\n", info.CreatorName, info.CreatorID)
	fmt.Fprintf(b, "Closed: %s\n", info.ClosedAt.UTC().Format(transcriptDateLayout))
	if info.CloserID != "" {
		fmt.Fprintf(b, "Closed by: %s (ID: %s)\n", info.CloserName, info.CloserID)
	}
	if info.Reason != "" {
		fmt.Fprintf(b, "Close Reason: %s\n", info.Reason)
	}

	if len(info.Staff) > 0 {
		b.WriteString("\nStaff Joined:\n")
		for _, s := range info.Staff {
			fmt.Fprintf(b, "- %s (ID: %s) at %s\n", s.Name, s.ID, s.JoinedAt.Time().UTC().Format(transcriptDateLayout))
		}
	}

	b.WriteString("\n=== Conversation ===\n\n")
	for _, m := range msgs {
		content := m.Content
		if content == "" && m.HasExtras {
			content = placeholderExtras
		}
		fmt.Fprintf(b, "[%s] %s: %s\n", m.Timestamp.UTC().Format(transcriptTimeLayout), m.AuthorName, content)
	}

	return b.String()
}

// TranscriptFileName is the name of the transcript attachment of a thread.
func TranscriptFileName(threadID string) string {
	return fmt.Sprintf("transcript-%s.txt", threadID)
}
