package tickets

import (
	"strings"
	"unicode/utf8"
)

const (
	// PlaceholderUsername is replaced with the username of the ticket opener.
	PlaceholderUsername = "{username}"

	// PlaceholderUserID is replaced with the user ID of the ticket opener.
	PlaceholderUserID = "{userid}"

	// maxTitleLength is the longest thread name the platform accepts.
	maxTitleLength = 100
)

// ValidateTitleFormat ensures the format identifies the ticket opener.
func ValidateTitleFormat(format string) error {
	if !strings.Contains(format, PlaceholderUsername) && !strings.Contains(format, PlaceholderUserID) {
		return ErrInvalidTitleFormat
	}
	if utf8.RuneCountInString(format) > maxTitleLength {
		return validationError("title format must be at most %d characters", maxTitleLength)
	}
	return nil
}

// FormatTitle substitutes the placeholders of the format and truncates the result to the
// longest thread name allowed.
func FormatTitle(format, username, userID string) string {
	title := strings.NewReplacer(
		PlaceholderUsername, username,
		PlaceholderUserID, userID,
	).Replace(format)
	return truncate(title, maxTitleLength)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
