package events

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MinLeadTime is how far ahead an event must start.
	MinLeadTime = 30 * time.Minute

	// DefaultDuration is the duration of an event created without one.
	DefaultDuration = 90 * time.Minute

	layoutFull     = "2006-01-02 15:04"
	layoutNoYear   = "01-02 15:04"
	layoutTimeOnly = "15:04"
)

// ParseTime parses an event time in the location. Accepted formats are "2006-01-02 15:04",
// "01-02 15:04" in the current year, and "15:04" today or, once passed, tomorrow.
func ParseTime(input string, loc *time.Location, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	now = now.In(loc)

	if t, err := time.ParseInLocation(layoutFull, input, loc); err == nil {
		return t, nil
	}

	if t, err := time.ParseInLocation(layoutNoYear, input, loc); err == nil {
		return time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
	}

	if t, err := time.ParseInLocation(layoutTimeOnly, input, loc); err == nil {
		candidate := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, loc)
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		return candidate, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q, use YYYY-MM-DD HH:MM, MM-DD HH:MM or HH:MM", ErrInvalidTime, input)
}

// ValidateStart ensures the start time is at least MinLeadTime ahead of now.
func ValidateStart(start, now time.Time) error {
	if start.Before(now) {
		return ErrPastTime
	}
	if start.Before(now.Add(MinLeadTime)) {
		return fmt.Errorf("%w: events need %d+ minutes lead time", ErrLeadTime, int(MinLeadTime.Minutes()))
	}
	return nil
}

// ParseChannelMention returns the channel ID of a <#id> mention.
func ParseChannelMention(location string) (string, bool) {
	location = strings.TrimSpace(location)
	if !strings.HasPrefix(location, "<#") || !strings.HasSuffix(location, ">") {
		return "", false
	}

	id := location[2 : len(location)-1]
	if !isSnowflake(id) {
		return "", false
	}
	return id, true
}

func isSnowflake(id string) bool {
	if id == "" || len(id) > 20 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
