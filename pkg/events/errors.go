package events

import "errors"

var (
	// ErrInvalidTimezone is returned for a timezone that is not UTC±X with X between -12 and 14.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrTimezoneNotSet is returned when the user has no timezone in the guild.
	ErrTimezoneNotSet = errors.New("timezone not set")

	// ErrInvalidTime is returned for a time in none of the accepted formats.
	ErrInvalidTime = errors.New("invalid time")

	// ErrPastTime is returned for a start time in the past.
	ErrPastTime = errors.New("time is in the past")

	// ErrLeadTime is returned for a start time too close to now.
	ErrLeadTime = errors.New("not enough lead time")

	// ErrInvalidDuration is returned for a duration that is not positive.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidEventID is returned for an event ID that is not a snowflake.
	ErrInvalidEventID = errors.New("invalid event id")

	// ErrNotFound is returned when the event does not exist.
	ErrNotFound = errors.New("event not found")
)
