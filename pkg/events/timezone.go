package events

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	minOffset = -12
	maxOffset = 14
)

var timezonePattern = regexp.MustCompile(`^UTC([+-]\d{1,2})$`)

// ParseTimezone parses a UTC±X timezone into a fixed-offset location named after it.
func ParseTimezone(tz string) (*time.Location, error) {
	m := timezonePattern.FindStringSubmatch(tz)
	if m == nil {
		return nil, fmt.Errorf("%w: %q, use UTC±X", ErrInvalidTimezone, tz)
	}

	offset, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	if offset < minOffset || offset > maxOffset {
		return nil, fmt.Errorf("%w: offset must be between %d and %d", ErrInvalidTimezone, minOffset, maxOffset)
	}

	return time.FixedZone(tz, offset*60*60), nil
}
