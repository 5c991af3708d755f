package custom

import (
	"bytes"
	"fmt"
	"time"
)

// Datetime represents a UTC timestamp persisted as an RFC3339 string.
type Datetime time.Time

// NewDatetime returns the given time as a Datetime in UTC.
func NewDatetime(t time.Time) Datetime {
	return Datetime(t.UTC().Truncate(time.Second))
}

// Time returns the underlying time.
func (d Datetime) Time() time.Time {
	return time.Time(d)
}

// IsZero reports whether the datetime is unset.
func (d Datetime) IsZero() bool {
	return time.Time(d).IsZero()
}

// MarshalJSON implements the json.Marshaler interface.
func (d Datetime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf(`%q`, time.Time(d).UTC().Format(time.RFC3339))), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Datetime) UnmarshalJSON(text []byte) error {
	text = bytes.Trim(text, `"`)
	if len(text) == 0 || string(text) == "null" {
		*d = Datetime{}
		return nil
	}

	t, err := time.Parse(time.RFC3339, string(text))
	if err != nil {
		// Older documents were written without a zone designator.
		t, err = time.Parse("2006-01-02T15:04:05.999999", string(text))
		if err != nil {
			return fmt.Errorf("invalid datetime %q: %w", text, err)
		}
	}
	*d = Datetime(t.UTC())
	return nil
}

// String implements the fmt.Stringer interface.
func (d Datetime) String() string {
	return time.Time(d).UTC().Format(time.RFC3339)
}
