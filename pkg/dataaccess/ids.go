package dataaccess

import (
	"encoding/json"
	"fmt"
)

// IDList is a list of snowflake IDs. Older documents stored IDs as JSON numbers, so both
// numbers and strings are accepted when decoding.
type IDList []string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (l *IDList) UnmarshalJSON(b []byte) error {
	var raw []json.Number
	if err := json.Unmarshal(b, &raw); err == nil {
		ids := make(IDList, len(raw))
		for i, n := range raw {
			ids[i] = n.String()
		}
		*l = ids
		return nil
	}

	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return fmt.Errorf("invalid id list: %w", err)
	}
	*l = ids
	return nil
}
