package datatransfer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/entities"
	"github.com/Jacobbrewer1/concierge/pkg/events"
)

// MaxImportSize is the largest file accepted for import.
const MaxImportSize = 8 << 20

// ParseKind returns the guild document kind with the given name.
func ParseKind(name string) (dataaccess.Kind, error) {
	k, err := dataaccess.ParseKind(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// validateDocument ensures raw is a well-formed document of the kind. The document itself is
// stored as given, so fields unknown to this version survive an import.
func validateDocument(kind dataaccess.Kind, raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidFormat, kind)
	}

	if kind.IsList() && trimmed[0] != '[' {
		return fmt.Errorf("%w: expected an array for %s", ErrInvalidFormat, kind)
	} else if !kind.IsList() && trimmed[0] != '{' {
		return fmt.Errorf("%w: expected an object for %s", ErrInvalidFormat, kind)
	}

	var err error
	switch kind {
	case dataaccess.KindTicketConfigs:
		var v []*entities.TicketSetup
		err = json.Unmarshal(trimmed, &v)
	case dataaccess.KindPanels:
		var v []*entities.TicketPanel
		err = json.Unmarshal(trimmed, &v)
	case dataaccess.KindActiveTickets:
		var v map[string]*entities.ActiveTicket
		err = json.Unmarshal(trimmed, &v)
	case dataaccess.KindTicketCounts:
		var v map[string]int
		err = json.Unmarshal(trimmed, &v)
	case dataaccess.KindStaffRoles, dataaccess.KindTrustedUsers:
		var v dataaccess.IDList
		err = json.Unmarshal(trimmed, &v)
	case dataaccess.KindTimezones:
		var v map[string]string
		if err = json.Unmarshal(trimmed, &v); err == nil {
			err = validateTimezones(v)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidFormat, kind, err)
	}
	return nil
}

func validateTimezones(tzs map[string]string) error {
	for userID, tz := range tzs {
		if _, err := events.ParseTimezone(tz); err != nil {
			return fmt.Errorf("user %s: %w", userID, err)
		}
	}
	return nil
}

func checkSize(raw []byte) error {
	if len(raw) > MaxImportSize {
		return fmt.Errorf("%w: %d bytes, the limit is %d", ErrTooLarge, len(raw), MaxImportSize)
	}
	return nil
}
