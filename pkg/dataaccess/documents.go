package dataaccess

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotFound is returned when a record does not exist in a document.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a record already exists in a document.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidScope is returned when a scope cannot be used as a document key.
	ErrInvalidScope = errors.New("invalid scope")
)

// RootScope is the scope of process-wide documents.
const RootScope = ""

// Kind is the type of document persisted for a scope.
type Kind string

const (
	// KindTicketConfigs is the legacy single-option ticket setup list.
	KindTicketConfigs Kind = "ticket_configs"

	// KindPanels is the ticket panel list.
	KindPanels Kind = "multi_ticket_configs"

	// KindActiveTickets is the active ticket map, keyed by user ID.
	KindActiveTickets Kind = "active_tickets"

	// KindTicketCounts is the user ticket counter map, keyed by user ID.
	KindTicketCounts Kind = "user_ticket_counts"

	// KindStaffRoles is the staff role ID list.
	KindStaffRoles Kind = "staff_roles"

	// KindTimezones is the user timezone map, keyed by user ID.
	KindTimezones Kind = "user_timezones"

	// KindTrustedUsers is the process-wide trusted user ID list.
	KindTrustedUsers Kind = "trusted_users"
)

// GuildKinds are the document kinds stored for every guild, in export order.
var GuildKinds = []Kind{
	KindTicketConfigs,
	KindPanels,
	KindActiveTickets,
	KindTicketCounts,
	KindStaffRoles,
	KindTimezones,
}

// ParseKind returns the guild document kind with the given name.
func ParseKind(name string) (Kind, error) {
	for _, k := range GuildKinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown document kind %q", name)
}

// FileName is the file the document is persisted as.
func (k Kind) FileName() string {
	return string(k) + ".json"
}

// IsList reports whether the document is a JSON array rather than an object.
func (k Kind) IsList() bool {
	switch k {
	case KindTicketConfigs, KindPanels, KindStaffRoles, KindTrustedUsers:
		return true
	default:
		return false
	}
}

// Empty is the canonical zero document for the kind.
func (k Kind) Empty() []byte {
	if k.IsList() {
		return []byte("[]\n")
	}
	return []byte("{}\n")
}

var scopeRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateScope ensures the scope is safe to use as a directory or key.
func ValidateScope(scope string) error {
	if scope == RootScope {
		return nil
	}
	if !scopeRegex.MatchString(scope) {
		return fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
	return nil
}

// EncodeDocument encodes the value in the canonical document form: two space indentation,
// a trailing newline and no HTML escaping, so mentions such as <@&id> are kept as written.
func EncodeDocument(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("error encoding document: %w", err)
	}
	return buf.Bytes(), nil
}

// Canonicalize rewrites raw JSON in the canonical document form. Documents written by
// EncodeDocument are returned unchanged.
func Canonicalize(raw []byte) ([]byte, error) {
	compact := new(bytes.Buffer)
	if err := json.Compact(compact, raw); err != nil {
		return nil, fmt.Errorf("error compacting document: %w", err)
	}

	out := new(bytes.Buffer)
	if err := json.Indent(out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("error indenting document: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func loadDocument[T any](ctx context.Context, s Store, scope string, kind Kind) (T, error) {
	var v T
	raw, err := s.Load(ctx, scope, kind)
	if err != nil {
		return v, fmt.Errorf("error loading %s: %w", kind, err)
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("error decoding %s: %w", kind, err)
	}
	return v, nil
}

func saveDocument(ctx context.Context, s Store, scope string, kind Kind, v any) error {
	raw, err := EncodeDocument(v)
	if err != nil {
		return err
	}

	if err := s.Save(ctx, scope, kind, raw); err != nil {
		return fmt.Errorf("error saving %s: %w", kind, err)
	}
	return nil
}
