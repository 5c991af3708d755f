package datatransfer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/custom"
	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
)

// Bundle is every document of a guild.
type Bundle struct {
	GuildID    string                     `json:"guild_id"`
	ExportedAt custom.Datetime            `json:"exported_at"`
	Documents  map[string]json.RawMessage `json:"documents"`
}

// Service moves guild documents in and out of the store.
type Service struct {
	// l is the logger.
	l *slog.Logger

	// raw gives byte-level access to documents.
	raw dataaccess.RawDal

	// backupDir is the directory backups are written to.
	backupDir string

	// now returns the current time.
	now func() time.Time
}

// NewService creates a new data transfer service.
func NewService(l *slog.Logger, raw dataaccess.RawDal, backupDir string) *Service {
	return &Service{
		l:         l,
		raw:       raw,
		backupDir: backupDir,
		now:       time.Now,
	}
}

// Export returns a single document of the guild exactly as stored.
func (s *Service) Export(ctx context.Context, guildID string, kind dataaccess.Kind) ([]byte, error) {
	doc, err := s.raw.Document(ctx, guildID, kind)
	if err != nil {
		return nil, fmt.Errorf("error exporting %s: %w", kind, err)
	}
	return doc, nil
}

// ExportGuild returns a bundle of every document of the guild.
func (s *Service) ExportGuild(ctx context.Context, guildID string) ([]byte, error) {
	b, err := s.bundle(ctx, guildID)
	if err != nil {
		return nil, err
	}
	return dataaccess.EncodeDocument(b)
}

func (s *Service) bundle(ctx context.Context, guildID string) (*Bundle, error) {
	b := &Bundle{
		GuildID:    guildID,
		ExportedAt: custom.NewDatetime(s.now()),
		Documents:  make(map[string]json.RawMessage, len(dataaccess.GuildKinds)),
	}
	for _, k := range dataaccess.GuildKinds {
		doc, err := s.Export(ctx, guildID, k)
		if err != nil {
			return nil, err
		}
		b.Documents[string(k)] = doc
	}
	return b, nil
}

// Import validates raw as a document of the kind and replaces the guild's document with it.
func (s *Service) Import(ctx context.Context, guildID string, kind dataaccess.Kind, raw []byte) error {
	if err := checkSize(raw); err != nil {
		return err
	}
	if !json.Valid(raw) {
		return fmt.Errorf("%w: not valid JSON", ErrInvalidFormat)
	}
	if err := validateDocument(kind, raw); err != nil {
		return err
	}

	if err := s.raw.ReplaceDocument(ctx, guildID, kind, raw); err != nil {
		return fmt.Errorf("error importing %s: %w", kind, err)
	}
	return nil
}

// ImportGuild imports a bundle into the guild. Every document is validated before any is
// written. It returns the number of documents imported.
func (s *Service) ImportGuild(ctx context.Context, guildID string, raw []byte) (int, error) {
	if err := checkSize(raw); err != nil {
		return 0, err
	}

	b := new(Bundle)
	if err := json.Unmarshal(raw, b); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if len(b.Documents) == 0 {
		return 0, fmt.Errorf("%w: bundle has no documents", ErrInvalidFormat)
	}

	docs, err := validateDocuments(b.Documents)
	if err != nil {
		return 0, err
	}

	for _, d := range docs {
		if err := s.raw.ReplaceDocument(ctx, guildID, d.kind, d.raw); err != nil {
			return 0, fmt.Errorf("error importing %s: %w", d.kind, err)
		}
	}

	s.l.Info("Guild data imported",
		slog.String(logging.KeyGuildID, guildID),
		slog.String("source_guild_id", b.GuildID),
		slog.Int("documents", len(docs)),
	)
	return len(docs), nil
}

// Clear empties a document that holds runtime state. Configuration cannot be cleared.
func (s *Service) Clear(ctx context.Context, guildID string, kind dataaccess.Kind) error {
	switch kind {
	case dataaccess.KindActiveTickets, dataaccess.KindTicketCounts, dataaccess.KindTimezones:
	default:
		return fmt.Errorf("%w: %s", ErrNotClearable, kind)
	}

	if err := s.raw.ReplaceDocument(ctx, guildID, kind, kind.Empty()); err != nil {
		return fmt.Errorf("error clearing %s: %w", kind, err)
	}
	return nil
}

type document struct {
	kind dataaccess.Kind
	raw  json.RawMessage
}

// validateDocuments validates documents keyed by kind name and returns them in export order.
func validateDocuments(docs map[string]json.RawMessage) ([]*document, error) {
	for name := range docs {
		if _, err := ParseKind(name); err != nil {
			return nil, err
		}
	}

	valid := make([]*document, 0, len(docs))
	for _, k := range dataaccess.GuildKinds {
		raw, ok := docs[string(k)]
		if !ok {
			continue
		}
		if err := validateDocument(k, raw); err != nil {
			return nil, err
		}
		valid = append(valid, &document{kind: k, raw: raw})
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: no documents to import", ErrInvalidFormat)
	}
	return valid, nil
}
