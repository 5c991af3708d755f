package dataaccess

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/concierge/pkg/logging"
)

const rawDalName = "raw_dal"

// RawDal gives byte-level access to whole documents, for export and import.
type RawDal interface {
	// Document gets the document bytes exactly as stored.
	Document(ctx context.Context, scope string, kind Kind) ([]byte, error)

	// ReplaceDocument stores raw JSON as the document in canonical form.
	ReplaceDocument(ctx context.Context, scope string, kind Kind, raw []byte) error

	// Scopes lists every guild that has documents.
	Scopes(ctx context.Context) ([]string, error)
}

type rawDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// store is the document store.
	store Store

	// locks serialises writes per guild.
	locks *Locker
}

// NewRawDal creates a new raw document data access layer.
func NewRawDal(l *slog.Logger, store Store, locks *Locker) RawDal {
	return &rawDalImpl{
		l:     l.With(slog.String(logging.KeyDal, rawDalName)),
		store: store,
		locks: locks,
	}
}

func (d *rawDalImpl) Document(ctx context.Context, scope string, kind Kind) ([]byte, error) {
	return d.store.Load(ctx, scope, kind)
}

func (d *rawDalImpl) ReplaceDocument(ctx context.Context, scope string, kind Kind, raw []byte) error {
	doc, err := Canonicalize(raw)
	if err != nil {
		return err
	}

	defer d.locks.Lock(scope)()

	if err := d.store.Save(ctx, scope, kind, doc); err != nil {
		return fmt.Errorf("error replacing %s: %w", kind, err)
	}

	d.l.Info("Document replaced",
		slog.String(logging.KeyGuildID, scope),
		slog.String("kind", string(kind)),
		slog.Int("bytes", len(doc)),
	)
	return nil
}

func (d *rawDalImpl) Scopes(ctx context.Context) ([]string, error) {
	return d.store.Scopes(ctx)
}
