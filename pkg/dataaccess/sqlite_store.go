package dataaccess

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/logging"
	_ "modernc.org/sqlite"
)

const sqliteStoreName = "sqlite"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
	scope       TEXT NOT NULL,
	kind        TEXT NOT NULL,
	data        TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	PRIMARY KEY (scope, kind)
);
`

type sqliteStore struct {
	// l is the logger.
	l *slog.Logger

	// db is the database.
	db *sql.DB
}

// NewSQLiteStore creates a store that keeps every document as a row in an SQLite database.
func NewSQLiteStore(ctx context.Context, l *slog.Logger, path string) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("error creating sqlite directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating sqlite schema: %w", err)
	}

	l = l.With(slog.String(logging.KeyDal, sqliteStoreName))
	l.Info("SQLite store initialised", slog.String("path", path))

	return &sqliteStore{
		l:  l,
		db: db,
	}, nil
}

func (s *sqliteStore) Load(ctx context.Context, scope string, kind Kind) ([]byte, error) {
	defer observe(sqliteStoreName, "load", kind)()

	if err := ValidateScope(scope); err != nil {
		return nil, err
	}

	data, err := s.get(ctx, scope, kind)
	if errors.Is(err, sql.ErrNoRows) {
		return s.create(ctx, scope, kind, kind.Empty())
	} else if err != nil {
		return nil, fmt.Errorf("error querying document: %w", err)
	}
	return data, nil
}

func (s *sqliteStore) get(ctx context.Context, scope string, kind Kind) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE scope = ? AND kind = ?",
		scope, string(kind),
	).Scan(&data)
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// create inserts the document only if it does not exist yet and returns the stored document.
func (s *sqliteStore) create(ctx context.Context, scope string, kind Kind, data []byte) ([]byte, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (scope, kind, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(scope, kind) DO NOTHING`,
		scope, string(kind), string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating document: %w", err)
	}

	stored, err := s.get(ctx, scope, kind)
	if err != nil {
		return nil, fmt.Errorf("error querying document: %w", err)
	}
	return stored, nil
}

func (s *sqliteStore) Save(ctx context.Context, scope string, kind Kind, data []byte) error {
	defer observe(sqliteStoreName, "save", kind)()

	if err := ValidateScope(scope); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (scope, kind, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(scope, kind) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		scope, string(kind), string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("error upserting document: %w", err)
	}
	return nil
}

func (s *sqliteStore) Scopes(ctx context.Context) ([]string, error) {
	defer observe(sqliteStoreName, "scopes", "")()

	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT scope FROM documents WHERE scope != '' ORDER BY scope")
	if err != nil {
		return nil, fmt.Errorf("error querying scopes: %w", err)
	}
	defer rows.Close()

	scopes := make([]string, 0)
	for rows.Next() {
		var scope string
		if err := rows.Scan(&scope); err != nil {
			return nil, fmt.Errorf("error scanning scope: %w", err)
		}
		scopes = append(scopes, scope)
	}
	return scopes, rows.Err()
}

func (s *sqliteStore) Ping(ctx context.Context) error {
	defer observe(sqliteStoreName, "ping", "")()
	return s.db.PingContext(ctx)
}

func (s *sqliteStore) Close(_ context.Context) error {
	return s.db.Close()
}

func (s *sqliteStore) Backend() string {
	return sqliteStoreName
}
