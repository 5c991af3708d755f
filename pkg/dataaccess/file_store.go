package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/Jacobbrewer1/concierge/pkg/logging"
)

const (
	fileStoreName = "file"

	// serversDir is the directory holding one directory per guild.
	serversDir = "servers"
)

type fileStore struct {
	// l is the logger.
	l *slog.Logger

	// root is the data directory.
	root string
}

// NewFileStore creates a store that keeps every document as a JSON file under root.
func NewFileStore(l *slog.Logger, root string) (Store, error) {
	if err := os.MkdirAll(filepath.Join(root, serversDir), 0o755); err != nil {
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}

	return &fileStore{
		l:    l.With(slog.String(logging.KeyDal, fileStoreName)),
		root: root,
	}, nil
}

func (s *fileStore) path(scope string, kind Kind) string {
	if scope == RootScope {
		return filepath.Join(s.root, kind.FileName())
	}
	return filepath.Join(s.root, serversDir, scope, kind.FileName())
}

func (s *fileStore) Load(ctx context.Context, scope string, kind Kind) ([]byte, error) {
	defer observe(fileStoreName, "load", kind)()

	if err := ValidateScope(scope); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(s.path(scope, kind))
	if errors.Is(err, fs.ErrNotExist) {
		s.l.Debug("Document does not exist, creating it",
			slog.String(logging.KeyGuildID, scope),
			slog.String("kind", string(kind)),
		)
		return s.create(scope, kind, kind.Empty())
	} else if err != nil {
		return nil, fmt.Errorf("error reading document: %w", err)
	}
	return b, nil
}

// create writes the document only if it does not exist yet and returns the stored document.
// The temporary file is hard linked into place, which fails if a concurrent Save got there
// first.
func (s *fileStore) create(scope string, kind Kind, data []byte) ([]byte, error) {
	path := s.path(scope, kind)
	tmp, err := s.writeTemp(path, kind, data)
	if err != nil {
		return nil, err
	}
	defer s.removeTemp(tmp)

	err = os.Link(tmp, path)
	if errors.Is(err, fs.ErrExist) {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading document: %w", err)
		}
		return b, nil
	} else if err != nil {
		return nil, fmt.Errorf("error creating document: %w", err)
	}
	return data, nil
}

// Save writes the document to a temporary file in the same directory and renames it into
// place, so readers never see a partial document.
func (s *fileStore) Save(_ context.Context, scope string, kind Kind, data []byte) error {
	defer observe(fileStoreName, "save", kind)()

	if err := ValidateScope(scope); err != nil {
		return err
	}

	path := s.path(scope, kind)
	tmp, err := s.writeTemp(path, kind, data)
	if err != nil {
		return err
	}
	defer s.removeTemp(tmp)

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("error replacing document: %w", err)
	}
	return nil
}

// writeTemp writes data to a synced temporary file next to path and returns its name.
func (s *fileStore) writeTemp(path string, kind Kind, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating document directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+string(kind)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("error creating temporary document: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		s.removeTemp(tmp.Name())
		return "", fmt.Errorf("error writing temporary document: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		s.removeTemp(tmp.Name())
		return "", fmt.Errorf("error syncing temporary document: %w", err)
	}

	if err := tmp.Close(); err != nil {
		s.removeTemp(tmp.Name())
		return "", fmt.Errorf("error closing temporary document: %w", err)
	}
	return tmp.Name(), nil
}

func (s *fileStore) removeTemp(name string) {
	// Nothing to remove once the rename succeeded.
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.l.Warn("Error removing temporary document", slog.String(logging.KeyError, err.Error()))
	}
}

func (s *fileStore) Scopes(_ context.Context) ([]string, error) {
	defer observe(fileStoreName, "scopes", "")()

	entries, err := os.ReadDir(filepath.Join(s.root, serversDir))
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error listing guild directories: %w", err)
	}

	scopes := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || ValidateScope(e.Name()) != nil {
			continue
		}
		scopes = append(scopes, e.Name())
	}
	sort.Strings(scopes)
	return scopes, nil
}

func (s *fileStore) Ping(_ context.Context) error {
	defer observe(fileStoreName, "ping", "")()

	info, err := os.Stat(filepath.Join(s.root, serversDir))
	if err != nil {
		return fmt.Errorf("error checking data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory %s is not a directory", s.root)
	}
	return nil
}

func (s *fileStore) Close(_ context.Context) error {
	return nil
}

func (s *fileStore) Backend() string {
	return fileStoreName
}
