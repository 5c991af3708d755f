package datatransfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
)

const backupTimeLayout = "20060102T150405Z"

// Backup writes a bundle of the guild's documents to <backup dir>/<guild>/<timestamp>.json
// and returns its path.
func (s *Service) Backup(ctx context.Context, guildID string) (string, error) {
	if err := dataaccess.ValidateScope(guildID); err != nil || guildID == dataaccess.RootScope {
		return "", fmt.Errorf("invalid guild id %q", guildID)
	}

	b, err := s.bundle(ctx, guildID)
	if err != nil {
		return "", err
	}

	raw, err := dataaccess.EncodeDocument(b)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.backupDir, guildID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating backup directory: %w", err)
	}

	path := filepath.Join(dir, b.ExportedAt.Time().UTC().Format(backupTimeLayout)+".json")
	if err := s.writeFileAtomic(dir, path, raw); err != nil {
		return "", fmt.Errorf("error writing backup: %w", err)
	}

	s.l.Info("Guild data backed up",
		slog.String(logging.KeyGuildID, guildID),
		slog.String("path", path),
	)
	return path, nil
}

// BackupAll backs up every guild. A failing guild does not stop the others; the number of
// guilds backed up is returned with the joined errors.
func (s *Service) BackupAll(ctx context.Context) (int, error) {
	scopes, err := s.raw.Scopes(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing servers: %w", err)
	}

	var (
		done int
		errs []error
	)
	for _, scope := range scopes {
		if _, err := s.Backup(ctx, scope); err != nil {
			errs = append(errs, fmt.Errorf("server %s: %w", scope, err))
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}

func (s *Service) writeFileAtomic(dir, path string, data []byte) error {
	f, err := os.CreateTemp(dir, ".backup-*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.l.Warn("Error removing temporary backup file", slog.String(logging.KeyError, err.Error()))
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
