package datatransfer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/robfig/cron/v3"
)

const backupTimeout = 5 * time.Minute

// Scheduler runs BackupAll on a cron schedule.
type Scheduler struct {
	// l is the logger.
	l *slog.Logger

	// c is the cron runner.
	c *cron.Cron
}

// NewScheduler creates a scheduler that backs up every guild on the cron schedule, in UTC.
func NewScheduler(l *slog.Logger, svc *Service, schedule string) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
		defer cancel()

		n, err := svc.BackupAll(ctx)
		if err != nil {
			l.Error("Error running scheduled backup",
				slog.Int("servers", n),
				slog.String(logging.KeyError, err.Error()),
			)
			return
		}
		l.Info("Scheduled backup complete", slog.Int("servers", n))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}

	return &Scheduler{
		l: l,
		c: c,
	}, nil
}

// Start starts the scheduler in the background.
func (s *Scheduler) Start() {
	s.c.Start()
	s.l.Info("Backup scheduler started")
}

// Stop stops the scheduler and waits for a running backup to finish or ctx to be done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.c.Stop().Done():
	case <-ctx.Done():
	}
}
