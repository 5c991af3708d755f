package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/concierge/cmd/bot/config"
	"github.com/Jacobbrewer1/concierge/pkg/access"
	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/dataaccess/connection"
	"github.com/Jacobbrewer1/concierge/pkg/datatransfer"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/Jacobbrewer1/concierge/pkg/tickets"
	"github.com/Jacobbrewer1/discordgo"
)

const storeConnectTimeout = 30 * time.Second

// NewSession creates the discord session. The websocket is opened by App.Run.
func NewSession(c *config.Config) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + c.BotToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return dg, nil
}

// NewStore opens the document store selected by the configuration.
func NewStore(l *slog.Logger, c *config.Config) (dataaccess.Store, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeConnectTimeout)
	defer cancel()

	var (
		store dataaccess.Store
		err   error
	)
	switch c.StorageDriver {
	case config.StorageSQLite:
		store, err = dataaccess.NewSQLiteStore(ctx, l, c.SQLitePath)
	case config.StorageMongo:
		mongoConn := new(connection.MongoDB)
		mongoConn.ConnectionString = c.MongoUri

		client, cErr := mongoConn.Connect(ctx)
		if cErr != nil {
			return nil, nil, fmt.Errorf("error connecting to mongo: %w", cErr)
		}
		store, err = dataaccess.NewMongoStore(ctx, l, client, c.MongoDatabase)
		if err != nil {
			_ = client.Disconnect(ctx)
		}
	default:
		store, err = dataaccess.NewFileStore(l, c.DataDir)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error opening %s store: %w", c.StorageDriver, err)
	}

	l.Info("Document store ready", slog.String("backend", store.Backend()))

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeConnectTimeout)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			l.Error("Error closing store", slog.String(logging.KeyError, err.Error()))
		}
	}
	return store, cleanup, nil
}

// NewPolicy creates the access policy for the configured bot owner.
func NewPolicy(l *slog.Logger, c *config.Config, guilds dataaccess.GuildDal, trusted dataaccess.TrustedDal) *access.Policy {
	return access.NewPolicy(l, guilds, trusted, c.OwnerUserId)
}

// NewController creates the ticket lifecycle controller with the configured close behaviour.
func NewController(l *slog.Logger, c *config.Config, registry *tickets.Registry, ticketDal dataaccess.TicketDal,
	guilds dataaccess.GuildDal, policy *access.Policy, platform tickets.Platform) *tickets.Controller {
	return tickets.NewController(l, registry, ticketDal, guilds, policy, platform,
		tickets.WithCloseDelay(c.CloseDelay),
		tickets.WithArchiveOnClose(c.ArchiveOnClose),
	)
}

// NewTransferService creates the export, import and backup service.
func NewTransferService(l *slog.Logger, c *config.Config, raw dataaccess.RawDal) *datatransfer.Service {
	return datatransfer.NewService(l, raw, c.BackupDir)
}

// NewBackupScheduler creates the backup scheduler. It returns nil when no schedule is configured.
func NewBackupScheduler(l *slog.Logger, c *config.Config, svc *datatransfer.Service) (*datatransfer.Scheduler, error) {
	if c.BackupSchedule == "" {
		return nil, nil
	}
	return datatransfer.NewScheduler(l, svc, c.BackupSchedule)
}
