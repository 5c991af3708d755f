package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/joho/godotenv"
)

const (
	// AppName is the name of the application.
	AppName = "concierge"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvLegacyToken is read when EnvBotToken is not set.
	EnvLegacyToken = `TOKEN`

	// EnvApplicationId is the environment variable for the application ID. The bot user ID is
	// used when it is not set.
	EnvApplicationId = `APPLICATION_ID`

	// EnvOwnerUserId is the environment variable for the bot owner's user ID.
	EnvOwnerUserId = `OWNER_USER_ID`

	// EnvMonitoringPort is the environment variable for the keep-alive and monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`

	// EnvStorageDriver selects the document store: file, sqlite or mongo.
	EnvStorageDriver = `STORAGE_DRIVER`

	// EnvDataDir is the root directory of the file store.
	EnvDataDir = `DATA_DIR`

	// EnvSQLitePath is the database file of the sqlite store.
	EnvSQLitePath = `SQLITE_PATH`

	// EnvMongoUri is the environment variable for the MongoDB URI.
	EnvMongoUri = `MONGO_URI`

	// EnvMongoDatabase is the MongoDB database holding the documents.
	EnvMongoDatabase = `MONGO_DATABASE`

	// EnvBackupDir is the directory backups are written to.
	EnvBackupDir = `BACKUP_DIR`

	// EnvBackupSchedule is the cron expression of the scheduled backups. Empty disables them.
	EnvBackupSchedule = `BACKUP_SCHEDULE`

	// EnvCloseDelay is how long a closed ticket thread stays up, as a Go duration.
	EnvCloseDelay = `TICKET_CLOSE_DELAY`

	// EnvArchiveOnClose archives closed ticket threads instead of deleting them.
	EnvArchiveOnClose = `TICKET_ARCHIVE_ON_CLOSE`

	// EnvInteractionRate is the number of interactions per second a user may send.
	EnvInteractionRate = `INTERACTION_RATE`

	// EnvInteractionBurst is the interaction burst a user may send.
	EnvInteractionBurst = `INTERACTION_BURST`
)

// Storage drivers.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMongo  = "mongo"
)

var (
	// ErrMissingToken is returned when no bot token is configured.
	ErrMissingToken = errors.New("bot token not set")

	// ErrMissingOwner is returned when no bot owner is configured.
	ErrMissingOwner = errors.New("bot owner not set")
)

// Config is the configuration of the bot process.
type Config struct {
	BotToken       string
	ApplicationId  string
	OwnerUserId    string
	MonitoringPort string

	StorageDriver string
	DataDir       string
	SQLitePath    string
	MongoUri      string
	MongoDatabase string

	BackupDir      string
	BackupSchedule string

	CloseDelay     time.Duration
	ArchiveOnClose bool

	InteractionRate  float64
	InteractionBurst int
}

// Parse loads the .env file, if present, and reads the configuration from the environment.
func Parse(l *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.Warn("Error loading .env file", slog.String(logging.KeyError, err.Error()))
	}

	c := &Config{
		BotToken:       os.Getenv(EnvBotToken),
		ApplicationId:  os.Getenv(EnvApplicationId),
		OwnerUserId:    os.Getenv(EnvOwnerUserId),
		MonitoringPort: getEnv(l, EnvMonitoringPort, "8080"),
		StorageDriver:  getEnv(l, EnvStorageDriver, StorageFile),
		DataDir:        getEnv(l, EnvDataDir, "data"),
		SQLitePath:     getEnv(l, EnvSQLitePath, "data/concierge.db"),
		MongoUri:       os.Getenv(EnvMongoUri),
		MongoDatabase:  getEnv(l, EnvMongoDatabase, "concierge"),
		BackupDir:      getEnv(l, EnvBackupDir, "backups"),
		BackupSchedule: os.Getenv(EnvBackupSchedule),
	}

	if c.BotToken == "" {
		c.BotToken = os.Getenv(EnvLegacyToken)
	}
	if c.BotToken == "" {
		return nil, ErrMissingToken
	}
	if c.OwnerUserId == "" {
		return nil, ErrMissingOwner
	}

	switch c.StorageDriver {
	case StorageFile, StorageSQLite:
	case StorageMongo:
		if c.MongoUri == "" {
			return nil, fmt.Errorf("%s is required for the %s storage driver", EnvMongoUri, StorageMongo)
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}

	var err error
	if c.CloseDelay, err = time.ParseDuration(getEnv(l, EnvCloseDelay, "5s")); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvCloseDelay, err)
	} else if c.CloseDelay < 0 {
		return nil, fmt.Errorf("invalid %s: must not be negative", EnvCloseDelay)
	}

	if c.ArchiveOnClose, err = strconv.ParseBool(getEnv(l, EnvArchiveOnClose, "false")); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvArchiveOnClose, err)
	}

	if c.InteractionRate, err = strconv.ParseFloat(getEnv(l, EnvInteractionRate, "1"), 64); err != nil || c.InteractionRate <= 0 {
		return nil, fmt.Errorf("invalid %s: must be a positive number", EnvInteractionRate)
	}

	if c.InteractionBurst, err = strconv.Atoi(getEnv(l, EnvInteractionBurst, "5")); err != nil || c.InteractionBurst <= 0 {
		return nil, fmt.Errorf("invalid %s: must be a positive integer", EnvInteractionBurst)
	}

	l.Debug("All required environment variables have been provided",
		slog.String("storage_driver", c.StorageDriver),
	)
	return c, nil
}

func getEnv(l *slog.Logger, key, def string) string {
	if v := os.Getenv(key); v != "" {
		l.Debug("Found value in environment", slog.String("key", key))
		return v
	}
	return def
}
