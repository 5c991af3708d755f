package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Jacobbrewer1/concierge/cmd/bot/config"
	"github.com/Jacobbrewer1/concierge/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/concierge/pkg/access"
	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/datatransfer"
	"github.com/Jacobbrewer1/concierge/pkg/events"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/Jacobbrewer1/concierge/pkg/request"
	"github.com/Jacobbrewer1/concierge/pkg/tickets"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// PathHome is the keep-alive status page.
	PathHome = "/"

	// PathPing is the keep-alive probe.
	PathPing = "/ping"

	// PathHealth is the path for the health check.
	PathHealth = "/health"

	// PathMetrics is the path for prometheus metrics.
	PathMetrics = "/metrics"

	shutdownTimeout = 30 * time.Second
)

type App struct {
	// is the logger.
	*slog.Logger

	// cfg is the configuration of the application.
	cfg *config.Config

	// r is the router for the application.
	r *mux.Router

	// svr is the server for the application.
	svr *http.Server

	// s is the discord session.
	s *discordgo.Session

	// eventNotifier is the channel for notifying of events.
	eventNotifier chan any

	// startedAt is the time the application started.
	startedAt time.Time

	// ctx is cancelled on shutdown. Interaction handlers derive from it.
	ctx    context.Context
	cancel context.CancelFunc

	store    dataaccess.Store
	guilds   dataaccess.GuildDal
	trusted  dataaccess.TrustedDal
	policy   *access.Policy
	registry *tickets.Registry
	tickets  *tickets.Controller
	events   *events.Service
	transfer *datatransfer.Service
	fetcher  *datatransfer.Fetcher
	limiter  *userLimiter

	// scheduler runs the periodic backups. It is nil when no schedule is configured.
	scheduler *datatransfer.Scheduler
}

// NewApp creates a new instance of App.
func NewApp(
	l *slog.Logger,
	cfg *config.Config,
	r *mux.Router,
	s *discordgo.Session,
	store dataaccess.Store,
	guilds dataaccess.GuildDal,
	trusted dataaccess.TrustedDal,
	policy *access.Policy,
	registry *tickets.Registry,
	ticketController *tickets.Controller,
	eventService *events.Service,
	transfer *datatransfer.Service,
	fetcher *datatransfer.Fetcher,
	limiter *userLimiter,
	scheduler *datatransfer.Scheduler,
) *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Logger:    l,
		cfg:       cfg,
		r:         r,
		s:         s,
		startedAt: time.Now().UTC(),
		ctx:       ctx,
		cancel:    cancel,
		store:     store,
		guilds:    guilds,
		trusted:   trusted,
		policy:    policy,
		registry:  registry,
		tickets:   ticketController,
		events:    eventService,
		transfer:  transfer,
		fetcher:   fetcher,
		limiter:   limiter,
		scheduler: scheduler,
	}
}

func (a *App) Run() error {
	a.registerBot()

	a.s.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		a.Info(fmt.Sprintf("Logged in as %s", r.User.Username),
			slog.Int("guilds", len(r.Guilds)),
		)
	})

	a.registerDiscordHandlers()

	// Start event listener.
	go a.eventListener()

	// Open websocket.
	if err := a.s.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	a.Info("Bot is now running.")

	if a.scheduler != nil {
		a.scheduler.Start()
	}

	a.generateServer()
	a.setupRoutes()
	a.runServer()

	// Register listener for shutdown signal.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	sig := <-c
	a.Info("Received shutdown signal", slog.String("signal", sig.String()))
	if err := a.ShutdownHook(); err != nil {
		return fmt.Errorf("error shutting down application: %w", err)
	}
	return nil
}

func (a *App) ShutdownHook() error {
	// Reset the total number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.scheduler != nil {
		a.scheduler.Stop(ctx)
	}

	// Abort in flight interactions.
	a.cancel()

	var errs []error
	if a.svr != nil {
		if err := a.svr.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("error shutting down monitoring server: %w", err))
		}
	}

	// Close the connection to Discord.
	if err := a.s.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing connection to Discord: %w", err))
	}
	return errors.Join(errs...)
}

func (a *App) registerBot() {
	// Default the number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	a.s.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsAll)

	if a.eventNotifier == nil {
		// Buffered to prevent blocking the gateway.
		a.eventNotifier = make(chan any, 100)
	}

	a.s.SetEventNotifier(a.eventNotifier)
}

func (a *App) runServer() {
	go func() {
		a.Info("Starting monitoring server", slog.String("addr", a.svr.Addr))
		if err := a.svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Error("Error starting monitoring server", slog.String(logging.KeyError, err.Error()))
			a.Warn("Monitoring server will not be available")
		}
	}()
}

func (a *App) setupRoutes() {
	a.r.HandleFunc(PathHome, middlewareHttp(a, request.HomeHandler(a.Logger, config.AppName, time.Now))).Methods(http.MethodGet, http.MethodHead)
	a.r.HandleFunc(PathPing, middlewareHttp(a, request.PingHandler(a.Logger))).Methods(http.MethodGet, http.MethodHead)
	a.r.HandleFunc(PathHealth, middlewareHttp(a, a.healthCheck())).Methods(http.MethodGet)
	a.r.HandleFunc(PathMetrics, promhttp.Handler().ServeHTTP).Methods(http.MethodGet)

	a.r.NotFoundHandler = middlewareHttp(a, request.NotFoundHandler(a.Logger))
	a.r.MethodNotAllowedHandler = middlewareHttp(a, request.MethodNotAllowedHandler(a.Logger))
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:              ":" + a.cfg.MonitoringPort,
		Handler:           a.r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) registerDiscordHandlers() {
	// Bot joined guild.
	a.s.AddHandler(a.guildJoinedHandler())

	// Bot left guild.
	a.s.AddHandler(a.guildLeaveHandler())

	// Interaction create handler.
	a.s.AddHandler(interactionHandler(a, a.commandProcessors(), a.componentProcessors()))
}

func (a *App) eventListener() {
	for e := range a.eventNotifier {
		switch t := e.(type) {
		case *discordgo.Event:
			if t.Type != "" {
				monitoring.TotalDiscordEvents.WithLabelValues(t.Type).Inc()
			} else {
				// If there is no type, then use the operation name.
				monitoring.TotalDiscordEvents.WithLabelValues(strings.ToUpper(t.Operation.String())).Inc()
			}
		default:
			a.Error("Unknown event type", slog.String("type", fmt.Sprintf("%T", e)))
			monitoring.TotalDiscordEvents.WithLabelValues("UNKNOWN").Inc()
		}
	}
}

// applicationID is the application the slash commands are registered for. It defaults to the
// bot user once the session is ready.
func (a *App) applicationID() string {
	if a.cfg.ApplicationId != "" {
		return a.cfg.ApplicationId
	}
	if a.s.State != nil && a.s.State.User != nil {
		return a.s.State.User.ID
	}
	return ""
}

// uptime is the time since the application started.
func (a *App) uptime() time.Duration {
	return time.Since(a.startedAt).Truncate(time.Second)
}
