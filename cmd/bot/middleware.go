package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Jacobbrewer1/concierge/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/Jacobbrewer1/concierge/pkg/messages"
	"github.com/Jacobbrewer1/concierge/pkg/request"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/gorilla/mux"
)

const interactionTimeout = 2 * time.Minute

const (
	outcomeOK          = "ok"
	outcomeUserError   = "user_error"
	outcomeError       = "error"
	outcomeUnknown     = "unknown"
	outcomeRateLimited = "rate_limited"
)

// Controller is an HTTP handler on the monitoring server.
type Controller = http.HandlerFunc

// processor handles a slash command, component or modal submission.
type processor func(ctx context.Context, ix *interaction) error

func middlewareHttp(a *App, handler Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				cw.Header().Set("Content-Type", "application/json")
				cw.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(cw).Encode(request.NewMessage(request.ErrInternalServer.Error())); err != nil {
					a.Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path
			}
		} else {
			// Unrouted paths are collapsed so scanners cannot explode the label set.
			path = "unmatched"
		}

		defer func() {
			// The status code is only known once the handler has returned.
			status := fmt.Sprintf("%d", cw.StatusCode())
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, status).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, status).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// interactionName is the command name or the component prefix the interaction is routed by.
func interactionName(i *discordgo.InteractionCreate) string {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return i.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		prefix, _ := parseCustomID(i.MessageComponentData().CustomID)
		return prefix
	case discordgo.InteractionModalSubmit:
		prefix, _ := parseCustomID(i.ModalSubmitData().CustomID)
		return prefix
	}
	return ""
}

// interactionHandler routes slash commands by name, and components and modals by custom ID
// prefix.
func interactionHandler(a *App, commands, components map[string]processor) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		name := interactionName(i)
		if name == "" {
			return
		}

		var (
			proc processor
			ok   bool
		)
		if i.Type == discordgo.InteractionApplicationCommand {
			proc, ok = commands[name]
		} else {
			proc, ok = components[name]
		}

		ix := &interaction{InteractionCreate: i}
		l := a.With(
			slog.String(logging.KeyCommand, name),
			slog.String(logging.KeyGuildID, i.GuildID),
		)
		l.Debug("Handling interaction")

		defer func() {
			if rec := recover(); rec != nil {
				l.Error("Panic in interaction handler",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				monitoring.DiscordCommandUsage.WithLabelValues(name, outcomeError).Inc()
				if err := a.respondError(ix); err != nil {
					l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		if !ok {
			l.Error("No processor found for interaction")
			monitoring.DiscordCommandUsage.WithLabelValues(name, outcomeUnknown).Inc()
			if err := a.respondError(ix); err != nil {
				l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
			}
			return
		}

		if i.Type != discordgo.InteractionApplicationCommand {
			if !a.limiter.Allow(interactionUserID(i)) {
				monitoring.DiscordCommandUsage.WithLabelValues(name, outcomeRateLimited).Inc()
				if err := a.respondEphemeral(ix, messages.ErrRateLimited); err != nil {
					l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
				}
				return
			}
		}

		ctx, cancel := context.WithTimeout(a.ctx, interactionTimeout)
		defer cancel()

		start := time.Now()
		err := proc(ctx, ix)
		monitoring.DiscordCommandDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		if err == nil {
			monitoring.DiscordCommandUsage.WithLabelValues(name, outcomeOK).Inc()
			return
		}

		if msg, ok := userMessage(err); ok {
			monitoring.DiscordCommandUsage.WithLabelValues(name, outcomeUserError).Inc()
			l.Debug("Interaction rejected", slog.String(logging.KeyError, err.Error()))
			if err := a.respondEphemeral(ix, msg); err != nil {
				l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
			}
			return
		}

		monitoring.DiscordCommandUsage.WithLabelValues(name, outcomeError).Inc()
		l.Error("Error processing interaction", slog.String(logging.KeyError, err.Error()))
		if err := a.respondError(ix); err != nil {
			l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
		}
	}
}
