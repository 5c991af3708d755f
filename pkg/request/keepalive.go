package request

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/logging"
)

// Status is the liveness response of the keep-alive endpoint.
type Status struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// HomeHandler returns a handler reporting that the process is online.
func HomeHandler(l *slog.Logger, appName string, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeMessage(l, w, http.StatusOK, &Status{
			Status:    "online",
			Message:   appName + " is running",
			Timestamp: now().UTC().Format(time.RFC3339),
		})
	}
}

// PingHandler returns a handler that answers "pong".
func PingHandler(l *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("pong")); err != nil {
			l.Error("Error writing response", slog.String(logging.KeyError, err.Error()))
		}
	}
}
