package dataaccess

import (
	"context"

	"github.com/Jacobbrewer1/concierge/pkg/dataaccess/monitoring"
	"github.com/prometheus/client_golang/prometheus"
)

// Store persists whole JSON documents per scope. A scope is a guild ID, or RootScope for
// process-wide documents.
type Store interface {
	// Load returns the document. A missing document is created empty and returned.
	Load(ctx context.Context, scope string, kind Kind) ([]byte, error)

	// Save replaces the document.
	Save(ctx context.Context, scope string, kind Kind, data []byte) error

	// Scopes lists every guild scope that has documents.
	Scopes(ctx context.Context) ([]string, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the resources held by the store.
	Close(ctx context.Context) error

	// Backend is the name of the storage backend.
	Backend() string
}

// observe counts the store call and returns a func that records its latency.
func observe(backend, op string, kind Kind) func() {
	monitoring.StoreTotalRequests.WithLabelValues(backend, op, string(kind)).Inc()
	t := prometheus.NewTimer(monitoring.StoreLatency.WithLabelValues(backend, op, string(kind)))
	return func() {
		t.ObserveDuration()
	}
}
