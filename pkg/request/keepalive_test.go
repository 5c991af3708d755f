package request

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/stretchr/testify/require"
)

func TestHomeHandler(t *testing.T) {
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err)

	now := func() time.Time {
		return time.Date(2024, 12, 25, 14, 30, 0, 0, time.UTC)
	}

	w := httptest.NewRecorder()
	HomeHandler(l, "concierge", now).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	got := new(Status)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), got))
	require.Equal(t, &Status{
		Status:    "online",
		Message:   "concierge is running",
		Timestamp: "2024-12-25T14:30:00Z",
	}, got)
}

func TestPingHandler(t *testing.T) {
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	PingHandler(l).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pong", w.Body.String())
}

func TestClientWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := NewClientWriter(rec)
	require.Equal(t, http.StatusOK, cw.StatusCode())

	cw.WriteHeader(http.StatusTeapot)
	require.Equal(t, http.StatusTeapot, cw.StatusCode())
	require.Equal(t, http.StatusTeapot, rec.Code)
}
