package main

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Jacobbrewer1/concierge/pkg/tickets"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/stretchr/testify/require"
)

func restError(status, code int) *discordgo.RESTError {
	return &discordgo.RESTError{
		Response: &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
		},
		Message: &discordgo.APIErrorMessage{Code: code},
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "unknown channel", err: restError(http.StatusNotFound, discordgo.ErrCodeUnknownChannel), want: true},
		{name: "unknown message wrapped", err: fmt.Errorf("edit: %w", restError(http.StatusNotFound, discordgo.ErrCodeUnknownMessage)), want: true},
		{name: "unknown event", err: restError(http.StatusNotFound, discordgo.ErrCodeUnknownGuildScheduledEvent), want: true},
		{name: "plain 404", err: restError(http.StatusNotFound, 0), want: true},
		{name: "forbidden", err: restError(http.StatusForbidden, 50013), want: false},
		{name: "not rest", err: errors.New("timeout"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, isNotFound(tt.err))
		})
	}
}

func TestPlatformError(t *testing.T) {
	require.NoError(t, platformError(nil, tickets.ErrPlatformNotFound, "thread %s", "1"))

	gone := restError(http.StatusNotFound, discordgo.ErrCodeUnknownChannel)
	err := platformError(gone, tickets.ErrPlatformNotFound, "thread %s", "1")
	require.ErrorIs(t, err, tickets.ErrPlatformNotFound)
	require.ErrorIs(t, err, gone)

	forbidden := restError(http.StatusForbidden, 50013)
	err = platformError(forbidden, tickets.ErrPlatformNotFound, "thread %s", "1")
	require.NotErrorIs(t, err, tickets.ErrPlatformNotFound)
	require.ErrorIs(t, err, forbidden)
}
