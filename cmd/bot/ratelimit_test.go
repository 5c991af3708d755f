package main

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestUserLimiter_Allow(t *testing.T) {
	l := newUserLimiter(rate.Every(1e12), 2)

	require.True(t, l.Allow("1"))
	require.True(t, l.Allow("1"))
	require.False(t, l.Allow("1"))

	// Users do not share a bucket.
	require.True(t, l.Allow("2"))
}

func TestUserLimiter_Reset(t *testing.T) {
	l := newUserLimiter(rate.Every(1e12), 1)
	require.True(t, l.Allow("first"))
	require.False(t, l.Allow("first"))

	for i := 0; len(l.users) < maxTrackedUsers; i++ {
		l.users[strconv.Itoa(i)] = rate.NewLimiter(l.limit, l.burst)
	}

	// A full map is dropped, so the next new user starts a fresh set.
	require.True(t, l.Allow("newcomer"))
	require.Len(t, l.users, 1)
	require.True(t, l.Allow("first"))
}
