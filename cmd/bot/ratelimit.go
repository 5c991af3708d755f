package main

import (
	"sync"

	"github.com/Jacobbrewer1/concierge/cmd/bot/config"
	"golang.org/x/time/rate"
)

// maxTrackedUsers bounds the limiter map. It is reset when full.
const maxTrackedUsers = 10000

// userLimiter rate limits interactions per user.
type userLimiter struct {
	// mut guards users.
	mut   sync.Mutex
	users map[string]*rate.Limiter

	limit rate.Limit
	burst int
}

// NewUserLimiter creates a per user limiter from the configuration.
func NewUserLimiter(c *config.Config) *userLimiter {
	return newUserLimiter(rate.Limit(c.InteractionRate), c.InteractionBurst)
}

func newUserLimiter(limit rate.Limit, burst int) *userLimiter {
	return &userLimiter{
		users: make(map[string]*rate.Limiter),
		limit: limit,
		burst: burst,
	}
}

// Allow reports whether the user may send another interaction now.
func (u *userLimiter) Allow(userID string) bool {
	u.mut.Lock()
	defer u.mut.Unlock()

	l, ok := u.users[userID]
	if !ok {
		if len(u.users) >= maxTrackedUsers {
			u.users = make(map[string]*rate.Limiter)
		}
		l = rate.NewLimiter(u.limit, u.burst)
		u.users[userID] = l
	}
	return l.Allow()
}
