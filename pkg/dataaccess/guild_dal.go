package dataaccess

import (
	"context"
	"log/slog"
	"slices"

	"github.com/Jacobbrewer1/concierge/pkg/logging"
)

const guildDalName = "guild_dal"

// GuildDal gives access to a guild's staff roles, user timezones and ticket counters. The
// counters are changed by TicketDal as tickets open and close.
type GuildDal interface {
	// StaffRoles gets the staff role IDs of the guild.
	StaffRoles(ctx context.Context, guildID string) ([]string, error)

	// AddStaffRole adds a staff role. It reports false if the role was already a staff role.
	AddStaffRole(ctx context.Context, guildID, roleID string) (bool, error)

	// RemoveStaffRole removes a staff role. It reports false if the role was not a staff role.
	RemoveStaffRole(ctx context.Context, guildID, roleID string) (bool, error)

	// Timezone gets the timezone a user set for the guild.
	Timezone(ctx context.Context, guildID, userID string) (string, bool, error)

	// SetTimezone sets the timezone of a user for the guild.
	SetTimezone(ctx context.Context, guildID, userID, tz string) error

	// TicketCounts gets the ticket counter of every user in the guild.
	TicketCounts(ctx context.Context, guildID string) (map[string]int, error)
}

type guildDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// store is the document store.
	store Store

	// locks serialises writes per guild.
	locks *Locker
}

// NewGuildDal creates a new guild data access layer.
func NewGuildDal(l *slog.Logger, store Store, locks *Locker) GuildDal {
	return &guildDalImpl{
		l:     l.With(slog.String(logging.KeyDal, guildDalName)),
		store: store,
		locks: locks,
	}
}

func (g *guildDalImpl) StaffRoles(ctx context.Context, guildID string) ([]string, error) {
	roles, err := loadDocument[IDList](ctx, g.store, guildID, KindStaffRoles)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []string{}
	}
	return roles, nil
}

func (g *guildDalImpl) AddStaffRole(ctx context.Context, guildID, roleID string) (bool, error) {
	defer g.locks.Lock(guildID)()

	roles, err := g.StaffRoles(ctx, guildID)
	if err != nil {
		return false, err
	}

	if slices.Contains(roles, roleID) {
		return false, nil
	}

	roles = append(roles, roleID)
	if err := saveDocument(ctx, g.store, guildID, KindStaffRoles, roles); err != nil {
		return false, err
	}

	g.l.Info("Staff role added", slog.String(logging.KeyGuildID, guildID), slog.String("role_id", roleID))
	return true, nil
}

func (g *guildDalImpl) RemoveStaffRole(ctx context.Context, guildID, roleID string) (bool, error) {
	defer g.locks.Lock(guildID)()

	roles, err := g.StaffRoles(ctx, guildID)
	if err != nil {
		return false, err
	}

	idx := slices.Index(roles, roleID)
	if idx < 0 {
		return false, nil
	}

	roles = slices.Delete(roles, idx, idx+1)
	if err := saveDocument(ctx, g.store, guildID, KindStaffRoles, roles); err != nil {
		return false, err
	}

	g.l.Info("Staff role removed", slog.String(logging.KeyGuildID, guildID), slog.String("role_id", roleID))
	return true, nil
}

func (g *guildDalImpl) Timezone(ctx context.Context, guildID, userID string) (string, bool, error) {
	tzs, err := loadDocument[map[string]string](ctx, g.store, guildID, KindTimezones)
	if err != nil {
		return "", false, err
	}

	tz, ok := tzs[userID]
	return tz, ok, nil
}

func (g *guildDalImpl) SetTimezone(ctx context.Context, guildID, userID, tz string) error {
	defer g.locks.Lock(guildID)()

	tzs, err := loadDocument[map[string]string](ctx, g.store, guildID, KindTimezones)
	if err != nil {
		return err
	}
	if tzs == nil {
		tzs = make(map[string]string)
	}

	tzs[userID] = tz
	return saveDocument(ctx, g.store, guildID, KindTimezones, tzs)
}

func (g *guildDalImpl) TicketCounts(ctx context.Context, guildID string) (map[string]int, error) {
	counts, err := loadDocument[map[string]int](ctx, g.store, guildID, KindTicketCounts)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = make(map[string]int)
	}
	return counts, nil
}

// incrementCount must be called with the guild locked.
func incrementCount(ctx context.Context, store Store, guildID, userID string) (int, error) {
	counts, err := loadDocument[map[string]int](ctx, store, guildID, KindTicketCounts)
	if err != nil {
		return 0, err
	}
	if counts == nil {
		counts = make(map[string]int)
	}

	counts[userID]++
	if err := saveDocument(ctx, store, guildID, KindTicketCounts, counts); err != nil {
		return 0, err
	}
	return counts[userID], nil
}

// resetCount must be called with the guild locked.
func resetCount(ctx context.Context, store Store, guildID, userID string) error {
	counts, err := loadDocument[map[string]int](ctx, store, guildID, KindTicketCounts)
	if err != nil {
		return err
	}
	if counts == nil {
		counts = make(map[string]int)
	}

	counts[userID] = 0
	return saveDocument(ctx, store, guildID, KindTicketCounts, counts)
}
