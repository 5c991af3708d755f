package access

import (
	"context"
	"log/slog"
	"slices"

	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/Jacobbrewer1/discordgo"
)

// Actor is the user performing an action.
type Actor struct {
	// UserID is the ID of the user.
	UserID string

	// Name is the username of the user.
	Name string

	// GuildID is the guild the action is performed in. It is empty outside a guild.
	GuildID string

	// GuildOwnerID is the ID of the owner of the guild.
	GuildOwnerID string

	// RoleIDs are the roles the user holds in the guild.
	RoleIDs []string

	// Permissions is the permission bit set of the user in the guild.
	Permissions int64
}

// InGuild reports whether the action is performed in a guild.
func (a *Actor) InGuild() bool {
	return a != nil && a.GuildID != ""
}

// Policy answers access questions. Nothing is cached: every call reads the current state.
// Every predicate fails closed.
type Policy struct {
	// l is the logger.
	l *slog.Logger

	// guilds gives access to staff roles.
	guilds dataaccess.GuildDal

	// trusted gives access to the trusted user list.
	trusted dataaccess.TrustedDal

	// ownerID is the ID of the bot owner.
	ownerID string
}

// NewPolicy creates a new access policy.
func NewPolicy(l *slog.Logger, guilds dataaccess.GuildDal, trusted dataaccess.TrustedDal, ownerID string) *Policy {
	return &Policy{
		l:       l,
		guilds:  guilds,
		trusted: trusted,
		ownerID: ownerID,
	}
}

// IsAdminOrOwner reports whether the actor owns the guild or holds the administrator permission.
func (p *Policy) IsAdminOrOwner(a *Actor) bool {
	if !a.InGuild() || a.UserID == "" {
		return false
	}
	if a.GuildOwnerID != "" && a.UserID == a.GuildOwnerID {
		return true
	}
	return a.Permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator
}

// HasEventAccess reports whether the actor is an administrator, the owner, or holds a staff role.
func (p *Policy) HasEventAccess(ctx context.Context, a *Actor) bool {
	if p.IsAdminOrOwner(a) {
		return true
	} else if !a.InGuild() || a.UserID == "" {
		return false
	}

	roles, err := p.guilds.StaffRoles(ctx, a.GuildID)
	if err != nil {
		p.l.Error("Error loading staff roles, denying access",
			slog.String(logging.KeyGuildID, a.GuildID),
			slog.String(logging.KeyUserID, a.UserID),
			slog.String(logging.KeyError, err.Error()),
		)
		return false
	}

	for _, r := range a.RoleIDs {
		if slices.Contains(roles, r) {
			return true
		}
	}
	return false
}

// IsBotOwner reports whether the actor is the configured bot owner.
func (p *Policy) IsBotOwner(a *Actor) bool {
	return a != nil && a.UserID != "" && p.ownerID != "" && a.UserID == p.ownerID
}

// IsTrustedUser reports whether the actor is the bot owner or on the trusted user list. It does
// not depend on the guild the action is performed in.
func (p *Policy) IsTrustedUser(ctx context.Context, a *Actor) bool {
	if p.IsBotOwner(a) {
		return true
	} else if a == nil || a.UserID == "" {
		return false
	}

	ok, err := p.trusted.IsTrusted(ctx, a.UserID)
	if err != nil {
		p.l.Error("Error loading trusted users, denying access",
			slog.String(logging.KeyUserID, a.UserID),
			slog.String(logging.KeyError, err.Error()),
		)
		return false
	}
	return ok
}
