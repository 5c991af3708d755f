package dataaccess

import (
	"context"
	"log/slog"
	"slices"

	"github.com/Jacobbrewer1/concierge/pkg/logging"
)

const trustedDalName = "trusted_dal"

// TrustedDal gives access to the process-wide trusted user list.
type TrustedDal interface {
	// TrustedUsers gets every trusted user ID.
	TrustedUsers(ctx context.Context) ([]string, error)

	// IsTrusted reports whether the user is trusted.
	IsTrusted(ctx context.Context, userID string) (bool, error)

	// AddTrustedUser adds a trusted user. It reports false if the user was already trusted.
	AddTrustedUser(ctx context.Context, userID string) (bool, error)

	// RemoveTrustedUser removes a trusted user. It reports false if the user was not trusted.
	RemoveTrustedUser(ctx context.Context, userID string) (bool, error)
}

type trustedDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// store is the document store.
	store Store

	// locks serialises writes.
	locks *Locker
}

// NewTrustedDal creates a new trusted user data access layer.
func NewTrustedDal(l *slog.Logger, store Store, locks *Locker) TrustedDal {
	return &trustedDalImpl{
		l:     l.With(slog.String(logging.KeyDal, trustedDalName)),
		store: store,
		locks: locks,
	}
}

func (d *trustedDalImpl) TrustedUsers(ctx context.Context) ([]string, error) {
	users, err := loadDocument[IDList](ctx, d.store, RootScope, KindTrustedUsers)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []string{}
	}
	return users, nil
}

func (d *trustedDalImpl) IsTrusted(ctx context.Context, userID string) (bool, error) {
	users, err := d.TrustedUsers(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(users, userID), nil
}

func (d *trustedDalImpl) AddTrustedUser(ctx context.Context, userID string) (bool, error) {
	defer d.locks.Lock(RootScope)()

	users, err := d.TrustedUsers(ctx)
	if err != nil {
		return false, err
	}

	if slices.Contains(users, userID) {
		return false, nil
	}

	users = append(users, userID)
	if err := saveDocument(ctx, d.store, RootScope, KindTrustedUsers, users); err != nil {
		return false, err
	}

	d.l.Info("Trusted user added", slog.String(logging.KeyUserID, userID))
	return true, nil
}

func (d *trustedDalImpl) RemoveTrustedUser(ctx context.Context, userID string) (bool, error) {
	defer d.locks.Lock(RootScope)()

	users, err := d.TrustedUsers(ctx)
	if err != nil {
		return false, err
	}

	idx := slices.Index(users, userID)
	if idx < 0 {
		return false, nil
	}

	users = slices.Delete(users, idx, idx+1)
	if err := saveDocument(ctx, d.store, RootScope, KindTrustedUsers, users); err != nil {
		return false, err
	}

	d.l.Info("Trusted user removed", slog.String(logging.KeyUserID, userID))
	return true, nil
}
