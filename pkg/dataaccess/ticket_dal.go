package dataaccess

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/entities"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
)

const ticketDalName = "ticket_dal"

// ReservationTTL is how long a pending ticket blocks its user from opening another one.
const ReservationTTL = 2 * time.Minute

// TicketDal gives access to a guild's active tickets. Every mutation runs with the guild
// locked so the one-ticket-per-user rule holds under concurrent requests.
type TicketDal interface {
	// ActiveTickets gets every active ticket of the guild keyed by user ID.
	ActiveTickets(ctx context.Context, guildID string) (map[string]*entities.ActiveTicket, error)

	// ByThread gets the active ticket backed by a thread.
	ByThread(ctx context.Context, guildID, threadID string) (*entities.ActiveTicket, error)

	// Reserve stores a pending ticket for the user. It fails with ErrAlreadyExists if the user
	// already has a ticket.
	Reserve(ctx context.Context, guildID string, ticket *entities.ActiveTicket) error

	// Release removes a pending ticket of the user. Committed tickets are left untouched.
	Release(ctx context.Context, guildID, userID string) error

	// Commit stores the completed ticket in place of the reservation and increments the
	// user's ticket counter. It returns the new counter value.
	Commit(ctx context.Context, guildID string, ticket *entities.ActiveTicket) (int, error)

	// Update applies fn to the ticket backed by the thread. The ticket is only saved when fn
	// reports a change.
	Update(ctx context.Context, guildID, threadID string, fn func(t *entities.ActiveTicket) bool) (*entities.ActiveTicket, error)

	// Remove deletes the ticket backed by the thread and resets the owner's ticket counter.
	Remove(ctx context.Context, guildID, threadID string) (*entities.ActiveTicket, error)
}

type ticketDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// store is the document store.
	store Store

	// locks serialises writes per guild.
	locks *Locker
}

// NewTicketDal creates a new ticket data access layer.
func NewTicketDal(l *slog.Logger, store Store, locks *Locker) TicketDal {
	return &ticketDalImpl{
		l:     l.With(slog.String(logging.KeyDal, ticketDalName)),
		store: store,
		locks: locks,
	}
}

func (d *ticketDalImpl) ActiveTickets(ctx context.Context, guildID string) (map[string]*entities.ActiveTicket, error) {
	tickets, err := loadDocument[map[string]*entities.ActiveTicket](ctx, d.store, guildID, KindActiveTickets)
	if err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = make(map[string]*entities.ActiveTicket)
	}

	// Older records do not carry the user ID.
	for userID, t := range tickets {
		if t.UserID == "" {
			t.UserID = userID
		}
	}
	return tickets, nil
}

func (d *ticketDalImpl) ByThread(ctx context.Context, guildID, threadID string) (*entities.ActiveTicket, error) {
	tickets, err := d.ActiveTickets(ctx, guildID)
	if err != nil {
		return nil, err
	}

	_, t, ok := findByThread(tickets, threadID)
	if !ok {
		return nil, fmt.Errorf("ticket for thread %s: %w", threadID, ErrNotFound)
	}
	return t, nil
}

func (d *ticketDalImpl) Reserve(ctx context.Context, guildID string, ticket *entities.ActiveTicket) error {
	defer d.locks.Lock(guildID)()

	tickets, err := d.ActiveTickets(ctx, guildID)
	if err != nil {
		return err
	}

	if existing, ok := tickets[ticket.UserID]; ok {
		// A reservation left behind by an interrupted open does not block the user forever.
		stale := existing.Pending() && ticket.CreatedAt.Time().Sub(existing.CreatedAt.Time()) > ReservationTTL
		if !stale {
			return fmt.Errorf("ticket for user %s: %w", ticket.UserID, ErrAlreadyExists)
		}
	}

	tickets[ticket.UserID] = ticket
	return saveDocument(ctx, d.store, guildID, KindActiveTickets, tickets)
}

func (d *ticketDalImpl) Release(ctx context.Context, guildID, userID string) error {
	defer d.locks.Lock(guildID)()

	tickets, err := d.ActiveTickets(ctx, guildID)
	if err != nil {
		return err
	}

	t, ok := tickets[userID]
	if !ok || !t.Pending() {
		return nil
	}

	delete(tickets, userID)
	return saveDocument(ctx, d.store, guildID, KindActiveTickets, tickets)
}

func (d *ticketDalImpl) Commit(ctx context.Context, guildID string, ticket *entities.ActiveTicket) (int, error) {
	defer d.locks.Lock(guildID)()

	tickets, err := d.ActiveTickets(ctx, guildID)
	if err != nil {
		return 0, err
	}

	tickets[ticket.UserID] = ticket
	if err := saveDocument(ctx, d.store, guildID, KindActiveTickets, tickets); err != nil {
		return 0, err
	}

	count, err := incrementCount(ctx, d.store, guildID, ticket.UserID)
	if err != nil {
		return 0, err
	}

	d.l.Info("Saved active ticket",
		slog.String(logging.KeyGuildID, guildID),
		slog.String(logging.KeyUserID, ticket.UserID),
		slog.String(logging.KeyThreadID, ticket.ThreadID),
	)
	return count, nil
}

func (d *ticketDalImpl) Update(ctx context.Context, guildID, threadID string, fn func(t *entities.ActiveTicket) bool) (*entities.ActiveTicket, error) {
	defer d.locks.Lock(guildID)()

	tickets, err := d.ActiveTickets(ctx, guildID)
	if err != nil {
		return nil, err
	}

	_, t, ok := findByThread(tickets, threadID)
	if !ok {
		return nil, fmt.Errorf("ticket for thread %s: %w", threadID, ErrNotFound)
	}

	if !fn(t) {
		return t, nil
	}

	if err := saveDocument(ctx, d.store, guildID, KindActiveTickets, tickets); err != nil {
		return nil, err
	}
	return t, nil
}

func (d *ticketDalImpl) Remove(ctx context.Context, guildID, threadID string) (*entities.ActiveTicket, error) {
	defer d.locks.Lock(guildID)()

	tickets, err := d.ActiveTickets(ctx, guildID)
	if err != nil {
		return nil, err
	}

	userID, t, ok := findByThread(tickets, threadID)
	if !ok {
		d.l.Info("Ticket not found for removal",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyThreadID, threadID),
		)
		return nil, fmt.Errorf("ticket for thread %s: %w", threadID, ErrNotFound)
	}

	delete(tickets, userID)
	if err := saveDocument(ctx, d.store, guildID, KindActiveTickets, tickets); err != nil {
		return nil, err
	}

	if err := resetCount(ctx, d.store, guildID, userID); err != nil {
		return nil, err
	}

	d.l.Info("Removed active ticket",
		slog.String(logging.KeyGuildID, guildID),
		slog.String(logging.KeyUserID, userID),
		slog.String("setup_id", t.SetupID),
	)
	return t, nil
}

func findByThread(tickets map[string]*entities.ActiveTicket, threadID string) (string, *entities.ActiveTicket, bool) {
	if threadID == "" {
		return "", nil, false
	}
	for userID, t := range tickets {
		if t.ThreadID == threadID {
			return userID, t, true
		}
	}
	return "", nil, false
}
