package tickets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/access"
	"github.com/Jacobbrewer1/concierge/pkg/custom"
	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/entities"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/Jacobbrewer1/concierge/pkg/messages"
)

const (
	// DefaultCloseDelay is how long a closed thread stays up before it is removed.
	DefaultCloseDelay = 5 * time.Second

	// CloseRequestTTL is how long a close request waits for confirmation.
	CloseRequestTTL = 5 * time.Minute

	fallbackOptionLabel = "Ticket"
)

// OpenRequest is a request to open a ticket from a panel option.
type OpenRequest struct {
	GuildID  string
	PanelID  string
	OptionID string

	// ChannelID is the channel the request came from. It is the thread parent when the panel
	// has no channel recorded.
	ChannelID string

	User *access.Actor
}

// CloseResult describes a completed close.
type CloseResult struct {
	Ticket *entities.ActiveTicket
	Reason string

	// Transcript is the generated transcript body.
	Transcript string

	// Delivered reports whether the transcript reached a transcripts channel.
	Delivered bool
}

type closeRequest struct {
	actorID string
	reason  string
	expires time.Time
}

// ControllerOption configures a Controller.
type ControllerOption func(c *Controller)

// WithCloseDelay sets the delay between the closure notice and the thread removal.
func WithCloseDelay(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.closeDelay = d
	}
}

// WithArchiveOnClose archives and locks closed threads instead of deleting them.
func WithArchiveOnClose(archive bool) ControllerOption {
	return func(c *Controller) {
		c.archiveOnClose = archive
	}
}

// WithClock sets the clock of the controller.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		c.now = now
	}
}

// Controller drives tickets through their lifecycle.
type Controller struct {
	// l is the logger.
	l *slog.Logger

	// registry resolves panels and options.
	registry *Registry

	// tickets is the active ticket data access layer.
	tickets dataaccess.TicketDal

	// guilds gives access to staff roles.
	guilds dataaccess.GuildDal

	// policy answers access questions.
	policy *access.Policy

	// platform is the chat platform the tickets live on.
	platform Platform

	closeDelay     time.Duration
	archiveOnClose bool
	now            func() time.Time

	// mut guards closing.
	mut     sync.Mutex
	closing map[string]*closeRequest
}

// NewController creates a new ticket lifecycle controller.
func NewController(l *slog.Logger, registry *Registry, tickets dataaccess.TicketDal, guilds dataaccess.GuildDal, policy *access.Policy, platform Platform, opts ...ControllerOption) *Controller {
	c := &Controller{
		l:          l,
		registry:   registry,
		tickets:    tickets,
		guilds:     guilds,
		policy:     policy,
		platform:   platform,
		closeDelay: DefaultCloseDelay,
		now:        time.Now,
		closing:    make(map[string]*closeRequest),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open opens a ticket for the user. The user's slot is reserved before anything is created
// on the platform, so concurrent opens by the same user yield exactly one ticket.
func (c *Controller) Open(ctx context.Context, req *OpenRequest) (*entities.ActiveTicket, error) {
	if req == nil || !req.User.InGuild() {
		return nil, ErrPermissionDenied
	}

	panel, option, err := c.registry.FindOption(ctx, req.GuildID, req.PanelID, req.OptionID)
	if err != nil {
		return nil, err
	}

	ticket := &entities.ActiveTicket{
		UserID:          req.User.UserID,
		Username:        req.User.Name,
		HandleChannelID: option.HandleChannelID,
		SetupID:         panel.ID,
		OptionID:        option.ID,
		CreatedAt:       custom.NewDatetime(c.now()),
		JoinedStaff:     make([]*entities.JoinedStaff, 0),
	}

	if err := c.tickets.Reserve(ctx, req.GuildID, ticket); errors.Is(err, dataaccess.ErrAlreadyExists) {
		return nil, ErrAlreadyOpen
	} else if err != nil {
		return nil, fmt.Errorf("error reserving ticket: %w", err)
	}

	l := c.l.With(
		slog.String(logging.KeyGuildID, req.GuildID),
		slog.String(logging.KeyUserID, req.User.UserID),
	)

	parentID := panel.ChannelID
	if parentID == "" {
		parentID = req.ChannelID
	}

	thread, err := c.platform.CreateThread(ctx, parentID, FormatTitle(option.TitleFormat, req.User.Name, req.User.UserID))
	if err != nil {
		c.release(ctx, l, req.GuildID, req.User.UserID, "")
		return nil, fmt.Errorf("error creating thread: %w", err)
	}
	ticket.ThreadID = thread.ID
	l = l.With(slog.String(logging.KeyThreadID, thread.ID))

	c.grantStaffRoles(ctx, l, req.GuildID, thread.ID)

	if err := c.platform.AddMember(ctx, thread.ID, req.User.UserID); err != nil {
		c.release(ctx, l, req.GuildID, req.User.UserID, thread.ID)
		return nil, fmt.Errorf("error adding user to thread: %w", err)
	}

	msgID, err := c.platform.SendHandleNotice(ctx, option.HandleChannelID, &HandleNotice{
		ThreadID:    thread.ID,
		CreatorID:   req.User.UserID,
		OptionLabel: option.ButtonLabel,
		Staff:       ticket.JoinedStaff,
	})
	if err != nil {
		c.release(ctx, l, req.GuildID, req.User.UserID, thread.ID)
		return nil, fmt.Errorf("error sending handle notice: %w", err)
	}
	ticket.HandleMessageID = msgID

	count, err := c.tickets.Commit(ctx, req.GuildID, ticket)
	if err != nil {
		if delErr := c.platform.DeleteMessage(ctx, option.HandleChannelID, msgID); delErr != nil {
			l.Warn("Error deleting handle notice", slog.String(logging.KeyError, delErr.Error()))
		}
		c.release(ctx, l, req.GuildID, req.User.UserID, thread.ID)
		return nil, fmt.Errorf("error saving ticket: %w", err)
	}

	// The ticket is usable without the welcome message.
	if err := c.platform.SendWelcome(ctx, thread.ID, &Welcome{
		UserID:      req.User.UserID,
		OptionLabel: option.ButtonLabel,
		Message:     option.OpenMessage,
	}); err != nil {
		l.Error("Error sending welcome message", slog.String(logging.KeyError, err.Error()))
	}

	l.Info("Ticket opened",
		slog.String("panel_id", panel.ID),
		slog.String("option_id", option.ID),
		slog.Int("user_ticket_count", count),
	)
	return ticket, nil
}

// Join adds a staff member to a ticket. It reports whether the staff member was added to the
// roster; joining twice leaves the roster unchanged.
func (c *Controller) Join(ctx context.Context, guildID, threadID string, actor *access.Actor) (*entities.ActiveTicket, bool, error) {
	if !c.policy.HasEventAccess(ctx, actor) {
		return nil, false, ErrPermissionDenied
	}

	ticket, err := c.FindByThread(ctx, guildID, threadID)
	if err != nil {
		return nil, false, err
	}

	if err := c.platform.AddMember(ctx, threadID, actor.UserID); errors.Is(err, ErrPlatformNotFound) {
		return nil, false, fmt.Errorf("thread %s: %w", threadID, ErrNotFound)
	} else if err != nil {
		return nil, false, fmt.Errorf("error adding staff to thread: %w", err)
	}

	joined := false
	ticket, err = c.tickets.Update(ctx, guildID, threadID, func(t *entities.ActiveTicket) bool {
		if t.HasStaff(actor.UserID) {
			return false
		}
		t.JoinedStaff = append(t.JoinedStaff, &entities.JoinedStaff{
			ID:       actor.UserID,
			Name:     actor.Name,
			JoinedAt: custom.NewDatetime(c.now()),
		})
		joined = true
		return true
	})
	if errors.Is(err, dataaccess.ErrNotFound) {
		return nil, false, ErrNotFound
	} else if err != nil {
		return nil, false, fmt.Errorf("error updating ticket: %w", err)
	}

	if !joined {
		return ticket, false, nil
	}

	if err := c.platform.EditHandleNotice(ctx, ticket.HandleChannelID, ticket.HandleMessageID, &HandleNotice{
		ThreadID:    ticket.ThreadID,
		CreatorID:   ticket.UserID,
		OptionLabel: c.optionLabel(ctx, guildID, ticket),
		Staff:       ticket.JoinedStaff,
	}); err != nil {
		c.l.Warn("Error updating handle notice",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyThreadID, threadID),
			slog.String(logging.KeyError, err.Error()),
		)
	}

	c.l.Info("Staff joined ticket",
		slog.String(logging.KeyGuildID, guildID),
		slog.String(logging.KeyThreadID, threadID),
		slog.String(logging.KeyUserID, actor.UserID),
	)
	return ticket, true, nil
}

// RequestClose records a close request that must be confirmed by the same actor. Staff and
// the ticket owner may close a ticket.
func (c *Controller) RequestClose(ctx context.Context, guildID, threadID string, actor *access.Actor, reason string) (*entities.ActiveTicket, error) {
	ticket, err := c.FindByThread(ctx, guildID, threadID)
	if err != nil {
		return nil, err
	}

	if !c.CanClose(ctx, ticket, actor) {
		return nil, ErrPermissionDenied
	}

	if reason == "" {
		reason = messages.TicketNoReason
	}

	c.mut.Lock()
	defer c.mut.Unlock()

	c.closing[threadID] = &closeRequest{
		actorID: actor.UserID,
		reason:  reason,
		expires: c.now().Add(CloseRequestTTL),
	}
	return ticket, nil
}

// CanClose reports whether the actor may close the ticket.
func (c *Controller) CanClose(ctx context.Context, ticket *entities.ActiveTicket, actor *access.Actor) bool {
	if actor == nil {
		return false
	}
	return actor.UserID == ticket.UserID || c.policy.HasEventAccess(ctx, actor)
}

// CancelClose drops a pending close request.
func (c *Controller) CancelClose(threadID string) {
	c.mut.Lock()
	defer c.mut.Unlock()

	delete(c.closing, threadID)
}

// takeCloseRequest removes and returns the actor's pending close request, if it is still
// valid. Only one caller can take a request.
func (c *Controller) takeCloseRequest(threadID, actorID string) (*closeRequest, bool) {
	c.mut.Lock()
	defer c.mut.Unlock()

	req, ok := c.closing[threadID]
	if !ok || req.actorID != actorID {
		return nil, false
	}

	delete(c.closing, threadID)
	if c.now().After(req.expires) {
		return nil, false
	}
	return req, true
}

// ConfirmClose closes a ticket with a pending close request. The transcript is generated and
// delivered, the handle notice and the record are removed, and the thread is deleted (or
// archived) after the close delay. Closing a ticket that no longer exists returns ErrNotFound.
func (c *Controller) ConfirmClose(ctx context.Context, guildID, threadID string, actor *access.Actor) (*CloseResult, error) {
	ticket, err := c.FindByThread(ctx, guildID, threadID)
	if err != nil {
		c.CancelClose(threadID)
		return nil, err
	}

	req, ok := c.takeCloseRequest(threadID, actor.UserID)
	if !ok {
		return nil, ErrCloseNotRequested
	}

	l := c.l.With(
		slog.String(logging.KeyGuildID, guildID),
		slog.String(logging.KeyThreadID, threadID),
	)

	thread, err := c.platform.Thread(ctx, threadID)
	if errors.Is(err, ErrPlatformNotFound) {
		// The thread was deleted outside the bot.
		if _, err := c.tickets.Remove(ctx, guildID, threadID); err != nil && !errors.Is(err, dataaccess.ErrNotFound) {
			l.Error("Error removing stale ticket", slog.String(logging.KeyError, err.Error()))
		}
		return nil, fmt.Errorf("thread %s: %w", threadID, ErrNotFound)
	} else if err != nil {
		l.Warn("Error getting thread", slog.String(logging.KeyError, err.Error()))
		thread = &Thread{ID: threadID, Name: threadID, CreatedAt: ticket.CreatedAt.Time()}
	}

	history, err := c.platform.History(ctx, threadID)
	if err != nil {
		l.Error("Error reading thread history", slog.String(logging.KeyError, err.Error()))
	}

	createdAt := thread.CreatedAt
	if createdAt.IsZero() {
		createdAt = ticket.CreatedAt.Time()
	}

	result := &CloseResult{
		Ticket: ticket,
		Reason: req.reason,
		Transcript: GenerateTranscript(&TranscriptInfo{
			ThreadName:  thread.Name,
			CreatedAt:   createdAt,
			CreatorName: ticket.Username,
			CreatorID:   ticket.UserID,
			ClosedAt:    c.now(),
			CloserName:  actor.Name,
			CloserID:    actor.UserID,
			Reason:      req.reason,
			Staff:       ticket.JoinedStaff,
		}, history),
	}

	if channelID := c.transcriptsChannel(ctx, guildID, ticket); channelID != "" {
		if err := c.platform.SendTranscript(ctx, channelID, &Transcript{
			FileName: TranscriptFileName(threadID),
			Summary:  fmt.Sprintf(messages.TicketTranscriptSummary, thread.Name, actor.UserID),
			Body:     result.Transcript,
		}); err != nil {
			l.Error("Error sending transcript", slog.String(logging.KeyError, err.Error()))
		} else {
			result.Delivered = true
		}
	}

	if ticket.HandleMessageID != "" {
		if err := c.platform.DeleteMessage(ctx, ticket.HandleChannelID, ticket.HandleMessageID); errors.Is(err, ErrPlatformNotFound) {
			l.Debug("Handle notice already deleted")
		} else if err != nil {
			l.Warn("Error deleting handle notice", slog.String(logging.KeyError, err.Error()))
		}
	}

	if _, err := c.tickets.Remove(ctx, guildID, threadID); errors.Is(err, dataaccess.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error removing ticket: %w", err)
	}

	notice := fmt.Sprintf(messages.TicketClosedNotice, actor.UserID, req.reason, int(c.closeDelay/time.Second))
	if err := c.platform.SendMessage(ctx, threadID, notice); err != nil {
		l.Warn("Error sending closure notice", slog.String(logging.KeyError, err.Error()))
	}

	c.wait(ctx)

	if c.archiveOnClose {
		err = c.platform.ArchiveThread(ctx, threadID)
	} else {
		err = c.platform.DeleteThread(ctx, threadID)
	}
	if err != nil && !errors.Is(err, ErrPlatformNotFound) {
		l.Error("Error removing ticket thread", slog.String(logging.KeyError, err.Error()))
	}

	l.Info("Ticket closed",
		slog.String(logging.KeyUserID, ticket.UserID),
		slog.String("closed_by", actor.UserID),
		slog.Bool("transcript_delivered", result.Delivered),
	)
	return result, nil
}

// FindByThread returns the active ticket backed by the thread.
func (c *Controller) FindByThread(ctx context.Context, guildID, threadID string) (*entities.ActiveTicket, error) {
	ticket, err := c.tickets.ByThread(ctx, guildID, threadID)
	if errors.Is(err, dataaccess.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}
	return ticket, nil
}

// ActiveCount returns the number of open tickets in the guild.
func (c *Controller) ActiveCount(ctx context.Context, guildID string) (int, error) {
	all, err := c.tickets.ActiveTickets(ctx, guildID)
	if err != nil {
		return 0, fmt.Errorf("error getting active tickets: %w", err)
	}

	count := 0
	for _, t := range all {
		if !t.Pending() {
			count++
		}
	}
	return count, nil
}

func (c *Controller) grantStaffRoles(ctx context.Context, l *slog.Logger, guildID, threadID string) {
	roles, err := c.guilds.StaffRoles(ctx, guildID)
	if err != nil {
		l.Error("Error getting staff roles", slog.String(logging.KeyError, err.Error()))
		return
	}

	for _, roleID := range roles {
		if err := c.platform.GrantRole(ctx, threadID, roleID); err != nil {
			l.Warn("Error granting staff role access",
				slog.String("role_id", roleID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}
}

// release drops the reservation of a failed open and deletes the thread if one was created.
func (c *Controller) release(ctx context.Context, l *slog.Logger, guildID, userID, threadID string) {
	if threadID != "" {
		if err := c.platform.DeleteThread(ctx, threadID); err != nil && !errors.Is(err, ErrPlatformNotFound) {
			l.Warn("Error deleting thread of failed ticket", slog.String(logging.KeyError, err.Error()))
		}
	}

	if err := c.tickets.Release(ctx, guildID, userID); err != nil {
		l.Error("Error releasing ticket reservation", slog.String(logging.KeyError, err.Error()))
	}
}

func (c *Controller) optionLabel(ctx context.Context, guildID string, ticket *entities.ActiveTicket) string {
	_, o, err := c.registry.FindOption(ctx, guildID, ticket.SetupID, ticket.OptionID)
	if err != nil {
		return fallbackOptionLabel
	}
	return o.ButtonLabel
}

func (c *Controller) transcriptsChannel(ctx context.Context, guildID string, ticket *entities.ActiveTicket) string {
	p, err := c.registry.FindByID(ctx, guildID, ticket.SetupID)
	if err != nil {
		return ""
	}

	if o, ok := p.Option(ticket.OptionID); ok {
		return o.TranscriptsChannelID
	}
	if len(p.Options) > 0 {
		return p.Options[0].TranscriptsChannelID
	}
	return ""
}

// wait sleeps for the close delay. It only returns early when ctx is cancelled.
func (c *Controller) wait(ctx context.Context) {
	if c.closeDelay <= 0 {
		return
	}

	t := time.NewTimer(c.closeDelay)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
