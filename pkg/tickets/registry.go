package tickets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Jacobbrewer1/concierge/pkg/custom"
	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/entities"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/Jacobbrewer1/concierge/pkg/messages"
	"github.com/google/uuid"
)

const (
	// PanelIDLength is the number of hex characters in a panel ID.
	PanelIDLength = 8

	// OptionIDLength is the number of hex characters in an option ID.
	OptionIDLength = 6

	// MaxOptions is the most options a panel can hold. It is the button limit of a message.
	MaxOptions = 25

	// DefaultPanelTitle is used when a panel is created without a title.
	DefaultPanelTitle = "Support Tickets"

	// DefaultPanelDescription is used when a panel is created without a description.
	DefaultPanelDescription = "Click the button below to create a ticket"

	// DefaultButtonLabel is used when a legacy setup has no button label.
	DefaultButtonLabel = "Create Ticket"

	maxButtonLabel  = 80
	maxButtonEmoji  = 64
	maxOpenMessage  = 1000
	maxPanelTitle   = 100
	maxDescription  = 1000
	maxIDGeneration = 10
)

// OptionInput describes a ticket option to create.
type OptionInput struct {
	ButtonLabel          string
	ButtonEmoji          string
	TitleFormat          string
	OpenMessage          string
	HandleChannelID      string
	TranscriptsChannelID string
}

// PanelInput describes a ticket panel to create.
type PanelInput struct {
	ChannelID   string
	Title       string
	Description string
	Options     []*OptionInput
}

// Registry owns the ticket panels of every guild.
type Registry struct {
	// l is the logger.
	l *slog.Logger

	// panels is the panel data access layer.
	panels dataaccess.PanelDal

	// now returns the current time.
	now func() time.Time

	// newID returns a random hex ID of the given length.
	newID func(n int) string
}

// NewRegistry creates a new panel registry.
func NewRegistry(l *slog.Logger, panels dataaccess.PanelDal) *Registry {
	return &Registry{
		l:      l,
		panels: panels,
		now:    time.Now,
		newID:  randomHexID,
	}
}

// CreateSetup creates a panel with exactly one option.
func (r *Registry) CreateSetup(ctx context.Context, guildID string, in *PanelInput) (*entities.TicketPanel, error) {
	if in == nil || len(in.Options) != 1 {
		return nil, validationError("a ticket setup has exactly one option")
	}
	return r.CreatePanel(ctx, guildID, in)
}

// CreatePanel creates a panel with one or more options.
func (r *Registry) CreatePanel(ctx context.Context, guildID string, in *PanelInput) (*entities.TicketPanel, error) {
	if in == nil {
		return nil, validationError("panel is required")
	}
	if in.ChannelID == "" {
		return nil, validationError("panel channel is required")
	}
	if len(in.Options) == 0 {
		return nil, validationError("a panel needs at least one option")
	}
	if len(in.Options) > MaxOptions {
		return nil, validationError("a panel can have at most %d options", MaxOptions)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = DefaultPanelTitle
	}
	if utf8.RuneCountInString(title) > maxPanelTitle {
		return nil, validationError("panel title must be at most %d characters", maxPanelTitle)
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = DefaultPanelDescription
	}
	if utf8.RuneCountInString(description) > maxDescription {
		return nil, validationError("panel description must be at most %d characters", maxDescription)
	}

	for _, o := range in.Options {
		if err := validateOption(o); err != nil {
			return nil, err
		}
	}

	now := custom.NewDatetime(r.now())
	var created *entities.TicketPanel
	err := r.panels.UpdatePanels(ctx, guildID, func(panels []*entities.TicketPanel) ([]*entities.TicketPanel, bool, error) {
		taken := make(map[string]bool, len(panels))
		for _, p := range panels {
			taken[p.ID] = true
		}

		id, err := r.uniqueID(PanelIDLength, taken)
		if err != nil {
			return nil, false, err
		}

		p := &entities.TicketPanel{
			ID:          id,
			ChannelID:   in.ChannelID,
			Title:       title,
			Description: description,
			Options:     make([]*entities.TicketOption, 0, len(in.Options)),
			CreatedAt:   now,
		}
		for _, o := range in.Options {
			opt, err := r.newOption(p, o, now)
			if err != nil {
				return nil, false, err
			}
			p.Options = append(p.Options, opt)
		}

		created = p
		return append(panels, p), true, nil
	})
	if err != nil {
		return nil, err
	}

	r.l.Info("Ticket panel created",
		slog.String(logging.KeyGuildID, guildID),
		slog.String("panel_id", created.ID),
		slog.Int("options", len(created.Options)),
	)
	return created, nil
}

// AddOptionToPanel appends an option to an existing panel.
func (r *Registry) AddOptionToPanel(ctx context.Context, guildID, panelID string, in *OptionInput) (*entities.TicketPanel, *entities.TicketOption, error) {
	if err := validateOption(in); err != nil {
		return nil, nil, err
	}

	var (
		panel  *entities.TicketPanel
		option *entities.TicketOption
	)
	err := r.panels.UpdatePanels(ctx, guildID, func(panels []*entities.TicketPanel) ([]*entities.TicketPanel, bool, error) {
		p := findPanel(panels, panelID)
		if p == nil {
			return nil, false, fmt.Errorf("panel %s: %w", panelID, ErrNotFound)
		}
		if len(p.Options) >= MaxOptions {
			return nil, false, validationError("a panel can have at most %d options", MaxOptions)
		}

		opt, err := r.newOption(p, in, custom.NewDatetime(r.now()))
		if err != nil {
			return nil, false, err
		}
		p.Options = append(p.Options, opt)

		panel, option = p, opt
		return panels, true, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return panel, option, nil
}

// DeleteSetup deletes a single-option panel.
func (r *Registry) DeleteSetup(ctx context.Context, guildID, setupID string) error {
	return r.deletePanel(ctx, guildID, setupID, true)
}

// DeletePanel deletes a panel and all of its options.
func (r *Registry) DeletePanel(ctx context.Context, guildID, panelID string) error {
	return r.deletePanel(ctx, guildID, panelID, false)
}

func (r *Registry) deletePanel(ctx context.Context, guildID, panelID string, singleOnly bool) error {
	return r.panels.UpdatePanels(ctx, guildID, func(panels []*entities.TicketPanel) ([]*entities.TicketPanel, bool, error) {
		for i, p := range panels {
			if p.ID != panelID || (singleOnly && !p.IsSingle()) {
				continue
			}
			return append(panels[:i], panels[i+1:]...), true, nil
		}
		return nil, false, fmt.Errorf("panel %s: %w", panelID, ErrNotFound)
	})
}

// FindByID returns the panel with the given ID.
func (r *Registry) FindByID(ctx context.Context, guildID, panelID string) (*entities.TicketPanel, error) {
	panels, err := r.panels.Panels(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting panels: %w", err)
	}

	p := findPanel(panels, panelID)
	if p == nil {
		return nil, fmt.Errorf("panel %s: %w", panelID, ErrNotFound)
	}
	return p, nil
}

// FindOption returns the panel and the option with the given IDs.
func (r *Registry) FindOption(ctx context.Context, guildID, panelID, optionID string) (*entities.TicketPanel, *entities.TicketOption, error) {
	p, err := r.FindByID(ctx, guildID, panelID)
	if err != nil {
		return nil, nil, err
	}

	o, ok := p.Option(optionID)
	if !ok {
		return nil, nil, fmt.Errorf("option %s of panel %s: %w", optionID, panelID, ErrNotFound)
	}
	return p, o, nil
}

// ListPanels returns every panel of the guild.
func (r *Registry) ListPanels(ctx context.Context, guildID string) ([]*entities.TicketPanel, error) {
	return r.panels.Panels(ctx, guildID)
}

// ListSetups returns the single-option panels of the guild.
func (r *Registry) ListSetups(ctx context.Context, guildID string) ([]*entities.TicketSetup, error) {
	panels, err := r.panels.Panels(ctx, guildID)
	if err != nil {
		return nil, err
	}

	setups := make([]*entities.TicketSetup, 0, len(panels))
	for _, p := range panels {
		if s, ok := p.Setup(); ok {
			setups = append(setups, s)
		}
	}
	return setups, nil
}

// SetPanelMessage records the message a panel was posted as.
func (r *Registry) SetPanelMessage(ctx context.Context, guildID, panelID, channelID, messageID string) error {
	return r.panels.UpdatePanels(ctx, guildID, func(panels []*entities.TicketPanel) ([]*entities.TicketPanel, bool, error) {
		p := findPanel(panels, panelID)
		if p == nil {
			return nil, false, fmt.Errorf("panel %s: %w", panelID, ErrNotFound)
		}
		if p.MessageID == messageID && p.ChannelID == channelID {
			return panels, false, nil
		}
		p.ChannelID = channelID
		p.MessageID = messageID
		return panels, true, nil
	})
}

// MigrateLegacySetups converts the guild's legacy single-option setups into panels.
func (r *Registry) MigrateLegacySetups(ctx context.Context, guildID string) (int, error) {
	n, err := r.panels.MigrateLegacySetups(ctx, guildID, func(s *entities.TicketSetup) *entities.TicketPanel {
		label := s.ButtonLabel
		if label == "" {
			label = DefaultButtonLabel
		}
		openMessage := s.OpenMessage
		if openMessage == "" {
			openMessage = messages.TicketDefaultOpenMessage
		}
		createdAt := s.CreatedAt
		if createdAt.IsZero() {
			createdAt = custom.NewDatetime(r.now())
		}

		return &entities.TicketPanel{
			ID:          s.ID,
			ChannelID:   s.TicketChannelID,
			Title:       DefaultPanelTitle,
			Description: DefaultPanelDescription,
			Options: []*entities.TicketOption{{
				ID:                   r.newID(OptionIDLength),
				ButtonLabel:          label,
				ButtonEmoji:          s.ButtonEmoji,
				TitleFormat:          s.TitleFormat,
				OpenMessage:          openMessage,
				HandleChannelID:      s.HandleChannelID,
				TranscriptsChannelID: s.TranscriptsChannelID,
				CreatedAt:            createdAt,
			}},
			CreatedAt: createdAt,
		}
	})
	if err != nil {
		return 0, fmt.Errorf("error migrating legacy setups: %w", err)
	}
	return n, nil
}

func (r *Registry) newOption(p *entities.TicketPanel, in *OptionInput, now custom.Datetime) (*entities.TicketOption, error) {
	taken := make(map[string]bool, len(p.Options))
	for _, o := range p.Options {
		taken[o.ID] = true
	}

	id, err := r.uniqueID(OptionIDLength, taken)
	if err != nil {
		return nil, err
	}

	openMessage := strings.TrimSpace(in.OpenMessage)
	if openMessage == "" {
		openMessage = messages.TicketDefaultOpenMessage
	}

	return &entities.TicketOption{
		ID:                   id,
		ButtonLabel:          strings.TrimSpace(in.ButtonLabel),
		ButtonEmoji:          strings.TrimSpace(in.ButtonEmoji),
		TitleFormat:          in.TitleFormat,
		OpenMessage:          openMessage,
		HandleChannelID:      in.HandleChannelID,
		TranscriptsChannelID: in.TranscriptsChannelID,
		CreatedAt:            now,
	}, nil
}

// uniqueID generates IDs until one is not taken.
func (r *Registry) uniqueID(n int, taken map[string]bool) (string, error) {
	for i := 0; i < maxIDGeneration; i++ {
		id := r.newID(n)
		if !taken[id] {
			return id, nil
		}
	}
	return "", errors.New("unable to generate a unique id")
}

func validateOption(o *OptionInput) error {
	if o == nil {
		return validationError("option is required")
	}

	label := strings.TrimSpace(o.ButtonLabel)
	if label == "" || utf8.RuneCountInString(label) > maxButtonLabel {
		return validationError("button label must be between 1 and %d characters", maxButtonLabel)
	}
	if utf8.RuneCountInString(o.ButtonEmoji) > maxButtonEmoji {
		return validationError("button emoji must be at most %d characters", maxButtonEmoji)
	}
	if err := ValidateTitleFormat(o.TitleFormat); err != nil {
		return err
	}
	if utf8.RuneCountInString(o.OpenMessage) > maxOpenMessage {
		return validationError("open message must be at most %d characters", maxOpenMessage)
	}
	if o.HandleChannelID == "" {
		return validationError("handle channel is required")
	}
	return nil
}

func findPanel(panels []*entities.TicketPanel, id string) *entities.TicketPanel {
	for _, p := range panels {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func randomHexID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
