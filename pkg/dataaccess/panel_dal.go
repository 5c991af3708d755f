package dataaccess

import (
	"context"
	"log/slog"

	"github.com/Jacobbrewer1/concierge/pkg/entities"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
)

const panelDalName = "panel_dal"

// PanelDal gives access to a guild's ticket panels.
type PanelDal interface {
	// Panels gets every ticket panel of the guild.
	Panels(ctx context.Context, guildID string) ([]*entities.TicketPanel, error)

	// UpdatePanels applies fn to the guild's panels with the guild locked. The panels are
	// only saved when fn reports a change.
	UpdatePanels(ctx context.Context, guildID string, fn func(panels []*entities.TicketPanel) ([]*entities.TicketPanel, bool, error)) error

	// MigrateLegacySetups converts every legacy ticket setup into a panel using convert and
	// empties the legacy document. It returns the number of setups migrated.
	MigrateLegacySetups(ctx context.Context, guildID string, convert func(s *entities.TicketSetup) *entities.TicketPanel) (int, error)
}

type panelDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// store is the document store.
	store Store

	// locks serialises writes per guild.
	locks *Locker
}

// NewPanelDal creates a new panel data access layer.
func NewPanelDal(l *slog.Logger, store Store, locks *Locker) PanelDal {
	return &panelDalImpl{
		l:     l.With(slog.String(logging.KeyDal, panelDalName)),
		store: store,
		locks: locks,
	}
}

func (d *panelDalImpl) Panels(ctx context.Context, guildID string) ([]*entities.TicketPanel, error) {
	panels, err := loadDocument[[]*entities.TicketPanel](ctx, d.store, guildID, KindPanels)
	if err != nil {
		return nil, err
	}
	if panels == nil {
		panels = []*entities.TicketPanel{}
	}
	return panels, nil
}

func (d *panelDalImpl) UpdatePanels(ctx context.Context, guildID string, fn func(panels []*entities.TicketPanel) ([]*entities.TicketPanel, bool, error)) error {
	defer d.locks.Lock(guildID)()

	panels, err := d.Panels(ctx, guildID)
	if err != nil {
		return err
	}

	panels, changed, err := fn(panels)
	if err != nil {
		return err
	} else if !changed {
		return nil
	}

	if panels == nil {
		panels = []*entities.TicketPanel{}
	}
	return saveDocument(ctx, d.store, guildID, KindPanels, panels)
}

func (d *panelDalImpl) MigrateLegacySetups(ctx context.Context, guildID string, convert func(s *entities.TicketSetup) *entities.TicketPanel) (int, error) {
	defer d.locks.Lock(guildID)()

	setups, err := loadDocument[[]*entities.TicketSetup](ctx, d.store, guildID, KindTicketConfigs)
	if err != nil {
		return 0, err
	} else if len(setups) == 0 {
		return 0, nil
	}

	panels, err := d.Panels(ctx, guildID)
	if err != nil {
		return 0, err
	}

	existing := make(map[string]bool, len(panels))
	for _, p := range panels {
		existing[p.ID] = true
	}

	migrated := 0
	for _, s := range setups {
		// Setups created alongside a panel already have their panel.
		if existing[s.ID] {
			continue
		}
		panels = append(panels, convert(s))
		existing[s.ID] = true
		migrated++
	}

	if migrated > 0 {
		if err := saveDocument(ctx, d.store, guildID, KindPanels, panels); err != nil {
			return 0, err
		}
	}

	if err := saveDocument(ctx, d.store, guildID, KindTicketConfigs, []*entities.TicketSetup{}); err != nil {
		return 0, err
	}

	d.l.Info("Migrated legacy ticket setups",
		slog.String(logging.KeyGuildID, guildID),
		slog.Int("migrated", migrated),
		slog.Int("legacy", len(setups)),
	)
	return migrated, nil
}
