package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/concierge/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/Jacobbrewer1/discordgo"
)

const guildSetupTimeout = time.Minute

func (a *App) guildJoinedHandler() func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(s *discordgo.Session, g *discordgo.GuildCreate) {
		l := a.With(slog.String(logging.KeyGuildID, g.ID))
		l.Info(fmt.Sprintf("Joined guild %s", g.Name))

		a.updateGuildCount(s)

		ctx, cancel := context.WithTimeout(a.ctx, guildSetupTimeout)
		defer cancel()

		if n, err := a.registry.MigrateLegacySetups(ctx, g.ID); err != nil {
			l.Error("Error migrating legacy ticket setups", slog.String(logging.KeyError, err.Error()))
		} else if n > 0 {
			l.Info("Migrated legacy ticket setups", slog.Int("count", n))
		}

		if err := a.registerSlashCommands(ctx, g.ID); err != nil {
			l.Error("Error registering slash commands", slog.String(logging.KeyError, err.Error()))
		}
	}
}

func (a *App) guildLeaveHandler() func(s *discordgo.Session, g *discordgo.GuildDelete) {
	return func(s *discordgo.Session, g *discordgo.GuildDelete) {
		if g.Unavailable {
			// An outage, not a removal.
			return
		}
		a.Info("Left guild", slog.String(logging.KeyGuildID, g.ID))
		a.updateGuildCount(s)
	}
}

func (a *App) updateGuildCount(s *discordgo.Session) {
	if s.State == nil {
		return
	}
	s.State.RLock()
	defer s.State.RUnlock()
	monitoring.TotalDiscordGuilds.Set(float64(len(s.State.Guilds)))
}

// registerSlashCommands replaces the slash commands of the guild with the current set.
func (a *App) registerSlashCommands(ctx context.Context, guildID string) error {
	appID := a.applicationID()
	if appID == "" {
		return errors.New("application id is not known yet")
	}
	cmds, err := a.s.ApplicationCommandBulkOverwrite(appID, guildID, slashCommands, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error overwriting commands: %w", err)
	}
	a.Debug("Registered slash commands", slog.String(logging.KeyGuildID, guildID), slog.Int("count", len(cmds)))
	return nil
}
