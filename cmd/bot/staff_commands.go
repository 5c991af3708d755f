package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jacobbrewer1/concierge/pkg/messages"
	"github.com/Jacobbrewer1/discordgo"
)

func (a *App) addStaffRole(ctx context.Context, ix *interaction) error {
	if _, err := a.adminActor(ix); err != nil {
		return err
	}
	roleID := commandOptions(ix.InteractionCreate).id("role")

	added, err := a.guilds.AddStaffRole(ctx, ix.GuildID, roleID)
	if err != nil {
		return fmt.Errorf("error adding staff role: %w", err)
	}

	if !added {
		return a.respondEphemeral(ix, fmt.Sprintf(messages.StaffRoleExists, roleID))
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.StaffRoleAdded, roleID))
}

func (a *App) removeStaffRole(ctx context.Context, ix *interaction) error {
	if _, err := a.adminActor(ix); err != nil {
		return err
	}
	roleID := commandOptions(ix.InteractionCreate).id("role")

	removed, err := a.guilds.RemoveStaffRole(ctx, ix.GuildID, roleID)
	if err != nil {
		return fmt.Errorf("error removing staff role: %w", err)
	}

	if !removed {
		return a.respondEphemeral(ix, fmt.Sprintf(messages.StaffRoleMissing, roleID))
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.StaffRoleRemoved, roleID))
}

func (a *App) listStaffRoles(ctx context.Context, ix *interaction) error {
	if _, err := a.guildActor(ix); err != nil {
		return err
	}

	roles, err := a.guilds.StaffRoles(ctx, ix.GuildID)
	if err != nil {
		return fmt.Errorf("error getting staff roles: %w", err)
	}
	if len(roles) == 0 {
		return a.respondEphemeral(ix, messages.StaffRolesNone)
	}
	return a.respondEphemeral(ix, messages.StaffRolesHeader+"\n"+bulletList("<@&%s>", roles))
}

func (a *App) addTrustedUser(ctx context.Context, ix *interaction) error {
	if _, err := a.ownerActor(ix); err != nil {
		return err
	}
	userID := commandOptions(ix.InteractionCreate).id("user")

	added, err := a.trusted.AddTrustedUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("error adding trusted user: %w", err)
	}

	if !added {
		return a.respondEphemeral(ix, fmt.Sprintf(messages.TrustedUserExists, userID))
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.TrustedUserAdded, userID))
}

func (a *App) removeTrustedUser(ctx context.Context, ix *interaction) error {
	if _, err := a.ownerActor(ix); err != nil {
		return err
	}
	userID := commandOptions(ix.InteractionCreate).id("user")

	removed, err := a.trusted.RemoveTrustedUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("error removing trusted user: %w", err)
	}

	if !removed {
		return a.respondEphemeral(ix, fmt.Sprintf(messages.TrustedUserMissing, userID))
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.TrustedUserRemoved, userID))
}

func (a *App) listTrustedUsers(ctx context.Context, ix *interaction) error {
	if _, err := a.ownerActor(ix); err != nil {
		return err
	}

	users, err := a.trusted.TrustedUsers(ctx)
	if err != nil {
		return fmt.Errorf("error getting trusted users: %w", err)
	}
	if len(users) == 0 {
		return a.respondEphemeral(ix, messages.TrustedUsersNone)
	}
	return a.respondEmbed(ix, &discordgo.MessageEmbed{
		Title:       "🔐 Trusted Users",
		Description: bulletList("<@%s>", users),
		Color:       colorBlue,
	})
}

// bulletList renders one bullet per ID using the mention format.
func bulletList(format string, ids []string) string {
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, "• "+fmt.Sprintf(format, id))
	}
	return strings.Join(lines, "\n")
}
