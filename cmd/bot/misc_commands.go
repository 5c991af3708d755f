package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Jacobbrewer1/concierge/pkg/messages"
	"github.com/Jacobbrewer1/discordgo"
)

const (
	maxEmbedTitle       = 256
	maxEmbedDescription = 4096
	maxEmbedFooter      = 2048
	maxMessageContent   = 2000
	maxColor            = 0xFFFFFF
)

var errInvalidColor = errors.New("invalid colour")

// parseColor reads a hex colour, with or without a leading #. An empty colour is zero, which
// renders as the default embed colour.
func parseColor(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return 0, nil
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || v > maxColor {
		return 0, fmt.Errorf("%w: %q", errInvalidColor, s)
	}
	return int(v), nil
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func (a *App) ping(_ context.Context, ix *interaction) error {
	if _, err := a.guildActor(ix); err != nil {
		return err
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.MiscPong, a.s.HeartbeatLatency().Milliseconds()))
}

func (a *App) botStatus(ctx context.Context, ix *interaction) error {
	if _, err := a.guildActor(ix); err != nil {
		return err
	}

	info := &statusInfo{
		server:      ix.GuildID,
		latency:     a.s.HeartbeatLatency(),
		permissions: ix.AppPermissions,
		uptime:      a.uptime(),
	}
	if a.s.State != nil {
		if g, err := a.s.State.Guild(ix.GuildID); err == nil {
			info.server, info.members = g.Name, g.MemberCount
		}
	}

	open, err := a.tickets.ActiveCount(ctx, ix.GuildID)
	if err != nil {
		return err
	}
	info.openTickets = open

	return a.respondEmbed(ix, statusEmbed(info))
}

// statusInfo is what the bot status reports about the current server.
type statusInfo struct {
	server      string
	members     int
	openTickets int
	latency     time.Duration
	permissions int64
	uptime      time.Duration
}

func statusEmbed(info *statusInfo) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🤖 Bot Status",
		Color: colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Server", Value: info.server, Inline: true},
			{Name: "Members", Value: strconv.Itoa(info.members), Inline: true},
			{Name: "Open Tickets", Value: strconv.Itoa(info.openTickets), Inline: true},
			{Name: "Ping", Value: fmt.Sprintf("%dms", info.latency.Milliseconds()), Inline: true},
			{Name: "Key Permissions", Value: keyPermissions(info.permissions)},
			{Name: "Uptime", Value: info.uptime.String(), Inline: true},
		},
	}
}

// keyPermissions lists the permissions the ticket and event features rely on.
func keyPermissions(perms int64) string {
	if perms&discordgo.PermissionAdministrator != 0 {
		return "✅ Administrator"
	}

	var held []string
	for _, p := range []struct {
		perm int64
		name string
	}{
		{discordgo.PermissionManageRoles, "Manage Roles"},
		{discordgo.PermissionManageChannels, "Manage Channels"},
		{discordgo.PermissionManageEvents, "Manage Events"},
		{discordgo.PermissionManageMessages, "Manage Messages"},
	} {
		if perms&p.perm != 0 {
			held = append(held, "✅ "+p.name)
		}
	}

	if len(held) == 0 {
		return "❌ Limited permissions"
	}
	return strings.Join(held, "\n")
}

func (a *App) sendEmbed(ctx context.Context, ix *interaction) error {
	if _, err := a.staffActor(ctx, ix); err != nil {
		return err
	}
	opts := commandOptions(ix.InteractionCreate)

	color, err := parseColor(opts.str("color", ""))
	if err != nil {
		return a.respondEphemeral(ix, messages.MiscInvalidColor)
	}

	embed := &discordgo.MessageEmbed{
		Title:       truncateRunes(opts.str("title", ""), maxEmbedTitle),
		Description: truncateRunes(opts.str("message", ""), maxEmbedDescription),
		Color:       color,
	}
	if footer := opts.str("footer", ""); footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: truncateRunes(footer, maxEmbedFooter)}
	}
	if imageURL := opts.str("image_url", ""); imageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: imageURL}
	}

	channelID := opts.id("channel")
	if _, err := a.s.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("error sending embed: %w", err)
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.MiscEmbedSent, channelID))
}

func (a *App) sendMessage(ctx context.Context, ix *interaction) error {
	if _, err := a.staffActor(ctx, ix); err != nil {
		return err
	}
	opts := commandOptions(ix.InteractionCreate)

	content := truncateRunes(opts.str("message", ""), maxMessageContent)
	att, hasFile := opts.attachment(ix.InteractionCreate, "file")
	if strings.TrimSpace(content) == "" && !hasFile {
		return a.respondEphemeral(ix, messages.MiscEmptyMessage)
	}

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	msg := &discordgo.MessageSend{Content: content}
	if hasFile {
		data, err := a.fetcher.Fetch(ctx, att.URL, att.Size)
		if err != nil {
			return err
		}
		msg.Files = []*discordgo.File{
			{
				Name:        att.Filename,
				ContentType: att.ContentType,
				Reader:      bytes.NewReader(data),
			},
		}
	}

	channelID := opts.id("channel")
	if _, err := a.s.ChannelMessageSendComplex(channelID, msg, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.MiscSent, channelID))
}

func (a *App) help(_ context.Context, ix *interaction) error {
	embed := &discordgo.MessageEmbed{
		Title:       "🤖 Command Help",
		Description: "All available commands",
		Color:       0xFF8800,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Use /cmd_info [command] for detailed information"},
	}
	for _, c := range commandCategories {
		lines := make([]string, 0, len(c.Commands))
		for _, cmd := range c.Commands {
			lines = append(lines, fmt.Sprintf("• `/%s` - %s", cmd.Name, cmd.Description))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "📁 " + c.Name,
			Value: truncateRunes(strings.Join(lines, "\n"), 1024),
		})
	}
	return a.respondEmbed(ix, embed)
}

func (a *App) commandInfo(_ context.Context, ix *interaction) error {
	name := strings.TrimSpace(commandOptions(ix.InteractionCreate).str("cmd", ""))
	cmd, category, ok := findCommand(name)
	if !ok {
		return a.respondEphemeral(ix, fmt.Sprintf(messages.MiscUnknownCommand, name))
	}
	return a.respondEmbed(ix, commandEmbed(cmd, category))
}

func commandEmbed(cmd *discordgo.ApplicationCommand, category *commandCategory) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "/" + cmd.Name,
		Description: cmd.Description,
		Color:       0xFF8800,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Category", Value: category.Name, Inline: true},
		},
	}

	if len(cmd.Options) == 0 {
		return embed
	}
	lines := make([]string, 0, len(cmd.Options))
	for _, o := range cmd.Options {
		req := "optional"
		if o.Required {
			req = "required"
		}
		lines = append(lines, fmt.Sprintf("• `%s` (%s) - %s", o.Name, req, o.Description))
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Parameters",
		Value: truncateRunes(strings.Join(lines, "\n"), 1024),
	})
	return embed
}
