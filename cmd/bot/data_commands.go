package main

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/datatransfer"
	"github.com/Jacobbrewer1/concierge/pkg/messages"
	"github.com/Jacobbrewer1/discordgo"
)

const exportTimeLayout = "20060102_150405"

// exportFileName names an export attachment after its content and the time it was taken.
func exportFileName(name string, now time.Time) string {
	return fmt.Sprintf("%s_%s.json", name, now.UTC().Format(exportTimeLayout))
}

// trustedGuildActor is the actor of a data command that works on the current server.
func (a *App) trustedGuildActor(ctx context.Context, ix *interaction) error {
	if _, err := a.guildActor(ix); err != nil {
		return err
	}
	_, err := a.trustedActor(ctx, ix)
	return err
}

// sendExport replies with the export attached as a JSON file.
func (a *App) sendExport(ix *interaction, name string, data []byte) error {
	return a.respondComplex(ix, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf(messages.DataExport, name),
		Files: []*discordgo.File{
			{
				Name:        exportFileName(name, time.Now()),
				ContentType: "application/json",
				Reader:      bytes.NewReader(data),
			},
		},
	})
}

// uploadedJSON downloads the JSON attachment of an import command.
func (a *App) uploadedJSON(ctx context.Context, ix *interaction) ([]byte, bool, error) {
	att, ok := commandOptions(ix.InteractionCreate).attachment(ix.InteractionCreate, "file")
	if !ok || !strings.EqualFold(path.Ext(att.Filename), ".json") {
		return nil, false, nil
	}

	raw, err := a.fetcher.Fetch(ctx, att.URL, att.Size)
	if err != nil {
		return nil, true, err
	}
	return raw, true, nil
}

func (a *App) exportData(ctx context.Context, ix *interaction) error {
	if err := a.trustedGuildActor(ctx, ix); err != nil {
		return err
	}
	name := commandOptions(ix.InteractionCreate).str("data_type", "")

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	if name == dataTypeAll {
		data, err := a.transfer.ExportGuild(ctx, ix.GuildID)
		if err != nil {
			return err
		}
		return a.sendExport(ix, "server_data", data)
	}

	kind, err := datatransfer.ParseKind(name)
	if err != nil {
		return err
	}
	data, err := a.transfer.Export(ctx, ix.GuildID, kind)
	if err != nil {
		return err
	}
	return a.sendExport(ix, string(kind), data)
}

func (a *App) importData(ctx context.Context, ix *interaction) error {
	if err := a.trustedGuildActor(ctx, ix); err != nil {
		return err
	}
	name := commandOptions(ix.InteractionCreate).str("data_type", "")

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	raw, ok, err := a.uploadedJSON(ctx, ix)
	if !ok {
		return a.respondEphemeral(ix, messages.DataJSONOnly)
	} else if err != nil {
		return err
	}

	if name == dataTypeAll {
		n, err := a.transfer.ImportGuild(ctx, ix.GuildID, raw)
		if err != nil {
			return err
		}
		return a.respondEphemeral(ix, fmt.Sprintf(messages.DataImportedGuild, n))
	}

	kind, err := datatransfer.ParseKind(name)
	if err != nil {
		return err
	}
	if err := a.transfer.Import(ctx, ix.GuildID, kind, raw); err != nil {
		return err
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.DataImported, kind))
}

func (a *App) exportAllData(ctx context.Context, ix *interaction) error {
	if _, err := a.trustedActor(ctx, ix); err != nil {
		return err
	}

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	data, err := a.transfer.ExportAllServers(ctx)
	if err != nil {
		return err
	}
	return a.sendExport(ix, "all_servers", data)
}

func (a *App) importAllData(ctx context.Context, ix *interaction) error {
	if _, err := a.trustedActor(ctx, ix); err != nil {
		return err
	}

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	raw, ok, err := a.uploadedJSON(ctx, ix)
	if !ok {
		return a.respondEphemeral(ix, messages.DataJSONOnly)
	} else if err != nil {
		return err
	}

	servers, docs, err := a.transfer.ImportAllServers(ctx, raw)
	if err != nil {
		return err
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.DataImportedAll, servers, docs))
}

func (a *App) viewDataStats(ctx context.Context, ix *interaction) error {
	if err := a.trustedGuildActor(ctx, ix); err != nil {
		return err
	}

	stats, err := a.transfer.Stats(ctx, ix.GuildID)
	if err != nil {
		return err
	}
	return a.respondEmbed(ix, statsEmbed(stats))
}

func (a *App) clearData(ctx context.Context, ix *interaction) error {
	if err := a.trustedGuildActor(ctx, ix); err != nil {
		return err
	}

	kind, err := datatransfer.ParseKind(commandOptions(ix.InteractionCreate).str("data_type", ""))
	if err != nil {
		return err
	}
	if err := a.transfer.Clear(ctx, ix.GuildID, kind); err != nil {
		return err
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.DataCleared, kind))
}

func (a *App) backupData(ctx context.Context, ix *interaction) error {
	if err := a.trustedGuildActor(ctx, ix); err != nil {
		return err
	}

	if err := a.deferEphemeral(ix); err != nil {
		return err
	}

	p, err := a.transfer.Backup(ctx, ix.GuildID)
	if err != nil {
		return err
	}
	return a.respondEphemeral(ix, fmt.Sprintf(messages.DataBackedUp, p))
}

func statsEmbed(s *datatransfer.Stats) *discordgo.MessageEmbed {
	field := func(name string, n int) *discordgo.MessageEmbedField {
		return &discordgo.MessageEmbedField{Name: name, Value: fmt.Sprintf("%d", n), Inline: true}
	}
	return &discordgo.MessageEmbed{
		Title: "📊 Data Statistics",
		Color: colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			field("Ticket Setups", s.TicketSetups),
			field("Ticket Panels", s.TicketPanels),
			field("Active Tickets", s.ActiveTickets),
			field("Users With Tickets", s.CountedUsers),
			field("Total Tickets", s.TotalTickets),
			field("Staff Roles", s.StaffRoles),
			field("User Timezones", s.Timezones),
		},
	}
}
