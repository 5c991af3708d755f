package datatransfer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/concierge/pkg/custom"
	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
)

// ExportAllServers returns every document of every guild, grouped by kind and then by guild.
func (s *Service) ExportAllServers(ctx context.Context) ([]byte, error) {
	scopes, err := s.raw.Scopes(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing servers: %w", err)
	}

	out := make(map[string]any, len(dataaccess.GuildKinds)+2)
	for _, k := range dataaccess.GuildKinds {
		byGuild := make(map[string]json.RawMessage, len(scopes))
		for _, scope := range scopes {
			doc, err := s.Export(ctx, scope, k)
			if err != nil {
				return nil, err
			}
			byGuild[scope] = doc
		}
		out[string(k)] = byGuild
	}
	out["exported_at"] = custom.NewDatetime(s.now())
	out["total_servers"] = len(scopes)

	return dataaccess.EncodeDocument(out)
}

// ImportAllServers imports an export of every guild. Every document is validated before any
// is written. It returns the number of guilds and documents imported.
func (s *Service) ImportAllServers(ctx context.Context, raw []byte) (int, int, error) {
	if err := checkSize(raw); err != nil {
		return 0, 0, err
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	perGuild := make(map[string]map[string]json.RawMessage)
	for _, k := range dataaccess.GuildKinds {
		section, ok := top[string(k)]
		if !ok {
			continue
		}

		var byGuild map[string]json.RawMessage
		if err := json.Unmarshal(section, &byGuild); err != nil {
			return 0, 0, fmt.Errorf("%w: %s must map server IDs to documents", ErrInvalidFormat, k)
		}
		for guildID, doc := range byGuild {
			if err := dataaccess.ValidateScope(guildID); err != nil || guildID == dataaccess.RootScope {
				return 0, 0, fmt.Errorf("%w: invalid server id %q", ErrInvalidFormat, guildID)
			}
			if perGuild[guildID] == nil {
				perGuild[guildID] = make(map[string]json.RawMessage)
			}
			perGuild[guildID][string(k)] = doc
		}
	}
	if len(perGuild) == 0 {
		return 0, 0, fmt.Errorf("%w: no server data found", ErrInvalidFormat)
	}

	validated := make(map[string][]*document, len(perGuild))
	for guildID, docs := range perGuild {
		valid, err := validateDocuments(docs)
		if err != nil {
			return 0, 0, fmt.Errorf("server %s: %w", guildID, err)
		}
		validated[guildID] = valid
	}

	written := 0
	for guildID, docs := range validated {
		for _, d := range docs {
			if err := s.raw.ReplaceDocument(ctx, guildID, d.kind, d.raw); err != nil {
				return len(validated), written, fmt.Errorf("error importing %s for server %s: %w", d.kind, guildID, err)
			}
			written++
		}
	}

	s.l.Info("All server data imported",
		slog.Int("servers", len(validated)),
		slog.Int("documents", written),
	)
	return len(validated), written, nil
}
