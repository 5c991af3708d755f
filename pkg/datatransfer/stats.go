package datatransfer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/entities"
)

// Stats are the document sizes of a guild. ActiveTickets only counts tickets whose thread
// was created.
type Stats struct {
	TicketSetups  int
	TicketPanels  int
	ActiveTickets int
	CountedUsers  int
	TotalTickets  int
	StaffRoles    int
	Timezones     int
}

// Stats counts the entries of every document of the guild.
func (s *Service) Stats(ctx context.Context, guildID string) (*Stats, error) {
	sizes := make(map[dataaccess.Kind]int, len(dataaccess.GuildKinds))
	for _, k := range dataaccess.GuildKinds {
		doc, err := s.Export(ctx, guildID, k)
		if err != nil {
			return nil, err
		}

		n, err := entries(k, doc)
		if err != nil {
			return nil, err
		}
		sizes[k] = n
	}

	counts, err := s.Export(ctx, guildID, dataaccess.KindTicketCounts)
	if err != nil {
		return nil, err
	}
	var perUser map[string]int
	if err := json.Unmarshal(counts, &perUser); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", dataaccess.KindTicketCounts, err)
	}
	total := 0
	for _, c := range perUser {
		total += c
	}

	active, err := s.openTickets(ctx, guildID)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TicketSetups:  sizes[dataaccess.KindTicketConfigs],
		TicketPanels:  sizes[dataaccess.KindPanels],
		ActiveTickets: active,
		CountedUsers:  sizes[dataaccess.KindTicketCounts],
		TotalTickets:  total,
		StaffRoles:    sizes[dataaccess.KindStaffRoles],
		Timezones:     sizes[dataaccess.KindTimezones],
	}, nil
}

func entries(kind dataaccess.Kind, doc []byte) (int, error) {
	if kind.IsList() {
		var v []json.RawMessage
		if err := json.Unmarshal(doc, &v); err != nil {
			return 0, fmt.Errorf("error decoding %s: %w", kind, err)
		}
		return len(v), nil
	}

	var v map[string]json.RawMessage
	if err := json.Unmarshal(doc, &v); err != nil {
		return 0, fmt.Errorf("error decoding %s: %w", kind, err)
	}
	return len(v), nil
}

// openTickets counts the active tickets of the guild, leaving out reservations of tickets
// still being opened.
func (s *Service) openTickets(ctx context.Context, guildID string) (int, error) {
	doc, err := s.Export(ctx, guildID, dataaccess.KindActiveTickets)
	if err != nil {
		return 0, err
	}

	var tickets map[string]*entities.ActiveTicket
	if err := json.Unmarshal(doc, &tickets); err != nil {
		return 0, fmt.Errorf("error decoding %s: %w", dataaccess.KindActiveTickets, err)
	}

	n := 0
	for _, t := range tickets {
		if t != nil && !t.Pending() {
			n++
		}
	}
	return n, nil
}
