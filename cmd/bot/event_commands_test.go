package main

import (
	"testing"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/datatransfer"
	"github.com/Jacobbrewer1/concierge/pkg/events"
	"github.com/stretchr/testify/require"
)

func TestEventEmbed(t *testing.T) {
	start := time.Date(2024, 12, 25, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		name         string
		event        *events.Event
		wantType     string
		wantLocation string
		wantStatus   string
	}{
		{
			name: "voice",
			event: &events.Event{
				ID: "1", Name: "Raid", Start: start, End: start.Add(events.DefaultDuration),
				ChannelID: "55", Status: events.StatusScheduled,
			},
			wantType:     "Voice",
			wantLocation: "<#55>",
			wantStatus:   "Scheduled",
		},
		{
			name: "external",
			event: &events.Event{
				ID: "2", Name: "Meetup", Start: start, End: start.Add(time.Hour),
				Location: "Town hall", Status: events.StatusActive,
			},
			wantType:     "External",
			wantLocation: "Town hall",
			wantStatus:   "Active",
		},
		{
			name: "no location",
			event: &events.Event{
				ID: "3", Name: "Quiz", Start: start, End: start.Add(time.Hour), Status: events.Status(9),
			},
			wantType:     "External",
			wantLocation: "Not specified",
			wantStatus:   "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed := eventEmbed(tt.event)
			require.Equal(t, "📅 "+tt.event.Name, embed.Title)
			require.Equal(t, tt.wantStatus, embed.Fields[1].Value)
			require.Equal(t, tt.wantType, embed.Fields[2].Value)
			require.Equal(t, "2024-12-25 14:30 UTC", embed.Fields[3].Value)
			require.Equal(t, tt.wantLocation, embed.Fields[5].Value)
		})
	}
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 7, 5, 1, 0, time.FixedZone("UTC+2", 2*60*60))
	require.Equal(t, "staff_roles_20240309_050501.json", exportFileName("staff_roles", now))
}

func TestStatsEmbed(t *testing.T) {
	embed := statsEmbed(&datatransfer.Stats{TicketPanels: 2, ActiveTickets: 1, TotalTickets: 7})
	require.Len(t, embed.Fields, 7)
	require.Equal(t, "2", embed.Fields[1].Value)
	require.Equal(t, "7", embed.Fields[4].Value)
}
