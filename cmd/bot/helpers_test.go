package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Jacobbrewer1/concierge/pkg/datatransfer"
	"github.com/Jacobbrewer1/concierge/pkg/events"
	"github.com/Jacobbrewer1/concierge/pkg/messages"
	"github.com/Jacobbrewer1/concierge/pkg/tickets"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/stretchr/testify/require"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   string
		wantOk bool
	}{
		{name: "admin only", err: errAdminOnly, want: messages.ErrAdminOnly, wantOk: true},
		{name: "server only", err: errServerOnly, want: messages.ErrServerOnly, wantOk: true},
		{name: "thread only", err: errThreadOnly, want: messages.TicketThreadOnly, wantOk: true},
		{name: "already open wrapped", err: fmt.Errorf("open: %w", tickets.ErrAlreadyOpen), want: messages.TicketAlreadyOpen, wantOk: true},
		{name: "permission denied", err: tickets.ErrPermissionDenied, want: messages.ErrStaffOnly, wantOk: true},
		{name: "close expired", err: tickets.ErrCloseNotRequested, want: messages.TicketCloseExpired, wantOk: true},
		{name: "title format", err: tickets.ErrInvalidTitleFormat, want: "❌ " + tickets.ErrInvalidTitleFormat.Error(), wantOk: true},
		{name: "timezone", err: events.ErrTimezoneNotSet, want: messages.EventTimezoneNotSet, wantOk: true},
		{name: "lead time", err: events.ErrLeadTime, want: messages.EventLeadTime, wantOk: true},
		{name: "event not found", err: fmt.Errorf("event 1: %w", events.ErrNotFound), want: messages.EventNotFound, wantOk: true},
		{name: "too large", err: datatransfer.ErrTooLarge, want: messages.DataTooLarge, wantOk: true},
		{name: "not clearable", err: datatransfer.ErrNotClearable, want: messages.DataNotClearable, wantOk: true},
		{name: "unexpected", err: errors.New("boom"), wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := userMessage(tt.err)
			require.Equal(t, tt.wantOk, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestInteractionUserID(t *testing.T) {
	tests := []struct {
		name string
		in   *discordgo.Interaction
		want string
	}{
		{
			name: "guild member",
			in:   &discordgo.Interaction{Member: &discordgo.Member{User: &discordgo.User{ID: "1"}}},
			want: "1",
		},
		{
			name: "direct message",
			in:   &discordgo.Interaction{User: &discordgo.User{ID: "2"}},
			want: "2",
		},
		{
			name: "none",
			in:   &discordgo.Interaction{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, interactionUserID(&discordgo.InteractionCreate{Interaction: tt.in}))
		})
	}
}

func TestCommandOptions(t *testing.T) {
	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name: cmdCreateEvent,
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "name", Type: discordgo.ApplicationCommandOptionString, Value: "Game night"},
					{Name: "duration", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(45)},
					{Name: "file", Type: discordgo.ApplicationCommandOptionAttachment, Value: "900"},
				},
				Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
					Attachments: map[string]*discordgo.MessageAttachment{
						"900": {ID: "900", Filename: "data.json"},
					},
				},
			},
		},
	}

	opts := commandOptions(i)
	require.Equal(t, "Game night", opts.str("name", ""))
	require.Equal(t, "fallback", opts.str("location", "fallback"))
	require.EqualValues(t, 45, opts.num("duration", 0))
	require.EqualValues(t, 90, opts.num("missing", 90))
	require.Empty(t, opts.id("channel"))

	att, ok := opts.attachment(i, "file")
	require.True(t, ok)
	require.Equal(t, "data.json", att.Filename)

	_, ok = opts.attachment(i, "other")
	require.False(t, ok)
}
