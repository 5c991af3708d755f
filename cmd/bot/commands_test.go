package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlashCommands(t *testing.T) {
	procs := new(App).commandProcessors()
	require.Len(t, procs, len(slashCommands))

	seen := make(map[string]bool, len(slashCommands))
	for _, cmd := range slashCommands {
		t.Run(cmd.Name, func(t *testing.T) {
			require.False(t, seen[cmd.Name], "duplicate command")
			seen[cmd.Name] = true

			require.Contains(t, procs, cmd.Name)
			require.NotEmpty(t, cmd.Description)
			require.LessOrEqual(t, len(cmd.Description), 100)
			require.LessOrEqual(t, len(cmd.Options), 25)

			// Required options must precede optional ones.
			optional := false
			for _, o := range cmd.Options {
				if !o.Required {
					optional = true
					continue
				}
				require.False(t, optional, "required option %s follows an optional one", o.Name)
			}
		})
	}
}

func TestFindCommand(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		wantCategory string
		wantOk       bool
	}{
		{name: "plain", in: cmdSetupTicket, wantCategory: "Tickets", wantOk: true},
		{name: "slash", in: "/" + cmdBackupData, wantCategory: "Data", wantOk: true},
		{name: "unknown", in: "nope", wantOk: false},
		{name: "empty", in: "", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, category, ok := findCommand(tt.in)
			require.Equal(t, tt.wantOk, ok)
			if ok {
				require.Equal(t, tt.wantCategory, category.Name)
			}
		})
	}
}

func TestComponentProcessors(t *testing.T) {
	procs := new(App).componentProcessors()
	for _, id := range []string{
		OpenTicketButtonID,
		JoinTicketButtonID,
		CloseTicketButtonID,
		CloseReasonButtonID,
		ConfirmCloseButtonID,
		CancelCloseButtonID,
		CloseReasonModalID,
	} {
		require.Contains(t, procs, id)
	}
}
