package main

import (
	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/discordgo"
)

const (
	cmdSetupTicket       = "setup_ticket"
	cmdCreateTicketPanel = "create_ticket_panel"
	cmdAddTicketOption   = "add_ticket_option"
	cmdPostTicketPanel   = "post_ticket_panel"
	cmdListTicketSetups  = "list_ticket_setups"
	cmdListTicketPanels  = "list_ticket_panels"
	cmdDeleteTicketSetup = "delete_ticket_setup"
	cmdDeleteTicketPanel = "delete_ticket_panel"
	cmdTicketCount       = "ticket_count"

	cmdAddStaffRole     = "add_staff_role"
	cmdRemoveStaffRole  = "remove_staff_role"
	cmdListStaffRoles   = "list_staff_roles"
	cmdAddTrustedUser   = "add_trusted_user"
	cmdRemoveTrusted    = "remove_trusted_user"
	cmdListTrustedUsers = "list_trusted_users"

	cmdSetTimezone     = "set_timezone"
	cmdCreateEvent     = "create_event"
	cmdChangeEventTime = "change_event_time"
	cmdListEvents      = "list_events"
	cmdEventInfo       = "event_info"
	cmdDeleteEvent     = "delete_event"

	cmdExportData    = "export_data"
	cmdImportData    = "import_data"
	cmdExportAllData = "export_all_data"
	cmdImportAllData = "import_all_data"
	cmdViewDataStats = "view_data_stats"
	cmdClearData     = "clear_data"
	cmdBackupData    = "backup_data"

	cmdPing        = "ping"
	cmdBotStatus   = "botstatus"
	cmdSendEmbed   = "send_embed"
	cmdSendMessage = "send_message"
	cmdHelp        = "help"
	cmdInfo        = "cmd_info"
)

// dataTypeAll selects every guild document in export_data and import_data.
const dataTypeAll = "all"

// commandCategory groups slash commands in the help output.
type commandCategory struct {
	Name     string
	Commands []*discordgo.ApplicationCommand
}

var textChannel = []discordgo.ChannelType{discordgo.ChannelTypeGuildText}

func channelOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionChannel,
		Name:         name,
		Description:  description,
		ChannelTypes: textChannel,
		Required:     required,
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func dataTypeOption(withAll bool, kinds ...dataaccess.Kind) *discordgo.ApplicationCommandOption {
	opt := stringOption("data_type", "The data to use", true)
	for _, k := range kinds {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(k),
			Value: string(k),
		})
	}
	if withAll {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  "all data",
			Value: dataTypeAll,
		})
	}
	return opt
}

// optionOptions are the options that describe a ticket option, shared by the panel commands.
func optionOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		stringOption("title_format", "Thread name, must contain {username} or {userid}", false),
		stringOption("open_message", "Message posted when a ticket opens", false),
		stringOption("button_emoji", "Emoji shown on the button", false),
		channelOption("transcripts_channel", "Channel transcripts are sent to", false),
	}
}

var ticketCommands = []*discordgo.ApplicationCommand{
	{
		Name:        cmdSetupTicket,
		Description: "Set up a ticket system with unique ID (Admin only)",
		Options: append([]*discordgo.ApplicationCommandOption{
			channelOption("ticket_channel", "Channel where users open tickets", true),
			channelOption("handle_channel", "Channel for staff to see and join active tickets", true),
			stringOption("button_label", "Label of the open button", false),
			stringOption("embed_title", "Title of the ticket panel", false),
			stringOption("embed_description", "Description of the ticket panel", false),
		}, optionOptions()...),
	},
	{
		Name:        cmdCreateTicketPanel,
		Description: "Create a ticket panel with its first option (Admin only)",
		Options: append([]*discordgo.ApplicationCommandOption{
			channelOption("channel", "Channel the panel is posted in", true),
			stringOption("title", "Title of the panel", true),
			stringOption("description", "Description of the panel", true),
			stringOption("button_label", "Label of the first option", true),
			channelOption("handle_channel", "Staff channel for the first option", true),
		}, optionOptions()...),
	},
	{
		Name:        cmdAddTicketOption,
		Description: "Add an option to a ticket panel (Admin only)",
		Options: append([]*discordgo.ApplicationCommandOption{
			stringOption("panel_id", "ID of the panel", true),
			stringOption("button_label", "Label of the option", true),
			channelOption("handle_channel", "Staff channel for the option", true),
		}, optionOptions()...),
	},
	{
		Name:        cmdPostTicketPanel,
		Description: "Post or refresh a ticket panel message (Admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("panel_id", "ID of the panel", true),
		},
	},
	{
		Name:        cmdListTicketSetups,
		Description: "List all ticket setups for this server (Admin only)",
	},
	{
		Name:        cmdListTicketPanels,
		Description: "List all ticket panels in this server (Admin only)",
	},
	{
		Name:        cmdDeleteTicketSetup,
		Description: "Delete a ticket setup by ID (Admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("setup_id", "ID of the ticket setup", true),
		},
	},
	{
		Name:        cmdDeleteTicketPanel,
		Description: "Delete a ticket panel by ID (Admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("panel_id", "ID of the ticket panel", true),
		},
	},
	{
		Name:        cmdTicketCount,
		Description: "Check how many tickets a user has open",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to check (defaults to yourself)",
			},
		},
	},
}

var adminCommands = []*discordgo.ApplicationCommand{
	{
		Name:        cmdAddStaffRole,
		Description: "Add a role to the staff list (Admin/Owner only)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "The role to add as staff", Required: true},
		},
	},
	{
		Name:        cmdRemoveStaffRole,
		Description: "Remove a role from the staff list (Admin/Owner only)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "The role to remove from staff", Required: true},
		},
	},
	{
		Name:        cmdListStaffRoles,
		Description: "List all current staff roles",
	},
	{
		Name:        cmdAddTrustedUser,
		Description: "Add a user to trusted list (Bot Owner Only)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "The user to add as trusted", Required: true},
		},
	},
	{
		Name:        cmdRemoveTrusted,
		Description: "Remove a user from trusted list (Bot Owner Only)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "The user to remove from trusted", Required: true},
		},
	},
	{
		Name:        cmdListTrustedUsers,
		Description: "List all trusted users (Bot Owner Only)",
	},
}

var eventCommands = []*discordgo.ApplicationCommand{
	{
		Name:        cmdSetTimezone,
		Description: "Set your timezone (e.g., UTC+3)",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("timezone", "Your timezone, e.g. UTC+3 or UTC-5", true),
		},
	},
	{
		Name:        cmdCreateEvent,
		Description: "Create an event (Staff, Admin, or Owner only)",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("name", "Event name", true),
			stringOption("start", "Start time: YYYY-MM-DD HH:MM, MM-DD HH:MM or HH:MM", true),
			stringOption("description", "Event description", false),
			stringOption("location", "Location, or a voice channel mention", false),
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "duration",
				Description: "Duration in minutes (default 90)",
			},
		},
	},
	{
		Name:        cmdChangeEventTime,
		Description: "Move an event to a new start time (Staff only)",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("event_id", "ID of the event", true),
			stringOption("start", "New start time", true),
		},
	},
	{
		Name:        cmdListEvents,
		Description: "List all upcoming events",
	},
	{
		Name:        cmdEventInfo,
		Description: "Get detailed information about an event",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("event_id", "ID of the event", true),
		},
	},
	{
		Name:        cmdDeleteEvent,
		Description: "Delete an event (Staff only)",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("event_id", "ID of the event", true),
		},
	},
}

var dataCommands = []*discordgo.ApplicationCommand{
	{
		Name:        cmdExportData,
		Description: "Export server data as JSON (Trusted users only)",
		Options: []*discordgo.ApplicationCommandOption{
			dataTypeOption(true, dataaccess.GuildKinds...),
		},
	},
	{
		Name:        cmdImportData,
		Description: "Import server data from a JSON file (Trusted users only)",
		Options: []*discordgo.ApplicationCommandOption{
			dataTypeOption(true, dataaccess.GuildKinds...),
			{Type: discordgo.ApplicationCommandOptionAttachment, Name: "file", Description: "The JSON file to import", Required: true},
		},
	},
	{
		Name:        cmdExportAllData,
		Description: "Export the data of every server (Trusted users only)",
	},
	{
		Name:        cmdImportAllData,
		Description: "Import the data of every server (Trusted users only)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionAttachment, Name: "file", Description: "The JSON file to import", Required: true},
		},
	},
	{
		Name:        cmdViewDataStats,
		Description: "View data statistics for this server (Trusted users only)",
	},
	{
		Name:        cmdClearData,
		Description: "Clear server data (Trusted users only)",
		Options: []*discordgo.ApplicationCommandOption{
			dataTypeOption(false, dataaccess.KindActiveTickets, dataaccess.KindTicketCounts, dataaccess.KindTimezones),
		},
	},
	{
		Name:        cmdBackupData,
		Description: "Back up this server's data (Trusted users only)",
	},
}

var miscCommands = []*discordgo.ApplicationCommand{
	{
		Name:        cmdPing,
		Description: "Check the bot's response time",
	},
	{
		Name:        cmdBotStatus,
		Description: "Check bot status and permissions",
	},
	{
		Name:        cmdSendEmbed,
		Description: "Send an embed message to a channel (Staff only)",
		Options: []*discordgo.ApplicationCommandOption{
			channelOption("channel", "The channel to send the message to", true),
			stringOption("message", "Embed message", true),
			stringOption("title", "Embed title", false),
			stringOption("color", "Embed color as hex without #, e.g. FF0000", false),
			stringOption("footer", "Embed footer text", false),
			stringOption("image_url", "Image URL", false),
		},
	},
	{
		Name:        cmdSendMessage,
		Description: "Send a message with optional image/file to a channel (Staff only)",
		Options: []*discordgo.ApplicationCommandOption{
			channelOption("channel", "The channel to send the message to", true),
			stringOption("message", "Message content", false),
			{Type: discordgo.ApplicationCommandOptionAttachment, Name: "file", Description: "Image or file to upload (max 8MB)"},
		},
	},
	{
		Name:        cmdHelp,
		Description: "Get all commands",
	},
	{
		Name:        cmdInfo,
		Description: "Get information about a specific command",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("cmd", "Command name", true),
		},
	},
}

var commandCategories = []*commandCategory{
	{Name: "Tickets", Commands: ticketCommands},
	{Name: "Admin", Commands: adminCommands},
	{Name: "Events", Commands: eventCommands},
	{Name: "Data", Commands: dataCommands},
	{Name: "General", Commands: miscCommands},
}

// slashCommands is every command registered in a guild.
var slashCommands = func() []*discordgo.ApplicationCommand {
	var all []*discordgo.ApplicationCommand
	for _, c := range commandCategories {
		all = append(all, c.Commands...)
	}
	return all
}()

// findCommand returns the command with the given name, with or without a leading slash.
func findCommand(name string) (*discordgo.ApplicationCommand, *commandCategory, bool) {
	if len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	for _, c := range commandCategories {
		for _, cmd := range c.Commands {
			if cmd.Name == name {
				return cmd, c, true
			}
		}
	}
	return nil, nil, false
}

// commandProcessors maps every slash command to its handler.
func (a *App) commandProcessors() map[string]processor {
	return map[string]processor{
		cmdSetupTicket:       a.setupTicket,
		cmdCreateTicketPanel: a.createTicketPanel,
		cmdAddTicketOption:   a.addTicketOption,
		cmdPostTicketPanel:   a.postTicketPanel,
		cmdListTicketSetups:  a.listTicketSetups,
		cmdListTicketPanels:  a.listTicketPanels,
		cmdDeleteTicketSetup: a.deleteTicketSetup,
		cmdDeleteTicketPanel: a.deleteTicketPanel,
		cmdTicketCount:       a.ticketCount,

		cmdAddStaffRole:     a.addStaffRole,
		cmdRemoveStaffRole:  a.removeStaffRole,
		cmdListStaffRoles:   a.listStaffRoles,
		cmdAddTrustedUser:   a.addTrustedUser,
		cmdRemoveTrusted:    a.removeTrustedUser,
		cmdListTrustedUsers: a.listTrustedUsers,

		cmdSetTimezone:     a.setTimezone,
		cmdCreateEvent:     a.createEvent,
		cmdChangeEventTime: a.changeEventTime,
		cmdListEvents:      a.listEvents,
		cmdEventInfo:       a.eventInfo,
		cmdDeleteEvent:     a.deleteEvent,

		cmdExportData:    a.exportData,
		cmdImportData:    a.importData,
		cmdExportAllData: a.exportAllData,
		cmdImportAllData: a.importAllData,
		cmdViewDataStats: a.viewDataStats,
		cmdClearData:     a.clearData,
		cmdBackupData:    a.backupData,

		cmdPing:        a.ping,
		cmdBotStatus:   a.botStatus,
		cmdSendEmbed:   a.sendEmbed,
		cmdSendMessage: a.sendMessage,
		cmdHelp:        a.help,
		cmdInfo:        a.commandInfo,
	}
}

// componentProcessors maps every component and modal custom ID prefix to its handler.
func (a *App) componentProcessors() map[string]processor {
	return map[string]processor{
		OpenTicketButtonID:   a.openTicket,
		JoinTicketButtonID:   a.joinTicket,
		CloseTicketButtonID:  a.closeTicket,
		CloseReasonButtonID:  a.closeTicketWithReason,
		ConfirmCloseButtonID: a.confirmCloseTicket,
		CancelCloseButtonID:  a.cancelCloseTicket,
		CloseReasonModalID:   a.submitCloseReason,
	}
}
