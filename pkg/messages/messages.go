package messages

const (
	// ErrUserErrorProcessing is the generic reply when a command fails unexpectedly.
	ErrUserErrorProcessing = "❌ Sorry, something went wrong while processing your request. Please try again later."

	// ErrServerOnly is the reply for commands used outside a server.
	ErrServerOnly = "❌ This command must be used in a server!"

	// ErrAdminOnly is the reply for commands restricted to administrators and owners.
	ErrAdminOnly = "❌ Only server owners or administrators can use this command!"

	// ErrStaffOnly is the reply for commands restricted to staff.
	ErrStaffOnly = "❌ Only staff, administrators, or owners can do this!"

	// ErrTrustedOnly is the reply for commands restricted to trusted users.
	ErrTrustedOnly = "❌ Access denied. Trusted users only."

	// ErrBotOwnerOnly is the reply for commands restricted to the bot owner.
	ErrBotOwnerOnly = "❌ Only the bot owner can use this command!"

	// ErrRateLimited is the reply when a user sends interactions too quickly.
	ErrRateLimited = "⏳ You're doing that too fast. Please wait a moment."
)

const (
	// TicketAlreadyOpen is the reply when a user already has an active ticket.
	TicketAlreadyOpen = "❌ You already have an active ticket!"

	// TicketCreated is the reply when a ticket is opened. It takes the thread ID.
	TicketCreated = "✅ Ticket created: <#%s>"

	// TicketSetupNotFound is the reply when the panel or option behind a button is gone.
	TicketSetupNotFound = "❌ Ticket setup not found! Ask an admin to recreate it."

	// TicketNotFound is the reply when the ticket behind a thread does not exist.
	TicketNotFound = "❌ Ticket not found!"

	// TicketThreadOnly is the reply for ticket controls used outside a ticket thread.
	TicketThreadOnly = "❌ This can only be used in ticket threads!"

	// TicketJoined is the reply when staff join a ticket. It takes the thread ID.
	TicketJoined = "✅ Joined ticket: <#%s>"

	// TicketAlreadyJoined is the reply when staff join a ticket they already joined. It takes the thread ID.
	TicketAlreadyJoined = "ℹ️ You are already in ticket <#%s>"

	// TicketCloseConfirm is the confirmation prompt. It takes the reason.
	TicketCloseConfirm = "**Are you sure you want to close this ticket?**\nReason: %s"

	// TicketCloseCancelled is the reply when a close is cancelled.
	TicketCloseCancelled = "❎ Ticket close cancelled."

	// TicketCloseExpired is the reply when a close is confirmed without a pending request.
	TicketCloseExpired = "⌛ This close request has expired. Press **Close Ticket** again."

	// TicketClosing is the reply to the closer. It takes the reason.
	TicketClosing = "🔒 Closing ticket. Reason: %s"

	// TicketClosedNotice is posted in the thread on close. It takes the closer ID, the reason and the delay in seconds.
	TicketClosedNotice = "Ticket closed by <@%s>. Reason: %s\nClosing in %d seconds..."

	// TicketNoReason is the reason used when none is given.
	TicketNoReason = "No reason provided"

	// TicketTranscriptNotSent is the reply when no transcript channel is configured.
	TicketTranscriptNotSent = "ℹ️ No transcript channel configured, so transcript was not sent."

	// TicketTranscriptSummary is posted with the transcript file. It takes the thread name and the closer ID.
	TicketTranscriptSummary = "📄 Transcript for %s (closed by <@%s>)"

	// TicketDefaultOpenMessage is the welcome message used when an option has none.
	TicketDefaultOpenMessage = "Please describe your issue and our team will assist you shortly."
)

const (
	// TicketPanelCreated is the reply when a panel is created. It takes the panel ID and the channel ID.
	TicketPanelCreated = "✅ Ticket panel `%s` created in <#%s>"

	// TicketOptionAdded is the reply when an option is added. It takes the option ID and the panel ID.
	TicketOptionAdded = "✅ Option `%s` added to panel `%s`"

	// TicketPanelPosted is the reply when a panel message is posted. It takes the channel ID.
	TicketPanelPosted = "✅ Ticket panel posted in <#%s>"

	// TicketSetupDeleted is the reply when a setup or panel is deleted. It takes the ID.
	TicketSetupDeleted = "✅ Ticket setup `%s` has been deleted"

	// TicketPanelNotFound is the reply when a panel or setup ID does not exist. It takes the ID.
	TicketPanelNotFound = "❌ Ticket setup `%s` not found!"

	// TicketPanelListHeader heads the panel and setup lists.
	TicketPanelListHeader = "📋 Ticket panels in this server:"

	// TicketNoSetups is the reply when the guild has no single-option setups.
	TicketNoSetups = "ℹ️ No ticket setups found for this server"

	// TicketNoPanels is the reply when the guild has no panels.
	TicketNoPanels = "ℹ️ No ticket panels found for this server"

	// TicketUserCount is the reply of the ticket count command. It takes the user ID and the count.
	TicketUserCount = "📊 <@%s> has %d active ticket(s) open in this server."
)

const (
	// StaffRoleAdded is the reply when a staff role is added. It takes the role ID.
	StaffRoleAdded = "✅ Added <@&%s> to the staff list."

	// StaffRoleExists is the reply when a role is already a staff role. It takes the role ID.
	StaffRoleExists = "❌ Role <@&%s> is already a staff role!"

	// StaffRoleRemoved is the reply when a staff role is removed. It takes the role ID.
	StaffRoleRemoved = "✅ Removed <@&%s> from the staff list."

	// StaffRoleMissing is the reply when a role is not a staff role. It takes the role ID.
	StaffRoleMissing = "❌ Role <@&%s> is not a staff role!"

	// StaffRolesNone is the reply when no staff roles are set.
	StaffRolesNone = "ℹ️ No staff roles have been set up yet."

	// StaffRolesHeader heads the staff role list.
	StaffRolesHeader = "📋 Current staff roles:"

	// TrustedUserAdded is the reply when a trusted user is added. It takes the user ID.
	TrustedUserAdded = "✅ Added <@%s> to trusted users!"

	// TrustedUserExists is the reply when a user is already trusted. It takes the user ID.
	TrustedUserExists = "❌ <@%s> is already trusted!"

	// TrustedUserRemoved is the reply when a trusted user is removed. It takes the user ID.
	TrustedUserRemoved = "✅ Removed <@%s> from trusted users!"

	// TrustedUserMissing is the reply when a user is not trusted. It takes the user ID.
	TrustedUserMissing = "❌ <@%s> is not in the trusted list!"

	// TrustedUsersNone is the reply when no users are trusted.
	TrustedUsersNone = "ℹ️ No trusted users found."
)

const (
	// EventTimezoneSet is the reply when a user sets a timezone. It takes the timezone.
	EventTimezoneSet = "✅ Your timezone has been set to %s"

	// EventInvalidTimezone is the reply for a malformed timezone.
	EventInvalidTimezone = "❌ Invalid timezone! Use a format like UTC+3 or UTC-5 (between UTC-12 and UTC+14)."

	// EventTimezoneNotSet is the reply when the user has not set a timezone.
	EventTimezoneNotSet = "❌ Please set your timezone first with /set_timezone"

	// EventInvalidTime is the reply for a malformed start time.
	EventInvalidTime = "❌ Invalid time format! Use YYYY-MM-DD HH:MM, MM-DD HH:MM or HH:MM."

	// EventPastTime is the reply for a start time in the past.
	EventPastTime = "❌ The event time must be in the future."

	// EventLeadTime is the reply for a start time too close to now.
	EventLeadTime = "❌ Events must be scheduled at least 30 minutes in advance."

	// EventInvalidDuration is the reply for a duration that is not positive.
	EventInvalidDuration = "❌ The event duration must be positive."

	// EventInvalidID is the reply for a malformed event ID.
	EventInvalidID = "❌ Invalid event ID!"

	// EventNotFound is the reply when the event does not exist.
	EventNotFound = "❌ Event not found!"

	// EventCreated is the reply when an event is created. It takes the name and the local start time.
	EventCreated = "✅ Event **%s** created for %s"

	// EventRescheduled is the reply when an event is moved. It takes the name and the local start time.
	EventRescheduled = "✅ Event **%s** moved to %s"

	// EventDeleted is the reply when an event is deleted. It takes the event ID.
	EventDeleted = "✅ Event `%s` has been deleted"

	// EventNone is the reply when the guild has no events.
	EventNone = "ℹ️ No upcoming events."
)

const (
	// DataImported is the reply when a document is imported. It takes the kind.
	DataImported = "✅ Imported %s successfully!"

	// DataImportedGuild is the reply when a bundle is imported. It takes the document count.
	DataImportedGuild = "✅ Imported %d data file(s) successfully!"

	// DataImportedAll is the reply when an all-servers export is imported. It takes the server and document counts.
	DataImportedAll = "✅ Imported data for %d server(s) (%d file(s))."

	// DataCleared is the reply when a document is cleared. It takes the kind.
	DataCleared = "✅ %s cleared successfully!"

	// DataBackedUp is the reply when a backup is written. It takes the file path.
	DataBackedUp = "✅ Backup created: `%s`"

	// DataJSONOnly is the reply when a non-JSON file is uploaded.
	DataJSONOnly = "❌ Please upload a JSON file!"

	// DataTooLarge is the reply when an upload exceeds the import limit.
	DataTooLarge = "❌ File too large! Max size is 8MB."

	// DataInvalid is the reply when an import fails validation. It takes the reason.
	DataInvalid = "❌ Invalid data: %s"

	// DataUnknownKind is the reply for an unknown data type.
	DataUnknownKind = "❌ Unknown data type!"

	// DataNotClearable is the reply when a configuration document is cleared.
	DataNotClearable = "❌ This data type cannot be cleared."

	// DataExport is posted with an export. It takes the kind.
	DataExport = "📦 Export of %s"
)

const (
	// MiscPong is the reply of the ping command. It takes the latency in milliseconds.
	MiscPong = "🏓 Pong! Response time: %dms"

	// MiscSent is the reply when a message is sent to a channel. It takes the channel ID.
	MiscSent = "✅ Message sent to <#%s>"

	// MiscEmbedSent is the reply when an embed is sent to a channel. It takes the channel ID.
	MiscEmbedSent = "✅ Embed sent to <#%s>"

	// MiscInvalidColor is the reply for a malformed embed colour.
	MiscInvalidColor = "❌ Invalid color format! Use hex like FF0000"

	// MiscUnknownCommand is the reply of cmd_info for an unknown command. It takes the name.
	MiscUnknownCommand = "❌ Command `%s` not found. Use /help to see all commands."

	// MiscEmptyMessage is the reply when neither text nor a file is given.
	MiscEmptyMessage = "❌ Please provide either a message, a file, or both!"
)
