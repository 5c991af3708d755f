package logging

const (
	// KeyApp is the key for the application name.
	KeyApp = "app"

	// KeyError is the key for an error.
	KeyError = "err"

	// KeyDal is the key for the data access layer.
	KeyDal = "dal"

	// KeyGuildID is the key for a guild ID.
	KeyGuildID = "guild_id"

	// KeyUserID is the key for a user ID.
	KeyUserID = "user_id"

	// KeyThreadID is the key for a ticket thread ID.
	KeyThreadID = "thread_id"

	// KeyCommand is the key for a slash command or component ID.
	KeyCommand = "command"
)
