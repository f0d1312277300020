package config

const (
	// AppName is the name of the application.
	AppName = "hound"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvPort is the environment variable for the HTTP port.
	EnvPort = `PORT`

	// EnvMongoUri is the environment variable for the MongoDB URI. When unset
	// the stores run in memory for the lifetime of the process.
	EnvMongoUri = `MONGO_URI`

	// EnvLogRetention is the environment variable for the maximum number of
	// retained ticket logs. Zero or unset keeps everything.
	EnvLogRetention = `LOG_RETENTION`

	// DefaultPort is the HTTP port used when none is provided.
	DefaultPort = "5000"

	// MinTokenLength is the shortest bot token considered plausible. Anything
	// shorter aborts bot startup.
	MinTokenLength = 10
)

var (
	// BotToken is the token for the bot.
	BotToken string

	// Port is the port for the HTTP server.
	Port string

	// MongoUri is the URI for the MongoDB database.
	MongoUri string

	// LogRetention is the maximum number of retained ticket logs.
	LogRetention int
)
