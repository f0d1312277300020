package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/hound-bot/hound/pkg/dataaccess"
	"github.com/hound-bot/hound/pkg/dataaccess/connection"
	"github.com/hound-bot/hound/pkg/logging"
)

// Parse reads the configuration from the environment. The bot token is
// validated later, at bot startup; a missing token must not stop the HTTP
// server from coming up.
func Parse(l *slog.Logger) {
	if envBT := os.Getenv(EnvBotToken); envBT != "" {
		l.Debug("Found bot token in environment", slog.String("key", EnvBotToken))
		BotToken = envBT
	}

	if envPort := os.Getenv(EnvPort); envPort != "" {
		l.Debug("Found port in environment", slog.String("key", EnvPort))
		Port = envPort
	} else {
		Port = DefaultPort
		l.Info("No port provided in environment, defaulting to "+DefaultPort, slog.String("key", EnvPort))
	}

	if envRetention := os.Getenv(EnvLogRetention); envRetention != "" {
		got, err := strconv.Atoi(envRetention)
		if err != nil || got < 0 {
			l.Warn("Invalid log retention in environment, keeping all logs", slog.String("key", EnvLogRetention))
		} else {
			LogRetention = got
		}
	}

	if envMongoUri := os.Getenv(EnvMongoUri); envMongoUri != "" {
		l.Debug("Found MongoDB URI in environment", slog.String("key", EnvMongoUri))
		MongoUri = envMongoUri
		connectMongo(l)
	}
}

func connectMongo(l *slog.Logger) {
	mongoConn := new(connection.MongoDB)
	mongoConn.ConnectionString = MongoUri

	db, err := mongoConn.Connect()
	if err != nil {
		l.Error("Error connecting to mongo", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	} else if db == nil {
		l.Error("MongoDB came back nil", slog.String(logging.KeyError, "MongoDB came back nil"))
		os.Exit(1)
	}

	dataaccess.MongoDB = db
	l.Debug("Connected to MongoDB", slog.String("key", EnvMongoUri))
}
