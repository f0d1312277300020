package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv(EnvBotToken, "")
	t.Setenv(EnvPort, "")
	t.Setenv(EnvMongoUri, "")
	t.Setenv(EnvLogRetention, "")

	Parse(slog.Default())

	require.Equal(t, DefaultPort, Port)
	require.Zero(t, LogRetention)
}

func TestParse_Values(t *testing.T) {
	t.Setenv(EnvBotToken, "a-perfectly-plausible-token")
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvMongoUri, "")
	t.Setenv(EnvLogRetention, "250")

	Parse(slog.Default())

	require.Equal(t, "a-perfectly-plausible-token", BotToken)
	require.Equal(t, "8080", Port)
	require.Equal(t, 250, LogRetention)
}

func TestParse_InvalidRetention(t *testing.T) {
	t.Setenv(EnvPort, "")
	t.Setenv(EnvMongoUri, "")
	t.Setenv(EnvLogRetention, "lots")
	LogRetention = 0

	Parse(slog.Default())

	require.Zero(t, LogRetention)
}
