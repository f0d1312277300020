package dataaccess

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemGuildDal_AbsentConfig(t *testing.T) {
	ctx := context.Background()
	dal := newMemGuildDal(slog.Default())

	// Absent configuration is empty, never an error.
	role, err := dal.GetSupportRole(ctx, "guild-1")
	require.NoError(t, err)
	require.Empty(t, role)

	channel, err := dal.GetLogChannel(ctx, "guild-1")
	require.NoError(t, err)
	require.Empty(t, channel)
}

func TestMemGuildDal_MergeOnWrite(t *testing.T) {
	ctx := context.Background()
	dal := newMemGuildDal(slog.Default())

	require.NoError(t, dal.SetSupportRole(ctx, "guild-1", "role-1"))
	require.NoError(t, dal.SetLogChannel(ctx, "guild-1", "chan-1"))

	// Setting one field preserves the other.
	require.NoError(t, dal.SetSupportRole(ctx, "guild-1", "role-2"))

	role, err := dal.GetSupportRole(ctx, "guild-1")
	require.NoError(t, err)
	require.Equal(t, "role-2", role)

	channel, err := dal.GetLogChannel(ctx, "guild-1")
	require.NoError(t, err)
	require.Equal(t, "chan-1", channel)
}
