package dataaccess

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/hound-bot/hound/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestMemLogDal_Append(t *testing.T) {
	ctx := context.Background()
	dal := newMemLogDal(slog.Default(), 0)

	first, err := dal.Append(ctx, 1, "chan-1", "user-1", "wolf", entities.StatusClosed, "<html>one</html>")
	require.NoError(t, err)
	require.Equal(t, 1, first)

	second, err := dal.Append(ctx, 2, "chan-2", "user-2", "fox", entities.StatusClosed, "<html>two</html>")
	require.NoError(t, err)
	require.Equal(t, 2, second)

	got, err := dal.GetTranscription(ctx, first)
	require.NoError(t, err)
	require.Equal(t, "<html>one</html>", got)
}

func TestMemLogDal_GetTranscription_Unknown(t *testing.T) {
	dal := newMemLogDal(slog.Default(), 0)

	got, err := dal.GetTranscription(context.Background(), 99)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMemLogDal_Retention(t *testing.T) {
	ctx := context.Background()
	dal := newMemLogDal(slog.Default(), 2)

	for i := 1; i <= 3; i++ {
		_, err := dal.Append(ctx, i, "chan", "user", "wolf", entities.StatusClosed, fmt.Sprintf("transcript %d", i))
		require.NoError(t, err)
	}

	// The oldest entry is evicted; the newest two survive with their IDs intact.
	got, err := dal.GetTranscription(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = dal.GetTranscription(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "transcript 2", got)

	got, err = dal.GetTranscription(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, "transcript 3", got)
}
