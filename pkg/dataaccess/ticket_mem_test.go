package dataaccess

import (
	"context"
	"log/slog"
	"testing"

	"github.com/hound-bot/hound/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestMemTicketDal_CreateTicket(t *testing.T) {
	ctx := context.Background()
	dal := newMemTicketDal(slog.Default())

	ticket, err := dal.CreateTicket(ctx, "chan-1", "user-1", "wolf")
	require.NoError(t, err)
	require.Equal(t, 1, ticket.ID)
	require.Equal(t, entities.StatusOpen, ticket.Status)
	require.Empty(t, ticket.ClaimedBy)
	require.Equal(t, "ticket-wolf", ticket.ChannelName())

	// IDs are monotonic.
	second, err := dal.CreateTicket(ctx, "chan-2", "user-2", "fox")
	require.NoError(t, err)
	require.Equal(t, 2, second.ID)

	// Immediately reachable by channel.
	got, err := dal.GetByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, ticket.ID, got.ID)
}

func TestMemTicketDal_GetByChannel_Unknown(t *testing.T) {
	dal := newMemTicketDal(slog.Default())

	got, err := dal.GetByChannel(context.Background(), "never-existed")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMemTicketDal_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	dal := newMemTicketDal(slog.Default())

	ticket, err := dal.CreateTicket(ctx, "chan-1", "user-1", "wolf")
	require.NoError(t, err)

	alice := "alice"
	require.NoError(t, dal.UpdateStatus(ctx, ticket.ID, entities.StatusClaimed, &alice))

	// The mutation must be visible through the channel index; both indexes
	// alias the same record.
	got, err := dal.GetByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.Equal(t, entities.StatusClaimed, got.Status)
	require.Equal(t, "alice", got.ClaimedBy)

	// A second claim by a different actor overwrites the claimant.
	bob := "bob"
	require.NoError(t, dal.UpdateStatus(ctx, ticket.ID, entities.StatusClaimed, &bob))
	got, err = dal.GetByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.Equal(t, "bob", got.ClaimedBy)

	// Closing with a nil claimant leaves the claimant untouched.
	require.NoError(t, dal.UpdateStatus(ctx, ticket.ID, entities.StatusClosed, nil))
	got, err = dal.GetByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.Equal(t, entities.StatusClosed, got.Status)
	require.Equal(t, "bob", got.ClaimedBy)
}

func TestMemTicketDal_UpdateStatus_Unknown(t *testing.T) {
	dal := newMemTicketDal(slog.Default())

	// Updating a ticket that does not exist is a silent no-op.
	require.NoError(t, dal.UpdateStatus(context.Background(), 42, entities.StatusClosed, nil))
}
