package main

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/hound-bot/hound/pkg/dataaccess"
	"github.com/hound-bot/hound/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestTicketOverwrites(t *testing.T) {
	overwrites := ticketOverwrites("guild-1", "user-1", "bot-1", "role-1")
	require.Len(t, overwrites, 4)

	everyone := overwrites[0]
	require.Equal(t, "guild-1", everyone.ID)
	require.Equal(t, discordgo.PermissionOverwriteTypeRole, everyone.Type)
	require.EqualValues(t, discordgo.PermissionViewChannel, everyone.Deny)

	requester := overwrites[1]
	require.Equal(t, "user-1", requester.ID)
	require.Equal(t, discordgo.PermissionOverwriteTypeMember, requester.Type)
	require.NotZero(t, requester.Allow&discordgo.PermissionViewChannel)
	require.NotZero(t, requester.Allow&discordgo.PermissionSendMessages)
	require.NotZero(t, requester.Allow&discordgo.PermissionReadMessageHistory)

	bot := overwrites[2]
	require.Equal(t, "bot-1", bot.ID)
	require.NotZero(t, bot.Allow&discordgo.PermissionViewChannel)
	require.NotZero(t, bot.Allow&discordgo.PermissionManageChannels)

	// The configured support role can view and participate.
	role := overwrites[3]
	require.Equal(t, "role-1", role.ID)
	require.Equal(t, discordgo.PermissionOverwriteTypeRole, role.Type)
	require.NotZero(t, role.Allow&discordgo.PermissionViewChannel)
	require.NotZero(t, role.Allow&discordgo.PermissionSendMessages)
}

func TestTicketOverwrites_NoSupportRole(t *testing.T) {
	overwrites := ticketOverwrites("guild-1", "user-1", "bot-1", "")
	require.Len(t, overwrites, 3)

	// No role grant beyond the @everyone deny.
	for _, o := range overwrites[1:] {
		require.Equal(t, discordgo.PermissionOverwriteTypeMember, o.Type)
	}
}

func TestClaimByChannel(t *testing.T) {
	ctx := context.Background()
	tickets := dataaccess.NewTicketDal(slog.Default())

	created, err := tickets.CreateTicket(ctx, "chan-1", "user-1", "wolf")
	require.NoError(t, err)

	claimed, err := claimByChannel(ctx, tickets, "chan-1", "alice")
	require.NoError(t, err)
	require.NotNil(t, claimed)
	require.Equal(t, created.ID, claimed.ID)

	got, err := tickets.GetByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.Equal(t, entities.StatusClaimed, got.Status)
	require.Equal(t, "alice", got.ClaimedBy)
}

func TestClaimByChannel_NoTicket(t *testing.T) {
	tickets := dataaccess.NewTicketDal(slog.Default())

	// A stale or foreign channel is a silent no-op.
	claimed, err := claimByChannel(context.Background(), tickets, "foreign-chan", "alice")
	require.NoError(t, err)
	require.Nil(t, claimed)
}

func TestArchiveTicket(t *testing.T) {
	ctx := context.Background()
	tickets := dataaccess.NewTicketDal(slog.Default())
	logs := dataaccess.NewLogDal(slog.Default(), 0)

	created, err := tickets.CreateTicket(ctx, "chan-1", "user-1", "wolf")
	require.NoError(t, err)

	_, err = claimByChannel(ctx, tickets, "chan-1", "alice")
	require.NoError(t, err)

	log, err := archiveTicket(ctx, tickets, logs, "chan-1", "<html>transcript</html>")
	require.NoError(t, err)
	require.NotNil(t, log)
	require.Equal(t, created.ID, log.TicketID)
	require.Equal(t, "chan-1", log.ChannelID)
	require.Equal(t, entities.StatusClosed, log.Status)

	// The ticket record survives the close with its claimant intact.
	got, err := tickets.GetByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, entities.StatusClosed, got.Status)
	require.Equal(t, "alice", got.ClaimedBy)

	// Exactly one log entry, carrying the transcript.
	transcription, err := logs.GetTranscription(ctx, log.ID)
	require.NoError(t, err)
	require.True(t, strings.Contains(transcription, "transcript"))

	next, err := logs.GetTranscription(ctx, log.ID+1)
	require.NoError(t, err)
	require.Empty(t, next)
}

func TestArchiveTicket_NoTicket(t *testing.T) {
	ctx := context.Background()
	tickets := dataaccess.NewTicketDal(slog.Default())
	logs := dataaccess.NewLogDal(slog.Default(), 0)

	log, err := archiveTicket(ctx, tickets, logs, "foreign-chan", "<html>transcript</html>")
	require.NoError(t, err)
	require.Nil(t, log)

	// Nothing was archived.
	transcription, err := logs.GetTranscription(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, transcription)
}
