package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hound-bot/hound/pkg/entities"
	"github.com/hound-bot/hound/pkg/logging"
)

// ErrUserErrorProcessing is the message shown to a user when processing their
// interaction failed.
const ErrUserErrorProcessing = "Something went wrong processing your request. Please try again later."

func respondEphemeral(a IApp, i *discordgo.InteractionCreate, content string) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondPublic(a IApp, i *discordgo.InteractionCreate, content string) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func replyTo(a IApp, m *discordgo.MessageCreate, content string) error {
	_, err := a.Session().ChannelMessageSendReply(m.ChannelID, content, m.Reference())
	return err
}

// notifyTicketClosed sends a best-effort DM to the ticket requester. Failure
// here is expected (DMs disabled, user gone) and is never surfaced.
func notifyTicketClosed(a IApp, userID string) {
	dm, err := a.Session().UserChannelCreate(userID)
	if err != nil {
		a.Log().Debug("Could not open DM channel", slog.String(logging.KeyUser, userID))
		return
	}
	if _, err := a.Session().ChannelMessageSend(dm.ID, "Seu ticket foi encerrado. Use o comando no servidor para ver logs se configurado."); err != nil {
		a.Log().Debug("Could not notify user of closed ticket", slog.String(logging.KeyUser, userID))
	}
}

// notifyLogChannel posts a close notice into the guild's configured log
// channel. An unconfigured log channel is a valid state; send failures are
// swallowed.
func notifyLogChannel(a IApp, guildID string, log *entities.TicketLog) {
	channelID, err := a.Guilds().GetLogChannel(context.Background(), guildID)
	if err != nil {
		a.Log().Debug("Could not get log channel", slog.String(logging.KeyGuild, guildID))
		return
	}
	if channelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Ticket Encerrado",
		Description: fmt.Sprintf("Ticket #%d de %s foi encerrado.\nTranscrição: `/transcription/%d`", log.TicketID, log.Username, log.ID),
		Color:       panelColor,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := a.Session().ChannelMessageSendEmbed(channelID, embed); err != nil {
		a.Log().Debug("Could not post to log channel", slog.String(logging.KeyChannel, channelID))
	}
}

// textInputValue extracts the value of a text input from submitted modal data.
func textInputValue(data discordgo.ModalSubmitInteractionData, inputID string) string {
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range ar.Components {
			if in, ok := component.(*discordgo.TextInput); ok && in.CustomID == inputID {
				return in.Value
			}
		}
	}
	return ""
}
