package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hound-bot/hound/cmd/bot/monitoring"
	"github.com/hound-bot/hound/pkg/dataaccess"
	"github.com/hound-bot/hound/pkg/entities"
	"github.com/hound-bot/hound/pkg/logging"
	"github.com/hound-bot/hound/pkg/transcript"
)

const (
	// OpenTicketButtonID is the ID for the open ticket button.
	OpenTicketButtonID = "open_ticket"

	// ClaimTicketButtonID is the ID for the claim ticket button.
	ClaimTicketButtonID = "claim_ticket"

	// CloseTicketButtonID is the ID for the close ticket button.
	CloseTicketButtonID = "close_ticket_btn"

	// RenameTicketButtonID is the ID for the rename ticket button.
	RenameTicketButtonID = "rename_ticket_btn"

	// RenameTicketModalID is the ID for the rename ticket modal.
	RenameTicketModalID = "rename_ticket_modal"

	// RenameInputID is the ID for the text input on the rename modal.
	RenameInputID = "new_name"
)

const (
	// ticketNamePrefix is the naming convention for ticket channels.
	ticketNamePrefix = "ticket-"

	// closeDeleteDelay is how long a closed channel lives before it is
	// deleted. The deletion is not cancellable once scheduled.
	closeDeleteDelay = 5 * time.Second

	// panelColor is the embed colour used on the panels.
	panelColor = 0x2B2D31
)

// sendTicketPanel posts the ticket-open panel into the channel.
func sendTicketPanel(a IApp, channelID string) error {
	message := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Suporte",
				Description: "> Clique no botão abaixo para abrir um ticket.",
				Color:       panelColor,
				Timestamp:   time.Now().UTC().Format(time.RFC3339),
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Abrir Ticket",
						Style:    discordgo.PrimaryButton,
						CustomID: OpenTicketButtonID,
						Emoji:    &discordgo.ComponentEmoji{Name: "\U0001F4E9"},
					},
				},
			},
		},
	}

	if _, err := a.Session().ChannelMessageSendComplex(channelID, message); err != nil {
		return fmt.Errorf("error sending panel message: %w", err)
	}
	return nil
}

// openTicket creates the private ticket channel, the ticket record and the
// in-channel control panel, then acknowledges the requester privately.
func openTicket(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	user := i.Member.User

	supportRole, err := a.Guilds().GetSupportRole(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting support role: %w", err)
	}

	channel, err := a.Session().GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:                 ticketNamePrefix + strings.ToLower(user.Username),
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                fmt.Sprintf("Ticket created by %s", user.Username),
		PermissionOverwrites: ticketOverwrites(i.GuildID, user.ID, a.Session().State.User.ID, supportRole),
	})
	if err != nil {
		return fmt.Errorf("error creating ticket channel: %w", err)
	}

	ticket, err := a.Tickets().CreateTicket(ctx, channel.ID, user.ID, user.Username)
	if err != nil {
		return fmt.Errorf("error saving ticket: %w", err)
	}

	mention := fmt.Sprintf("<@%s>", user.ID)
	if supportRole != "" {
		mention += fmt.Sprintf(" <@&%s>", supportRole)
	}

	// Post the control panel into the new channel.
	if _, err := a.Session().ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Content: mention,
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Atendimento Aberto",
				Description: "Aguarde o suporte.",
				Color:       panelColor,
				Timestamp:   time.Now().UTC().Format(time.RFC3339),
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Assumir",
						Style:    discordgo.SuccessButton,
						CustomID: ClaimTicketButtonID,
						Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
					},
					discordgo.Button{
						Label:    "Encerrar",
						Style:    discordgo.SecondaryButton,
						CustomID: CloseTicketButtonID,
						Emoji:    &discordgo.ComponentEmoji{Name: "✖️"},
					},
					discordgo.Button{
						Label:    "Renomear",
						Style:    discordgo.SecondaryButton,
						CustomID: RenameTicketButtonID,
						Emoji:    &discordgo.ComponentEmoji{Name: "✏️"},
					},
				},
			},
		},
	}); err != nil {
		return fmt.Errorf("error sending control panel: %w", err)
	}

	monitoring.TicketsOpened.Inc()
	a.Log().Info("Ticket opened",
		slog.Int(logging.KeyTicket, ticket.ID),
		slog.String(logging.KeyChannel, channel.ID),
		slog.String(logging.KeyUser, user.ID))

	return respondEphemeral(a, i, fmt.Sprintf("✅ Ticket criado: <#%s>", channel.ID))
}

// ticketOverwrites computes the permission overwrites for a new ticket
// channel: hidden from the guild at large, visible to the requester, the bot
// itself and the support role when one is configured.
func ticketOverwrites(guildID, userID, botID, supportRole string) []*discordgo.PermissionOverwrite {
	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   guildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    userID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory,
		},
		{
			ID:    botID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionManageChannels,
		},
	}
	if supportRole != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    supportRole,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory,
		})
	}
	return overwrites
}

// claimTicket marks the ticket as claimed by the acting staff member and
// announces the claim in-channel. A channel with no ticket is a no-op.
func claimTicket(a IApp, i *discordgo.InteractionCreate) error {
	ticket, err := claimByChannel(context.Background(), a.Tickets(), i.ChannelID, i.Member.User.ID)
	if err != nil {
		return fmt.Errorf("error claiming ticket: %w", err)
	}
	if ticket == nil {
		// Stale or foreign channel.
		return nil
	}

	return respondPublic(a, i, fmt.Sprintf("Atendimento assumido por <@%s>", i.Member.User.ID))
}

// claimByChannel looks up the ticket for the channel and, when one exists,
// records the actor as claimant. A second claim by a different actor
// overwrites the claimant (last write wins).
func claimByChannel(ctx context.Context, tickets dataaccess.TicketDal, channelID, actor string) (*entities.Ticket, error) {
	ticket, err := tickets.GetByChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}
	if ticket == nil {
		return nil, nil
	}

	if err := tickets.UpdateStatus(ctx, ticket.ID, entities.StatusClaimed, &actor); err != nil {
		return nil, fmt.Errorf("error updating ticket: %w", err)
	}
	return ticket, nil
}

// closeTicket archives the channel transcript, notifies the requester and
// schedules the channel for deletion. A channel with no ticket still gets
// deleted, it just archives nothing.
func closeTicket(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	transcription := transcript.Generate(a.Session(), i.ChannelID)

	log, err := archiveTicket(ctx, a.Tickets(), a.Logs(), i.ChannelID, transcription)
	if err != nil {
		return fmt.Errorf("error archiving ticket: %w", err)
	}
	if log != nil {
		monitoring.TicketsClosed.Inc()
		a.Log().Info("Ticket closed",
			slog.Int(logging.KeyTicket, log.TicketID),
			slog.String(logging.KeyChannel, i.ChannelID),
			slog.String(logging.KeyUser, i.Member.User.ID))

		// Best effort; the user may have DMs disabled and the log channel may
		// be unset or gone.
		notifyTicketClosed(a, log.UserID)
		notifyLogChannel(a, i.GuildID, log)
	}

	if err := respondPublic(a, i, "Encerrando canal em 5s..."); err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}

	channelID := i.ChannelID
	time.AfterFunc(closeDeleteDelay, func() {
		if _, err := a.Session().ChannelDelete(channelID); err != nil {
			a.Log().Warn("Error deleting ticket channel",
				slog.String(logging.KeyError, err.Error()),
				slog.String(logging.KeyChannel, channelID))
		}
	})
	return nil
}

// archiveTicket appends the closed-ticket log entry and flips the ticket
// record to closed, keeping the claimant. It returns nil when the channel has
// no ticket.
func archiveTicket(ctx context.Context, tickets dataaccess.TicketDal, logs dataaccess.LogDal, channelID, transcription string) (*entities.TicketLog, error) {
	ticket, err := tickets.GetByChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}
	if ticket == nil {
		return nil, nil
	}

	logID, err := logs.Append(ctx, ticket.ID, ticket.ChannelID, ticket.UserID, ticket.Username, entities.StatusClosed, transcription)
	if err != nil {
		return nil, fmt.Errorf("error appending ticket log: %w", err)
	}

	if err := tickets.UpdateStatus(ctx, ticket.ID, entities.StatusClosed, nil); err != nil {
		return nil, fmt.Errorf("error updating ticket: %w", err)
	}

	return &entities.TicketLog{
		ID:            logID,
		TicketID:      ticket.ID,
		ChannelID:     ticket.ChannelID,
		UserID:        ticket.UserID,
		Username:      ticket.Username,
		Status:        entities.StatusClosed,
		Transcription: transcription,
	}, nil
}

// renameTicketButton presents the rename modal.
func renameTicketButton(a IApp, i *discordgo.InteractionCreate) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: RenameTicketModalID,
			Title:    "Renomear Ticket",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:  RenameInputID,
							Label:     "Novo nome",
							Style:     discordgo.TextInputShort,
							Required:  true,
							MaxLength: 90,
						},
					},
				},
			},
		},
	})
}

// renameTicketModal renames the channel with the caller-supplied text, keeping
// the ticket naming convention.
func renameTicketModal(a IApp, i *discordgo.InteractionCreate) error {
	name := textInputValue(i.ModalSubmitData(), RenameInputID)
	if name == "" {
		// The interaction still has to be acknowledged or Discord reports it
		// as failed.
		return respondEphemeral(a, i, "Informe um nome para o ticket.")
	}

	if _, err := a.Session().ChannelEdit(i.ChannelID, &discordgo.ChannelEdit{
		Name: ticketNamePrefix + name,
	}); err != nil {
		return fmt.Errorf("error renaming channel: %w", err)
	}

	return respondEphemeral(a, i, "✅ Nome alterado.")
}
