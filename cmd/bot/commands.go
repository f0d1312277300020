package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	// SetupCmd posts the ticket-open panel in the current channel.
	SetupCmd = "!setup"

	// SupportCmd sets the guild's support role.
	SupportCmd = "!support"

	// LogChannelCmd sets the guild's log channel.
	LogChannelCmd = "!logchannel"
)

// setupCommand posts the ticket-open panel in the channel the command was
// issued in.
func setupCommand(a IApp, m *discordgo.MessageCreate) error {
	if err := sendTicketPanel(a, m.ChannelID); err != nil {
		return fmt.Errorf("error sending ticket panel: %w", err)
	}
	return replyTo(a, m, "✅ Painel enviado.")
}

// supportCommand sets the guild's support role from a role mention or a raw
// role ID. No argument is a no-op; the role is not validated at write time.
func supportCommand(a IApp, m *discordgo.MessageCreate) error {
	var roleID string
	if len(m.MentionRoles) > 0 {
		roleID = m.MentionRoles[0]
	} else if fields := strings.Fields(m.Content); len(fields) > 1 {
		roleID = fields[1]
	}
	if roleID == "" {
		return nil
	}

	if err := a.Guilds().SetSupportRole(context.Background(), m.GuildID, roleID); err != nil {
		return fmt.Errorf("error setting support role: %w", err)
	}
	return replyTo(a, m, "✅ Cargo definido.")
}

// logChannelCommand sets the guild's log channel from a channel mention or a
// raw channel ID, defaulting to the channel the command was issued in. The
// channel is not validated at write time.
func logChannelCommand(a IApp, m *discordgo.MessageCreate) error {
	channelID := m.ChannelID
	if fields := strings.Fields(m.Content); len(fields) > 1 {
		channelID = parseChannelArg(fields[1])
	}

	if err := a.Guilds().SetLogChannel(context.Background(), m.GuildID, channelID); err != nil {
		return fmt.Errorf("error setting log channel: %w", err)
	}
	return replyTo(a, m, "✅ Canal de logs definido.")
}

// parseChannelArg strips the channel mention wrapper from an argument, leaving
// raw IDs untouched.
func parseChannelArg(arg string) string {
	arg = strings.TrimPrefix(arg, "<#")
	return strings.TrimSuffix(arg, ">")
}
