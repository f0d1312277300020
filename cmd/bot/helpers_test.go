package main

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestTextInputValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: RenameTicketModalID,
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: RenameInputID, Value: "billing"},
				},
			},
		},
	}

	require.Equal(t, "billing", textInputValue(data, RenameInputID))

	// An input the modal never carried yields empty, which the rename handler
	// must still acknowledge.
	require.Empty(t, textInputValue(data, "other_input"))
}

func TestTextInputValue_NoComponents(t *testing.T) {
	require.Empty(t, textInputValue(discordgo.ModalSubmitInteractionData{}, RenameInputID))
}
