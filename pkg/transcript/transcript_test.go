package transcript

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

// fakeFetcher is a MessageFetcher backed by fixed data.
type fakeFetcher struct {
	channel    *discordgo.Channel
	channelErr error

	messages    []*discordgo.Message
	messagesErr error
}

func (f *fakeFetcher) Channel(_ string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return f.channel, f.channelErr
}

func (f *fakeFetcher) ChannelMessages(_ string, _ int, _, _, _ string, _ ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	return f.messages, f.messagesErr
}

func textChannel() *discordgo.Channel {
	return &discordgo.Channel{ID: "chan-1", Type: discordgo.ChannelTypeGuildText}
}

func message(author string, bot bool, content string, embeds int) *discordgo.Message {
	msg := &discordgo.Message{
		Author:    &discordgo.User{Username: author, Bot: bot},
		Content:   content,
		Timestamp: time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC),
	}
	for i := 0; i < embeds; i++ {
		msg.Embeds = append(msg.Embeds, &discordgo.MessageEmbed{Title: "embed"})
	}
	return msg
}

func TestGenerate_Placeholders(t *testing.T) {
	tests := []struct {
		name string
		f    *fakeFetcher
		want string
	}{
		{
			name: "ChannelFetchFails",
			f:    &fakeFetcher{channelErr: errors.New("unknown channel")},
			want: ErrPlaceholder,
		},
		{
			name: "ChannelNil",
			f:    &fakeFetcher{},
			want: NoMessagesPlaceholder,
		},
		{
			name: "ChannelNotTextCapable",
			f:    &fakeFetcher{channel: &discordgo.Channel{Type: discordgo.ChannelTypeGuildVoice}},
			want: NoMessagesPlaceholder,
		},
		{
			name: "MessageFetchFails",
			f:    &fakeFetcher{channel: textChannel(), messagesErr: errors.New("boom")},
			want: ErrPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Generate(tt.f, "chan-1"))
		})
	}
}

func TestGenerate_Document(t *testing.T) {
	f := &fakeFetcher{
		channel: textChannel(),
		// Newest first, as the API returns them.
		messages: []*discordgo.Message{
			message("bob", false, "second", 0),
			message("alice", false, "first", 0),
		},
	}

	got := Generate(f, "chan-1")
	require.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	require.True(t, strings.HasSuffix(got, "</body></html>"))
	require.Contains(t, got, "Transcrição do Ticket")

	// Chronological order, oldest first.
	require.Less(t, strings.Index(got, "first"), strings.Index(got, "second"))
	require.Contains(t, got, "01/03/2024, 15:04:05")
}

func TestRender_SkipsBareBotMessages(t *testing.T) {
	got := Render([]*discordgo.Message{
		message("botto", true, "bot chatter", 0),
		message("botto", true, "bot with embed", 1),
		message("alice", false, "hello", 0),
	})

	require.NotContains(t, got, "bot chatter")
	require.Contains(t, got, "bot with embed")
	require.Contains(t, got, "hello")
}

func TestRender_EscapesContent(t *testing.T) {
	got := Render([]*discordgo.Message{
		message("alice", false, "<script>alert(1)</script>", 0),
	})

	require.NotContains(t, got, "<script>")
	require.Contains(t, got, "&lt;script&gt;")
}

func TestRender_Empty(t *testing.T) {
	got := Render(nil)

	// Still a full document, just with no messages.
	require.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	require.NotContains(t, got, `<div class="message">`)
}
