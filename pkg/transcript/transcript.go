// Package transcript renders the recent history of a ticket channel into a
// self-contained HTML document. Rendering never fails from the caller's point
// of view: any fetch problem collapses into a fixed placeholder string, so the
// result is always present.
package transcript

import (
	"html"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	// FetchLimit is the maximum number of messages included in a transcript.
	// Older history is dropped.
	FetchLimit = 100

	// ErrPlaceholder is returned when the channel cannot be resolved or the
	// message fetch fails.
	ErrPlaceholder = "Erro ao gerar transcrição"

	// NoMessagesPlaceholder is returned when the channel is not text-capable.
	NoMessagesPlaceholder = "Nenhuma mensagem disponível"
)

// timestampFormat is the pt-BR locale shape used in the rendered document.
const timestampFormat = "02/01/2006, 15:04:05"

const (
	documentHeader = `<!DOCTYPE html><html><head><meta charset="utf-8"><title>Transcrição</title><style>body { background-color: #313338; color: #dbdee1; font-family: sans-serif; padding: 20px; } .message { margin-bottom: 15px; border-bottom: 1px solid #404249; padding-bottom: 10px; } .author { font-weight: bold; color: #ffffff; } .timestamp { font-size: 0.8em; color: #949ba4; margin-left: 10px; } .content { margin-top: 5px; white-space: pre-wrap; }</style></head><body><h1>Transcrição do Ticket</h1>`
	documentFooter = `</body></html>`
)

// MessageFetcher is the subset of the Discord session used to build a
// transcript. *discordgo.Session satisfies it.
type MessageFetcher interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
}

// Generate fetches up to the FetchLimit most recent messages of the channel
// and renders them oldest first.
func Generate(f MessageFetcher, channelID string) string {
	channel, err := f.Channel(channelID)
	if err != nil {
		return ErrPlaceholder
	}
	if channel == nil || !textCapable(channel.Type) {
		return NoMessagesPlaceholder
	}

	// Messages come back newest first.
	messages, err := f.ChannelMessages(channelID, FetchLimit, "", "", "")
	if err != nil {
		return ErrPlaceholder
	}

	return Render(messages)
}

// Render renders messages, given newest first, into the transcript document.
// Messages from bot authors carrying no embeds are skipped.
func Render(messages []*discordgo.Message) string {
	var b strings.Builder
	b.WriteString(documentHeader)

	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		if msg.Author == nil {
			continue
		}
		if msg.Author.Bot && len(msg.Embeds) == 0 {
			continue
		}

		timestamp := ""
		if !msg.Timestamp.IsZero() {
			timestamp = msg.Timestamp.Format(timestampFormat)
		}

		b.WriteString(`<div class="message"><span class="author">`)
		b.WriteString(html.EscapeString(msg.Author.Username))
		b.WriteString(`</span><span class="timestamp">`)
		b.WriteString(timestamp)
		b.WriteString(`</span><div class="content">`)
		b.WriteString(html.EscapeString(msg.Content))
		b.WriteString(`</div></div>`)
	}

	b.WriteString(documentFooter)
	return b.String()
}

func textCapable(t discordgo.ChannelType) bool {
	switch t {
	case discordgo.ChannelTypeGuildText,
		discordgo.ChannelTypeDM,
		discordgo.ChannelTypeGroupDM,
		discordgo.ChannelTypeGuildNews,
		discordgo.ChannelTypeGuildNewsThread,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread:
		return true
	default:
		return false
	}
}
