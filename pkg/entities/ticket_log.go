package entities

import "github.com/hound-bot/hound/pkg/custom"

// TicketLog is the archived record of a closed ticket. Logs are created
// exactly once at close time and are immutable afterwards. The log ID sequence
// is independent of the ticket ID sequence.
type TicketLog struct {
	// ID is the number of the log entry.
	ID int `json:"id" bson:"id"`

	// TicketID is the ID of the ticket that was closed.
	TicketID int `json:"ticket_id" bson:"ticket_id"`

	// ChannelID is the ID of the channel that the ticket was held in.
	ChannelID string `json:"channel_id" bson:"channel_id"`

	// UserID is the ID of the user that opened the ticket.
	UserID string `json:"user_id" bson:"user_id"`

	// Username is the username of the user that opened the ticket.
	Username string `json:"username" bson:"username"`

	// Status is the status the ticket closed with.
	Status TicketStatus `json:"status" bson:"status"`

	// Transcription is the rendered transcript of the ticket channel.
	Transcription string `json:"transcription" bson:"transcription"`

	// CreatedAt is the time that the log entry was written.
	CreatedAt custom.Datetime `json:"created_at" bson:"created_at"`
}
