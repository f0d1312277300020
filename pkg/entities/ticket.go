package entities

import (
	"fmt"
	"strings"

	"github.com/hound-bot/hound/pkg/custom"
)

// TicketStatus is the lifecycle state of a ticket.
type TicketStatus string

const (
	// StatusOpen is the state of a ticket that has been created and not yet
	// picked up by staff.
	StatusOpen TicketStatus = "open"

	// StatusClaimed is the state of a ticket that is being actively handled.
	StatusClaimed TicketStatus = "claimed"

	// StatusClosed is the state of a ticket whose channel has been closed.
	StatusClosed TicketStatus = "closed"
)

// Ticket is a support ticket. A ticket is reachable by both its numeric ID and
// its channel ID for the lifetime of the record; the record outlives the
// channel it was created for.
type Ticket struct {
	// ID is the number of the ticket. IDs are assigned monotonically at
	// creation time.
	ID int `json:"id" bson:"id"`

	// ChannelID is the ID of the channel that the ticket is held in.
	ChannelID string `json:"channel_id" bson:"channel_id"`

	// UserID is the ID of the user that opened the ticket.
	UserID string `json:"user_id" bson:"user_id"`

	// Username is the username of the user that opened the ticket.
	Username string `json:"username" bson:"username"`

	// Status is the lifecycle state of the ticket.
	Status TicketStatus `json:"status" bson:"status"`

	// ClaimedBy is the ID of the staff member that claimed the ticket. Empty
	// until the ticket is claimed.
	ClaimedBy string `json:"claimed_by,omitempty" bson:"claimed_by,omitempty"`

	// CreatedAt is the time that the ticket was opened.
	CreatedAt custom.Datetime `json:"created_at" bson:"created_at"`
}

// ChannelName returns the name for the ticket channel.
func (t *Ticket) ChannelName() string {
	return fmt.Sprintf("ticket-%s", strings.ToLower(t.Username))
}
