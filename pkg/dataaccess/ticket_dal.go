package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hound-bot/hound/pkg/custom"
	"github.com/hound-bot/hound/pkg/dataaccess/monitoring"
	"github.com/hound-bot/hound/pkg/entities"
	"github.com/hound-bot/hound/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ticketDalName     = "ticket_dal"
	ticketsCollection = "tickets"
)

// TicketDal is the data access layer for tickets.
//
// A ticket is reachable by both its numeric ID and its channel ID, and both
// lookups resolve to the same logical record. Tickets are retained forever,
// even after the underlying channel has been deleted.
type TicketDal interface {
	// CreateTicket creates a ticket in the open state with the next sequence
	// ID and indexes it under both its numeric ID and its channel ID.
	CreateTicket(ctx context.Context, channelID, userID, username string) (*entities.Ticket, error)

	// GetByChannel gets the ticket for a channel. It returns nil without an
	// error when no ticket was ever created for the channel.
	GetByChannel(ctx context.Context, channelID string) (*entities.Ticket, error)

	// UpdateStatus updates the status of the ticket with the given numeric
	// ID. A nil claimedBy leaves the current claimant untouched; a non-nil
	// claimedBy overwrites it.
	UpdateStatus(ctx context.Context, id int, status entities.TicketStatus, claimedBy *string) error
}

// NewTicketDal creates a new ticket data access layer. The Mongo
// implementation is used when a Mongo connection has been established;
// otherwise the state is held in memory for the lifetime of the process.
func NewTicketDal(logger *slog.Logger) TicketDal {
	l := logger.With(slog.String(logging.KeyDal, ticketDalName))

	if MongoDB == nil {
		return newMemTicketDal(l)
	}

	return &mongoTicketDal{
		l:      l,
		client: MongoDB,
	}
}

type mongoTicketDal struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

func (d *mongoTicketDal) collection() *mongo.Collection {
	return d.client.Database(mongoDatabase).Collection(ticketsCollection)
}

func (d *mongoTicketDal) CreateTicket(ctx context.Context, channelID, userID, username string) (*entities.Ticket, error) {
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "create_ticket", mongoDatabase, ticketsCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "create_ticket", mongoDatabase, ticketsCollection))
	defer t.ObserveDuration()

	// Get the latest ticket to assign the next sequence ID.
	latest := new(entities.Ticket)
	opts := options.FindOne().SetSort(bson.M{"id": -1})
	err := d.collection().FindOne(ctx, bson.M{}, opts).Decode(latest)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error getting latest ticket: %w", err)
	}

	ticket := &entities.Ticket{
		ID:        latest.ID + 1,
		ChannelID: channelID,
		UserID:    userID,
		Username:  username,
		Status:    entities.StatusOpen,
		CreatedAt: custom.Now(),
	}

	if _, err := d.collection().InsertOne(ctx, ticket); err != nil {
		return nil, fmt.Errorf("error inserting ticket: %w", err)
	}
	return ticket, nil
}

func (d *mongoTicketDal) GetByChannel(ctx context.Context, channelID string) (*entities.Ticket, error) {
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "get_by_channel", mongoDatabase, ticketsCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "get_by_channel", mongoDatabase, ticketsCollection))
	defer t.ObserveDuration()

	ticket := new(entities.Ticket)
	err := d.collection().FindOne(ctx, bson.M{"channel_id": channelID}).Decode(ticket)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}
	return ticket, nil
}

func (d *mongoTicketDal) UpdateStatus(ctx context.Context, id int, status entities.TicketStatus, claimedBy *string) error {
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "update_status", mongoDatabase, ticketsCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "update_status", mongoDatabase, ticketsCollection))
	defer t.ObserveDuration()

	set := bson.M{"status": status}
	if claimedBy != nil {
		set["claimed_by"] = *claimedBy
	}

	if _, err := d.collection().UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("error updating ticket: %w", err)
	}
	return nil
}
