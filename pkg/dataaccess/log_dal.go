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
	logDalName     = "log_dal"
	logsCollection = "ticket_logs"
)

// LogDal is the data access layer for archived ticket logs. Logs are
// append-only; there are no update or delete operations. Retention is bounded
// only when a retention limit is configured, in which case the oldest entries
// are evicted first.
type LogDal interface {
	// Append appends a log entry with the next sequence ID and returns that
	// ID.
	Append(ctx context.Context, ticketID int, channelID, userID, username string, status entities.TicketStatus, transcription string) (int, error)

	// GetTranscription gets the transcription for a log entry. It returns an
	// empty string without an error when no entry exists for the ID.
	GetTranscription(ctx context.Context, logID int) (string, error)
}

// NewLogDal creates a new ticket log data access layer. The retention limit is
// the maximum number of log entries kept; zero keeps everything.
func NewLogDal(logger *slog.Logger, retention int) LogDal {
	l := logger.With(slog.String(logging.KeyDal, logDalName))

	if MongoDB == nil {
		return newMemLogDal(l, retention)
	}

	return &mongoLogDal{
		l:         l,
		client:    MongoDB,
		retention: retention,
	}
}

type mongoLogDal struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client

	// retention is the maximum number of log entries kept. Zero keeps
	// everything.
	retention int
}

func (d *mongoLogDal) collection() *mongo.Collection {
	return d.client.Database(mongoDatabase).Collection(logsCollection)
}

func (d *mongoLogDal) Append(ctx context.Context, ticketID int, channelID, userID, username string, status entities.TicketStatus, transcription string) (int, error) {
	monitoring.MongoTotalRequests.WithLabelValues(logDalName, "append", mongoDatabase, logsCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(logDalName, "append", mongoDatabase, logsCollection))
	defer t.ObserveDuration()

	// Get the latest log entry to assign the next sequence ID.
	latest := new(entities.TicketLog)
	opts := options.FindOne().SetSort(bson.M{"id": -1})
	err := d.collection().FindOne(ctx, bson.M{}, opts).Decode(latest)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("error getting latest log entry: %w", err)
	}

	log := &entities.TicketLog{
		ID:            latest.ID + 1,
		TicketID:      ticketID,
		ChannelID:     channelID,
		UserID:        userID,
		Username:      username,
		Status:        status,
		Transcription: transcription,
		CreatedAt:     custom.Now(),
	}

	if _, err := d.collection().InsertOne(ctx, log); err != nil {
		return 0, fmt.Errorf("error inserting log entry: %w", err)
	}

	if d.retention > 0 {
		// Evict everything older than the retention window.
		if _, err := d.collection().DeleteMany(ctx, bson.M{"id": bson.M{"$lte": log.ID - d.retention}}); err != nil {
			d.l.Warn("Error evicting old log entries", slog.String(logging.KeyError, err.Error()))
		}
	}

	return log.ID, nil
}

func (d *mongoLogDal) GetTranscription(ctx context.Context, logID int) (string, error) {
	monitoring.MongoTotalRequests.WithLabelValues(logDalName, "get_transcription", mongoDatabase, logsCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(logDalName, "get_transcription", mongoDatabase, logsCollection))
	defer t.ObserveDuration()

	log := new(entities.TicketLog)
	err := d.collection().FindOne(ctx, bson.M{"id": logID}).Decode(log)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("error getting log entry: %w", err)
	}
	return log.Transcription, nil
}
