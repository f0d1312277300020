package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hound-bot/hound/pkg/dataaccess/monitoring"
	"github.com/hound-bot/hound/pkg/entities"
	"github.com/hound-bot/hound/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	guildDalName     = "guild_dal"
	guildsCollection = "guilds"
)

// GuildDal is the data access layer for per-guild configuration.
//
// Reads never fail on absent configuration; they return an empty string.
// Writes overwrite the one field they name and preserve the rest of the
// configuration. References are not validated at write time.
type GuildDal interface {
	// GetLogChannel gets the log channel for a guild.
	GetLogChannel(ctx context.Context, guildID string) (string, error)

	// SetLogChannel sets the log channel for a guild.
	SetLogChannel(ctx context.Context, guildID, channelID string) error

	// GetSupportRole gets the support role for a guild.
	GetSupportRole(ctx context.Context, guildID string) (string, error)

	// SetSupportRole sets the support role for a guild.
	SetSupportRole(ctx context.Context, guildID, roleID string) error
}

// NewGuildDal creates a new guild data access layer. The Mongo implementation
// is used when a Mongo connection has been established; otherwise the state is
// held in memory for the lifetime of the process.
func NewGuildDal(logger *slog.Logger) GuildDal {
	l := logger.With(slog.String(logging.KeyDal, guildDalName))

	if MongoDB == nil {
		return newMemGuildDal(l)
	}

	return &mongoGuildDal{
		l:      l,
		client: MongoDB,
	}
}

type mongoGuildDal struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

func (g *mongoGuildDal) collection() *mongo.Collection {
	return g.client.Database(mongoDatabase).Collection(guildsCollection)
}

func (g *mongoGuildDal) getGuild(ctx context.Context, guildID, query string) (*entities.Guild, error) {
	monitoring.MongoTotalRequests.WithLabelValues(guildDalName, query, mongoDatabase, guildsCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(guildDalName, query, mongoDatabase, guildsCollection))
	defer t.ObserveDuration()

	guild := new(entities.Guild)
	err := g.collection().FindOne(ctx, bson.M{"id": guildID}).Decode(guild)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Absent configuration is a valid state, not an error.
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error getting guild: %w", err)
	}
	return guild, nil
}

func (g *mongoGuildDal) setField(ctx context.Context, guildID, query, field, value string) error {
	monitoring.MongoTotalRequests.WithLabelValues(guildDalName, query, mongoDatabase, guildsCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(guildDalName, query, mongoDatabase, guildsCollection))
	defer t.ObserveDuration()

	// Upserting a single field creates the guild lazily and preserves any
	// other configured fields.
	opts := options.Update().SetUpsert(true)
	_, err := g.collection().UpdateOne(ctx, bson.M{"id": guildID}, bson.M{"$set": bson.M{field: value}}, opts)
	if err != nil {
		return fmt.Errorf("error updating guild: %w", err)
	}
	return nil
}

func (g *mongoGuildDal) GetLogChannel(ctx context.Context, guildID string) (string, error) {
	guild, err := g.getGuild(ctx, guildID, "get_log_channel")
	if err != nil || guild == nil {
		return "", err
	}
	return guild.LogChannelID, nil
}

func (g *mongoGuildDal) SetLogChannel(ctx context.Context, guildID, channelID string) error {
	return g.setField(ctx, guildID, "set_log_channel", "log_channel_id", channelID)
}

func (g *mongoGuildDal) GetSupportRole(ctx context.Context, guildID string) (string, error) {
	guild, err := g.getGuild(ctx, guildID, "get_support_role")
	if err != nil || guild == nil {
		return "", err
	}
	return guild.SupportRoleID, nil
}

func (g *mongoGuildDal) SetSupportRole(ctx context.Context, guildID, roleID string) error {
	return g.setField(ctx, guildID, "set_support_role", "support_role_id", roleID)
}
