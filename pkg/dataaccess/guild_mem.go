package dataaccess

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hound-bot/hound/pkg/entities"
)

// memGuildDal holds guild configuration in process memory. Guilds are created
// lazily on the first write and never removed.
type memGuildDal struct {
	// l is the logger.
	l *slog.Logger

	mu     sync.RWMutex
	guilds map[string]*entities.Guild
}

func newMemGuildDal(l *slog.Logger) *memGuildDal {
	return &memGuildDal{
		l:      l,
		guilds: make(map[string]*entities.Guild),
	}
}

// guild returns the stored guild, creating it when absent. Callers must hold
// the write lock.
func (g *memGuildDal) guild(guildID string) *entities.Guild {
	guild, ok := g.guilds[guildID]
	if !ok {
		guild = &entities.Guild{ID: guildID}
		g.guilds[guildID] = guild
	}
	return guild
}

func (g *memGuildDal) GetLogChannel(_ context.Context, guildID string) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	guild, ok := g.guilds[guildID]
	if !ok {
		return "", nil
	}
	return guild.LogChannelID, nil
}

func (g *memGuildDal) SetLogChannel(_ context.Context, guildID, channelID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.guild(guildID).LogChannelID = channelID
	return nil
}

func (g *memGuildDal) GetSupportRole(_ context.Context, guildID string) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	guild, ok := g.guilds[guildID]
	if !ok {
		return "", nil
	}
	return guild.SupportRoleID, nil
}

func (g *memGuildDal) SetSupportRole(_ context.Context, guildID, roleID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.guild(guildID).SupportRoleID = roleID
	return nil
}
