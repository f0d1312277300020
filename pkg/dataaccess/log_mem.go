package dataaccess

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hound-bot/hound/pkg/custom"
	"github.com/hound-bot/hound/pkg/entities"
)

// memLogDal holds ticket logs in process memory.
type memLogDal struct {
	// l is the logger.
	l *slog.Logger

	// retention is the maximum number of log entries kept. Zero keeps
	// everything.
	retention int

	mu     sync.RWMutex
	logs   map[int]*entities.TicketLog
	order  []int
	nextID int
}

func newMemLogDal(l *slog.Logger, retention int) *memLogDal {
	return &memLogDal{
		l:         l,
		retention: retention,
		logs:      make(map[int]*entities.TicketLog),
		nextID:    1,
	}
}

func (d *memLogDal) Append(_ context.Context, ticketID int, channelID, userID, username string, status entities.TicketStatus, transcription string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	log := &entities.TicketLog{
		ID:            d.nextID,
		TicketID:      ticketID,
		ChannelID:     channelID,
		UserID:        userID,
		Username:      username,
		Status:        status,
		Transcription: transcription,
		CreatedAt:     custom.Now(),
	}
	d.nextID++

	d.logs[log.ID] = log
	d.order = append(d.order, log.ID)

	// Evict the oldest entries beyond the retention window.
	for d.retention > 0 && len(d.order) > d.retention {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.logs, oldest)
	}

	return log.ID, nil
}

func (d *memLogDal) GetTranscription(_ context.Context, logID int) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	log, ok := d.logs[logID]
	if !ok {
		return "", nil
	}
	return log.Transcription, nil
}
