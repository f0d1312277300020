package dataaccess

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hound-bot/hound/pkg/custom"
	"github.com/hound-bot/hound/pkg/entities"
)

// memTicketDal holds tickets in process memory. Both indexes point at the same
// record, so a mutation through one index is visible through the other. The
// mutex serializes mutations; simultaneous claims still resolve to whichever
// write lands last.
type memTicketDal struct {
	// l is the logger.
	l *slog.Logger

	mu        sync.RWMutex
	byID      map[int]*entities.Ticket
	byChannel map[string]*entities.Ticket
	nextID    int
}

func newMemTicketDal(l *slog.Logger) *memTicketDal {
	return &memTicketDal{
		l:         l,
		byID:      make(map[int]*entities.Ticket),
		byChannel: make(map[string]*entities.Ticket),
		nextID:    1,
	}
}

func (d *memTicketDal) CreateTicket(_ context.Context, channelID, userID, username string) (*entities.Ticket, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ticket := &entities.Ticket{
		ID:        d.nextID,
		ChannelID: channelID,
		UserID:    userID,
		Username:  username,
		Status:    entities.StatusOpen,
		CreatedAt: custom.Now(),
	}
	d.nextID++

	d.byID[ticket.ID] = ticket
	d.byChannel[channelID] = ticket
	return ticket, nil
}

func (d *memTicketDal) GetByChannel(_ context.Context, channelID string) (*entities.Ticket, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.byChannel[channelID], nil
}

func (d *memTicketDal) UpdateStatus(_ context.Context, id int, status entities.TicketStatus, claimedBy *string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ticket, ok := d.byID[id]
	if !ok {
		// Updating an unknown ticket is a no-op, matching the lookup contract.
		return nil
	}

	ticket.Status = status
	if claimedBy != nil {
		ticket.ClaimedBy = *claimedBy
	}
	return nil
}
