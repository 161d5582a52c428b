// Package feed keeps the latest full snapshot of the store and pushes it to
// subscribers whenever it changes.
package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"solune-backend/models"
	"solune-backend/store"
)

// Snapshot is every collection the analytics read, loaded at one instant.
type Snapshot struct {
	Version           uint64
	LoadedAt          time.Time
	Appointments      []models.Appointment
	Expenses          []models.Expense
	Products          []models.Product
	StockTransactions []models.StockTransaction
	Services          []models.Service
	ServiceGroups     []models.ServiceGroup
	Stylists          []models.Stylist
}

// Hub owns the current snapshot. It is safe for concurrent use.
type Hub struct {
	store  *store.Store
	logger *zap.Logger

	mu      sync.RWMutex
	current *Snapshot
	version uint64
	subs    map[int]chan *Snapshot
	nextID  int
	closed  bool
	refresh sync.Mutex
}

func NewHub(s *store.Store, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		store:   s,
		logger:  logger,
		current: &Snapshot{},
		subs:    make(map[int]chan *Snapshot),
	}
}

// Refresh reloads every collection and publishes the result. Concurrent
// calls are serialised so versions are published in order.
func (h *Hub) Refresh(ctx context.Context) (*Snapshot, error) {
	h.refresh.Lock()
	defer h.refresh.Unlock()

	snap, err := load(ctx, h.store)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.version++
	snap.Version = h.version
	h.current = snap
	for _, ch := range h.subs {
		publish(ch, snap)
	}
	h.mu.Unlock()

	h.logger.Debug("snapshot refreshed",
		zap.Uint64("version", snap.Version),
		zap.Int("appointments", len(snap.Appointments)),
		zap.Int("stock_transactions", len(snap.StockTransactions)),
	)
	return snap, nil
}

// Current returns the latest snapshot. Before the first refresh it is empty
// with version zero.
func (h *Hub) Current() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Subscribe registers for future snapshots. A subscriber that falls behind
// only ever sees the newest snapshot. cancel closes the channel.
func (h *Hub) Subscribe(buffer int) (<-chan *Snapshot, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan *Snapshot, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Close ends every subscription and refuses new ones. Refresh keeps working.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// publish never blocks; when the buffer is full the oldest pending snapshot
// is dropped. Callers hold h.mu, so there is a single writer per channel.
func publish(ch chan *Snapshot, snap *Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func load(ctx context.Context, s *store.Store) (*Snapshot, error) {
	var (
		snap = &Snapshot{LoadedAt: time.Now()}
		err  error
	)
	if snap.Appointments, err = s.Appointments.List(ctx); err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}
	if snap.Expenses, err = s.Expenses.List(ctx); err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	if snap.Products, err = s.Products.List(ctx); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if snap.StockTransactions, err = s.StockTransactions.List(ctx); err != nil {
		return nil, fmt.Errorf("load stock transactions: %w", err)
	}
	if snap.Services, err = s.Services.List(ctx); err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}
	if snap.ServiceGroups, err = s.ServiceGroups.List(ctx); err != nil {
		return nil, fmt.Errorf("load service groups: %w", err)
	}
	if snap.Stylists, err = s.Stylists.List(ctx); err != nil {
		return nil, fmt.Errorf("load stylists: %w", err)
	}
	return snap, nil
}
