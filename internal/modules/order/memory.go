package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/avaldezm/preventa-core/internal/apperr"
)

// memoryRepo keeps the collection in process memory. It backs tests and
// mirrors the semantics of the durable repository exactly.
type memoryRepo struct {
	mu     sync.Mutex
	orders []*Order
	hub    *hub
}

// NewMemoryRepository creates an empty in-memory order store.
func NewMemoryRepository() Repository {
	return &memoryRepo{hub: newHub()}
}

func (r *memoryRepo) Create(ctx context.Context, o *Order) error {
	r.mu.Lock()
	for _, existing := range r.orders {
		if existing.ID == o.ID {
			r.mu.Unlock()
			return fmt.Errorf("order id %s already exists", o.ID)
		}
	}
	stored := clone(o)
	r.orders = append(r.orders, stored)
	r.mu.Unlock()
	r.hub.publish(Event{Type: EventCreated, Order: *clone(stored)})
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			return clone(o), nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *memoryRepo) List(ctx context.Context, f Filter) ([]*Order, error) {
	r.mu.Lock()
	out := make([]*Order, 0, len(r.orders))
	for _, o := range r.orders {
		if matches(o, f) {
			out = append(out, clone(o))
		}
	}
	r.mu.Unlock()
	sortNewestFirst(out)
	return out, nil
}

func (r *memoryRepo) Update(ctx context.Context, id string, p Patch) (*Order, error) {
	r.mu.Lock()
	var updated *Order
	for _, o := range r.orders {
		if o.ID == id {
			applyPatch(o, p)
			updated = clone(o)
			break
		}
	}
	r.mu.Unlock()
	if updated == nil {
		return nil, apperr.ErrNotFound
	}
	r.hub.publish(Event{Type: EventUpdated, Order: *clone(updated)})
	return updated, nil
}

func (r *memoryRepo) Subscribe() (<-chan Event, func()) { return r.hub.subscribe() }
