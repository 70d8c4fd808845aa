package order

import (
	"context"
	"fmt"

	"github.com/avaldezm/preventa-core/internal/apperr"
	"github.com/avaldezm/preventa-core/internal/platform/localstore"
)

// ordersCollection is the single named collection holding every order.
const ordersCollection = "orders"

// localRepo persists the collection in device-local storage. Every mutation
// reads the whole collection, changes it and writes it back atomically via
// the store's Mutate.
type localRepo struct {
	db  *localstore.DB
	hub *hub
}

// NewLocalRepository creates the durable order store over db.
func NewLocalRepository(db *localstore.DB) Repository {
	return &localRepo{db: db, hub: newHub()}
}

func (r *localRepo) Create(ctx context.Context, o *Order) error {
	err := r.db.Mutate(ordersCollection, func(decode func(out any)) (any, error) {
		var orders []*Order
		decode(&orders)
		for _, existing := range orders {
			if existing.ID == o.ID {
				return nil, fmt.Errorf("order id %s already exists", o.ID)
			}
		}
		return append(orders, o), nil
	})
	if err != nil {
		return err
	}
	r.hub.publish(Event{Type: EventCreated, Order: *clone(o)})
	return nil
}

func (r *localRepo) Get(ctx context.Context, id string) (*Order, error) {
	var orders []*Order
	r.db.ReadCollection(ordersCollection, &orders)
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *localRepo) List(ctx context.Context, f Filter) ([]*Order, error) {
	var orders []*Order
	r.db.ReadCollection(ordersCollection, &orders)
	out := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if matches(o, f) {
			out = append(out, o)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *localRepo) Update(ctx context.Context, id string, p Patch) (*Order, error) {
	var updated *Order
	err := r.db.Mutate(ordersCollection, func(decode func(out any)) (any, error) {
		var orders []*Order
		decode(&orders)
		for _, o := range orders {
			if o.ID == id {
				applyPatch(o, p)
				updated = clone(o)
				return orders, nil
			}
		}
		return nil, apperr.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	r.hub.publish(Event{Type: EventUpdated, Order: *clone(updated)})
	return updated, nil
}

func (r *localRepo) Subscribe() (<-chan Event, func()) { return r.hub.subscribe() }
