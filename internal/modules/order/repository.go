package order

import (
	"context"
	"sort"
	"strings"
)

// Repository is the authoritative local store of order records. All reads
// and writes in the system go through it; callers hold transient copies and
// write back via Update rather than mutating their copy in place.
type Repository interface {
	// Create appends a new order. A colliding id is a programming error,
	// reported as a plain error with no recovery path.
	Create(ctx context.Context, o *Order) error

	// Get returns the order by id, or apperr.ErrNotFound.
	Get(ctx context.Context, id string) (*Order, error)

	// List returns orders matching the filter, most recent first, ties in
	// insertion order.
	List(ctx context.Context, f Filter) ([]*Order, error)

	// Update applies the patch to the stored record and returns the result,
	// or apperr.ErrNotFound. The patch is applied atomically with respect to
	// any other caller in this process.
	Update(ctx context.Context, id string, p Patch) (*Order, error)

	// Subscribe returns a channel of create/update events and a cancel func.
	Subscribe() (<-chan Event, func())
}

// matches applies the listing filter: status equality plus case-insensitive
// search over id, store name and store id.
func matches(o *Order, f Filter) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.SearchText != "" {
		q := strings.ToLower(f.SearchText)
		if !strings.Contains(strings.ToLower(o.ID), q) &&
			!strings.Contains(strings.ToLower(o.StoreName), q) &&
			!strings.Contains(strings.ToLower(o.StoreID), q) {
			return false
		}
	}
	return true
}

// sortNewestFirst orders descending by creation time; the stable sort keeps
// insertion order among equal timestamps.
func sortNewestFirst(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func applyPatch(o *Order, p Patch) {
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Proof != nil {
		o.Proof = p.Proof
	}
}

func clone(o *Order) *Order {
	c := *o
	c.Lines = append([]Line(nil), o.Lines...)
	if o.Proof != nil {
		p := *o.Proof
		p.ImageData = append([]byte(nil), o.Proof.ImageData...)
		c.Proof = &p
	}
	return &c
}
