package order

import (
	"context"
	"time"

	"github.com/avaldezm/preventa-core/internal/apperr"
	"github.com/avaldezm/preventa-core/internal/modules/planogram"
	"github.com/avaldezm/preventa-core/internal/platform/metrics"
)

// Service is the order lifecycle: derivation from a planogram capture,
// reads, and the single pending -> completed transition.
type Service interface {
	// CreateFromDraft derives an order from the reviewed planogram capture
	// and persists it.
	CreateFromDraft(ctx context.Context, d planogram.Draft) (*Order, error)

	// Get returns an order by id with aggregates recomputed from lines.
	Get(ctx context.Context, id string) (*Order, error)

	// List returns orders matching the filter, aggregates recomputed.
	List(ctx context.Context, f Filter) ([]*Order, error)

	// CompleteWithProof attaches delivery evidence and moves the order to
	// completed. The image is mandatory; re-completing a completed order is
	// rejected without touching the stored record.
	CompleteWithProof(ctx context.Context, id string, image []byte, notes string) (*Order, error)

	// Subscribe forwards the store's create/update events.
	Subscribe() (<-chan Event, func())
}

type service struct {
	repo         Repository
	vendorNumber string
	now          func() time.Time
	metrics      *metrics.Registry
}

// NewService creates the order service. metrics may be nil.
func NewService(repo Repository, vendorNumber string, now func() time.Time, m *metrics.Registry) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, vendorNumber: vendorNumber, now: now, metrics: m}
}

func (s *service) CreateFromDraft(ctx context.Context, d planogram.Draft) (*Order, error) {
	o, err := Derive(d.Cells, d.Store, s.vendorNumber, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
	}
	return o, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// Stored aggregates are never trusted over the line data.
	Recompute(o)
	return o, nil
}

func (s *service) List(ctx context.Context, f Filter) ([]*Order, error) {
	orders, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		Recompute(o)
	}
	return orders, nil
}

func (s *service) CompleteWithProof(ctx context.Context, id string, image []byte, notes string) (*Order, error) {
	if len(image) == 0 {
		return nil, apperr.Validationf("a proof of delivery image is required")
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status == StatusCompleted {
		return nil, apperr.Conflictf("order %s is already completed", id)
	}
	completed := StatusCompleted
	updated, err := s.repo.Update(ctx, id, Patch{
		Status: &completed,
		Proof: &Proof{
			ImageData:   image,
			Notes:       notes,
			CompletedAt: s.now(),
		},
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.OrdersCompleted.Inc()
	}
	Recompute(updated)
	return updated, nil
}

func (s *service) Subscribe() (<-chan Event, func()) { return s.repo.Subscribe() }
