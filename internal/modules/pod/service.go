package pod

import (
	"context"
	"time"

	"github.com/avaldezm/preventa-core/internal/modules/order"
	"github.com/avaldezm/preventa-core/internal/platform/metrics"
)

// PendingOrder is the pending-deliveries list row: an order still waiting
// for its proof of delivery. Figures come from line data, not stored totals.
type PendingOrder struct {
	OrderID            string    `json:"order_id"`
	StoreID            string    `json:"store_id"`
	StoreName          string    `json:"store_name"`
	CreatedAt          time.Time `json:"created_at"`
	ExpectedDeliveryAt time.Time `json:"expected_delivery_at"`
	Units              int       `json:"units"`
	Total              float64   `json:"total"`
}

// Service is the proof-of-delivery capture flow.
type Service interface {
	// Pending lists orders that still require delivery proof.
	Pending(ctx context.Context) ([]PendingOrder, error)

	// Submit uploads the evidence and completes the order. The simulated
	// upload, once started, always runs to completion; there is no
	// cancellation path.
	Submit(ctx context.Context, orderID string, image []byte, notes string) (*order.Order, error)
}

type service struct {
	orders      order.Service
	uploadDelay time.Duration
	metrics     *metrics.Registry
}

// NewService creates the POD service. uploadDelay simulates the evidence
// upload; metrics may be nil.
func NewService(orders order.Service, uploadDelay time.Duration, m *metrics.Registry) Service {
	return &service{orders: orders, uploadDelay: uploadDelay, metrics: m}
}

func (s *service) Pending(ctx context.Context) ([]PendingOrder, error) {
	orders, err := s.orders.List(ctx, order.Filter{Status: order.StatusPending})
	if err != nil {
		return nil, err
	}
	out := make([]PendingOrder, 0, len(orders))
	for _, o := range orders {
		if !o.ProofRequired || o.Proof != nil {
			continue
		}
		a := order.Aggregate(o.Lines)
		out = append(out, PendingOrder{
			OrderID:            o.ID,
			StoreID:            o.StoreID,
			StoreName:          o.StoreName,
			CreatedAt:          o.CreatedAt,
			ExpectedDeliveryAt: o.ExpectedDeliveryAt,
			Units:              a.Units,
			Total:              a.Total,
		})
	}
	return out, nil
}

func (s *service) Submit(ctx context.Context, orderID string, image []byte, notes string) (*order.Order, error) {
	start := time.Now()
	// Simulated upload. Deliberately not context-aware: a started upload
	// always performs its write.
	time.Sleep(s.uploadDelay)
	o, err := s.orders.CompleteWithProof(ctx, orderID, image, notes)
	if s.metrics != nil {
		s.metrics.PodUploadSec.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}
