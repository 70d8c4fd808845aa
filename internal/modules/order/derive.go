package order

import (
	"sync"
	"time"

	"github.com/avaldezm/preventa-core/internal/apperr"
	"github.com/avaldezm/preventa-core/internal/modules/planogram"
	"github.com/avaldezm/preventa-core/internal/modules/store"
	"github.com/bwmarrin/snowflake"
)

// Aggregates are the order-level figures derived from lines. Every consumer
// derives these from line data instead of trusting a stored copy.
type Aggregates struct {
	Units    int
	Subtotal float64
	Tax      float64
	Total    float64
}

// Aggregate computes units, subtotal, tax and total from lines. No rounding
// happens here; display rounding is the presentation layer's job.
func Aggregate(lines []Line) Aggregates {
	var a Aggregates
	for _, l := range lines {
		a.Units += l.Quantity
		a.Subtotal += float64(l.Quantity) * l.UnitPrice
	}
	a.Tax = a.Subtotal * TaxRate
	a.Total = a.Subtotal + a.Tax
	return a
}

// Recompute refreshes the stored aggregate fields from lines. Callers that
// detect divergence prefer the recomputed values.
func Recompute(o *Order) {
	a := Aggregate(o.Lines)
	o.UnitsTotal = a.Units
	o.Subtotal = a.Subtotal
	o.TaxRate = TaxRate
	o.Tax = a.Tax
	o.Total = a.Total
}

// Derive builds a pending order from a planogram capture. Only cells with a
// positive quantity participate; an order with no units is not creatable.
// Pure apart from the supplied clock value.
func Derive(cells []planogram.Cell, st store.Store, vendorNumber string, now time.Time) (*Order, error) {
	var lines []Line
	for _, c := range cells {
		if c.ToOrder <= 0 {
			continue
		}
		lines = append(lines, Line{
			SKU:         c.SKU,
			ProductName: c.ProductName,
			Row:         c.Row,
			Col:         c.Col,
			Quantity:    c.ToOrder,
			UnitPrice:   c.UnitPrice,
			LineAmount:  float64(c.ToOrder) * c.UnitPrice,
		})
	}
	if len(lines) == 0 {
		return nil, apperr.Validationf("the order has no units; add quantities before sending")
	}

	o := &Order{
		ID:                 newOrderID(),
		StoreID:            st.ID,
		StoreName:          st.Name,
		StoreAddress:       st.FullAddress(),
		CreatedAt:          now,
		ExpectedDeliveryAt: now.Add(deliveryOffset),
		Lines:              lines,
		Status:             StatusPending,
		ProofRequired:      true,
		VendorNumber:       vendorNumber,
	}
	Recompute(o)
	return o, nil
}

var (
	idNodeOnce sync.Once
	idNode     *snowflake.Node
)

// newOrderID generates a unique, creation-sortable order id.
func newOrderID() string {
	idNodeOnce.Do(func() {
		n, err := snowflake.NewNode(1)
		if err != nil {
			// NewNode only fails on an out-of-range node id.
			panic(err)
		}
		idNode = n
	})
	return "ORD-" + idNode.Generate().String()
}
