package order

import "time"

// Status is the lifecycle state of an order. The only transition is
// pending -> completed, gated on proof of delivery.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// TaxRate is the fixed sales tax applied to every order.
const TaxRate = 0.085

// deliveryOffset is how far after creation delivery is expected.
const deliveryOffset = 3 * 24 * time.Hour

// Line is one order position, derived from a planogram cell with a nonzero
// quantity. Immutable once the order is created.
type Line struct {
	SKU         string  `json:"sku"`
	ProductName string  `json:"product_name"`
	Row         int     `json:"row"`
	Col         int     `json:"col"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineAmount  float64 `json:"line_amount"`
}

// Proof is the delivery evidence attached when an order completes. Present
// if and only if the order is completed.
type Proof struct {
	ImageData   []byte    `json:"image_data"`
	Notes       string    `json:"notes,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// Order is the canonical record of a restocking order. After creation only
// Status and Proof may change.
type Order struct {
	ID                 string    `json:"id"`
	StoreID            string    `json:"store_id"`
	StoreName          string    `json:"store_name"`
	StoreAddress       string    `json:"store_address"`
	CreatedAt          time.Time `json:"created_at"`
	ExpectedDeliveryAt time.Time `json:"expected_delivery_at"`
	Lines              []Line    `json:"lines"`
	UnitsTotal         int       `json:"units_total"`
	Subtotal           float64   `json:"subtotal"`
	TaxRate            float64   `json:"tax_rate"`
	Tax                float64   `json:"tax"`
	Total              float64   `json:"total"`
	Status             Status    `json:"status"`
	ProofRequired      bool      `json:"proof_required"`
	Proof              *Proof    `json:"proof,omitempty"`
	VendorNumber       string    `json:"vendor_number"`
}

// Patch carries the only fields mutable after creation.
type Patch struct {
	Status *Status
	Proof  *Proof
}

// Filter narrows a listing. Zero values match everything.
type Filter struct {
	Status     Status
	SearchText string
}
