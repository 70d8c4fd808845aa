package planogram

import "github.com/avaldezm/preventa-core/internal/modules/store"

// Grid dimensions of a shelf planogram.
const (
	Rows = 10
	Cols = 10
)

// Cell is one shelf position: which product sits there and how many units
// the representative counted and wants to order.
type Cell struct {
	Row          int     `json:"row"`
	Col          int     `json:"col"`
	ProductID    string  `json:"product_id"`
	SKU          string  `json:"sku"`
	ProductName  string  `json:"product_name"`
	UnitPrice    float64 `json:"unit_price"`
	IdealStock   int     `json:"ideal_stock"`
	CurrentStock int     `json:"current_stock"`
	ToOrder      int     `json:"to_order"`
}

// Grid is the in-progress capture for one store visit. It is discarded once
// converted into an order.
type Grid struct {
	StoreID string `json:"store_id"`
	Cells   []Cell `json:"cells"` // row-major, Rows*Cols entries
}

// Totals are the capture-screen aggregates, always recomputed from cells.
type Totals struct {
	Units           int     `json:"units"`
	Value           float64 `json:"value"`
	CompletedCells  int     `json:"completed_cells"`
	ProgressPercent int     `json:"progress_percent"`
}

// Draft is the payload handed from the capture screen to the order review
// screen.
type Draft struct {
	Store store.Store `json:"store"`
	Cells []Cell      `json:"cells"`
}

// Totals sums units and order value over the grid.
func (g *Grid) Totals() Totals {
	var t Totals
	for _, c := range g.Cells {
		t.Units += c.ToOrder
		t.Value += float64(c.ToOrder) * c.UnitPrice
		if c.CurrentStock > 0 {
			t.CompletedCells++
		}
	}
	if len(g.Cells) > 0 {
		t.ProgressPercent = t.CompletedCells * 100 / len(g.Cells)
	}
	return t
}
