package order

import (
	"math"
	"testing"
	"time"

	"github.com/avaldezm/preventa-core/internal/apperr"
	"github.com/avaldezm/preventa-core/internal/modules/planogram"
	"github.com/avaldezm/preventa-core/internal/modules/store"
)

var testStore = store.Store{
	ID:      "CVS-001",
	Name:    "CVS Pharmacy - Brickell",
	Address: "1234 Brickell Ave",
	City:    "Miami, FL 33131",
}

func cell(row, col, toOrder int, price float64) planogram.Cell {
	return planogram.Cell{
		Row: row, Col: col,
		ProductID:   "LIP-001",
		SKU:         "SKU-LIP-001",
		ProductName: "Eternal Matte Lipstick",
		UnitPrice:   price,
		ToOrder:     toOrder,
	}
}

func TestDerive_Totals(t *testing.T) {
	now := time.Date(2025, 11, 24, 10, 0, 0, 0, time.UTC)
	cells := []planogram.Cell{
		cell(0, 0, 5, 10),
		cell(0, 1, 3, 24.99),
		cell(0, 2, 0, 99.99), // zero quantity excluded
	}

	o, err := Derive(cells, testStore, "2F318", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(o.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(o.Lines))
	}
	if o.UnitsTotal != 8 {
		t.Fatalf("expected 8 units, got %d", o.UnitsTotal)
	}
	wantSubtotal := 5*10.0 + 3*24.99
	if math.Abs(o.Subtotal-wantSubtotal) > 1e-9 {
		t.Fatalf("subtotal = %v, want %v", o.Subtotal, wantSubtotal)
	}
	if math.Abs(o.Total-o.Subtotal*1.085) > 1e-9 {
		t.Fatalf("total %v does not equal subtotal*1.085 (%v)", o.Total, o.Subtotal*1.085)
	}
	if math.Abs(o.Total-(o.Subtotal+o.Tax)) > 1e-9 {
		t.Fatalf("total %v != subtotal+tax %v", o.Total, o.Subtotal+o.Tax)
	}
	if o.Status != StatusPending {
		t.Fatalf("new orders must be pending, got %s", o.Status)
	}
	if !o.ProofRequired {
		t.Fatalf("every derived order requires proof of delivery")
	}
	if o.Proof != nil {
		t.Fatalf("pending order must carry no proof")
	}
	if o.VendorNumber != "2F318" {
		t.Fatalf("vendor number not stamped: %q", o.VendorNumber)
	}
	if !o.ExpectedDeliveryAt.Equal(now.Add(72 * time.Hour)) {
		t.Fatalf("expected delivery 3 days out, got %v", o.ExpectedDeliveryAt)
	}
	if o.StoreAddress != "1234 Brickell Ave, Miami, FL 33131" {
		t.Fatalf("unexpected store address %q", o.StoreAddress)
	}
}

func TestDerive_ExampleFigures(t *testing.T) {
	// One cell at 5 units x $10: subtotal 50, tax 4.25, total 54.25.
	o, err := Derive([]planogram.Cell{cell(2, 3, 5, 10)}, testStore, "2F318", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.UnitsTotal != 5 {
		t.Fatalf("units = %d, want 5", o.UnitsTotal)
	}
	if math.Abs(o.Subtotal-50) > 1e-9 || math.Abs(o.Tax-4.25) > 1e-9 || math.Abs(o.Total-54.25) > 1e-9 {
		t.Fatalf("got subtotal=%v tax=%v total=%v", o.Subtotal, o.Tax, o.Total)
	}
	if o.Lines[0].Row != 2 || o.Lines[0].Col != 3 {
		t.Fatalf("line position lost: %+v", o.Lines[0])
	}
}

func TestDerive_EmptyCaptureRejected(t *testing.T) {
	_, err := Derive(nil, testStore, "2F318", time.Now())
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// All-zero quantities are as empty as no cells at all.
	_, err = Derive([]planogram.Cell{cell(0, 0, 0, 10)}, testStore, "2F318", time.Now())
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for zero-quantity capture, got %v", err)
	}
}

func TestDerive_UniqueSortableIDs(t *testing.T) {
	seen := map[string]bool{}
	var prev string
	for i := 0; i < 100; i++ {
		o, err := Derive([]planogram.Cell{cell(0, 0, 1, 1)}, testStore, "2F318", time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[o.ID] {
			t.Fatalf("duplicate order id %s", o.ID)
		}
		seen[o.ID] = true
		if prev != "" && len(o.ID) == len(prev) && o.ID < prev {
			t.Fatalf("ids not monotonic: %s after %s", o.ID, prev)
		}
		prev = o.ID
	}
}

func TestRecompute_PrefersLines(t *testing.T) {
	o, err := Derive([]planogram.Cell{cell(0, 0, 4, 25)}, testStore, "2F318", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Simulate a stored aggregate that drifted from the line data.
	o.Total = 1
	o.UnitsTotal = 99
	Recompute(o)
	if o.UnitsTotal != 4 {
		t.Fatalf("units = %d, want 4", o.UnitsTotal)
	}
	if math.Abs(o.Total-100*1.085) > 1e-9 {
		t.Fatalf("total = %v, want %v", o.Total, 100*1.085)
	}
}
