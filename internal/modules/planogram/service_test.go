package planogram

import (
	"errors"
	"math"
	"testing"

	"github.com/avaldezm/preventa-core/internal/apperr"
	"github.com/avaldezm/preventa-core/internal/modules/store"
)

var testStore = store.Store{
	ID:      "CVS-001",
	Name:    "CVS Brickell",
	Address: "801 Brickell Ave",
	City:    "Miami",
}

func TestStart_SeedsFullGrid(t *testing.T) {
	svc := NewService()
	g := svc.Start(testStore)

	if g.StoreID != testStore.ID {
		t.Fatalf("grid store = %q, want %q", g.StoreID, testStore.ID)
	}
	if len(g.Cells) != Rows*Cols {
		t.Fatalf("grid has %d cells, want %d", len(g.Cells), Rows*Cols)
	}
	for i, c := range g.Cells {
		if c.Row != i/Cols || c.Col != i%Cols {
			t.Fatalf("cell %d at position %d,%d, want %d,%d", i, c.Row, c.Col, i/Cols, i%Cols)
		}
		if c.ProductID == "" || c.SKU != "SKU-"+c.ProductID || c.UnitPrice <= 0 {
			t.Fatalf("cell %d not seeded from the catalog: %+v", i, c)
		}
		if c.CurrentStock != 0 || c.ToOrder != 0 {
			t.Fatalf("cell %d starts with counted stock: %+v", i, c)
		}
	}
}

func TestStart_ReplacesCaptureInProgress(t *testing.T) {
	svc := NewService()
	svc.Start(testStore)
	if _, err := svc.SetCell(testStore.ID, 0, 0, 3, 5); err != nil {
		t.Fatalf("set cell: %v", err)
	}

	svc.Start(testStore)
	g, err := svc.Get(testStore.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if g.Cells[0].ToOrder != 0 || g.Cells[0].CurrentStock != 0 {
		t.Fatalf("restart kept old quantities: %+v", g.Cells[0])
	}
}

func TestSetCell_UpdatesAndValidates(t *testing.T) {
	svc := NewService()
	svc.Start(testStore)

	c, err := svc.SetCell(testStore.ID, 2, 7, 4, 6)
	if err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if c.CurrentStock != 4 || c.ToOrder != 6 {
		t.Fatalf("returned cell not updated: %+v", c)
	}
	g, _ := svc.Get(testStore.ID)
	if got := g.Cells[2*Cols+7]; got.CurrentStock != 4 || got.ToOrder != 6 {
		t.Fatalf("stored cell not updated: %+v", got)
	}

	bad := []struct {
		name                        string
		row, col, current, toOrder int
	}{
		{"row too high", Rows, 0, 1, 1},
		{"negative row", -1, 0, 1, 1},
		{"col too high", 0, Cols, 1, 1},
		{"negative stock", 0, 0, -1, 1},
		{"negative order", 0, 0, 1, -1},
	}
	for _, tc := range bad {
		if _, err := svc.SetCell(testStore.ID, tc.row, tc.col, tc.current, tc.toOrder); !apperr.IsValidation(err) {
			t.Errorf("%s: got %v, want validation error", tc.name, err)
		}
	}
}

func TestSetCell_UnknownCapture(t *testing.T) {
	svc := NewService()
	if _, err := svc.SetCell("CVS-999", 0, 0, 1, 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("got %v, want not found", err)
	}
	if _, err := svc.Get("CVS-999"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("get: got %v, want not found", err)
	}
}

func TestSummary_AggregatesFromCells(t *testing.T) {
	svc := NewService()
	g := svc.Start(testStore)

	if _, err := svc.SetCell(testStore.ID, 0, 0, 2, 3); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if _, err := svc.SetCell(testStore.ID, 1, 1, 5, 0); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if _, err := svc.SetCell(testStore.ID, 2, 2, 0, 4); err != nil {
		t.Fatalf("set cell: %v", err)
	}

	sum, err := svc.Summary(testStore.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Units != 7 {
		t.Fatalf("units = %d, want 7", sum.Units)
	}
	wantValue := 3*g.Cells[0].UnitPrice + 4*g.Cells[2*Cols+2].UnitPrice
	if math.Abs(sum.Value-wantValue) > 1e-9 {
		t.Fatalf("value = %f, want %f", sum.Value, wantValue)
	}
	// Only the two cells with a positive count mark progress.
	if sum.CompletedCells != 2 || sum.ProgressPercent != 2 {
		t.Fatalf("completed = %d, progress = %d%%, want 2 and 2%%", sum.CompletedCells, sum.ProgressPercent)
	}
}

func TestReviewAndResume_RoundTrip(t *testing.T) {
	svc := NewService()
	svc.Start(testStore)
	if _, err := svc.SetCell(testStore.ID, 3, 4, 2, 9); err != nil {
		t.Fatalf("set cell: %v", err)
	}

	d, err := svc.Review(testStore.ID)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if d.Store.ID != testStore.ID || len(d.Cells) != Rows*Cols {
		t.Fatalf("unexpected draft: store %q, %d cells", d.Store.ID, len(d.Cells))
	}
	if d.Cells[3*Cols+4].ToOrder != 9 {
		t.Fatalf("draft lost the captured quantity")
	}

	// The grid stays editable after review.
	if _, err := svc.Get(testStore.ID); err != nil {
		t.Fatalf("capture gone after review: %v", err)
	}

	svc.Discard(testStore.ID)
	if _, err := svc.Get(testStore.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("capture still present after discard")
	}

	svc.Resume(d)
	g, err := svc.Get(testStore.ID)
	if err != nil {
		t.Fatalf("resume did not reinstate the capture: %v", err)
	}
	if g.Cells[3*Cols+4].ToOrder != 9 || g.Cells[3*Cols+4].CurrentStock != 2 {
		t.Fatalf("resumed grid lost quantities: %+v", g.Cells[3*Cols+4])
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	svc := NewService()
	svc.Start(testStore)

	g, _ := svc.Get(testStore.ID)
	g.Cells[0].ToOrder = 99

	again, _ := svc.Get(testStore.ID)
	if again.Cells[0].ToOrder != 0 {
		t.Fatalf("caller mutation leaked into the capture")
	}
}
