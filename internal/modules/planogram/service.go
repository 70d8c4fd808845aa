package planogram

import (
	"math/rand"
	"sync"

	"github.com/avaldezm/preventa-core/internal/apperr"
	"github.com/avaldezm/preventa-core/internal/modules/store"
)

// Service manages the in-progress planogram capture per store visit.
type Service interface {
	// Start seeds a fresh grid for the store, replacing any capture in
	// progress for it.
	Start(st store.Store) Grid

	// Resume reinstates a previously captured draft, used when the rep goes
	// back from order review to edit quantities.
	Resume(d Draft)

	// Get returns the capture in progress for the store.
	Get(storeID string) (Grid, error)

	// SetCell records counted stock and quantity-to-order for one position.
	SetCell(storeID string, row, col, currentStock, toOrder int) (Cell, error)

	// Summary returns the capture-screen aggregates.
	Summary(storeID string) (Totals, error)

	// Review returns the draft handed to order review. The grid stays in
	// place so the rep can come back and edit.
	Review(storeID string) (Draft, error)

	// Discard drops the capture, called once an order has been created.
	Discard(storeID string)
}

type service struct {
	mu     sync.Mutex
	active map[string]*captureState
}

type captureState struct {
	store store.Store
	grid  Grid
}

func NewService() Service {
	return &service{active: make(map[string]*captureState)}
}

// product is a catalog entry placed on the shelf grid. A production build
// would load the planogram assignment from the vendor API.
type product struct {
	id    string
	name  string
	price float64
	ideal int
}

var catalog = []product{
	{"LIP-001", "Eternal Matte Lipstick", 24.99, 6},
	{"LIP-002", "Velvet Lip Gloss", 19.99, 8},
	{"EYE-001", "HD Eyeshadow Palette", 45.99, 4},
	{"EYE-002", "Precision Eyeliner", 16.99, 10},
	{"FAC-001", "Foundation Perfect Match", 38.99, 5},
	{"FAC-002", "HD Powder", 28.99, 6},
	{"BLU-001", "Natural Blush", 22.99, 7},
	{"MAS-001", "Volume Mascara", 21.99, 9},
}

func (s *service) Start(st store.Store) Grid {
	g := Grid{StoreID: st.ID, Cells: make([]Cell, 0, Rows*Cols)}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			p := catalog[rand.Intn(len(catalog))]
			g.Cells = append(g.Cells, Cell{
				Row:         row,
				Col:         col,
				ProductID:   p.id,
				SKU:         "SKU-" + p.id,
				ProductName: p.name,
				UnitPrice:   p.price,
				IdealStock:  p.ideal,
			})
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[st.ID] = &captureState{store: st, grid: g}
	return cloneGrid(g)
}

func (s *service) Resume(d Draft) {
	g := Grid{StoreID: d.Store.ID, Cells: append([]Cell(nil), d.Cells...)}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[d.Store.ID] = &captureState{store: d.Store, grid: g}
}

func (s *service) Get(storeID string) (Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.active[storeID]
	if !ok {
		return Grid{}, apperr.ErrNotFound
	}
	return cloneGrid(st.grid), nil
}

func (s *service) SetCell(storeID string, row, col, currentStock, toOrder int) (Cell, error) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return Cell{}, apperr.Validationf("position %d,%d is outside the %dx%d grid", row, col, Rows, Cols)
	}
	if currentStock < 0 {
		return Cell{}, apperr.Validationf("current stock must not be negative")
	}
	if toOrder < 0 {
		return Cell{}, apperr.Validationf("quantity to order must not be negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.active[storeID]
	if !ok {
		return Cell{}, apperr.ErrNotFound
	}
	idx := row*Cols + col
	c := &st.grid.Cells[idx]
	c.CurrentStock = currentStock
	c.ToOrder = toOrder
	return *c, nil
}

func (s *service) Summary(storeID string) (Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.active[storeID]
	if !ok {
		return Totals{}, apperr.ErrNotFound
	}
	return st.grid.Totals(), nil
}

func (s *service) Review(storeID string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.active[storeID]
	if !ok {
		return Draft{}, apperr.ErrNotFound
	}
	return Draft{Store: st.store, Cells: append([]Cell(nil), st.grid.Cells...)}, nil
}

func (s *service) Discard(storeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, storeID)
}

func cloneGrid(g Grid) Grid {
	return Grid{StoreID: g.StoreID, Cells: append([]Cell(nil), g.Cells...)}
}
