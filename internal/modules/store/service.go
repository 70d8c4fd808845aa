package store

import (
	"strings"

	"github.com/avaldezm/preventa-core/internal/apperr"
)

// Service exposes the store catalog used by the store-selection flow.
type Service interface {
	// List returns stores whose id, name or address matches the query,
	// case-insensitively. An empty query returns the full catalog.
	List(query string) []Store

	// Get returns a store by id.
	Get(id string) (Store, error)
}

type service struct {
	stores []Store
}

// NewService creates a catalog service over the seeded route.
func NewService() Service {
	return &service{stores: seedStores()}
}

func (s *service) List(query string) []Store {
	if query == "" {
		out := make([]Store, len(s.stores))
		copy(out, s.stores)
		return out
	}
	q := strings.ToLower(query)
	var out []Store
	for _, st := range s.stores {
		if strings.Contains(strings.ToLower(st.Name), q) ||
			strings.Contains(strings.ToLower(st.Address), q) ||
			strings.Contains(strings.ToLower(st.ID), q) {
			out = append(out, st)
		}
	}
	return out
}

func (s *service) Get(id string) (Store, error) {
	for _, st := range s.stores {
		if st.ID == id {
			return st, nil
		}
	}
	return Store{}, apperr.ErrNotFound
}

// seedStores is the representative visit route. A production build would
// fetch this from the vendor API.
func seedStores() []Store {
	return []Store{
		{ID: "CVS-001", Name: "CVS Pharmacy - Brickell", Address: "1234 Brickell Ave", City: "Miami, FL 33131", LastVisit: "2025-11-20", Status: StatusActive},
		{ID: "CVS-002", Name: "CVS Pharmacy - Downtown", Address: "5678 Flagler St", City: "Miami, FL 33130", LastVisit: "2025-11-18", Status: StatusActive},
		{ID: "CVS-003", Name: "CVS Pharmacy - Coral Gables", Address: "9012 Miracle Mile", City: "Coral Gables, FL 33134", LastVisit: "2025-11-15", Status: StatusActive},
		{ID: "CVS-004", Name: "CVS Pharmacy - Coconut Grove", Address: "3456 Grand Ave", City: "Miami, FL 33133", LastVisit: "2025-11-10", Status: StatusActive},
	}
}
