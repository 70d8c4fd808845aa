package store

// StoreStatus marks whether a store is currently on the visit route.
type StoreStatus string

const (
	StatusActive   StoreStatus = "active"
	StatusInactive StoreStatus = "inactive"
)

// Store is a point of sale a field representative can visit.
type Store struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Address   string      `json:"address"`
	City      string      `json:"city"`
	LastVisit string      `json:"last_visit"`
	Status    StoreStatus `json:"status"`
}

// FullAddress is the display form used on order records.
func (s Store) FullAddress() string {
	if s.Address == "" {
		return s.City
	}
	if s.City == "" {
		return s.Address
	}
	return s.Address + ", " + s.City
}
