package localstore

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/pebble"
)

// DB is the device-local record store. Each named collection or slot is a
// single JSON blob under one key; mutations are whole-blob read-modify-write,
// matching the flat storage layout the rest of the system assumes. There is
// no cross-device conflict resolution: last writer wins per blob.
type DB struct {
	mu sync.Mutex
	db *pebble.DB
}

// Open opens (or creates) the store under dir.
func Open(dir string) (*DB, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("localstore open: %w", err)
	}
	return &DB{db: d}, nil
}

func (s *DB) Close() error { return s.db.Close() }

// ReadCollection decodes the named collection into out (a pointer to a
// slice). A missing or unreadable blob reads as the empty collection: the
// store favors staying usable over surfacing a corrupt-data failure.
func (s *DB) ReadCollection(name string, out any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readLocked(name, out)
}

// WriteCollection replaces the named collection.
func (s *DB) WriteCollection(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(name, v)
}

// ReadSlot decodes a single named record into out. The second return is
// false when the slot is empty or unreadable.
func (s *DB) ReadSlot(name string, out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, closer, err := s.db.Get([]byte(name))
	if err != nil {
		return false
	}
	defer closer.Close()
	return json.Unmarshal(val, out) == nil
}

// WriteSlot replaces a single named record, overwriting previous contents.
func (s *DB) WriteSlot(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(name, v)
}

// ClearSlot removes a named record.
func (s *DB) ClearSlot(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Delete([]byte(name), pebble.Sync)
}

// Mutate runs fn as an atomic read-modify-write over the named collection.
// fn receives the decoder for the current blob and returns the value to
// write back, or an error to abandon the write. No partial write is visible
// to a concurrent reader in the same process.
func (s *DB) Mutate(name string, read func(decode func(out any)) (any, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := read(func(out any) { s.readLocked(name, out) })
	if err != nil {
		return err
	}
	return s.writeLocked(name, next)
}

func (s *DB) readLocked(name string, out any) {
	val, closer, err := s.db.Get([]byte(name))
	if err != nil {
		return
	}
	defer closer.Close()
	// Corrupt JSON reads as empty rather than failing the caller.
	_ = json.Unmarshal(val, out)
}

func (s *DB) writeLocked(name string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("localstore encode %s: %w", name, err)
	}
	if err := s.db.Set([]byte(name), blob, pebble.Sync); err != nil {
		return fmt.Errorf("localstore write %s: %w", name, err)
	}
	return nil
}
