package booking

import (
	"context"
	"sync"

	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
)

// MemoryStore is an in-process Store.  It backs the flow tests and can
// serve a single-session deployment without a database.  IDs are
// assigned sequentially and never reused, even after deletes.
type MemoryStore struct {
	mu     sync.Mutex
	nextID uint64
	items  []model.Reservation
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Add assigns the next free ID to r and appends a copy.  A reservation
// whose code is already present is rejected with ErrDuplicateCode.
func (s *MemoryStore) Add(_ context.Context, r *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.Code == r.Code {
			return ErrDuplicateCode
		}
	}
	r.ID = s.nextID
	s.nextID++
	s.items = append(s.items, *r)
	return nil
}

// Update sets the status of the reservation with the given id, enforcing
// the forward-only lifecycle.
func (s *MemoryStore) Update(_ context.Context, id uint64, status model.ReservationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			if !s.items[i].Status.CanTransitionTo(status) {
				return ErrInvalidTransition
			}
			s.items[i].Status = status
			return nil
		}
	}
	return ErrReservationNotFound
}

// Delete removes the reservation with the given id.
func (s *MemoryStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrReservationNotFound
}

// List returns a copy of all stored reservations in insertion order.
func (s *MemoryStore) List(_ context.Context) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Reservation, len(s.items))
	copy(out, s.items)
	return out, nil
}

// CodeExists reports whether a reservation with the given code is stored.
func (s *MemoryStore) CodeExists(_ context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.Code == code {
			return true, nil
		}
	}
	return false, nil
}
