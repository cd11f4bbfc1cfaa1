package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-memory Bookings implementation for tests and
// ephemeral chat sessions.
type Memory struct {
	mu       sync.RWMutex
	bookings map[string]Booking
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{bookings: make(map[string]Booking)}
}

// Save persists a booking. Duplicate booking IDs are rejected.
func (m *Memory) Save(_ context.Context, b Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := b.Confirmation.BookingID
	if _, exists := m.bookings[id]; exists {
		return fmt.Errorf("booking %s already exists", id)
	}
	m.bookings[id] = b
	return nil
}

// Get returns the booking with the given booking ID.
func (m *Memory) Get(_ context.Context, bookingID string) (Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bookings[bookingID]
	if !ok {
		return Booking{}, ErrBookingNotFound
	}
	return b, nil
}

// List returns all bookings, newest first.
func (m *Memory) List(_ context.Context) ([]Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i].Confirmation, out[j].Confirmation
		if !ci.CreatedAt.Equal(cj.CreatedAt) {
			return ci.CreatedAt.After(cj.CreatedAt)
		}
		return ci.BookingID < cj.BookingID
	})
	return out, nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}
