// Package store persists booking confirmations.
//
// Two implementations are provided: a SQLite-backed store for the CLI and
// server, and an in-memory store for tests and ephemeral sessions.
package store

import (
	"context"
	"errors"

	"github.com/voyago/voyago/internal/travel"
)

// ErrBookingNotFound indicates no booking exists for the given ID.
var ErrBookingNotFound = errors.New("booking not found")

// Booking is a persisted confirmation together with the request that
// produced it.
type Booking struct {
	Confirmation travel.Confirmation   `json:"confirmation"`
	Request      travel.BookingRequest `json:"request"`
}

// Bookings is the persistence interface for completed bookings.
type Bookings interface {
	// Save persists a booking. Saving the same booking ID twice is an error.
	Save(ctx context.Context, b Booking) error

	// Get returns the booking with the given booking ID.
	// Returns ErrBookingNotFound if it does not exist.
	Get(ctx context.Context, bookingID string) (Booking, error)

	// List returns all bookings, newest first.
	List(ctx context.Context) ([]Booking, error)

	// Close releases underlying resources.
	Close() error
}
