// Package component defines the streaming component, the unit of incremental
// UI delivery: every search result, aggregate, status notice or error is
// wrapped in one uniform record with a stable identity, a rendering priority
// and a creation timestamp. Components are created once and never mutated;
// emission order is strictly generation order, never priority order.
package component

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voyago/voyago/internal/travel"
)

// Kind is the closed set of component variants.
type Kind string

const (
	KindFlightCard     Kind = "flight_card"
	KindHotelCard      Kind = "hotel_card"
	KindPriceBreakdown Kind = "price_breakdown"
	KindConfirmation   Kind = "confirmation"
	KindError          Kind = "error"
	KindLoading        Kind = "loading"
)

// Priority returns the fixed rendering hint for the kind: errors and loading
// notices 0, primary result cards 1, aggregates 2, confirmations 3.
// Priority never affects emission order.
func (k Kind) Priority() int {
	switch k {
	case KindFlightCard, KindHotelCard:
		return 1
	case KindPriceBreakdown:
		return 2
	case KindConfirmation:
		return 3
	default: // error, loading
		return 0
	}
}

// RetryFunc re-runs the operation that produced an error component and
// returns the fresh component sequence. Implementations wired by the session
// controller may instead route results through session state and return nil.
type RetryFunc func(ctx context.Context) <-chan Component

// Component is one incrementally-delivered unit of result data. Exactly one
// payload field is set, matching Kind.
type Component struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`

	Flight       *travel.Flight         `json:"flight,omitempty"`
	Hotel        *travel.Hotel          `json:"hotel,omitempty"`
	Price        *travel.PriceBreakdown `json:"price,omitempty"`
	Confirmation *travel.Confirmation   `json:"confirmation,omitempty"`

	// Index is a display hint for result cards (position within the batch).
	Index int `json:"index,omitempty"`

	// Message carries the text of error and loading components.
	Message string `json:"message,omitempty"`

	// Percent is the progress of a loading component, 0-100.
	Percent int `json:"percent,omitempty"`

	// Retry is present on error components whose operation may be re-run.
	Retry RetryFunc `json:"-"`
}

// Generator creates components with fresh ids, fixed per-kind priorities and
// the current timestamp. The clock is injectable; within one orchestration
// run timestamps are monotonically non-decreasing.
type Generator struct {
	now func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the timestamp source. Test use.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a component generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) base(kind Kind) Component {
	return Component{
		ID:        uuid.NewString(),
		Kind:      kind,
		Priority:  kind.Priority(),
		CreatedAt: g.now(),
	}
}

// FlightCard wraps one flight result. index is a display hint only.
func (g *Generator) FlightCard(f travel.Flight, index int) Component {
	c := g.base(KindFlightCard)
	c.Flight = &f
	c.Index = index
	return c
}

// HotelCard wraps one hotel result. index is a display hint only.
func (g *Generator) HotelCard(h travel.Hotel, index int) Component {
	c := g.base(KindHotelCard)
	c.Hotel = &h
	c.Index = index
	return c
}

// PriceBreakdown wraps the aggregate computed from an emitted batch.
func (g *Generator) PriceBreakdown(b travel.PriceBreakdown) Component {
	c := g.base(KindPriceBreakdown)
	c.Price = &b
	return c
}

// Confirmation wraps a persisted booking confirmation.
func (g *Generator) Confirmation(conf travel.Confirmation) Component {
	c := g.base(KindConfirmation)
	c.Confirmation = &conf
	return c
}

// Error wraps a user-facing failure. retry may be nil for failures that
// cannot be meaningfully re-run.
func (g *Generator) Error(message string, retry RetryFunc) Component {
	c := g.base(KindError)
	c.Message = message
	c.Retry = retry
	return c
}

// Loading wraps a progress notice. percent is 0-100; pass 0 when progress
// is indeterminate.
func (g *Generator) Loading(message string, percent int) Component {
	c := g.base(KindLoading)
	c.Message = message
	c.Percent = percent
	return c
}
