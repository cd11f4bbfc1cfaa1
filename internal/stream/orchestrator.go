// Package stream produces incremental component sequences for searches
// and bookings. Each operation returns an unbuffered channel: elements
// become visible to the consumer one at a time, after simulated-latency
// suspensions, so the UI can render partial results while the rest of
// the sequence is still being produced.
package stream

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voyago/voyago/internal/component"
	"github.com/voyago/voyago/internal/i18n"
	"github.com/voyago/voyago/internal/log"
	"github.com/voyago/voyago/internal/resilience"
	"github.com/voyago/voyago/internal/store"
	"github.com/voyago/voyago/internal/travel"
)

// Progress percentages reported by the booking flow's loading states.
const (
	bookingProcessingPercent = 40
	bookingConfirmingPercent = 80
)

// Orchestrator builds lazy component sequences for flight searches,
// hotel searches and bookings.
type Orchestrator struct {
	gen      *component.Generator
	latency  *resilience.Latency
	injector *resilience.FaultInjector
	bookings store.Bookings
	logger   log.Logger
	sleep    resilience.SleepFunc
	now      func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSleep replaces the latency suspension. Tests use this to run
// without wall-clock delays.
func WithSleep(fn resilience.SleepFunc) Option {
	return func(o *Orchestrator) { o.sleep = fn }
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an Orchestrator.
//
// The fault injector decides, once per stream, whether the whole
// operation fails; a failed stream carries a retry callback that
// re-invokes the same operation.
func New(gen *component.Generator, latency *resilience.Latency, injector *resilience.FaultInjector, bookings store.Bookings, logger log.Logger, opts ...Option) (*Orchestrator, error) {
	if gen == nil {
		return nil, fmt.Errorf("component generator is required")
	}
	if latency == nil {
		return nil, fmt.Errorf("latency model is required")
	}
	if injector == nil {
		return nil, fmt.Errorf("fault injector is required")
	}
	if bookings == nil {
		return nil, fmt.Errorf("bookings store is required")
	}
	if logger == nil {
		logger = log.NewNop()
	}

	o := &Orchestrator{
		gen:      gen,
		latency:  latency,
		injector: injector,
		bookings: bookings,
		logger:   logger,
		sleep:    nil,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// SearchFlights streams a flight search: a loading notice, one card per
// result arriving after a fresh latency sample, then a price breakdown
// over all emitted fares.
func (o *Orchestrator) SearchFlights(ctx context.Context, criteria travel.SearchCriteria) <-chan component.Component {
	ch := make(chan component.Component)
	go func() {
		defer close(ch)

		if err := criteria.Validate(); err != nil {
			o.sendValidationError(ctx, ch, err)
			return
		}
		if !o.suspend(ctx) {
			return
		}
		if o.failStream(ctx, ch, func(retryCtx context.Context) <-chan component.Component {
			return o.SearchFlights(retryCtx, criteria)
		}) {
			return
		}

		if !o.send(ctx, ch, o.gen.Loading(i18n.T("loading.search_flights"), 0)) {
			return
		}

		flights := travel.MockFlights(criteria)
		for i, f := range flights {
			if !o.suspend(ctx) {
				return
			}
			if !o.send(ctx, ch, o.gen.FlightCard(f, i)) {
				return
			}
		}

		if !o.suspend(ctx) {
			return
		}
		o.send(ctx, ch, o.gen.PriceBreakdown(travel.Breakdown(flights)))
	}()
	return ch
}

// SearchHotels streams a hotel search: a loading notice, then one card
// per result arriving after a fresh latency sample.
func (o *Orchestrator) SearchHotels(ctx context.Context, criteria travel.HotelCriteria) <-chan component.Component {
	ch := make(chan component.Component)
	go func() {
		defer close(ch)

		if err := criteria.Validate(); err != nil {
			o.sendValidationError(ctx, ch, err)
			return
		}
		if !o.suspend(ctx) {
			return
		}
		if o.failStream(ctx, ch, func(retryCtx context.Context) <-chan component.Component {
			return o.SearchHotels(retryCtx, criteria)
		}) {
			return
		}

		if !o.send(ctx, ch, o.gen.Loading(i18n.T("loading.search_hotels"), 0)) {
			return
		}

		for i, h := range travel.MockHotels(criteria) {
			if !o.suspend(ctx) {
				return
			}
			if !o.send(ctx, ch, o.gen.HotelCard(h, i)) {
				return
			}
		}
	}()
	return ch
}

// Book streams a booking: two loading states at increasing progress,
// then a persisted confirmation with a fresh record locator.
func (o *Orchestrator) Book(ctx context.Context, req travel.BookingRequest) <-chan component.Component {
	ch := make(chan component.Component)
	go func() {
		defer close(ch)

		if err := req.Validate(); err != nil {
			o.sendValidationError(ctx, ch, err)
			return
		}
		if !o.suspend(ctx) {
			return
		}
		if o.failStream(ctx, ch, func(retryCtx context.Context) <-chan component.Component {
			return o.Book(retryCtx, req)
		}) {
			return
		}

		if !o.send(ctx, ch, o.gen.Loading(i18n.T("loading.booking_started"), bookingProcessingPercent)) {
			return
		}
		if !o.suspend(ctx) {
			return
		}
		if !o.send(ctx, ch, o.gen.Loading(i18n.T("loading.booking_payment"), bookingConfirmingPercent)) {
			return
		}
		if !o.suspend(ctx) {
			return
		}

		conf := travel.Confirmation{
			BookingID: uuid.NewString(),
			PNR:       travel.NewPNR(),
			CreatedAt: o.now().UTC(),
		}
		if req.HotelID != "" {
			conf.HotelReservationCode = "HTL-" + travel.NewPNR()
		}

		if err := o.bookings.Save(ctx, store.Booking{Confirmation: conf, Request: req}); err != nil {
			o.logger.Error("persisting booking failed", "booking_id", conf.BookingID, "error", err)
			fault := resilience.NewFault(resilience.FaultServer, i18n.T("error.server"))
			o.sendError(ctx, ch, fault, func(retryCtx context.Context) <-chan component.Component {
				return o.Book(retryCtx, req)
			})
			return
		}

		o.logger.Info("booking confirmed", "booking_id", conf.BookingID, "pnr", conf.PNR)
		o.send(ctx, ch, o.gen.Confirmation(conf))
	}()
	return ch
}

// suspend sleeps for a fresh latency sample. Returns false when the
// consumer abandoned the stream.
func (o *Orchestrator) suspend(ctx context.Context) bool {
	d := o.latency.Sample()
	if o.sleep != nil {
		return o.sleep(ctx, d) == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// send delivers one component, or reports false when the consumer is gone.
func (o *Orchestrator) send(ctx context.Context, ch chan<- component.Component, c component.Component) bool {
	select {
	case ch <- c:
		return true
	case <-ctx.Done():
		return false
	}
}

// failStream rolls the fault injector. On a hit it emits a single error
// component carrying the retry callback and reports true, ending the stream.
func (o *Orchestrator) failStream(ctx context.Context, ch chan<- component.Component, retry component.RetryFunc) bool {
	if !o.injector.ShouldFail() {
		return false
	}
	fault := o.injector.Classify()
	o.logger.Warn("injected fault", "kind", fault.Kind, "message", fault.Message)
	o.sendError(ctx, ch, fault, retry)
	return true
}

func (o *Orchestrator) sendError(ctx context.Context, ch chan<- component.Component, fault *resilience.Fault, retry component.RetryFunc) {
	if !fault.Retryable {
		retry = nil
	}
	o.send(ctx, ch, o.gen.Error(fault.Message, retry))
}

func (o *Orchestrator) sendValidationError(ctx context.Context, ch chan<- component.Component, err error) {
	fault := resilience.NewFault(resilience.FaultValidation, err.Error())
	o.sendError(ctx, ch, fault, nil)
}
