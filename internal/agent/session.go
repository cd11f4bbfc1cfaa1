// Package agent owns per-conversation session state: the accumulating
// component list, the loading flag, the last error and the conversation
// phase. Tool execution is wrapped in a retry executor and a per-tool
// circuit breaker; the session is the single place where a surfaced
// error becomes a user-visible error component.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/voyago/voyago/internal/component"
	"github.com/voyago/voyago/internal/i18n"
	"github.com/voyago/voyago/internal/log"
	"github.com/voyago/voyago/internal/resilience"
	"github.com/voyago/voyago/internal/tools"
	"github.com/voyago/voyago/internal/travel"
)

// Phase is the conversation state visible to the UI.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseProcessing Phase = "processing"
	PhaseCompleted  Phase = "completed"
	PhaseError      Phase = "error"
)

// Operation records the last executed tool call so it can be retried
// with identical arguments.
type Operation struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

// Announcer receives accessibility announcements. Implementations push
// the text to assistive technology (ARIA live region, screen reader).
type Announcer interface {
	Announce(text string)
}

type nopAnnouncer struct{}

func (nopAnnouncer) Announce(string) {}

// Responder produces a free-form reply for messages that match no tool
// intent. A nil Responder falls back to a canned prompt.
type Responder interface {
	Reply(ctx context.Context, text string) (string, error)
}

// Session is one conversation's controller. Methods are safe for
// concurrent use; the component list and last-operation reference are
// guarded by a single mutex.
type Session struct {
	registry   *tools.Registry
	retrier    *resilience.Retrier
	breakers   *resilience.Breakers
	classifier IntentClassifier
	announcer  Announcer
	responder  Responder
	logger     log.Logger
	gen        *component.Generator
	sink       func(component.Component)

	mu         sync.Mutex
	components []component.Component
	loading    bool
	lastErr    string
	phase      Phase
	lastOp     *Operation
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClassifier replaces the keyword intent classifier.
func WithClassifier(c IntentClassifier) SessionOption {
	return func(s *Session) { s.classifier = c }
}

// WithAnnouncer sets the accessibility announcer.
func WithAnnouncer(a Announcer) SessionOption {
	return func(s *Session) { s.announcer = a }
}

// WithResponder sets the fallback reply generator.
func WithResponder(r Responder) SessionOption {
	return func(s *Session) { s.responder = r }
}

// WithComponentSink registers a callback invoked synchronously for every
// component appended to the session, in emission order. The web and TUI
// layers use this to forward components to the client as they arrive.
func WithComponentSink(fn func(component.Component)) SessionOption {
	return func(s *Session) { s.sink = fn }
}

// NewSession creates a session controller.
func NewSession(registry *tools.Registry, retrier *resilience.Retrier, breakers *resilience.Breakers, logger log.Logger, opts ...SessionOption) (*Session, error) {
	if registry == nil {
		return nil, fmt.Errorf("tool registry is required")
	}
	if retrier == nil {
		return nil, fmt.Errorf("retrier is required")
	}
	if breakers == nil {
		return nil, fmt.Errorf("breaker registry is required")
	}
	if logger == nil {
		logger = log.NewNop()
	}

	s := &Session{
		registry:   registry,
		retrier:    retrier,
		breakers:   breakers,
		classifier: KeywordClassifier{},
		announcer:  nopAnnouncer{},
		logger:     logger,
		gen:        component.NewGenerator(),
		phase:      PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Components returns a snapshot of the accumulated component list.
func (s *Session) Components() []component.Component {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]component.Component, len(s.components))
	copy(out, s.components)
	return out
}

// IsLoading reports whether a tool execution is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last user-facing error message, empty if none.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Phase returns the current conversation phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// LastOperation returns the most recent tool call, or nil.
func (s *Session) LastOperation() *Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastOp == nil {
		return nil
	}
	op := *s.lastOp
	return &op
}

// ClearComponents empties the component list and resets error and phase.
// Circuit breaker state and persisted bookings are untouched; they have
// their own lifecycle.
func (s *Session) ClearComponents() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components = nil
	s.lastErr = ""
	s.loading = false
	s.phase = PhaseIdle
}

// RetryLastOperation re-invokes the stored last operation. Without a
// prior ExecuteTool call it is a no-op.
func (s *Session) RetryLastOperation(ctx context.Context) *tools.Result {
	op := s.LastOperation()
	if op == nil {
		return nil
	}
	return s.ExecuteTool(ctx, op.Name, op.Args)
}

// ExecuteTool runs a tool through the retry executor and the tool's
// circuit breaker, draining streaming results into the component list
// one element at a time as they arrive.
//
// The returned envelope carries direct-answer data; for streaming tools
// the results land in the component list and the envelope only reports
// success. Errors never escape: they become an error component whose
// retry callback re-invokes this method with the same name and args.
func (s *Session) ExecuteTool(ctx context.Context, name string, args json.RawMessage) *tools.Result {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	s.mu.Lock()
	s.lastOp = &Operation{Name: name, Args: args}
	s.loading = true
	s.lastErr = ""
	s.phase = PhaseProcessing
	s.mu.Unlock()

	var result *tools.Result
	breaker := s.breakers.Get(name)
	err := breaker.Do(ctx, func(ctx context.Context) error {
		return s.retrier.Do(ctx, func(ctx context.Context) error {
			var execErr error
			result, execErr = s.registry.Execute(ctx, name, args)
			return execErr
		})
	})
	if err != nil {
		return s.fail(name, args, err)
	}

	if !result.Success {
		// Schema validation failure: user-correctable, no retry affordance.
		s.appendError(result.Error, nil)
		s.mu.Lock()
		s.lastErr = result.Error
		s.loading = false
		s.phase = PhaseError
		s.mu.Unlock()
		return result
	}

	if result.Stream != nil {
		s.drain(result.Stream)
	}

	s.mu.Lock()
	if s.phase == PhaseProcessing {
		s.phase = PhaseCompleted
	}
	s.loading = false
	s.mu.Unlock()
	return result
}

// SendMessage routes free-form user text. Matching text triggers a tool
// with demo stand-in arguments; everything else produces a plain reply.
func (s *Session) SendMessage(ctx context.Context, text string) (string, *tools.Result) {
	switch s.classifier.Classify(text) {
	case IntentSearchFlights:
		args := mustMarshal(travel.SearchCriteria{
			Origin:        "GRU",
			Destination:   "GIG",
			DepartureDate: "2025-01-10",
			Passengers:    1,
			Cabin:         travel.CabinEconomy,
		})
		return i18n.T("loading.search_flights"), s.ExecuteTool(ctx, tools.ToolSearchFlights, args)

	case IntentSearchHotels:
		args := mustMarshal(travel.HotelCriteria{
			Destination: "Rio de Janeiro",
			CheckIn:     "2025-01-10",
			CheckOut:    "2025-01-15",
			Guests:      2,
		})
		return i18n.T("loading.search_hotels"), s.ExecuteTool(ctx, tools.ToolSearchHotels, args)

	case IntentBook:
		criteria := travel.SearchCriteria{
			Origin:        "GRU",
			Destination:   "GIG",
			DepartureDate: "2025-01-10",
			Passengers:    1,
			Cabin:         travel.CabinEconomy,
		}
		args := mustMarshal(travel.BookingRequest{
			FlightID:  travel.MockFlights(criteria)[0].ID,
			Passenger: travel.Passenger{Name: "Ana Silva", Email: "ana@example.com", Document: "12345678900"},
			Payment:   travel.PaymentInfo{Method: travel.PaymentPix},
		})
		return i18n.T("loading.booking_started"), s.ExecuteTool(ctx, tools.ToolBookTrip, args)

	default:
		if s.responder != nil {
			reply, err := s.responder.Reply(ctx, text)
			if err == nil {
				return reply, nil
			}
			s.logger.Warn("fallback reply failed", "error", err)
		}
		return i18n.T("chat.fallback"), nil
	}
}

// drain consumes a component stream, appending each element in strict
// arrival order. Loading placeholders are removed once a component of
// another kind supersedes them.
func (s *Session) drain(stream <-chan component.Component) {
	var loadingIDs []string
	for c := range stream {
		s.mu.Lock()
		if c.Kind == component.KindLoading {
			loadingIDs = append(loadingIDs, c.ID)
		} else if len(loadingIDs) > 0 {
			for _, id := range loadingIDs {
				s.removeByIDLocked(id)
			}
			loadingIDs = nil
		}
		s.components = append(s.components, c)
		if c.Kind == component.KindError {
			s.lastErr = c.Message
			s.phase = PhaseError
		}
		s.mu.Unlock()

		if s.sink != nil {
			s.sink(c)
		}
		s.announce(c)
	}
}

// removeByIDLocked removes the component with the given id, if present.
// Callers must hold s.mu.
func (s *Session) removeByIDLocked(id string) {
	for i, c := range s.components {
		if c.ID == id {
			s.components = append(s.components[:i], s.components[i+1:]...)
			return
		}
	}
}

// fail converts an error from the retry-wrapped call into a single
// error component with a retry callback bound to the same operation.
func (s *Session) fail(name string, args json.RawMessage, err error) *tools.Result {
	kind := resilience.FaultKindOf(err)
	msg := userMessage(kind, err)
	s.logger.Warn("tool execution failed", "tool", name, "kind", kind, "error", err)

	var retry component.RetryFunc
	if resilience.IsRetryable(err) {
		retry = func(ctx context.Context) <-chan component.Component {
			s.ExecuteTool(ctx, name, args)
			return nil
		}
	}
	s.appendError(msg, retry)

	s.mu.Lock()
	s.lastErr = msg
	s.loading = false
	s.phase = PhaseError
	s.mu.Unlock()

	return &tools.Result{Success: false, Error: msg}
}

func (s *Session) appendError(msg string, retry component.RetryFunc) {
	c := s.gen.Error(msg, retry)
	s.mu.Lock()
	s.components = append(s.components, c)
	s.mu.Unlock()
	if s.sink != nil {
		s.sink(c)
	}
	s.announce(c)
}

// userMessage localizes an error by its fault classification.
func userMessage(kind resilience.FaultKind, err error) string {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return i18n.T("error.circuit_open")
	}
	switch kind {
	case resilience.FaultNetwork:
		return i18n.T("error.network")
	case resilience.FaultTimeout:
		return i18n.T("error.timeout")
	case resilience.FaultValidation:
		return i18n.T("error.validation")
	case resilience.FaultPayment:
		return i18n.T("error.payment")
	case resilience.FaultToolNotFound:
		return i18n.T("error.tool_not_found")
	default:
		return i18n.T("error.server")
	}
}

// announce emits the accessibility announcement for one component.
func (s *Session) announce(c component.Component) {
	switch c.Kind {
	case component.KindFlightCard:
		if c.Flight != nil {
			s.announcer.Announce(i18n.Sprintf("announce.flight_card",
				c.Flight.FlightNumber, travel.Currency, c.Flight.Price))
		}
	case component.KindHotelCard:
		if c.Hotel != nil {
			s.announcer.Announce(i18n.Sprintf("announce.hotel_card",
				c.Hotel.Name, c.Hotel.Stars, travel.Currency, c.Hotel.PricePerNight))
		}
	case component.KindPriceBreakdown:
		if c.Price != nil {
			s.announcer.Announce(i18n.Sprintf("announce.price_breakdown",
				c.Price.Currency, c.Price.Total))
		}
	case component.KindConfirmation:
		if c.Confirmation != nil {
			s.announcer.Announce(i18n.Sprintf("announce.confirmation", c.Confirmation.PNR))
		}
	case component.KindError:
		s.announcer.Announce(i18n.Sprintf("announce.error", c.Message))
	case component.KindLoading:
		s.announcer.Announce(c.Message)
	}
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("BUG: marshaling %T: %v", v, err))
	}
	return data
}
