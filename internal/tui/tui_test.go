package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/voyago/voyago/internal/agent"
	"github.com/voyago/voyago/internal/component"
	"github.com/voyago/voyago/internal/resilience"
	"github.com/voyago/voyago/internal/store"
	"github.com/voyago/voyago/internal/stream"
	"github.com/voyago/voyago/internal/tools"
	"github.com/voyago/voyago/internal/travel"
)

func instantSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func testFactory(t *testing.T) SessionFactory {
	t.Helper()

	orch, err := stream.New(
		component.NewGenerator(),
		resilience.NewLatency(resilience.LatencyConfig{Min: time.Millisecond, Max: 2 * time.Millisecond, Seed: 1}),
		resilience.NewFaultInjector(resilience.FaultConfig{Probability: 0, Seed: 1}),
		store.NewMemory(),
		nil,
		stream.WithSleep(instantSleep),
	)
	if err != nil {
		t.Fatalf("stream.New: %v", err)
	}
	registry, err := tools.NewTravelRegistry(orch)
	if err != nil {
		t.Fatalf("NewTravelRegistry: %v", err)
	}

	return func(sink func(component.Component)) (*agent.Session, error) {
		retrier := resilience.NewRetrier(
			resilience.RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond},
			resilience.WithSleep(instantSleep),
		)
		breakers := resilience.NewBreakers(resilience.CircuitBreakerConfig{FailureThreshold: 5, Cooldown: time.Minute})
		return agent.NewSession(registry, retrier, breakers, nil, agent.WithComponentSink(sink))
	}
}

func searchFixture(t *testing.T) []travel.Flight {
	t.Helper()

	return travel.MockFlights(travel.SearchCriteria{
		Origin:        "GRU",
		Destination:   "GIG",
		DepartureDate: "2025-01-10",
		Passengers:    1,
	})
}

func newModel(t *testing.T) *Model {
	t.Helper()

	m, err := New(context.Background(), testFactory(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestNewValidatesArguments(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, testFactory(t)); err == nil {
		t.Error("New(nil ctx) expected error")
	}
	if _, err := New(context.Background(), nil); err == nil {
		t.Error("New(nil factory) expected error")
	}
}

func TestWindowSizeMakesViewRenderable(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	if !m.ready {
		t.Fatal("model not ready after WindowSizeMsg")
	}
	view := m.View()
	if view == "" {
		t.Fatal("View() returned empty output")
	}
	if !strings.Contains(view, "Voyago") {
		t.Error("view missing application title")
	}
}

func TestApplyLoadingComponentDrivesStatus(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	before := len(m.messages)

	m.applyComponent(component.Component{Kind: component.KindLoading, Message: "Buscando voos...", Percent: 40})
	if len(m.messages) != before {
		t.Error("loading component should not append a transcript entry")
	}
	if !strings.Contains(m.statusText, "Buscando voos...") || !strings.Contains(m.statusText, "40%") {
		t.Errorf("statusText = %q, want loading text with percent", m.statusText)
	}
}

func TestApplyFlightCardAppendsCard(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	flight := searchFixture(t)[0]

	m.applyComponent(component.Component{Kind: component.KindFlightCard, Flight: &flight})
	last := m.messages[len(m.messages)-1]
	if last.Role != roleCard {
		t.Fatalf("role = %q, want %q", last.Role, roleCard)
	}
	if !strings.Contains(last.Text, flight.Airline) {
		t.Errorf("card missing airline %q:\n%s", flight.Airline, last.Text)
	}
}

func TestApplyErrorComponentAppendsError(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	m.applyComponent(component.Component{
		Kind:    component.KindError,
		Message: "Falha na conexão de rede",
		Retry:   func(context.Context) <-chan component.Component { return nil },
	})

	last := m.messages[len(m.messages)-1]
	if last.Role != roleError {
		t.Fatalf("role = %q, want %q", last.Role, roleError)
	}
	if !strings.Contains(last.Text, "Falha na conexão de rede") {
		t.Errorf("error card missing message:\n%s", last.Text)
	}
}

func TestTurnDoneAppendsReply(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	m.running = true
	m.statusText = "Pensando..."

	m.Update(turnDoneMsg{reply: "Aqui estão os voos."})
	if m.running {
		t.Error("running should be false after turnDoneMsg")
	}
	if m.statusText != "" {
		t.Errorf("statusText = %q, want empty", m.statusText)
	}
	last := m.messages[len(m.messages)-1]
	if last.Role != roleAssistant || last.Text != "Aqui estão os voos." {
		t.Errorf("last message = %+v, want assistant reply", last)
	}
}

func TestClearResetsTranscript(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	m.addMessage(Message{Role: roleUser, Text: "buscar voos"})

	m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlL})
	if len(m.messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(m.messages))
	}
	if m.messages[0].Role != roleSystem {
		t.Errorf("role = %q, want system notice", m.messages[0].Role)
	}
	if got := m.session.Components(); len(got) != 0 {
		t.Errorf("session components = %d, want 0", len(got))
	}
}

func TestRetryWithoutOperationShowsNotice(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	before := len(m.messages)

	if cmd := m.onRetry(); cmd != nil {
		t.Error("onRetry without prior operation should not start a turn")
	}
	if len(m.messages) != before+1 {
		t.Fatalf("messages = %d, want %d", len(m.messages), before+1)
	}
	if m.messages[len(m.messages)-1].Role != roleSystem {
		t.Error("expected a system notice")
	}
}

func TestTranscriptIsBounded(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	for range maxMessages * 2 {
		m.addMessage(Message{Role: roleUser, Text: "oi"})
	}
	if len(m.messages) != maxMessages {
		t.Errorf("messages = %d, want %d", len(m.messages), maxMessages)
	}
}

func TestRenderPriceBreakdown(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	price := travel.Breakdown(searchFixture(t))

	out := renderComponent(m.styles, 100, component.Component{Kind: component.KindPriceBreakdown, Price: &price})
	if !strings.Contains(out, travel.Currency) {
		t.Errorf("breakdown missing currency:\n%s", out)
	}
}

func TestRenderConfirmationShowsPNR(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	conf := travel.Confirmation{BookingID: "b-1", PNR: "ABC234", CreatedAt: time.Now()}

	out := renderComponent(m.styles, 100, component.Component{Kind: component.KindConfirmation, Confirmation: &conf})
	if !strings.Contains(out, "ABC234") {
		t.Errorf("confirmation missing PNR:\n%s", out)
	}
}
