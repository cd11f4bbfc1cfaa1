package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/voyago/voyago/internal/agent"
	"github.com/voyago/voyago/internal/component"
	"github.com/voyago/voyago/internal/log"
	"github.com/voyago/voyago/internal/resilience"
	"github.com/voyago/voyago/internal/store"
	"github.com/voyago/voyago/internal/stream"
	"github.com/voyago/voyago/internal/testutil"
	"github.com/voyago/voyago/internal/tools"
	"github.com/voyago/voyago/internal/web/handlers"
)

func instantSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func newTestServer(t *testing.T, probability float64, cfg ServerConfig) *httptest.Server {
	t.Helper()

	orch, err := stream.New(
		component.NewGenerator(),
		resilience.NewLatency(resilience.LatencyConfig{Min: time.Millisecond, Max: 2 * time.Millisecond, Seed: 1}),
		resilience.NewFaultInjector(resilience.FaultConfig{Probability: probability, Seed: 1}),
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

	cfg.Registry = registry
	cfg.SessionFactory = func(l *handlers.Live) (*agent.Session, error) {
		retrier := resilience.NewRetrier(
			resilience.RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond},
			resilience.WithSleep(instantSleep),
		)
		breakers := resilience.NewBreakers(resilience.CircuitBreakerConfig{FailureThreshold: 5, Cooldown: time.Minute})
		return agent.NewSession(registry, retrier, breakers, nil,
			agent.WithComponentSink(l.ForwardComponent),
			agent.WithAnnouncer(l),
		)
	}

	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, client *http.Client, url, sessionID string, body any) *http.Response {
	t.Helper()

	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(handlers.SessionHeader, sessionID)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, 0, ServerConfig{})

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if body := readBody(t, resp); !strings.Contains(body, `"ok"`) {
		t.Errorf("body = %q, want ok status", body)
	}
}

func TestChatStreamsFlightComponents(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, 0, ServerConfig{})

	resp := postJSON(t, ts.Client(), ts.URL+"/api/chat", "", map[string]string{"message": "buscar voos para o Rio"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}
	if resp.Header.Get(handlers.SessionHeader) == "" {
		t.Error("response missing session header")
	}

	events := testutil.ParseSSEEvents(t, readBody(t, resp))
	if got := len(testutil.FindAllEvents(events, "component")); got != 7 {
		t.Errorf("component events = %d, want 7", got)
	}
	if testutil.FindEvent(events, "reply") == nil {
		t.Error("missing reply event")
	}
	if len(testutil.FindAllEvents(events, "announce")) == 0 {
		t.Error("missing announce events")
	}
	if testutil.FindEvent(events, "done") == nil {
		t.Error("missing done event")
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, 0, ServerConfig{})

	resp := postJSON(t, ts.Client(), ts.URL+"/api/chat", "", map[string]string{"message": ""})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestToolDirectExecution(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, 0, ServerConfig{})

	resp := postJSON(t, ts.Client(), ts.URL+"/api/tools/"+tools.ToolDestinationInfo, "",
		map[string]string{"destination": "GIG"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var result tools.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	resp.Body.Close()
	if !result.Success {
		t.Fatalf("result.Success = false, error = %q", result.Error)
	}
}

func TestToolValidationFailureReturns422(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, 0, ServerConfig{})

	resp := postJSON(t, ts.Client(), ts.URL+"/api/tools/"+tools.ToolCalculateTripPrice, "",
		map[string]any{
			"origin":         "GRU",
			"destination":    "GIG",
			"departure_date": "2025-01-10",
			"flight_id":      "VG100",
			"passengers":     0,
		})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestToolStreamingExecution(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, 0, ServerConfig{})

	resp := postJSON(t, ts.Client(), ts.URL+"/api/tools/"+tools.ToolSearchHotels, "",
		map[string]any{
			"destination": "Rio de Janeiro",
			"check_in":    "2025-01-10",
			"check_out":   "2025-01-15",
			"guests":      2,
		})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	events := testutil.ParseSSEEvents(t, readBody(t, resp))
	if got := len(testutil.FindAllEvents(events, "component")); got != 5 {
		t.Errorf("component events = %d, want 5", got)
	}
	if testutil.FindEvent(events, "done") == nil {
		t.Error("missing done event")
	}

	toolEvents := testutil.FindAllEvents(events, "tool")
	if len(toolEvents) != 2 {
		t.Fatalf("tool events = %d, want start and complete", len(toolEvents))
	}
	if !strings.Contains(toolEvents[0].Data, `"start"`) {
		t.Errorf("first tool event = %q, want start phase", toolEvents[0].Data)
	}
	if !strings.Contains(toolEvents[1].Data, `"complete"`) {
		t.Errorf("second tool event = %q, want complete phase", toolEvents[1].Data)
	}
}

func TestSessionStateLifecycle(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, 0, ServerConfig{})
	client := ts.Client()

	resp := postJSON(t, client, ts.URL+"/api/chat", "", map[string]string{"message": "buscar voos"})
	id := resp.Header.Get(handlers.SessionHeader)
	readBody(t, resp)
	if id == "" {
		t.Fatal("chat response missing session header")
	}

	resp, err := client.Get(ts.URL + "/api/sessions/" + id + "/components")
	if err != nil {
		t.Fatalf("GET components: %v", err)
	}
	var state struct {
		SessionID  string                `json:"session_id"`
		Components []component.Component `json:"components"`
		Phase      string                `json:"phase"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	resp.Body.Close()
	if state.SessionID != id {
		t.Errorf("session_id = %q, want %q", state.SessionID, id)
	}
	// The loading placeholder is removed once real cards arrive.
	if len(state.Components) != 6 {
		t.Errorf("components = %d, want 6", len(state.Components))
	}

	resp = postJSON(t, client, ts.URL+"/api/sessions/"+id+"/clear", "", struct{}{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("clear status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}

	resp, err = client.Get(ts.URL + "/api/sessions/" + id + "/components")
	if err != nil {
		t.Fatalf("GET components after clear: %v", err)
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	resp.Body.Close()
	if len(state.Components) != 0 {
		t.Errorf("components after clear = %d, want 0", len(state.Components))
	}
}

func TestClearUnknownSessionReturns404(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, 0, ServerConfig{})

	resp := postJSON(t, ts.Client(), ts.URL+"/api/sessions/no-such-session/clear", "", struct{}{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestRetryReplaysLastOperation(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, 0, ServerConfig{})
	client := ts.Client()

	resp := postJSON(t, client, ts.URL+"/api/tools/"+tools.ToolDestinationInfo, "",
		map[string]string{"destination": "GIG"})
	id := resp.Header.Get(handlers.SessionHeader)
	readBody(t, resp)
	if id == "" {
		t.Fatal("tool response missing session header")
	}

	resp = postJSON(t, client, ts.URL+"/api/sessions/"+id+"/retry", "", struct{}{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("retry status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	events := testutil.ParseSSEEvents(t, readBody(t, resp))
	if testutil.FindEvent(events, "data") == nil {
		t.Error("retry response missing data event")
	}
	if testutil.FindEvent(events, "done") == nil {
		t.Error("retry response missing done event")
	}
}

func TestRetryWithoutOperation(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, 0, ServerConfig{})
	client := ts.Client()

	resp := postJSON(t, client, ts.URL+"/api/chat", "", map[string]string{"message": "bom dia"})
	id := resp.Header.Get(handlers.SessionHeader)
	readBody(t, resp)

	resp = postJSON(t, client, ts.URL+"/api/sessions/"+id+"/retry", "", struct{}{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("retry status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	events := testutil.ParseSSEEvents(t, readBody(t, resp))
	if testutil.FindEvent(events, "reply") == nil {
		t.Error("retry response missing reply event")
	}
}

func TestRateLimitExceeded(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, 0, ServerConfig{RateLimitRPS: 1, RateLimitBurst: 1})
	client := ts.Client()

	statuses := make([]int, 0, 4)
	for range 4 {
		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/sessions/unknown/components", nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("GET components: %v", err)
		}
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}

	limited := false
	for _, s := range statuses {
		if s == http.StatusTooManyRequests {
			limited = true
		}
	}
	if !limited {
		t.Errorf("statuses = %v, want at least one %d", statuses, http.StatusTooManyRequests)
	}
}

func TestMiddlewareStackPreservesFlusher(t *testing.T) {
	t.Parallel()

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if _, ok := w.(http.Flusher); !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	handler = RateLimitMiddleware(newRateLimiter(10, 10), false, log.NewNop())(handler)
	handler = TracingMiddleware()(handler)
	handler = LoggingMiddleware(log.NewNop())(handler)
	handler = RecoveryMiddleware(log.NewNop())(handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: writer lost http.Flusher through the stack", rec.Code, http.StatusOK)
	}
}

func TestRecoveryMiddlewareCatchesPanic(t *testing.T) {
	t.Parallel()

	handler := RecoveryMiddleware(log.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
