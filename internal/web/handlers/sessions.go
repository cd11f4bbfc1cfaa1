// Package handlers contains the HTTP handlers of the web server.
package handlers

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/voyago/voyago/internal/agent"
	"github.com/voyago/voyago/internal/component"
	"github.com/voyago/voyago/internal/log"
)

// SessionHeader carries the conversation identity between requests.
// Clients echo the header value they received on the first response.
const SessionHeader = "X-Session-ID"

// Live pairs an agent session with per-request output bindings.
// While a streaming request is active, components and accessibility
// announcements are forwarded to that request's SSE writer.
type Live struct {
	ID      string
	Session *agent.Session

	mu            sync.Mutex
	componentSink func(component.Component)
	announceSink  func(string)
	toolSink      func(name, phase string)
}

// Bind attaches the current request's sinks and returns a release
// function. Only one streaming request is bound at a time; a second
// binding replaces the first.
func (l *Live) Bind(comp func(component.Component), announce func(string), tool func(name, phase string)) (release func()) {
	l.mu.Lock()
	l.componentSink = comp
	l.announceSink = announce
	l.toolSink = tool
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		l.componentSink = nil
		l.announceSink = nil
		l.toolSink = nil
		l.mu.Unlock()
	}
}

// ForwardComponent implements the session's component sink.
func (l *Live) ForwardComponent(c component.Component) {
	l.mu.Lock()
	fn := l.componentSink
	l.mu.Unlock()
	if fn != nil {
		fn(c)
	}
}

// Announce implements agent.Announcer.
func (l *Live) Announce(text string) {
	l.mu.Lock()
	fn := l.announceSink
	l.mu.Unlock()
	if fn != nil {
		fn(text)
	}
}

// forwardTool relays a tool lifecycle event to the bound request.
func (l *Live) forwardTool(name, phase string) {
	l.mu.Lock()
	fn := l.toolSink
	l.mu.Unlock()
	if fn != nil {
		fn(name, phase)
	}
}

// OnToolStart implements tools.EventEmitter.
func (l *Live) OnToolStart(name string) { l.forwardTool(name, "start") }

// OnToolComplete implements tools.EventEmitter.
func (l *Live) OnToolComplete(name string) { l.forwardTool(name, "complete") }

// OnToolError implements tools.EventEmitter.
func (l *Live) OnToolError(name string) { l.forwardTool(name, "error") }

// SessionFactory builds the agent session for a new conversation,
// wiring the Live bindings in as sink and announcer.
type SessionFactory func(l *Live) (*agent.Session, error)

// Sessions tracks live conversations by session id.
type Sessions struct {
	mu      sync.Mutex
	live    map[string]*Live
	factory SessionFactory
	logger  log.Logger
}

// NewSessions creates the session tracker.
func NewSessions(factory SessionFactory, logger log.Logger) *Sessions {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Sessions{
		live:    make(map[string]*Live),
		factory: factory,
		logger:  logger,
	}
}

// Get returns the conversation for the request, creating one when the
// session header is absent or unknown. The session id is echoed on the
// response so the client can carry it forward.
func (s *Sessions) Get(w http.ResponseWriter, r *http.Request) (*Live, error) {
	id := r.Header.Get(SessionHeader)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if l, ok := s.live[id]; ok {
			w.Header().Set(SessionHeader, id)
			return l, nil
		}
	}

	if id == "" {
		id = uuid.NewString()
	}
	l := &Live{ID: id}
	sess, err := s.factory(l)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	l.Session = sess
	s.live[id] = l

	s.logger.Debug("session created", "session_id", id)
	w.Header().Set(SessionHeader, id)
	return l, nil
}

// Lookup returns an existing conversation without creating one.
func (s *Sessions) Lookup(id string) (*Live, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.live[id]
	return l, ok
}

// Count returns the number of live conversations.
func (s *Sessions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}
