package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/voyago/voyago/internal/component"
	"github.com/voyago/voyago/internal/i18n"
	"github.com/voyago/voyago/internal/log"
	"github.com/voyago/voyago/internal/tools"
	"github.com/voyago/voyago/internal/web/sse"
)

// State exposes the session's accumulated component list and the
// clear/retry actions.
type State struct {
	sessions *Sessions
	logger   log.Logger
}

// NewState creates the session-state handler.
func NewState(sessions *Sessions, logger log.Logger) *State {
	if logger == nil {
		logger = log.NewNop()
	}
	return &State{sessions: sessions, logger: logger}
}

// stateResponse is the body of GET /api/sessions/{id}/components.
type stateResponse struct {
	SessionID  string                `json:"session_id"`
	Components []component.Component `json:"components"`
	Loading    bool                  `json:"loading"`
	Error      string                `json:"error,omitempty"`
	Phase      string                `json:"phase"`
}

// sessionID resolves the session identity: path parameter first, then
// the session header.
func sessionID(r *http.Request) string {
	if id := r.PathValue("id"); id != "" {
		return id
	}
	return r.Header.Get(SessionHeader)
}

// Components handles GET /api/sessions/{id}/components.
func (h *State) Components(w http.ResponseWriter, r *http.Request) {
	live, ok := h.sessions.Lookup(sessionID(r))
	if !ok {
		WriteNotFound(w)
		return
	}

	resp := stateResponse{
		SessionID:  live.ID,
		Components: live.Session.Components(),
		Loading:    live.Session.IsLoading(),
		Error:      live.Session.Err(),
		Phase:      string(live.Session.Phase()),
	}
	if resp.Components == nil {
		resp.Components = []component.Component{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Debug("response encode failed", "error", err)
	}
}

// Clear handles POST /api/sessions/{id}/clear.
func (h *State) Clear(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	live, ok := h.sessions.Lookup(id)
	if !ok {
		WriteNotFound(w)
		return
	}

	live.Session.ClearComponents()
	w.Header().Set(SessionHeader, id)
	w.WriteHeader(http.StatusNoContent)
}

// Retry handles POST /api/sessions/{id}/retry: it re-invokes the
// session's last operation, streaming the replayed components over SSE.
func (h *State) Retry(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	live, ok := h.sessions.Lookup(id)
	if !ok {
		WriteNotFound(w)
		return
	}
	w.Header().Set(SessionHeader, id)

	writer, err := sse.NewWriter(w)
	if err != nil {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx := tools.ContextWithEmitter(r.Context(), live)
	release := live.Bind(
		func(c component.Component) {
			if err := writer.WriteJSON(ctx, "component", c); err != nil {
				h.logger.Debug("component write failed", "error", err)
			}
		},
		func(text string) {
			if err := writer.WriteJSON(ctx, "announce", map[string]string{"text": text}); err != nil {
				h.logger.Debug("announce write failed", "error", err)
			}
		},
		func(name, phase string) {
			if err := writer.WriteJSON(ctx, "tool", map[string]string{"name": name, "phase": phase}); err != nil {
				h.logger.Debug("tool event write failed", "error", err)
			}
		},
	)
	defer release()

	result := live.Session.RetryLastOperation(ctx)
	if result == nil {
		if err := writer.WriteJSON(ctx, "reply", map[string]string{"text": i18n.T("error.no_operation")}); err != nil {
			return
		}
	} else if result.Data != nil {
		if err := writer.WriteJSON(ctx, "data", result.Data); err != nil {
			return
		}
	}
	_ = writer.WriteDone(ctx)
}

// WriteNotFound writes the session-not-found error body.
func WriteNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "session_not_found",
		"message": i18n.T("web.session_not_found"),
	})
}
