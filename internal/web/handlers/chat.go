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

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	Message string `json:"message"`
}

// Chat streams a conversation turn over SSE: a "reply" event with the
// assistant's text, one "component" event per streaming component as it
// arrives, interleaved "announce" events, and a final "done" event.
type Chat struct {
	sessions *Sessions
	logger   log.Logger
}

// NewChat creates the chat handler.
func NewChat(sessions *Sessions, logger log.Logger) *Chat {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Chat{sessions: sessions, logger: logger}
}

// Send handles POST /api/chat.
func (h *Chat) Send(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeBadRequest(w)
		return
	}

	live, err := h.sessions.Get(w, r)
	if err != nil {
		h.logger.Error("session setup failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

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

	reply, result := live.Session.SendMessage(ctx, req.Message)
	if err := writer.WriteJSON(ctx, "reply", map[string]string{"text": reply}); err != nil {
		return
	}
	if result != nil && result.Data != nil {
		if err := writer.WriteJSON(ctx, "data", result.Data); err != nil {
			return
		}
	}
	_ = writer.WriteDone(ctx)
}

func writeBadRequest(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "bad_request",
		"message": i18n.T("web.bad_request"),
	})
}
