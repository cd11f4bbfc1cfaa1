package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/voyago/voyago/internal/component"
	"github.com/voyago/voyago/internal/log"
	"github.com/voyago/voyago/internal/tools"
	"github.com/voyago/voyago/internal/web/sse"
)

// Tools executes a named tool for the request's session.
// Streaming tools respond over SSE; direct tools respond with JSON.
type Tools struct {
	sessions  *Sessions
	streaming func(name string) bool
	logger    log.Logger
}

// NewTools creates the tool handler. streaming reports whether a tool
// name produces a component stream.
func NewTools(sessions *Sessions, streaming func(name string) bool, logger log.Logger) *Tools {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Tools{sessions: sessions, streaming: streaming, logger: logger}
}

// Execute handles POST /api/tools/{name}.
func (h *Tools) Execute(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	args, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 64<<10))
	if err != nil {
		writeBadRequest(w)
		return
	}

	live, err := h.sessions.Get(w, r)
	if err != nil {
		h.logger.Error("session setup failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if h.streaming(name) {
		h.executeStreaming(w, r, live, name, args)
		return
	}

	result := live.Session.ExecuteTool(r.Context(), name, args)
	w.Header().Set("Content-Type", "application/json")
	if !result.Success {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Debug("response encode failed", "error", err)
	}
}

func (h *Tools) executeStreaming(w http.ResponseWriter, r *http.Request, live *Live, name string, args json.RawMessage) {
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
		func(tool, phase string) {
			if err := writer.WriteJSON(ctx, "tool", map[string]string{"name": tool, "phase": phase}); err != nil {
				h.logger.Debug("tool event write failed", "error", err)
			}
		},
	)
	defer release()

	result := live.Session.ExecuteTool(ctx, name, args)
	if !result.Success && result.Error != "" {
		if err := writer.WriteError(ctx, result.Error); err != nil {
			return
		}
	}
	_ = writer.WriteDone(ctx)
}
