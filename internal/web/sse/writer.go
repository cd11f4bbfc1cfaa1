// Package sse provides Server-Sent Events utilities for streaming responses.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Writer wraps an http.ResponseWriter for SSE streaming.
type Writer struct {
	w       io.Writer
	flusher http.Flusher
}

// NewWriter creates a new SSE writer and sets appropriate headers.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support flusher interface")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	return &Writer{w: w, flusher: flusher}, nil
}

// writeData writes data in SSE format, handling multi-line content.
// The SSE spec requires each line of data to be prefixed with "data: ".
func (w *Writer) writeData(event, content string) error {
	if _, err := fmt.Fprintf(w.w, "event: %s\n", event); err != nil {
		return fmt.Errorf("write event name: %w", err)
	}

	for _, line := range strings.Split(content, "\n") {
		if _, err := fmt.Fprintf(w.w, "data: %s\n", line); err != nil {
			return fmt.Errorf("write data line: %w", err)
		}
	}

	// Empty line terminates the event
	if _, err := w.w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write terminator: %w", err)
	}

	w.flusher.Flush()
	return nil
}

// WriteJSON sends a named event with a JSON-encoded payload.
func (w *Writer) WriteJSON(ctx context.Context, event string, v any) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context canceled: %w", ctx.Err())
	default:
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	return w.writeData(event, string(data))
}

// WriteDone sends the terminal event of a stream.
func (w *Writer) WriteDone(ctx context.Context) error {
	return w.WriteJSON(ctx, "done", map[string]bool{"done": true})
}

// WriteError sends an error event with a user-facing message.
func (w *Writer) WriteError(ctx context.Context, message string) error {
	return w.WriteJSON(ctx, "error", map[string]string{"message": message})
}
