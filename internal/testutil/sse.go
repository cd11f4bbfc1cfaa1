// Package testutil provides shared test helpers.
package testutil

import (
	"bufio"
	"strings"
	"testing"
)

// SSEEvent is one parsed Server-Sent Event.
type SSEEvent struct {
	Type string // event: value
	Data string // data: value, multi-line payloads joined with \n
}

// ParseSSEEvents parses a raw SSE response body into structured events.
// Multiple "data:" lines are joined with a newline, an empty line
// terminates an event, and ":" comment lines are ignored.
func ParseSSEEvents(t *testing.T, body string) []SSEEvent {
	t.Helper()

	var events []SSEEvent
	scanner := bufio.NewScanner(strings.NewReader(body))

	var current SSEEvent
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.Type = strings.TrimPrefix(line, "event: ")

		case strings.HasPrefix(line, "data: "):
			if current.Type == "" {
				current.Type = "message" // W3C default event type
			}
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))

		case line == "":
			if current.Type != "" {
				current.Data = strings.Join(dataLines, "\n")
				events = append(events, current)
				current = SSEEvent{}
				dataLines = nil
			}

		default:
			if !strings.HasPrefix(line, ":") {
				t.Fatalf("unexpected SSE line: %q", line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("SSE scan error: %v", err)
	}
	if current.Type != "" {
		t.Fatalf("SSE stream ended mid-event %q", current.Type)
	}

	return events
}

// FindEvent returns the first event of the given type, or nil.
func FindEvent(events []SSEEvent, eventType string) *SSEEvent {
	for i := range events {
		if events[i].Type == eventType {
			return &events[i]
		}
	}
	return nil
}

// FindAllEvents returns every event of the given type.
func FindAllEvents(events []SSEEvent, eventType string) []SSEEvent {
	var found []SSEEvent
	for _, e := range events {
		if e.Type == eventType {
			found = append(found, e)
		}
	}
	return found
}
