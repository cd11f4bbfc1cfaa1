package tools

import "context"

// emitterKey uses an empty struct for zero-allocation context keys.
type emitterKey struct{}

// EventEmitter receives tool lifecycle events. The interface is
// minimal: only the tool name, no UI concerns. Presentation lives in
// the web and TUI layers.
//
// Usage:
//  1. Handler creates an emitter bound to its output (SSE writer, TUI program)
//  2. Handler stores it in the context via ContextWithEmitter
//  3. Registry.Execute retrieves it and calls the lifecycle hooks
type EventEmitter interface {
	// OnToolStart signals that a tool has started execution.
	OnToolStart(name string)

	// OnToolComplete signals that a tool completed successfully.
	OnToolComplete(name string)

	// OnToolError signals that a tool execution failed.
	OnToolError(name string)
}

// EmitterFromContext retrieves the EventEmitter from the context.
// Returns nil if none is set, so non-streaming code paths degrade
// gracefully to no events.
func EmitterFromContext(ctx context.Context) EventEmitter {
	emitter, _ := ctx.Value(emitterKey{}).(EventEmitter)
	return emitter
}

// ContextWithEmitter stores an EventEmitter in the context.
func ContextWithEmitter(ctx context.Context, emitter EventEmitter) context.Context {
	return context.WithValue(ctx, emitterKey{}, emitter)
}
