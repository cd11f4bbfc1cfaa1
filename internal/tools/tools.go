// Package tools provides the tool registry the assistant executes
// operations through. Each tool declares a JSON schema for its input;
// arguments are validated against the schema before the executor runs.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/voyago/voyago/internal/component"
	"github.com/voyago/voyago/internal/i18n"
	"github.com/voyago/voyago/internal/resilience"
)

// Output is what a tool executor produces: either a single complete
// Data value or a lazy Stream of components, never both.
type Output struct {
	Data   any
	Stream <-chan component.Component
}

// Result is the execution envelope returned to callers.
// Validation failures are reported here with Success false; they are
// not raised as errors past this boundary.
type Result struct {
	Success bool                       `json:"success"`
	Data    any                        `json:"data,omitempty"`
	Error   string                     `json:"error,omitempty"`
	Stream  <-chan component.Component `json:"-"`
}

// Tool couples a name and input schema with an executor.
type Tool struct {
	name        string
	description string
	streaming   bool
	schema      *jsonschema.Resolved
	run         func(ctx context.Context, args json.RawMessage) (Output, error)
}

// Name returns the tool's unique identifier.
func (t *Tool) Name() string { return t.name }

// Description returns the tool's functionality description.
func (t *Tool) Description() string { return t.description }

// IsStreaming reports whether the tool produces a component stream.
func (t *Tool) IsStreaming() bool { return t.streaming }

// New creates a tool with a schema inferred from the input type.
// tighten may adjust the inferred schema (bounds, patterns, enums);
// pass nil to use the inference as-is.
func New[In any](name, description string, streaming bool, tighten func(*jsonschema.Schema), run func(ctx context.Context, in In) (Output, error)) (*Tool, error) {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		return nil, fmt.Errorf("inferring schema for %s: %w", name, err)
	}
	if tighten != nil {
		tighten(schema)
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolving schema for %s: %w", name, err)
	}

	return &Tool{
		name:        name,
		description: description,
		streaming:   streaming,
		schema:      resolved,
		run: func(ctx context.Context, args json.RawMessage) (Output, error) {
			var in In
			if err := json.Unmarshal(args, &in); err != nil {
				return Output{}, fmt.Errorf("decoding %s arguments: %w", name, err)
			}
			return run(ctx, in)
		},
	}, nil
}

// validate checks raw arguments against the tool's schema.
func (t *Tool) validate(args json.RawMessage) error {
	var instance any
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, &instance); err != nil {
		return fmt.Errorf("arguments are not valid JSON: %w", err)
	}
	return t.schema.Validate(instance)
}

// Registry is a static name-to-tool lookup table. It is populated once
// at startup and read-only afterwards, so no locking is needed.
type Registry struct {
	tools map[string]*Tool
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds a tool. Registering the same name twice is a
// programming error and panics.
func (r *Registry) Register(t *Tool) {
	if _, exists := r.tools[t.name]; exists {
		panic(fmt.Sprintf("tool %q registered twice", t.name))
	}
	r.tools[t.name] = t
	r.order = append(r.order, t.name)
}

// Get returns the tool with the given name.
func (r *Registry) Get(name string) (*Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns all registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Execute looks up a tool, validates the arguments against its schema
// and invokes the executor.
//
// An unknown tool name is a caller error and returns a non-retryable
// fault. A schema violation is reported in the Result with Success
// false. Executor errors propagate to the caller; retry and circuit
// breaker wrapping happen one layer up.
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) (*Result, error) {
	emitter := EmitterFromContext(ctx)

	t, ok := r.tools[name]
	if !ok {
		return nil, resilience.NewFault(resilience.FaultToolNotFound,
			fmt.Sprintf("%s: %s", i18n.T("error.tool_not_found"), name))
	}

	if err := t.validate(args); err != nil {
		return &Result{Success: false, Error: err.Error()}, nil
	}

	if emitter != nil {
		emitter.OnToolStart(name)
	}

	out, err := t.run(ctx, args)
	if err != nil {
		if emitter != nil {
			emitter.OnToolError(name)
		}
		return nil, err
	}

	if emitter != nil {
		emitter.OnToolComplete(name)
	}
	return &Result{Success: true, Data: out.Data, Stream: out.Stream}, nil
}
