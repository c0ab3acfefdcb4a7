package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/docpal/docpal/agent/ai"
	"github.com/docpal/docpal/internal/logging"
)

// Result represents the outcome of an operation execution. Output is always
// the verbatim text to surface, whether the operation succeeded or captured
// an internal failure; Failed marks the latter.
type Result struct {
	Output string `json:"output"`
	Failed bool   `json:"failed,omitempty"`
}

// Param declares one named parameter of an operation. Type is the semantic
// type name used in the routing schema; every operation here takes strings.
type Param struct {
	Name        string
	Type        string
	Description string
}

// Operation is a named callable the agent loop may invoke. Execute must
// never panic or return a Go error: internal failures are absorbed into a
// Result with an "Error ..." prefixed Output so the loop can surface them
// verbatim.
type Operation interface {
	// Name returns the operation's unique name
	Name() string

	// Description returns a description used for routing decisions
	Description() string

	// Params returns the ordered parameter declarations
	Params() []Param

	// Execute runs the operation with validated arguments
	Execute(ctx context.Context, args map[string]string) *Result
}

// UnknownOperationError indicates a dispatch against an unregistered name.
// This is a routing bug, not a document-processing failure, so it is a
// structured error rather than error text.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation: %s", e.Name)
}

// ArgumentMismatchError indicates arguments that do not satisfy an
// operation's declared parameter schema.
type ArgumentMismatchError struct {
	Operation string
	Reason    string
}

func (e *ArgumentMismatchError) Error() string {
	return fmt.Sprintf("argument mismatch for %s: %s", e.Operation, e.Reason)
}

// Registry holds the fixed, ordered catalog of operations. The set is
// immutable after construction; registration happens once at process start.
type Registry struct {
	ops    []Operation
	byName map[string]Operation
}

// NewRegistry creates a registry over the given operations. Order is
// preserved for listing and routing context.
func NewRegistry(ops ...Operation) *Registry {
	byName := make(map[string]Operation, len(ops))
	for _, op := range ops {
		byName[op.Name()] = op
	}
	return &Registry{ops: ops, byName: byName}
}

// List returns the registered operations in registration order.
func (r *Registry) List() []Operation {
	out := make([]Operation, len(r.ops))
	copy(out, r.ops)
	return out
}

// Defs returns tool definitions for the routing step, with a JSON schema
// generated from each operation's parameter declarations.
func (r *Registry) Defs() []ai.ToolDefinition {
	defs := make([]ai.ToolDefinition, 0, len(r.ops))
	for _, op := range r.ops {
		defs = append(defs, ai.ToolDefinition{
			Name:        op.Name(),
			Description: op.Description(),
			InputSchema: paramSchema(op.Params()),
		})
	}
	return defs
}

// Dispatch validates the argument payload against the named operation's
// parameter schema and executes it. Dispatch-level failures (unknown name,
// bad arguments) come back as typed errors; handler-internal failures never
// do — they are carried in the Result with an "Error" prefixed Output.
func (r *Registry) Dispatch(ctx context.Context, name string, input json.RawMessage) (*Result, error) {
	op, ok := r.byName[name]
	if !ok {
		return nil, &UnknownOperationError{Name: name}
	}

	args, err := parseArgs(op, input)
	if err != nil {
		return nil, err
	}

	logging.Debugf("[registry] executing operation: %s", name)
	return op.Execute(ctx, args), nil
}

// parseArgs decodes the raw payload into a string-to-string argument map
// and checks it against the operation's declared parameters.
func parseArgs(op Operation, input json.RawMessage) (map[string]string, error) {
	raw := map[string]json.RawMessage{}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &raw); err != nil {
			return nil, &ArgumentMismatchError{
				Operation: op.Name(),
				Reason:    fmt.Sprintf("arguments are not a JSON object: %v", err),
			}
		}
	}

	args := make(map[string]string, len(op.Params()))
	for _, p := range op.Params() {
		val, ok := raw[p.Name]
		if !ok {
			return nil, &ArgumentMismatchError{
				Operation: op.Name(),
				Reason:    fmt.Sprintf("missing required parameter %q", p.Name),
			}
		}
		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			return nil, &ArgumentMismatchError{
				Operation: op.Name(),
				Reason:    fmt.Sprintf("parameter %q is not a string", p.Name),
			}
		}
		args[p.Name] = s
	}
	return args, nil
}

// paramSchema builds a JSON schema object from parameter declarations.
func paramSchema(params []Param) json.RawMessage {
	properties := map[string]any{}
	required := make([]string, 0, len(params))
	for _, p := range params {
		prop := map[string]any{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		properties[p.Name] = prop
		required = append(required, p.Name)
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	data, _ := json.Marshal(schema)
	return data
}
