package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/docpal/docpal/agent/ai"
	"github.com/docpal/docpal/agent/session"
	"github.com/docpal/docpal/agent/tools"
	"github.com/docpal/docpal/internal/logging"
)

// Invocation records one operation the loop ran for a turn: what was
// called, with what arguments, and the verbatim output (success or captured
// failure).
type Invocation struct {
	Operation string          `json:"operation"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Output    string          `json:"output"`
	Failed    bool            `json:"failed,omitempty"`
}

// TurnResult is the outcome of processing one user message.
type TurnResult struct {
	Reply       string       `json:"reply"`
	Invocations []Invocation `json:"invocations,omitempty"`
}

// Runner is the tool-routing agent loop. One provider call per user message
// decides which operations run and extracts their arguments; the registry
// executes them; the surfacing rule picks what the user sees.
type Runner struct {
	mu         sync.Mutex
	provider   ai.Provider
	registry   *tools.Registry
	sessions   *session.Store
	system     string
	maxContext int
}

// New creates a runner. maxContext bounds how many prior turns are shown to
// the routing step; 0 means all of them.
func New(provider ai.Provider, registry *tools.Registry, sessions *session.Store, maxContext int) *Runner {
	return &Runner{
		provider:   provider,
		registry:   registry,
		sessions:   sessions,
		system:     DefaultSystemPrompt,
		maxContext: maxContext,
	}
}

// SetSystemPrompt overrides the routing policy prompt.
func (r *Runner) SetSystemPrompt(prompt string) {
	r.system = prompt
}

// Process runs one full turn: routing, zero or more dispatches, surfacing,
// and history append. Messages are processed strictly one at a time; a
// second caller blocks until the current turn completes.
//
// If any operation ran, the reply is the raw operation outputs newline-joined
// in invocation order and the model's own prose is discarded — downstream
// consumers need byte-faithful tool output, error text included. If none
// ran, the reply is the model's conversational response.
//
// The only errors returned are routing faults (unknown operation, argument
// mismatch) and provider/storage failures; operation-internal failures flow
// through as error text in the reply.
func (r *Runner) Process(ctx context.Context, sessionKey, message string) (*TurnResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sessionKey == "" {
		sessionKey = "default"
	}

	sess, err := r.sessions.GetOrCreate(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	history, err := r.sessions.Turns(sess.ID, r.maxContext)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	messages := make([]ai.Message, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, ai.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, ai.Message{Role: "user", Content: message})

	resp, err := r.provider.Complete(ctx, &ai.ChatRequest{
		Messages: messages,
		Tools:    r.registry.Defs(),
		System:   r.system,
	})
	if err != nil {
		return nil, fmt.Errorf("routing step failed: %w", err)
	}

	var invocations []Invocation
	for _, tc := range resp.ToolCalls {
		logging.Debugf("[runner] dispatching %s", tc.Name)
		res, err := r.registry.Dispatch(ctx, tc.Name, tc.Input)
		if err != nil {
			// Routing bug: the model asked for something outside the
			// registry's contract. This is the one fault class that
			// crosses the loop boundary.
			return nil, err
		}
		invocations = append(invocations, Invocation{
			Operation: tc.Name,
			Arguments: tc.Input,
			Output:    res.Output,
			Failed:    res.Failed,
		})
	}

	final := resp.Content
	if len(invocations) > 0 {
		outputs := make([]string, 0, len(invocations))
		for _, inv := range invocations {
			outputs = append(outputs, inv.Output)
		}
		final = strings.Join(outputs, "\n")
	}

	if err := r.sessions.Append(sess.ID, "user", message); err != nil {
		return nil, fmt.Errorf("failed to save user turn: %w", err)
	}
	if err := r.sessions.Append(sess.ID, "assistant", final); err != nil {
		return nil, fmt.Errorf("failed to save assistant turn: %w", err)
	}

	return &TurnResult{Reply: final, Invocations: invocations}, nil
}
