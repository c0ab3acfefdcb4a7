package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/docpal/docpal/agent/ai"
	"github.com/docpal/docpal/agent/tokens"
)

// stubProvider returns a canned response (or error) and records requests.
type stubProvider struct {
	content string
	err     error
	reqs    []*ai.ChatRequest
}

func (s *stubProvider) ID() string { return "stub" }

func (s *stubProvider) Complete(_ context.Context, req *ai.ChatRequest) (*ai.ChatResponse, error) {
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	return &ai.ChatResponse{Content: s.content}, nil
}

func testBudgeter(t *testing.T) *tokens.Budgeter {
	t.Helper()
	b, err := tokens.NewBudgeter()
	if err != nil {
		t.Fatalf("failed to create budgeter: %v", err)
	}
	return b
}

func testDocConfig() DocumentConfig {
	return DocumentConfig{
		MaxInputTokens:   10000,
		SummaryMaxTokens: 500,
		QuizMaxTokens:    1000,
	}
}

func TestSummarizeReturnsModelContentVerbatim(t *testing.T) {
	provider := &stubProvider{content: "This document discusses X."}
	op := NewSummarizeOp(provider, testBudgeter(t), testDocConfig())

	res := op.Execute(context.Background(), map[string]string{"text": "some document text"})
	if res.Failed {
		t.Fatalf("unexpected failure: %q", res.Output)
	}
	if res.Output != "This document discusses X." {
		t.Errorf("expected verbatim model content, got %q", res.Output)
	}

	if len(provider.reqs) != 1 {
		t.Fatalf("expected exactly one model call, got %d", len(provider.reqs))
	}
	req := provider.reqs[0]
	if req.MaxTokens != 500 {
		t.Errorf("expected summary output cap 500, got %d", req.MaxTokens)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Fatalf("expected a single user message, got %+v", req.Messages)
	}
	if !strings.Contains(req.Messages[0].Content, "some document text") {
		t.Errorf("expected prompt to carry the document, got %q", req.Messages[0].Content)
	}
}

func TestSummarizeEmptyModelContent(t *testing.T) {
	op := NewSummarizeOp(&stubProvider{content: ""}, testBudgeter(t), testDocConfig())

	res := op.Execute(context.Background(), map[string]string{"text": "doc"})
	if res.Failed {
		t.Fatalf("unexpected failure: %q", res.Output)
	}
	if res.Output != "No summary was generated." {
		t.Errorf("expected fallback text, got %q", res.Output)
	}
}

func TestSummarizeProviderFailure(t *testing.T) {
	op := NewSummarizeOp(&stubProvider{err: errors.New("connection refused")}, testBudgeter(t), testDocConfig())

	res := op.Execute(context.Background(), map[string]string{"text": "doc"})
	if !res.Failed {
		t.Fatal("expected failure when the provider errors")
	}
	if !strings.HasPrefix(res.Output, "Error summarizing document: ") {
		t.Errorf("expected the documented error prefix, got %q", res.Output)
	}
	if !strings.Contains(res.Output, "connection refused") {
		t.Errorf("expected the cause in the output, got %q", res.Output)
	}
}

func TestSummarizeEmptyInputStillCallsModel(t *testing.T) {
	provider := &stubProvider{content: "Nothing to summarize."}
	op := NewSummarizeOp(provider, testBudgeter(t), testDocConfig())

	res := op.Execute(context.Background(), map[string]string{"text": ""})
	if res.Failed {
		t.Fatalf("unexpected failure: %q", res.Output)
	}
	if len(provider.reqs) != 1 {
		t.Errorf("empty input must not short-circuit the model call, got %d calls", len(provider.reqs))
	}
}

func TestSummarizeTruncatesLongInput(t *testing.T) {
	provider := &stubProvider{content: "ok"}
	cfg := testDocConfig()
	cfg.MaxInputTokens = 20
	op := NewSummarizeOp(provider, testBudgeter(t), cfg)

	long := strings.Repeat("the quick brown fox jumps over the lazy dog ", 100)
	op.Execute(context.Background(), map[string]string{"text": long})

	prompt := provider.reqs[0].Messages[0].Content
	if strings.Contains(prompt, long) {
		t.Error("expected long input to be truncated before prompting")
	}
}

func TestGenerateQuizReturnsModelContentVerbatim(t *testing.T) {
	provider := &stubProvider{content: "Q1. What is X?\nA) ...\nB) ..."}
	op := NewQuizOp(provider, testBudgeter(t), testDocConfig())

	res := op.Execute(context.Background(), map[string]string{"text": "lecture notes"})
	if res.Failed {
		t.Fatalf("unexpected failure: %q", res.Output)
	}
	if res.Output != "Q1. What is X?\nA) ...\nB) ..." {
		t.Errorf("expected verbatim model content, got %q", res.Output)
	}

	req := provider.reqs[0]
	if req.MaxTokens != 1000 {
		t.Errorf("expected quiz output cap 1000, got %d", req.MaxTokens)
	}
	prompt := req.Messages[0].Content
	if !strings.Contains(prompt, "3-5 Multiple Choice Questions") {
		t.Errorf("expected quiz instructions in prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, "lecture notes") {
		t.Errorf("expected the document in the prompt, got %q", prompt)
	}
}

func TestGenerateQuizProviderFailure(t *testing.T) {
	op := NewQuizOp(&stubProvider{err: errors.New("boom")}, testBudgeter(t), testDocConfig())

	res := op.Execute(context.Background(), map[string]string{"text": "doc"})
	if !res.Failed {
		t.Fatal("expected failure when the provider errors")
	}
	if !strings.HasPrefix(res.Output, "Error generating quiz: ") {
		t.Errorf("expected the documented error prefix, got %q", res.Output)
	}
}

func TestGenerateQuizEmptyModelContent(t *testing.T) {
	op := NewQuizOp(&stubProvider{content: ""}, testBudgeter(t), testDocConfig())

	res := op.Execute(context.Background(), map[string]string{"text": "doc"})
	if res.Output != "No quiz was generated." {
		t.Errorf("expected fallback text, got %q", res.Output)
	}
}
