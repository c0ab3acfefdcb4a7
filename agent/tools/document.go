package tools

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/docpal/docpal/agent/ai"
	"github.com/docpal/docpal/agent/tokens"
)

// DocumentConfig bounds the model calls made by the document operations.
type DocumentConfig struct {
	MaxInputTokens   int           // input truncation ceiling
	SummaryMaxTokens int           // output cap for summaries
	QuizMaxTokens    int           // output cap for quizzes
	Timeout          time.Duration // per-call deadline, 0 disables
}

// SummarizeOp summarizes provided text with a single model call.
type SummarizeOp struct {
	provider ai.Provider
	budgeter *tokens.Budgeter
	cfg      DocumentConfig
}

// NewSummarizeOp creates the summarize operation.
func NewSummarizeOp(provider ai.Provider, budgeter *tokens.Budgeter, cfg DocumentConfig) *SummarizeOp {
	return &SummarizeOp{provider: provider, budgeter: budgeter, cfg: cfg}
}

func (o *SummarizeOp) Name() string {
	return "summarize"
}

func (o *SummarizeOp) Description() string {
	return "Summarizes the provided document text using the language model."
}

func (o *SummarizeOp) Params() []Param {
	return []Param{
		{Name: "text", Type: "string", Description: "The document text to summarize"},
	}
}

func (o *SummarizeOp) Execute(ctx context.Context, args map[string]string) *Result {
	text := o.budgeter.Truncate(args["text"], o.cfg.MaxInputTokens)
	prompt := fmt.Sprintf("Please provide a concise summary of the following document:\n\n%s", text)

	content, err := completeOnce(ctx, o.provider, prompt, o.cfg.SummaryMaxTokens, o.cfg.Timeout)
	if err != nil {
		return operationFailure("Error summarizing document: ", err)
	}
	if content == "" {
		return &Result{Output: "No summary was generated."}
	}
	return &Result{Output: content}
}

// QuizOp generates a quiz from provided text with a single model call.
type QuizOp struct {
	provider ai.Provider
	budgeter *tokens.Budgeter
	cfg      DocumentConfig
}

// NewQuizOp creates the generate_quiz operation.
func NewQuizOp(provider ai.Provider, budgeter *tokens.Budgeter, cfg DocumentConfig) *QuizOp {
	return &QuizOp{provider: provider, budgeter: budgeter, cfg: cfg}
}

func (o *QuizOp) Name() string {
	return "generate_quiz"
}

func (o *QuizOp) Description() string {
	return "Generates a quiz (MCQs and mixed-style questions) from the provided document text using the language model."
}

func (o *QuizOp) Params() []Param {
	return []Param{
		{Name: "text", Type: "string", Description: "The document text to build the quiz from"},
	}
}

func (o *QuizOp) Execute(ctx context.Context, args map[string]string) *Result {
	text := o.budgeter.Truncate(args["text"], o.cfg.MaxInputTokens)
	prompt := fmt.Sprintf(
		"Generate a quiz from the following document. "+
			"Include 3-5 Multiple Choice Questions (MCQs) and 2-3 mixed-style questions (e.g., true/false, short answer).\n\n"+
			"Document:\n%s\n\n"+
			"Please format the quiz clearly with questions and answer options/spaces for answers.",
		text,
	)

	content, err := completeOnce(ctx, o.provider, prompt, o.cfg.QuizMaxTokens, o.cfg.Timeout)
	if err != nil {
		return operationFailure("Error generating quiz: ", err)
	}
	if content == "" {
		return &Result{Output: "No quiz was generated."}
	}
	return &Result{Output: content}
}

// completeOnce issues a single user-role request to the model and returns the
// first choice's content. The timeout is applied here because no deadline is
// enforced further up the stack.
func completeOnce(ctx context.Context, provider ai.Provider, prompt string, maxTokens int, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp, err := provider.Complete(ctx, &ai.ChatRequest{
		Messages:  []ai.Message{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// operationFailure captures an internal failure as descriptive error text
// with cause and stack, keeping the never-raise contract of the operations.
func operationFailure(prefix string, err error) *Result {
	return &Result{
		Output: fmt.Sprintf("%s%v\n%s", prefix, err, debug.Stack()),
		Failed: true,
	}
}
