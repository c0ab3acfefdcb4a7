package tokens

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// Budgeter truncates text to a bounded token count using a fixed tokenizer.
// The cl100k_base encoding is used as a model-agnostic proxy: it is
// deterministic and stable across calls, which is all the truncation
// contract needs.
type Budgeter struct {
	codec tokenizer.Codec
}

// NewBudgeter creates a budgeter backed by the cl100k_base encoding.
func NewBudgeter() (*Budgeter, error) {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}
	return &Budgeter{codec: codec}, nil
}

// Count returns the number of tokens in text, or 0 if encoding fails.
func (b *Budgeter) Count(text string) int {
	ids, _, err := b.codec.Encode(text)
	if err != nil {
		return 0
	}
	return len(ids)
}

// Truncate returns text unchanged when it encodes to at most maxTokens
// tokens, otherwise the decoding of the first maxTokens tokens. It never
// fails: any tokenizer error degrades to returning the input unchanged.
func (b *Budgeter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	ids, _, err := b.codec.Encode(text)
	if err != nil || len(ids) <= maxTokens {
		return text
	}
	truncated, err := b.codec.Decode(ids[:maxTokens])
	if err != nil {
		return text
	}
	return truncated
}
