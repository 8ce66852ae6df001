package llm

import "context"

// LLM is the interface for a generative model that produces text from a
// prompt.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
