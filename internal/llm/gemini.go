package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini is a client for the Gemini generative API. The model is configured
// to return JSON so report responses can be decoded directly.
type Gemini struct {
	model *genai.GenerativeModel
}

// NewGemini creates a Gemini client for the given model name and API key.
func NewGemini(ctx context.Context, modelName, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"

	return &Gemini{model: model}, nil
}

// Generate sends the prompt to the model and returns the text of the first
// candidate's first part.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response was empty or in an unexpected format")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("gemini response part is not text")
	}

	return string(text), nil
}

// compile-time check to ensure Gemini implements the LLM interface
var _ LLM = (*Gemini)(nil)
