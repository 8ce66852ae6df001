package corpora

import (
	"context"
	"fmt"
	"strings"

	"EduLens/pkg/logger"

	generativelanguage "google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"
)

// aqaModel is the attributed question answering model that pairs with the
// managed semantic retriever.
const aqaModel = "models/aqa"

// Client answers queries against a managed retrieval corpus. This is the
// experimental path: chunking, embedding, and retrieval all happen inside the
// managed service instead of our own pipeline.
type Client struct {
	svc           *generativelanguage.Service
	defaultCorpus string
	log           *logger.Logger
}

// NewClient creates a managed-corpus client. defaultCorpus is the corpus
// resource name (e.g. "corpora/student-docs") used when a request does not
// name one.
func NewClient(ctx context.Context, apiKey, defaultCorpus string, log *logger.Logger) (*Client, error) {
	svc, err := generativelanguage.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating generative language service: %w", err)
	}
	return &Client{
		svc:           svc,
		defaultCorpus: defaultCorpus,
		log:           log,
	}, nil
}

// Answer runs the user query through the managed semantic retriever over the
// given corpus and returns the generated answer text. An empty corpusName
// falls back to the configured default.
func (c *Client) Answer(ctx context.Context, userQuery, corpusName string) (string, error) {
	if corpusName == "" {
		corpusName = c.defaultCorpus
	}
	if corpusName == "" {
		return "", fmt.Errorf("no corpus resource name provided and no default configured")
	}

	query := &generativelanguage.Content{
		Parts: []*generativelanguage.Part{{Text: userQuery}},
		Role:  "user",
	}

	req := &generativelanguage.GenerateAnswerRequest{
		AnswerStyle: "ABSTRACTIVE",
		Contents:    []*generativelanguage.Content{query},
		SemanticRetriever: &generativelanguage.SemanticRetrieverConfig{
			Source: corpusName,
			Query:  query,
		},
	}

	resp, err := c.svc.Models.GenerateAnswer(aqaModel, req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("managed corpus answer for %q: %w", corpusName, err)
	}

	if resp.Answer == nil || resp.Answer.Content == nil {
		return "", fmt.Errorf("managed corpus returned no answer")
	}

	var sb strings.Builder
	for _, part := range resp.Answer.Content.Parts {
		sb.WriteString(part.Text)
	}

	c.log.Info(fmt.Sprintf("Managed corpus %s answered query (answerable probability %.2f)", corpusName, resp.AnswerableProbability))
	return sb.String(), nil
}
