package embedding

import (
	"context"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GoogleModel is a client for the Google GenAI embedding API. It holds two
// handles on the same model, one tuned for document indexing and one for
// query encoding, selected per call through the Role parameter.
type GoogleModel struct {
	docModel   *genai.EmbeddingModel
	queryModel *genai.EmbeddingModel
}

// NewGoogleModel creates a GoogleModel client for the given API key and
// embedding model name.
func NewGoogleModel(ctx context.Context, apiKey, modelName string) (*GoogleModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	docModel := client.EmbeddingModel(modelName)
	docModel.TaskType = genai.TaskTypeRetrievalDocument

	queryModel := client.EmbeddingModel(modelName)
	queryModel.TaskType = genai.TaskTypeRetrievalQuery

	return &GoogleModel{
		docModel:   docModel,
		queryModel: queryModel,
	}, nil
}

func (m *GoogleModel) modelFor(role Role) *genai.EmbeddingModel {
	if role == RoleQuery {
		return m.queryModel
	}
	return m.docModel
}

// Embed generates the embedding vector for a single text.
func (m *GoogleModel) Embed(ctx context.Context, text string, role Role) ([]float32, error) {
	res, err := m.modelFor(role).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}
	return res.Embedding.Values, nil
}

// EmbedBatch generates embedding vectors for a batch of texts in one request.
func (m *GoogleModel) EmbedBatch(ctx context.Context, texts []string, role Role) ([][]float32, error) {
	model := m.modelFor(role)

	batch := model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	res, err := model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, err
	}

	embeddings := make([][]float32, 0, len(res.Embeddings))
	for _, emb := range res.Embeddings {
		embeddings = append(embeddings, emb.Values)
	}

	return embeddings, nil
}

// compile-time check to ensure GoogleModel implements the Embedding interface
var _ Embedding = (*GoogleModel)(nil)
