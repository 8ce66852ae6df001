package embedding

import "context"

// Role selects the task-specific encoding of the embedding model. Retrieval
// quality depends on indexing with RoleDocument and searching with RoleQuery;
// mixing them degrades relevance but is not a structural error.
type Role string

const (
	// RoleDocument is used when embedding content for indexing.
	RoleDocument Role = "document"
	// RoleQuery is used when embedding a search query.
	RoleQuery Role = "query"
)

// Embedding is the interface all embedding providers implement.
type Embedding interface {
	// Embed generates the embedding vector for a single text under the
	// given role.
	Embed(ctx context.Context, text string, role Role) ([]float32, error)

	// EmbedBatch generates embedding vectors for a batch of texts under the
	// given role. The result is index-aligned with texts.
	EmbedBatch(ctx context.Context, texts []string, role Role) ([][]float32, error)
}
