package retriever

import (
	"context"
	"fmt"
	"sort"

	"EduLens/internal/embedding"
	"EduLens/internal/report_service/rag/schema"
)

// Retriever ranks a student's chunk corpus against a query and returns the
// most relevant chunk texts. Scoring is the raw dot product: the embedding
// model emits unit-normalized vectors, so dot product and cosine similarity
// coincide. A replacement embedding model must either keep that normalization
// or switch this scorer to true cosine similarity.
type Retriever struct {
	embedder embedding.Embedding
}

// NewRetriever creates a Retriever using the given embedder for queries.
func NewRetriever(embedder embedding.Embedding) *Retriever {
	return &Retriever{embedder: embedder}
}

// Retrieve embeds the query with the query-role encoding, scores every chunk
// in the corpus, and returns the texts of the top k chunks, best match first.
// An empty corpus or k <= 0 yields an empty result; k larger than the corpus
// returns all chunks ranked.
func (r *Retriever) Retrieve(ctx context.Context, query string, corpus []schema.Chunk, k int) ([]string, error) {
	if len(corpus) == 0 || k <= 0 {
		return nil, nil
	}

	queryVec, err := r.embedder.Embed(ctx, query, embedding.RoleQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	ranked := rankByDotProduct(queryVec, corpus)
	if k > len(ranked) {
		k = len(ranked)
	}

	texts := make([]string, 0, k)
	for _, sc := range ranked[:k] {
		texts = append(texts, sc.chunk.Text)
	}
	return texts, nil
}

type scoredChunk struct {
	chunk schema.Chunk
	score float32
}

// rankByDotProduct scores each chunk against the query vector and sorts by
// descending score. The sort is stable so ties keep insertion order, which
// keeps results deterministic.
func rankByDotProduct(query []float32, corpus []schema.Chunk) []scoredChunk {
	scored := make([]scoredChunk, len(corpus))
	for i, chunk := range corpus {
		scored[i] = scoredChunk{chunk: chunk, score: dotProduct(query, chunk.Embedding)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return scored
}

// dotProduct computes the dot product over the shared prefix of the two
// vectors. A dimensionality mismatch scores only the overlapping entries
// instead of panicking.
func dotProduct(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
