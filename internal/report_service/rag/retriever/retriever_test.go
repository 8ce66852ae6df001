package retriever

import (
	"context"
	"fmt"
	"testing"

	"EduLens/internal/embedding"
	"EduLens/internal/report_service/rag/schema"
)

// fixedEmbedder returns a predetermined vector for any query.
type fixedEmbedder struct {
	vec []float32
}

func (f *fixedEmbedder) Embed(ctx context.Context, text string, role embedding.Role) ([]float32, error) {
	return f.vec, nil
}

func (f *fixedEmbedder) EmbedBatch(ctx context.Context, texts []string, role embedding.Role) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vec
	}
	return out, nil
}

func corpusOf(embeddings ...[]float32) []schema.Chunk {
	chunks := make([]schema.Chunk, len(embeddings))
	for i, e := range embeddings {
		chunks[i] = schema.Chunk{
			Name:      fmt.Sprintf("doc.txt_%d", i),
			FileName:  "doc.txt",
			Text:      fmt.Sprintf("chunk %d", i),
			Embedding: e,
		}
	}
	return chunks
}

func TestRetrieve_EmptyCorpus(t *testing.T) {
	r := NewRetriever(&fixedEmbedder{vec: []float32{1, 0}})

	got, err := r.Retrieve(context.Background(), "anything", nil, 3)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result for empty corpus, got %v", got)
	}
}

func TestRetrieve_KZero(t *testing.T) {
	r := NewRetriever(&fixedEmbedder{vec: []float32{1, 0}})
	corpus := corpusOf([]float32{1, 0})

	got, err := r.Retrieve(context.Background(), "q", corpus, 0)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result for k=0, got %v", got)
	}
}

func TestRetrieve_ReturnsMinKN(t *testing.T) {
	r := NewRetriever(&fixedEmbedder{vec: []float32{1, 0}})
	corpus := corpusOf([]float32{1, 0}, []float32{0, 1}, []float32{0.5, 0.5})

	got, err := r.Retrieve(context.Background(), "q", corpus, 2)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 results, got %d", len(got))
	}

	// k larger than the corpus returns everything, no padding.
	got, err = r.Retrieve(context.Background(), "q", corpus, 10)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected all 3 chunks for oversized k, got %d", len(got))
	}
}

func TestRetrieve_ExactMatchRanksFirst(t *testing.T) {
	query := []float32{0.6, 0.8}
	r := NewRetriever(&fixedEmbedder{vec: query})
	corpus := corpusOf([]float32{0.8, 0.6}, query, []float32{1, 0})

	got, err := r.Retrieve(context.Background(), "q", corpus, 1)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) != 1 || got[0] != "chunk 1" {
		t.Errorf("expected the identical-embedding chunk first, got %v", got)
	}
}

func TestRankByDotProduct_NonIncreasingScores(t *testing.T) {
	query := []float32{1, 0}
	corpus := corpusOf([]float32{0.2, 0}, []float32{0.9, 0}, []float32{0.5, 0}, []float32{0.9, 0})

	ranked := rankByDotProduct(query, corpus)
	for i := 1; i < len(ranked); i++ {
		if ranked[i].score > ranked[i-1].score {
			t.Errorf("scores not non-increasing at %d: %v then %v", i, ranked[i-1].score, ranked[i].score)
		}
	}
}

func TestRankByDotProduct_StableTies(t *testing.T) {
	query := []float32{1, 0}
	// Chunks 0 and 3 tie; insertion order must break the tie.
	corpus := corpusOf([]float32{0.9, 0}, []float32{0.1, 0}, []float32{0.5, 0}, []float32{0.9, 0})

	ranked := rankByDotProduct(query, corpus)
	if ranked[0].chunk.Name != "doc.txt_0" || ranked[1].chunk.Name != "doc.txt_3" {
		t.Errorf("tie not broken by insertion order: %q then %q", ranked[0].chunk.Name, ranked[1].chunk.Name)
	}
}

func TestRetrieve_DuplicateTextsNotDeduplicated(t *testing.T) {
	r := NewRetriever(&fixedEmbedder{vec: []float32{1, 0}})
	corpus := []schema.Chunk{
		{Name: "a.txt_0", FileName: "a.txt", Text: "same text", Embedding: []float32{1, 0}},
		{Name: "b.txt_0", FileName: "b.txt", Text: "same text", Embedding: []float32{1, 0}},
	}

	got, err := r.Retrieve(context.Background(), "q", corpus, 2)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("duplicates from distinct chunks must both appear, got %v", got)
	}
}
