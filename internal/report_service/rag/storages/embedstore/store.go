package embedstore

import (
	"context"

	"EduLens/internal/report_service/rag/schema"
)

// EmbeddingStore persists chunk embeddings per student. The store owns the
// persisted chunks; ingestion appends, retrieval only reads.
type EmbeddingStore interface {
	// ListFilenames returns the set of source filenames already ingested
	// for the student. Callers use it to skip re-ingestion, which makes
	// ingestion idempotent at filename granularity.
	ListFilenames(ctx context.Context, studentID string) (map[string]struct{}, error)

	// Append adds one chunk record. Uniqueness beyond the filename-level
	// skip is the caller's responsibility (sequential chunk indices).
	Append(ctx context.Context, studentID string, chunk schema.Chunk) error

	// ListAll materializes the student's full chunk collection in memory.
	// This is O(total chunks) and acceptable at the current scale; a paged
	// or indexed implementation can replace it behind this interface.
	ListAll(ctx context.Context, studentID string) ([]schema.Chunk, error)
}
