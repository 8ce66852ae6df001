package embedstore

import (
	"context"
	"sync"

	"EduLens/internal/report_service/rag/schema"
)

// InMemoryStore is a thread-safe, in-memory EmbeddingStore. It backs local
// development runs and tests; chunks are partitioned per student and kept in
// insertion order.
type InMemoryStore struct {
	mu     sync.RWMutex
	chunks map[string][]schema.Chunk
}

// NewInMemoryStore creates an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		chunks: make(map[string][]schema.Chunk),
	}
}

// ListFilenames returns the distinct source filenames stored for the student.
func (s *InMemoryStore) ListFilenames(ctx context.Context, studentID string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make(map[string]struct{})
	for _, chunk := range s.chunks[studentID] {
		names[chunk.FileName] = struct{}{}
	}
	return names, nil
}

// Append adds one chunk to the student's collection.
func (s *InMemoryStore) Append(ctx context.Context, studentID string, chunk schema.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunks[studentID] = append(s.chunks[studentID], chunk)
	return nil
}

// ListAll returns a copy of the student's full chunk collection.
func (s *InMemoryStore) ListAll(ctx context.Context, studentID string) ([]schema.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.chunks[studentID]
	out := make([]schema.Chunk, len(stored))
	copy(out, stored)
	return out, nil
}

// compile-time check to ensure InMemoryStore implements the EmbeddingStore interface
var _ EmbeddingStore = (*InMemoryStore)(nil)
