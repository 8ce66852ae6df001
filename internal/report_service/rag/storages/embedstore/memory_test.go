package embedstore

import (
	"context"
	"testing"

	"EduLens/internal/report_service/rag/schema"
)

func TestInMemoryStore_FilenamesAndChunks(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	chunks := []schema.Chunk{
		{Name: "notes.txt_0", FileName: "notes.txt", Text: "a", Embedding: []float32{1}},
		{Name: "notes.txt_1", FileName: "notes.txt", Text: "b", Embedding: []float32{2}},
		{Name: "essay.pdf_0", FileName: "essay.pdf", Text: "c", Embedding: []float32{3}},
	}
	for _, c := range chunks {
		if err := store.Append(ctx, "S1", c); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	names, err := store.ListFilenames(ctx, "S1")
	if err != nil {
		t.Fatalf("ListFilenames() error = %v", err)
	}
	if len(names) != 2 {
		t.Errorf("expected 2 distinct filenames, got %d", len(names))
	}
	if _, ok := names["notes.txt"]; !ok {
		t.Error("notes.txt missing from filename set")
	}

	all, err := store.ListAll(ctx, "S1")
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(all))
	}
	// Insertion order must be preserved for deterministic retrieval ties.
	for i, c := range chunks {
		if all[i].Name != c.Name {
			t.Errorf("chunk %d: got %q, want %q", i, all[i].Name, c.Name)
		}
	}
}

func TestInMemoryStore_StudentIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	if err := store.Append(ctx, "S1", schema.Chunk{Name: "a_0", FileName: "a"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	other, err := store.ListAll(ctx, "S2")
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected empty collection for S2, got %d chunks", len(other))
	}

	names, err := store.ListFilenames(ctx, "S2")
	if err != nil {
		t.Fatalf("ListFilenames() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected empty filename set for S2, got %d", len(names))
	}
}
