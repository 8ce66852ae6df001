package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"EduLens/internal/embedding"
	"EduLens/internal/models"
	"EduLens/internal/report_service/rag/locks"
	"EduLens/internal/report_service/rag/retriever"
	"EduLens/internal/report_service/rag/splitters"
	"EduLens/internal/report_service/rag/storages/embedstore"
	"EduLens/pkg/logger"
)

// fakeLoader serves documents from a map, or fails wholesale.
type fakeLoader struct {
	docs map[string]map[string]string // studentID -> filename -> content
	err  error
}

func (f *fakeLoader) ListDocuments(ctx context.Context, studentID string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.docs[studentID], nil
}

// countingEmbedder produces a constant vector and can be told to fail for
// texts containing a marker substring.
type countingEmbedder struct {
	calls    int
	failWhen string
}

func (f *countingEmbedder) Embed(ctx context.Context, text string, role embedding.Role) ([]float32, error) {
	f.calls++
	if f.failWhen != "" && strings.Contains(text, f.failWhen) {
		return nil, errors.New("rate limited")
	}
	return []float32{1, 0, 0}, nil
}

func (f *countingEmbedder) EmbedBatch(ctx context.Context, texts []string, role embedding.Role) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := f.Embed(ctx, text, role)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// fakeLLM returns a canned response and records the prompt it was given.
type fakeLLM struct {
	response string
	prompt   string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, nil
}

func newIngestion(loader *fakeLoader, embedder *countingEmbedder, store embedstore.EmbeddingStore) *IngestionPipeline {
	return NewIngestionPipeline(
		loader,
		splitters.NewWordSplitter(1000),
		embedder,
		store,
		locks.NewKeyedMutex(),
		logger.New("test", "", ""),
	)
}

func TestIngestion_Idempotent(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{docs: map[string]map[string]string{
		"S1": {"notes.txt": "Math is hard. Reading is fun."},
	}}
	embedder := &countingEmbedder{}
	store := embedstore.NewInMemoryStore()
	ingest := newIngestion(loader, embedder, store)

	added, err := ingest.Run(ctx, "S1")
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if added != 1 {
		t.Errorf("first run appended %d chunks, want 1", added)
	}

	added, err = ingest.Run(ctx, "S1")
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if added != 0 {
		t.Errorf("second run appended %d chunks, want 0", added)
	}

	all, _ := store.ListAll(ctx, "S1")
	if len(all) != 1 {
		t.Errorf("corpus size after re-ingestion = %d, want 1", len(all))
	}
	if all[0].Name != "notes.txt_0" {
		t.Errorf("chunk name = %q, want notes.txt_0", all[0].Name)
	}
}

func TestIngestion_PartialEmbeddingFailureTolerated(t *testing.T) {
	ctx := context.Background()
	// Three small documents; the embedder rejects the one mentioning the
	// marker, the other two must still be persisted.
	loader := &fakeLoader{docs: map[string]map[string]string{
		"S1": {
			"a.txt": "alpha content",
			"b.txt": "POISON content",
			"c.txt": "gamma content",
		},
	}}
	embedder := &countingEmbedder{failWhen: "POISON"}
	store := embedstore.NewInMemoryStore()
	ingest := newIngestion(loader, embedder, store)

	added, err := ingest.Run(ctx, "S1")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if added != 2 {
		t.Errorf("appended %d chunks, want 2", added)
	}

	names, _ := store.ListFilenames(ctx, "S1")
	if _, ok := names["b.txt"]; ok {
		t.Error("failed chunk's filename should not be marked as indexed via a stored chunk")
	}
}

func TestIngestion_WhitespaceOnlyDocumentSkipped(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{docs: map[string]map[string]string{
		"S1": {"empty.txt": "   \n\t "},
	}}
	embedder := &countingEmbedder{}
	store := embedstore.NewInMemoryStore()
	ingest := newIngestion(loader, embedder, store)

	added, err := ingest.Run(ctx, "S1")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if added != 0 {
		t.Errorf("appended %d chunks, want 0", added)
	}
	if embedder.calls != 0 {
		t.Errorf("embedder called %d times for empty content, want 0", embedder.calls)
	}
}

func TestIngestion_LoadFailureAborts(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{err: errors.New("bucket not found")}
	embedder := &countingEmbedder{}
	store := embedstore.NewInMemoryStore()
	ingest := newIngestion(loader, embedder, store)

	if _, err := ingest.Run(ctx, "S1"); err == nil {
		t.Fatal("expected an error when loading fails")
	}
	all, _ := store.ListAll(ctx, "S1")
	if len(all) != 0 {
		t.Errorf("no chunks should be persisted after a load failure, got %d", len(all))
	}
}

func TestReport_EndToEnd(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{docs: map[string]map[string]string{
		"S1": {"notes.txt": "Math is hard. Reading is fun."},
	}}
	embedder := &countingEmbedder{}
	store := embedstore.NewInMemoryStore()
	generator := &fakeLLM{response: `{"academicGrade": "Developing", "academicReport": "Reading is progressing."}`}

	report := NewReportPipeline(
		newIngestion(loader, embedder, store),
		store,
		retriever.NewRetriever(embedder),
		generator,
		1,
		logger.New("test", "", ""),
	)

	got, err := report.Run(ctx, "S1")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	all, _ := store.ListAll(ctx, "S1")
	if len(all) != 1 {
		t.Fatalf("corpus size = %d, want 1", len(all))
	}

	if !strings.Contains(generator.prompt, "Math is hard. Reading is fun.") {
		t.Error("retrieved chunk text missing from the generation prompt")
	}
	if got.AcademicGrade != models.GradeDeveloping {
		t.Errorf("AcademicGrade = %q, want Developing", got.AcademicGrade)
	}
	if got.EmploymentGrade != models.GradeNotObserved {
		t.Errorf("missing grade should default, got %q", got.EmploymentGrade)
	}
	if got.SkillGaps == nil {
		t.Error("SkillGaps should default to an empty list")
	}
}

func TestReport_NoDocumentsIsNotFound(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{docs: map[string]map[string]string{}}
	embedder := &countingEmbedder{}
	store := embedstore.NewInMemoryStore()

	report := NewReportPipeline(
		newIngestion(loader, embedder, store),
		store,
		retriever.NewRetriever(embedder),
		&fakeLLM{response: "{}"},
		3,
		logger.New("test", "", ""),
	)

	_, err := report.Run(ctx, "S1")
	if !errors.Is(err, ErrNoEmbeddings) {
		t.Errorf("expected ErrNoEmbeddings, got %v", err)
	}
}
