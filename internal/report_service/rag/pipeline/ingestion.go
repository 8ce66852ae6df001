package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"EduLens/internal/embedding"
	"EduLens/internal/report_service/rag/loaders"
	"EduLens/internal/report_service/rag/locks"
	"EduLens/internal/report_service/rag/schema"
	"EduLens/internal/report_service/rag/splitters"
	"EduLens/internal/report_service/rag/storages/embedstore"
	"EduLens/pkg/logger"
)

// IngestionPipeline loads a student's documents, chunks and embeds anything
// not yet indexed, and appends the chunks to the embedding store. Running it
// again with no new documents performs zero writes: the filename-level skip
// makes ingestion idempotent. Editing a file in place without renaming is not
// detected.
type IngestionPipeline struct {
	loader   loaders.DocumentLoader
	splitter *splitters.WordSplitter
	embedder embedding.Embedding
	store    embedstore.EmbeddingStore
	locker   locks.StudentLocker
	log      *logger.Logger
}

// NewIngestionPipeline creates an IngestionPipeline.
func NewIngestionPipeline(
	loader loaders.DocumentLoader,
	splitter *splitters.WordSplitter,
	embedder embedding.Embedding,
	store embedstore.EmbeddingStore,
	locker locks.StudentLocker,
	log *logger.Logger,
) *IngestionPipeline {
	return &IngestionPipeline{
		loader:   loader,
		splitter: splitter,
		embedder: embedder,
		store:    store,
		locker:   locker,
		log:      log,
	}
}

// Run ingests every not-yet-indexed document for the student and returns the
// number of chunks appended. A document load or store failure aborts the run;
// a single chunk's embedding failure is logged and skipped so the rest of the
// batch still lands.
func (p *IngestionPipeline) Run(ctx context.Context, studentID string) (int, error) {
	// Serialize ingestion per student so concurrent requests cannot both
	// see a filename as un-indexed and double-embed it.
	unlock, err := p.locker.Lock(ctx, studentID)
	if err != nil {
		return 0, fmt.Errorf("acquiring ingest lock: %w", err)
	}
	defer unlock()

	// 1. Load all documents up front. Any read error aborts before a
	// single chunk is written, never indexing a subset silently.
	docs, err := p.loader.ListDocuments(ctx, studentID)
	if err != nil {
		return 0, fmt.Errorf("loading documents for student %q: %w", studentID, err)
	}
	p.log.Info(fmt.Sprintf("Loaded %d documents for student %s", len(docs), studentID))

	// 2. Skip filenames that are already indexed.
	indexed, err := p.store.ListFilenames(ctx, studentID)
	if err != nil {
		return 0, fmt.Errorf("listing indexed filenames for student %q: %w", studentID, err)
	}

	pending := make([]string, 0, len(docs))
	for filename := range docs {
		if _, ok := indexed[filename]; !ok {
			pending = append(pending, filename)
		}
	}
	sort.Strings(pending)

	if len(pending) == 0 {
		p.log.Info(fmt.Sprintf("No new documents for student %s, nothing to ingest", studentID))
		return 0, nil
	}

	// 3. Chunk, embed, and append each new document.
	appended := 0
	for _, filename := range pending {
		segments := p.splitter.Split(docs[filename])

		for i, segment := range segments {
			if strings.TrimSpace(segment) == "" {
				// No signal, not worth an embedding call.
				continue
			}

			vector, err := p.embedder.Embed(ctx, segment, embedding.RoleDocument)
			if err != nil {
				// Transient upstream failures must not sink the
				// rest of the batch.
				p.log.Warn(fmt.Sprintf("Embedding failed for chunk %s_%d, skipping: %v", filename, i, err))
				continue
			}

			chunk := schema.Chunk{
				Name:      fmt.Sprintf("%s_%d", filename, i),
				FileName:  filename,
				Text:      segment,
				Embedding: vector,
			}
			if err := p.store.Append(ctx, studentID, chunk); err != nil {
				return appended, fmt.Errorf("appending chunk %q: %w", chunk.Name, err)
			}
			appended++
		}
	}

	p.log.Info(fmt.Sprintf("Ingested %d chunks from %d new documents for student %s", appended, len(pending), studentID))
	return appended, nil
}
