package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"EduLens/internal/llm"
	"EduLens/internal/models"
	"EduLens/internal/report_service/rag/retriever"
	"EduLens/internal/report_service/rag/storages/embedstore"
	"EduLens/pkg/logger"
)

// ErrNoEmbeddings is returned when a student has no indexed chunks after
// ingestion, i.e. no documents were available to report on.
var ErrNoEmbeddings = errors.New("no embeddings found for student")

// reportQuery is the fixed retrieval query describing what the progress
// report is about. Document chunks most relevant to it become the prompt
// context.
const reportQuery = "Evidence of the student's academic progress, employment readiness, and community engagement skills"

// ReportPipeline runs ingestion, retrieves the most relevant chunks for the
// report query, and asks the generative model for a structured progress
// report.
type ReportPipeline struct {
	ingestion *IngestionPipeline
	store     embedstore.EmbeddingStore
	retriever *retriever.Retriever
	generator llm.LLM
	topK      int
	log       *logger.Logger
}

// NewReportPipeline creates a ReportPipeline.
func NewReportPipeline(
	ingestion *IngestionPipeline,
	store embedstore.EmbeddingStore,
	ret *retriever.Retriever,
	generator llm.LLM,
	topK int,
	log *logger.Logger,
) *ReportPipeline {
	return &ReportPipeline{
		ingestion: ingestion,
		store:     store,
		retriever: ret,
		generator: generator,
		topK:      topK,
		log:       log,
	}
}

// Run produces a progress report for the student. It returns ErrNoEmbeddings
// when the student's corpus is empty after ingestion; any other failure is an
// upstream error and no partial report is returned.
func (p *ReportPipeline) Run(ctx context.Context, studentID string) (*models.ProgressReport, error) {
	// 1. Make sure ingestion is current.
	if _, err := p.ingestion.Run(ctx, studentID); err != nil {
		return nil, err
	}

	// 2. Materialize the student's corpus.
	corpus, err := p.store.ListAll(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("loading corpus for student %q: %w", studentID, err)
	}
	if len(corpus) == 0 {
		return nil, fmt.Errorf("student %q: %w", studentID, ErrNoEmbeddings)
	}

	// 3. Retrieve the snippets most relevant to the report query.
	snippets, err := p.retriever.Retrieve(ctx, reportQuery, corpus, p.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieving context for student %q: %w", studentID, err)
	}
	p.log.Info(fmt.Sprintf("Retrieved %d context snippets for student %s", len(snippets), studentID))

	// 4. Generate and decode the report.
	raw, err := p.generator.Generate(ctx, buildReportPrompt(snippets))
	if err != nil {
		return nil, fmt.Errorf("generating report for student %q: %w", studentID, err)
	}

	report, err := models.ParseProgressReport(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding report for student %q: %w", studentID, err)
	}
	return report, nil
}

// buildReportPrompt assembles the generation prompt from the retrieved
// snippets.
func buildReportPrompt(snippets []string) string {
	var sb strings.Builder

	sb.WriteString("You are an educator writing a student progress report. ")
	sb.WriteString("Based only on the following excerpts from the student's documents, produce a JSON object with these fields:\n")
	sb.WriteString(`"academicGrade", "employmentGrade", "communityGrade" (each one of "Proficient", "Satisfactory", "Developing", "Emerging", "Skill Not Observed"), `)
	sb.WriteString(`"academicReport", "employmentReport", "communityReport" (multi-sentence strings), and "skillGaps" (a list of strings).` + "\n\n")
	sb.WriteString("Excerpts:\n")

	for i, snippet := range snippets {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("Excerpt %d:\n%s\n", i+1, snippet))
	}
	sb.WriteString("---\n")

	return sb.String()
}
