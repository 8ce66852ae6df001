package service

import (
	"context"
	"fmt"
	"strings"

	"EduLens/internal/models"
	"EduLens/internal/report_service/rag/pipeline"
	"EduLens/pkg/logger"
)

// ErrNotFound indicates the student had no indexed documents to report on.
var ErrNotFound = pipeline.ErrNoEmbeddings

// ValidationError indicates a missing or empty required request field. It is
// surfaced as a client error and never retried.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// AssistantClient answers a query against a managed retrieval corpus.
type AssistantClient interface {
	Answer(ctx context.Context, userQuery, corpusName string) (string, error)
}

// Service orchestrates the report and assistant operations behind the HTTP
// API.
type Service struct {
	report    *pipeline.ReportPipeline
	assistant AssistantClient
	log       *logger.Logger
}

// New creates a Service. assistant may be nil when the managed-corpus path is
// not configured.
func New(report *pipeline.ReportPipeline, assistant AssistantClient, log *logger.Logger) *Service {
	return &Service{
		report:    report,
		assistant: assistant,
		log:       log,
	}
}

// GenerateReport validates the student id, brings ingestion up to date, and
// produces the progress report. Validation happens before any ingestion work.
func (s *Service) GenerateReport(ctx context.Context, studentID string) (*models.ProgressReport, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, &ValidationError{Field: "student_id"}
	}

	s.log.WithStudent(studentID).Info("Generating progress report")
	return s.report.Run(ctx, studentID)
}

// Assistant answers a free-form query against the managed corpus.
func (s *Service) Assistant(ctx context.Context, userQuery, corpusName string) (string, error) {
	if strings.TrimSpace(userQuery) == "" {
		return "", &ValidationError{Field: "user_query"}
	}
	if s.assistant == nil {
		return "", fmt.Errorf("assistant is not configured")
	}
	return s.assistant.Answer(ctx, userQuery, corpusName)
}
