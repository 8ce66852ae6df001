package api

import (
	"context"
	"errors"
	"net/http"

	"EduLens/internal/report_service/service"
	"EduLens/pkg/logger"

	"github.com/gin-gonic/gin"
)

// GenerateReportRequest is the body of POST /generate_report.
type GenerateReportRequest struct {
	StudentID string `json:"student_id"`
}

// AssistantRequest is the body of POST /assistant.
type AssistantRequest struct {
	UserQuery          string `json:"user_query"`
	CorpusResourceName string `json:"corpus_resource_name"`
}

// Handler exposes the service over HTTP.
type Handler struct {
	svc    *service.Service
	health func(ctx context.Context) error
	log    *logger.Logger
}

// NewHandler creates a Handler. health may be nil; the endpoint then reports
// healthy unconditionally.
func NewHandler(svc *service.Service, health func(ctx context.Context) error, log *logger.Logger) *Handler {
	return &Handler{
		svc:    svc,
		health: health,
		log:    log,
	}
}

func (h *Handler) generateReport(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	report, err := h.svc.GenerateReport(c.Request.Context(), req.StudentID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) assistant(c *gin.Context) {
	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	answer, err := h.svc.Assistant(c.Request.Context(), req.UserQuery, req.CorpusResourceName)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (h *Handler) healthz(c *gin.Context) {
	if h.health != nil {
		if err := h.health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps service error kinds to HTTP statuses. Every failure path
// returns a structured body with an explanatory message.
func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error("request failed: " + err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
