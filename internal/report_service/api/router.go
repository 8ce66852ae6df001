package api

import (
	"EduLens/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handler, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(traceMiddleware(log))

	router.POST("/generate_report", h.generateReport)
	router.POST("/assistant", h.assistant)
	router.GET("/healthz", h.healthz)

	return router
}

// traceMiddleware assigns each request a trace id and logs its method and
// path on the way in.
func traceMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := uuid.New().String()
		c.Set("trace_id", traceID)
		c.Header("X-Trace-Id", traceID)

		log.WithTrace(traceID).Info(c.Request.Method + " " + c.Request.URL.Path)
		c.Next()
	}
}
