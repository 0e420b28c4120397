package graphql

import (
	"time"

	"github.com/dmitrijs2005/bioauth/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NewRouter wires the GraphQL and health routes.
func NewRouter(h *Handler, l logging.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(l))

	r.POST("/graphql", h.Serve)
	r.GET("/healthz", h.Health)

	return r
}

// requestLogger logs every HTTP request with latency, status and a request
// id (taken from X-Request-ID or generated).
func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"request_id", requestID,
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"latency", time.Since(start).String(),
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			l.Error(ctx, "http_request", args...)
		case status >= 400:
			l.Warn(ctx, "http_request", args...)
		default:
			l.Info(ctx, "http_request", args...)
		}
	}
}
