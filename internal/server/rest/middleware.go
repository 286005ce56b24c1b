package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/carsapi/internal/common"
	"github.com/dmitrijs2005/carsapi/internal/logging"
	"github.com/dmitrijs2005/carsapi/internal/server/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestID reuses a valid incoming X-Request-ID or assigns a new UUID, and
// echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

// RequestLogger logs each finished request and feeds the HTTP metrics.
func RequestLogger(logger logging.Logger, m *metrics.Metrics) gin.HandlerFunc {
	logger = logger.With("module", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		if m != nil {
			m.ObserveRequest(c.Request.Method, route, status, elapsed)
		}

		logger.Info(c.Request.Context(), "request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", elapsed.String(),
		)
	}
}

// Recovery turns a panic in a handler into a 500 response.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	logger = logger.With("module", "http")
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		logger.Error(c.Request.Context(), "panic recovered",
			"request_id", c.GetString(requestIDKey),
			"panic", err,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	})
}
