package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger logs every request and feeds the OTel request metrics.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		s.logger.Info("request handled", map[string]interface{}{
			"method":     c.Request.Method,
			"route":      route,
			"status":     status,
			"durationMs": duration.Milliseconds(),
		})

		if s.obs != nil {
			ctx := c.Request.Context()
			s.obs.RecordRequest(ctx, route, strconv.Itoa(status))
			s.obs.RecordRequestDuration(ctx, route, duration)
		}
	}
}
