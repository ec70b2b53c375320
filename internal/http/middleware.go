package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kisan-advisory/internal/common/errors"
	"kisan-advisory/internal/common/logger"
)

// Recovery turns a handler panic into a 500 with the standard error body.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("handler panic", map[string]interface{}{
					"path":  c.Request.URL.Path,
					"panic": fmt.Sprint(r),
				})
				err := apperrors.AsStandardError(fmt.Errorf("panic: %v", r))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err})
			}
		}()
		c.Next()
	}
}

func Logging(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"durationMs": time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("request failed", fields)
			return
		}
		log.Debug("request served", fields)
	}
}
