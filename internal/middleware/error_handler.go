package middleware

import (
	"net/http"
	"time"

	"garagedesk/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func requestEvent(c *gin.Context, e *zerolog.Event) *zerolog.Event {
	return e.
		Str("request_id", c.GetString(RequestIDKey)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path)
}

// ErrorHandler turns errors attached to the gin context into a plain 500.
// The cause is logged with request context; clients never see internals.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		requestEvent(c, log.Error()).
			Err(c.Errors.Last().Err).
			Msg("unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

// Recovery converts panics into 500 responses instead of dropped connections.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				requestEvent(c, log.Error()).
					Interface("panic", r).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Internal server error"))
			}
		}()
		c.Next()
	}
}

// Logger emits one structured line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		requestEvent(c, log.Info()).
			Int("status", c.Writer.Status()).
			Str("ip", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
