package middleware

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderRequestID  = "X-Request-ID"
	ContextRequestID = "requestID"
)

// RequestLogger tags the request with an id, a child logger and a Sentry hub,
// then logs one line when the handler chain returns.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ContextRequestID, rid)
		c.Header(HeaderRequestID, rid)

		reqLogger := logger.With().Str("request_id", rid).Logger()

		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetTag("request_id", rid)
		hub.Scope().SetRequest(c.Request)

		ctx := reqLogger.WithContext(c.Request.Context())
		ctx = sentry.SetHubOnContext(ctx, hub)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		evt := reqLogger.Info()
		switch {
		case status >= 500:
			evt = reqLogger.Error()
		case status >= 400:
			evt = reqLogger.Warn()
		}

		evt.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("remote_ip", c.ClientIP()).
			Str("user_id", c.GetString(ContextUserID)).
			Msg("request")
	}
}
