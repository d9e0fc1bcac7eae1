package middleware

import (
	"fmt"
	"runtime"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			var stack [4096]byte
			n := runtime.Stack(stack[:], false)

			zerolog.Ctx(c.Request.Context()).Error().
				Str("panic", fmt.Sprintf("%v", r)).
				Str("stack", string(stack[:n])).
				Msg("panic recovered")

			hub := sentry.GetHubFromContext(c.Request.Context())
			if hub == nil {
				hub = sentry.CurrentHub()
			}
			hub.Recover(r)

			c.Abort()
			httperr.Internal(c, "internal_error", "Something went wrong. Please try again.")
		}()

		c.Next()
	}
}
