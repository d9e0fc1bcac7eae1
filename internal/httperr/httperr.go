package httperr

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HTTPError struct {
	Success bool   `json:"success"`
	Message string `json:"error"`
	Code    string `json:"error_code"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Success: false,
		Message: message,
		Code:    code,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var statusByKind = map[Kind]int{
	KindValidation:   http.StatusBadRequest,
	KindNotFound:     http.StatusNotFound,
	KindConflict:     http.StatusConflict,
	KindForbidden:    http.StatusForbidden,
	KindUnauthorized: http.StatusUnauthorized,
	KindRateLimited:  http.StatusTooManyRequests,
}

// Respond translates err into the JSON error body. Business errors keep their
// code and message; everything else is logged, reported and hidden behind a
// generic 500.
func Respond(c *gin.Context, err error) {
	if be, ok := AsBusiness(err); ok {
		status, known := statusByKind[be.Kind]
		if !known {
			status = http.StatusBadRequest
		}
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		Write(c, status, be.Code, msg)
		return
	}

	Report(c, err, "unexpected error")
	Internal(c, "internal_error", "Something went wrong. Please try again.")
}

// Report logs err with the request logger and forwards it to Sentry.
func Report(c *gin.Context, err error, msg string) {
	zerolog.Ctx(c.Request.Context()).Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg(msg)

	hub := sentry.GetHubFromContext(c.Request.Context())
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
