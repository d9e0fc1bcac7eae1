package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
)

// bindJSON writes a 400 and returns false when the body does not decode.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

// queryFloat returns nil for an absent key and ok=false for a malformed one.
func queryFloat(c *gin.Context, key string) (v *float64, ok bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}
