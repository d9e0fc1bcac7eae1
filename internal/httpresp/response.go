package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes {"success": true} merged with the given fields.
func OK(c *gin.Context, fields gin.H) {
	write(c, http.StatusOK, fields)
}

func Created(c *gin.Context, fields gin.H) {
	write(c, http.StatusCreated, fields)
}

func List[T any](c *gin.Context, key string, data []T) {
	if data == nil {
		data = []T{}
	}
	write(c, http.StatusOK, gin.H{
		key:     data,
		"total": len(data),
	})
}

func write(c *gin.Context, status int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}
