package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petcareapp/portal-api/pkg/httputil"
)

const defaultMaxBodyBytes = 1 << 20 // 1MB

// SizeLimit rejects oversized request bodies before they reach a handler.
// Bodies without a Content-Length are capped by MaxBytesReader instead.
func SizeLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, httputil.Response{
				Success: false,
				Error: &httputil.Error{
					Code:    http.StatusRequestEntityTooLarge,
					Message: "request body too large",
				},
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
