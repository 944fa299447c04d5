package middleware

import (
	"fmt"
	"net/http"

	"ecommerce-transactions/pkg/apperror"
	"ecommerce-transactions/pkg/response"

	"github.com/gin-gonic/gin"
)

// MaxBodySize rejects bodies declared larger than maxBytes with a 413 problem
// and caps the reader for bodies of unknown length.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Abort(c, apperror.New(
				"REQ_004",
				"Payload too large",
				fmt.Sprintf("Request body exceeds %d bytes", maxBytes),
				http.StatusRequestEntityTooLarge,
			))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
