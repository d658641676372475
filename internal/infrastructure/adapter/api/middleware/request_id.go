package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// maxRequestIDLength bounds client-supplied ids echoed into logs
const maxRequestIDLength = 128

// RequestID assigns every request an id, keeping a well-formed one sent by
// the client, and echoes it in the response
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// requestID returns the id assigned by RequestID, if any
func requestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
