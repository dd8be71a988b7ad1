package middleware

import (
	"github.com/ErlanBelekov/vehicle-api/internal/requestid"
	"github.com/gin-gonic/gin"
)

// RequestID attaches a request ID to the request context and echoes it in the
// response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := requestid.Resolve(c.GetHeader(requestid.Header))

		ctx := requestid.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestid.Header, id)
		c.Next()
	}
}
