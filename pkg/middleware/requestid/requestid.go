package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderKey is the wire header carrying the request id.
	HeaderKey = "X-Request-ID"

	contextKey = "request_id"
)

// Middleware tags every request with an id, honoring one supplied by the
// caller, and echoes it back in the response header.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderKey)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(contextKey, id)
		c.Writer.Header().Set(HeaderKey, id)

		c.Next()
	}
}

// Value returns the request id assigned to this request, or "".
func Value(c *gin.Context) string {
	v, _ := c.Get(contextKey)
	id, _ := v.(string)
	return id
}
