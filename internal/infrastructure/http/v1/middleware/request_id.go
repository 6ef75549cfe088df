package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"petstock/internal/core/appctx"
)

// HeaderRequestID is the request id header, echoed back on responses.
const HeaderRequestID = "X-Request-ID"

// RequestID middleware extracts or generates a request id and stores it
// in the request context for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := appctx.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
