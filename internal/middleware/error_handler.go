package middleware

import (
	"devconnector/internal/models/api_error"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler turns errors collected during the request into the single
// client-visible response. Full detail goes to the log; unrecognised errors
// reach the client only as a generic server error.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, ginErr := range c.Errors {
			logger.Error("request error",
				zap.String("request_id", c.GetString("RequestID")),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(ginErr.Err),
			)
		}

		api_error.ToResponse(c, c.Errors[0].Err)
	}
}
