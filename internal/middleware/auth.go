package middleware

import (
	"strings"

	"devconnector/internal/models/api_error"
	"devconnector/internal/utils/utils_auth"

	"github.com/gin-gonic/gin"
)

// Auth gates protected routes. It reads a bearer token from the
// Authorization header, verifies it and attaches the resolved identity to
// the request context. A missing and an invalid token produce the same
// unauthorized response.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Error(api_error.ErrUnauthorized)
			c.Abort()
			return
		}

		accessToken := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := utils_auth.VerifyToken(accessToken, secret)
		if err != nil {
			c.Error(api_error.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set("UserID", userID)
		c.Next()
	}
}
