package utils_handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GetReqCx pulls the database handle and the verified identity out of the
// request context. Only valid on routes behind the auth middleware.
func GetReqCx(c *gin.Context) (*sqlx.DB, uuid.UUID) {
	return c.MustGet("db").(*sqlx.DB), c.MustGet("UserID").(uuid.UUID)
}

func GetObj[T any](c *gin.Context) (T, error) {
	var obj T
	err := c.ShouldBindJSON(&obj)
	return obj, err
}
