package middleware

import (
	"devconnector/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

func DBProvider(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

func ConfigProvider(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("cfg", cfg)
		c.Next()
	}
}
