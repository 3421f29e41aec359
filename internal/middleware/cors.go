package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORS(deploymentEnv string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AddAllowHeaders("Authorization")
	config.AllowCredentials = true
	if deploymentEnv == "cloud" {
		config.AllowOrigins = []string{"https://devconnector.xyz"}
	} else {
		config.AllowOrigins = []string{"http://localhost:3000", "https://localhost:3000"}
	}
	return cors.New(config)
}
