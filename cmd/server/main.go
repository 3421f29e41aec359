package main

import (
	"devconnector/internal/api/api_auth"
	"devconnector/internal/api/api_dev"
	"devconnector/internal/api/api_github"
	"devconnector/internal/api/api_profile"
	"devconnector/internal/api/api_user"
	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/github"
	"devconnector/internal/logging"
	"devconnector/internal/middleware"
	"devconnector/internal/utils/utils_db"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.DeploymentEnv)
	defer logger.Sync()

	if len(cfg.JWTSecret) == 0 {
		logger.Fatal("JWT_SECRET_KEY must be set")
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database setup failed", zap.Error(err))
	}
	logger.Info("successfully connected to database")

	ghClient := github.NewClient(cfg.GithubAPIURL, cfg.GithubID, cfg.GithubSecret)
	userStore := utils_db.NewUserStore(db)

	r := gin.New()
	r.Use(
		middleware.PanicRecovery(logger),
		middleware.CORS(cfg.DeploymentEnv),
		middleware.RequestIDProvider(),
		middleware.RequestLogging(logger),
		middleware.Metrics(),
		middleware.DBProvider(db),
		middleware.ConfigProvider(cfg),
		middleware.ErrorHandler(logger),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRequired := middleware.Auth(cfg.JWTSecret)

	{
		api := r.Group("/api")
		api.GET("/healthcheck", api_dev.HealthCheck)
		api.GET("/authcheck", authRequired, api_dev.AuthCheck)

		users := api.Group("/users")
		users.POST("/register", api_user.Register(userStore))

		auth := api.Group("/auth")
		auth.POST("/login", api_auth.Login(userStore))
		auth.GET("", authRequired, api_auth.Me(userStore))

		profile := api.Group("/profile")
		profile.GET("", api_profile.List)
		profile.POST("", authRequired, api_profile.Upsert)
		profile.DELETE("", authRequired, api_profile.DeleteAccount)
		profile.GET("/me", authRequired, api_profile.Me)
		profile.GET("/user/:user_id", api_profile.ByUserID)
		profile.PUT("/experience", authRequired, api_profile.AddExperience)
		profile.DELETE("/experience/:exp_id", authRequired, api_profile.RemoveExperience)
		profile.PUT("/education", authRequired, api_profile.AddEducation)
		profile.DELETE("/education/:edu_id", authRequired, api_profile.RemoveEducation)
		profile.GET("/github/:username", api_github.Repos(ghClient))
	}

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
