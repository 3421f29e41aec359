package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the server logger. Cloud deployments get JSON output,
// everything else gets the development console encoder.
func New(deploymentEnv string) *zap.Logger {
	if deploymentEnv == "cloud" {
		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		logger, err := config.Build()
		if err != nil {
			panic(err)
		}
		return logger
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
