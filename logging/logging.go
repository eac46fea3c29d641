package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Build creates a zap logger for the given environment. "production" logs JSON at info level,
// "development" logs human readable output at debug level, anything else uses the example
// config which is handy for local runs and tests.
func Build(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	case "local", "":
		return zap.NewExample(), nil
	default:
		return nil, fmt.Errorf("unknown logging environment %q", env)
	}
}

// New creates a new sugared zap logger
func New(env string) *zap.SugaredLogger {
	logger, err := Build(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	return logger.Sugar()
}
