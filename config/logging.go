package config

import (
	"go.uber.org/zap"

	"github.com/linesmerrill/fiscal-cidadao/logging"
)

// setLogger builds the logger for env and installs it as the zap global
func setLogger(env string) (*zap.Logger, error) {
	logger, err := logging.Build(env)
	if err != nil {
		return nil, err
	}
	_ = zap.ReplaceGlobals(logger)
	return logger, nil
}
