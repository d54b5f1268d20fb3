// Package logging configures the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"

	"github.com/bodo-run/yek/pkg/version"
)

// Setup builds the logger used for the whole run and installs it as the
// zap global. Debug switches to the development config, which lowers the
// level to debug and writes console-friendly output.
func Setup(debug bool) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    "yek",
		"appVersion": version.Version,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewExample(), err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
