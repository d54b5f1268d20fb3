package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// configFileNames are probed in order at every level of the upward search.
var configFileNames = []string{"yek.toml", "yek.yaml"}

// FindConfigFile walks from start up through its parent directories and
// returns the first config file found, or "" when none exists.
func FindConfigFile(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadConfigFile parses and validates the config at path. Any read, parse
// or validation failure is logged and yields nil, so the caller falls back
// to the built-in defaults; a broken config file never aborts a run.
func LoadConfigFile(path string, logger *zap.Logger) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read config file", zap.String("path", path), zap.Error(err))
		return nil
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		logger.Warn("Failed to parse config file", zap.String("path", path), zap.Error(err))
		return nil
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		for _, fe := range errs {
			logger.Warn("Invalid configuration",
				zap.String("path", path),
				zap.String("field", fe.Field),
				zap.String("problem", fe.Message))
		}
		return nil
	}

	logger.Debug("Loaded config file", zap.String("path", path))
	return &cfg
}
