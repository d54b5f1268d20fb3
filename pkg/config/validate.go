package config

import (
	"fmt"
	"os"
	"regexp"
)

// FieldError describes one invalid configuration field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks cfg without mutating it and returns every problem found.
// A config with any error is discarded wholesale by the loader; validation
// itself never fails the run.
func Validate(cfg *Config) []FieldError {
	var errs []FieldError

	for _, pat := range cfg.IgnorePatterns.Patterns {
		if _, err := regexp.Compile(pat); err != nil {
			errs = append(errs, FieldError{
				Field:   "ignore_patterns",
				Message: fmt.Sprintf("invalid regex pattern %q: %v", pat, err),
			})
		}
	}

	for _, rule := range cfg.PriorityRules {
		if rule.Score < 0 || rule.Score > 1000 {
			errs = append(errs, FieldError{
				Field:   "priority_rules",
				Message: fmt.Sprintf("priority score %d must be between 0 and 1000", rule.Score),
			})
		}
		for _, pat := range rule.Patterns {
			if _, err := regexp.Compile(pat); err != nil {
				errs = append(errs, FieldError{
					Field:   "priority_rules",
					Message: fmt.Sprintf("invalid regex pattern %q: %v", pat, err),
				})
			}
		}
	}

	if cfg.OutputDir != "" {
		if info, err := os.Stat(cfg.OutputDir); err == nil {
			if !info.IsDir() {
				errs = append(errs, FieldError{
					Field:   "output_dir",
					Message: fmt.Sprintf("output path %q exists but is not a directory", cfg.OutputDir),
				})
			}
		} else if mkErr := os.MkdirAll(cfg.OutputDir, 0o755); mkErr != nil {
			errs = append(errs, FieldError{
				Field:   "output_dir",
				Message: fmt.Sprintf("cannot create output directory %q: %v", cfg.OutputDir, mkErr),
			})
		} else {
			// Probe only: leave the tree the way we found it.
			_ = os.Remove(cfg.OutputDir)
		}
	}

	return errs
}
