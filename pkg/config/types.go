// Package config merges the built-in selection rules with an optional user
// configuration into the resolved rule set one serialization run works
// from: ignore patterns, priority tiers and the binary extension set.
package config

// Config is the optional user configuration loaded from yek.toml or
// yek.yaml. All fields may be empty; they extend rather than replace the
// built-in defaults.
type Config struct {
	IgnorePatterns   IgnorePatterns `toml:"ignore_patterns" yaml:"ignore_patterns"`
	PriorityRules    []PriorityRule `toml:"priority_rules" yaml:"priority_rules"`
	BinaryExtensions []string       `toml:"binary_extensions" yaml:"binary_extensions"`
	OutputDir        string         `toml:"output_dir" yaml:"output_dir"`
}

// IgnorePatterns wraps the user-supplied ignore pattern list.
type IgnorePatterns struct {
	Patterns []string `toml:"patterns" yaml:"patterns"`
}

// PriorityRule assigns a score to every path matching one of its patterns.
// Scores must lie in [0, 1000]; rules sharing a score with an existing tier
// extend that tier instead of forming a new one.
type PriorityRule struct {
	Score    int      `toml:"score" yaml:"score"`
	Patterns []string `toml:"patterns" yaml:"patterns"`
}
