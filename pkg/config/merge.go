package config

import (
	"regexp"
	"sort"
	"strings"
)

// PriorityTier groups the patterns that share one score.
type PriorityTier struct {
	Score    int
	Patterns []*regexp.Regexp
}

// RuleSet is the fully resolved matching configuration for one run: the
// ignore matchers in evaluation order and the priority tiers sorted
// descending by score. Tiers never share a score; merging extends the
// existing tier instead.
type RuleSet struct {
	Ignore   []*regexp.Regexp
	Priority []PriorityTier
}

// Merge combines the built-in rules with an optional user configuration.
// User ignore patterns are appended to the defaults; invalid regular
// expressions are skipped. User priority rules either extend the tier with
// the same score or append a new one, and the tier list is re-sorted
// descending so resolution always walks highest score first.
func Merge(cfg *Config) *RuleSet {
	rs := &RuleSet{
		Ignore:   defaultIgnore(),
		Priority: defaultPriority(),
	}
	if cfg == nil {
		return rs
	}

	for _, pat := range cfg.IgnorePatterns.Patterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			continue
		}
		rs.Ignore = append(rs.Ignore, re)
	}

	for _, rule := range cfg.PriorityRules {
		if len(rule.Patterns) == 0 {
			continue
		}
		compiled := make([]*regexp.Regexp, 0, len(rule.Patterns))
		for _, pat := range rule.Patterns {
			if re, err := regexp.Compile(pat); err == nil {
				compiled = append(compiled, re)
			}
		}
		existing := -1
		for i, tier := range rs.Priority {
			if tier.Score == rule.Score {
				existing = i
				break
			}
		}
		if existing >= 0 {
			rs.Priority[existing].Patterns = append(rs.Priority[existing].Patterns, compiled...)
		} else {
			rs.Priority = append(rs.Priority, PriorityTier{Score: rule.Score, Patterns: compiled})
		}
	}

	sort.SliceStable(rs.Priority, func(i, j int) bool {
		return rs.Priority[i].Score > rs.Priority[j].Score
	})
	return rs
}

// FilePriority resolves the priority of a repository-relative slash path.
// Any ignore match wins outright and yields -1. Otherwise the first
// matching tier, walked highest score first, decides; unmatched paths get
// BaselineScore.
func (rs *RuleSet) FilePriority(rel string) int {
	for _, re := range rs.Ignore {
		if re.MatchString(rel) {
			return -1
		}
	}
	for _, tier := range rs.Priority {
		for _, re := range tier.Patterns {
			if re.MatchString(rel) {
				return tier.Score
			}
		}
	}
	return BaselineScore
}

// BinaryExtensions returns the built-in binary extension set extended with
// the user-declared ones, keyed by lowercased dot-prefixed extension.
func BinaryExtensions(cfg *Config) map[string]bool {
	exts := make(map[string]bool, len(builtinBinaryExtensions)+8)
	for _, ext := range builtinBinaryExtensions {
		exts[ext] = true
	}
	if cfg == nil {
		return exts
	}
	for _, ext := range cfg.BinaryExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	return exts
}
