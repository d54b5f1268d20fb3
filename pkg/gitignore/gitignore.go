// Package gitignore matches repository-relative paths against the
// .gitignore file at a repository root.
package gitignore

import (
	"os"
	"path/filepath"
	"strings"

	format "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher answers whether a path is excluded by the root .gitignore.
// The zero value matches nothing.
type Matcher struct {
	matcher format.Matcher
}

// Load reads the .gitignore at root and builds a matcher from it. A
// missing or unreadable file yields a matcher that excludes nothing.
func Load(root string) *Matcher {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return &Matcher{}
	}

	var patterns []format.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, format.ParsePattern(line, nil))
	}
	if len(patterns) == 0 {
		return &Matcher{}
	}
	return &Matcher{matcher: format.NewMatcher(patterns)}
}

// Match reports whether the slash-separated relative path rel is ignored.
func (m *Matcher) Match(rel string, isDir bool) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	var segments []string
	for _, seg := range strings.Split(rel, "/") {
		if seg == "" || seg == "." {
			continue
		}
		segments = append(segments, seg)
	}
	return m.matcher.Match(segments, isDir)
}
