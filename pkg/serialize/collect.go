package serialize

import (
	"time"

	"go.uber.org/zap"

	"github.com/bodo-run/yek/pkg/gitignore"
)

// FileEntry is one candidate file that survived selection. Entries are
// immutable once collected.
type FileEntry struct {
	// Path is the absolute path on disk.
	Path string
	// Rel is the root-relative path, slash-separated. It is also the
	// display path in serialized output.
	Rel string
	// Priority orders assembly; higher means more relevant.
	Priority int
}

const (
	// recencyWindow is how far back a commit still counts as recent.
	recencyWindow = 14 * 24 * time.Hour
	// recencyBonus is added to the priority of recently committed files.
	recencyBonus = 50
)

// collect walks root and keeps the files that pass the gitignore matcher,
// the ignore rules and binary detection, applying the commit-recency
// bonus where metadata is available.
func (s *Serializer) collect(root string) []FileEntry {
	matcher := gitignore.Load(root)
	commitTimes, haveTimes := s.Commits.CommitTimes(root)
	cutoff := s.now().Add(-recencyWindow).Unix()

	var entries []FileEntry
	s.walkFiles(root, func(abs, rel string) {
		if matcher.Match(rel, false) {
			s.logger.Debug("Skipped: matched by .gitignore", zap.String("path", rel))
			return
		}
		prio := s.rules.FilePriority(rel)
		if prio < 0 {
			s.logger.Debug("Skipped: matched by ignore patterns", zap.String("path", rel))
			return
		}
		if !IsTextFile(abs, s.binExts) {
			s.logger.Debug("Skipped: binary file", zap.String("path", rel))
			return
		}
		if haveTimes {
			if ts, ok := commitTimes[rel]; ok && ts >= cutoff {
				s.logger.Debug("Recently changed, priority bonus applied", zap.String("path", rel))
				prio += recencyBonus
			}
		}
		entries = append(entries, FileEntry{Path: abs, Rel: rel, Priority: prio})
	})
	return entries
}
