// Package gitmeta reads commit timestamps and tracked-file hashes from a
// local git repository via the git CLI. Both readers degrade gracefully:
// a missing repository or a failing git invocation reports unavailability
// instead of an error, and callers carry on without the metadata.
package gitmeta

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// FileHash pairs a repository-relative path with its git blob hash.
type FileHash struct {
	Path string
	Hash string
}

// CommitTimeReader reports the most recent commit timestamp per tracked
// file. The bool is false when the repository or metadata is unavailable.
type CommitTimeReader interface {
	CommitTimes(root string) (map[string]int64, bool)
}

// TrackedFileHasher lists the blob hashes of all tracked files. The bool
// is false when the repository or metadata is unavailable.
type TrackedFileHasher interface {
	FileHashes(root string) ([]FileHash, bool)
}

// GitCLI implements both readers by shelling out to git.
type GitCLI struct {
	Logger *zap.Logger
}

// CommitTimes returns the latest commit time for every path that appears
// in the repository log, keyed by repository-relative path.
func (g *GitCLI) CommitTimes(root string) (map[string]int64, bool) {
	if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
		g.debug("No git repository found", zap.String("root", root))
		return nil, false
	}
	out, err := runGit(root, "log", "--pretty=format:%ct", "--name-only", "--no-merges", "--relative")
	if err != nil {
		g.debug("git log failed", zap.String("root", root), zap.Error(err))
		return nil, false
	}
	return ParseCommitTimes(out), true
}

// FileHashes returns the blob hash of every tracked file in index order.
func (g *GitCLI) FileHashes(root string) ([]FileHash, bool) {
	if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
		g.debug("No git repository found", zap.String("root", root))
		return nil, false
	}
	out, err := runGit(root, "ls-files", "-s")
	if err != nil {
		g.debug("git ls-files failed", zap.String("root", root), zap.Error(err))
		return nil, false
	}
	return ParseFileHashes(out), true
}

func (g *GitCLI) debug(msg string, fields ...zap.Field) {
	if g.Logger != nil {
		g.Logger.Debug(msg, fields...)
	}
}

// ParseCommitTimes reads `git log --pretty=format:%ct --name-only` output.
// Each commit block opens with a unix timestamp line followed by the paths
// it touched. Commits are listed newest first, so the first timestamp seen
// for a path is its most recent one.
func ParseCommitTimes(out string) map[string]int64 {
	times := make(map[string]int64)
	var current int64
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if ts, err := strconv.ParseInt(line, 10, 64); err == nil {
			current = ts
			continue
		}
		if _, seen := times[line]; !seen {
			times[line] = current
		}
	}
	return times
}

// ParseFileHashes reads `git ls-files -s` output. Each line holds
// "<mode> <hash> <stage>\t<path>".
func ParseFileHashes(out string) []FileHash {
	var hashes []FileHash
	for _, line := range strings.Split(out, "\n") {
		meta, path, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		fields := strings.Fields(meta)
		if len(fields) < 2 {
			continue
		}
		hashes = append(hashes, FileHash{Path: path, Hash: fields[1]})
	}
	return hashes
}

func runGit(root string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = root
	var buf bytes.Buffer
	cmd.Stdout = &buf
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
