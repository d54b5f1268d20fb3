// Package serialize implements the single-pass engine behind yek: it
// scans file trees, selects and prioritizes text files, and emits their
// contents as size-bounded chunks to stdout or a chunk directory.
package serialize

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/bodo-run/yek/pkg/config"
	"github.com/bodo-run/yek/pkg/gitmeta"
)

// SizeMode selects the unit file and chunk sizes are measured in.
type SizeMode int

const (
	// Bytes measures sizes in raw bytes.
	Bytes SizeMode = iota
	// Tokens measures sizes in whitespace-separated tokens.
	Tokens
)

// Options configure a single serialization run.
type Options struct {
	// MaxSize bounds each chunk, in the unit selected by Mode. Must be
	// positive.
	MaxSize int
	// Mode selects bytes or tokens.
	Mode SizeMode
	// Roots are the directories to scan, in order. Empty means the
	// current directory.
	Roots []string
	// Stream sends chunks to the stdout writer instead of files.
	Stream bool
	// OutputDir overrides the chunk directory. Ignored when streaming.
	OutputDir string
	// Config holds the loaded user configuration, nil for defaults.
	Config *config.Config
}

// Serializer runs one scan-select-chunk pass over the configured roots.
// The exported collaborators are wired to production implementations by
// New and can be swapped before Run.
type Serializer struct {
	Commits gitmeta.CommitTimeReader
	Hashes  gitmeta.TrackedFileHasher
	Debug   DebugSink
	Stdout  io.Writer

	opts    Options
	rules   *config.RuleSet
	binExts map[string]bool
	logger  *zap.Logger
	now     func() time.Time
}

// New builds a Serializer around opts: git CLI metadata readers, a no-op
// debug sink and os.Stdout for streaming.
func New(opts Options, logger *zap.Logger) *Serializer {
	git := &gitmeta.GitCLI{Logger: logger}
	return &Serializer{
		Commits: git,
		Hashes:  git,
		Debug:   NopDebugSink{},
		Stdout:  os.Stdout,
		opts:    opts,
		rules:   config.Merge(opts.Config),
		binExts: config.BinaryExtensions(opts.Config),
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes the pass. In directory mode it returns the directory the
// chunks were written to; in stream mode, or when an oversized file cut
// the run short, it returns "".
func (s *Serializer) Run() (string, error) {
	if s.opts.MaxSize <= 0 {
		return "", fmt.Errorf("max size must be greater than zero, got %d", s.opts.MaxSize)
	}
	rootArgs := s.opts.Roots
	if len(rootArgs) == 0 {
		rootArgs = []string{"."}
	}
	roots := make([]string, 0, len(rootArgs))
	for _, root := range rootArgs {
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", fmt.Errorf("resolve root %q: %w", root, err)
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return "", fmt.Errorf("resolve root %q: %w", root, err)
		}
		roots = append(roots, resolved)
	}

	outDir, err := s.resolveOutputDir(roots[0])
	if err != nil {
		return "", err
	}

	var sink Sink
	if s.opts.Stream {
		sink = &streamSink{w: s.Stdout}
	} else {
		sink = &dirSink{dir: outDir, mode: s.opts.Mode, logger: s.logger}
	}

	var entries []FileEntry
	for _, root := range roots {
		entries = append(entries, s.collect(root)...)
	}

	// Ascending by priority: the most relevant content lands at the end
	// of the output, nearest to where a limited-context consumer reads.
	// Ties keep discovery order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Priority < entries[j].Priority
	})

	stopped, err := s.assemble(entries, sink)
	if err != nil {
		return "", err
	}
	if s.opts.Stream || stopped {
		return "", nil
	}
	return outDir, nil
}

// resolveOutputDir picks the chunk directory: flag, then config, then a
// checksum-named directory under the system temp dir. The directory is
// created before any chunk is written.
func (s *Serializer) resolveOutputDir(primaryRoot string) (string, error) {
	if s.opts.Stream {
		return "", nil
	}
	dir := s.opts.OutputDir
	switch {
	case dir != "":
		s.logger.Debug("Using output directory from command line", zap.String("dir", dir))
	case s.opts.Config != nil && s.opts.Config.OutputDir != "":
		dir = s.opts.Config.OutputDir
		s.logger.Debug("Using output directory from config", zap.String("dir", dir))
	default:
		dir = filepath.Join(os.TempDir(), "yek-"+s.repoChecksum(primaryRoot))
		s.logger.Debug("Using default temporary directory", zap.String("dir", dir))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %q: %w", dir, err)
	}
	return dir, nil
}
