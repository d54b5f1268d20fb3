package serialize

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bodo-run/yek/pkg/gitmeta"
)

// writeFile creates rel under root with the given content, making parent
// directories as needed.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newTestSerializer builds a Serializer with quiet logging and stub git
// collaborators so tests never shell out.
func newTestSerializer(opts Options) *Serializer {
	s := New(opts, zap.NewNop())
	s.Commits = stubCommits{}
	s.Hashes = stubHashes{}
	return s
}

type stubCommits struct {
	times map[string]int64
}

func (s stubCommits) CommitTimes(string) (map[string]int64, bool) {
	if s.times == nil {
		return nil, false
	}
	return s.times, true
}

type stubHashes struct {
	hashes []gitmeta.FileHash
	ok     bool
}

func (s stubHashes) FileHashes(string) ([]gitmeta.FileHash, bool) {
	return s.hashes, s.ok
}

type captureSink struct {
	chunks  [][]FileRecord
	indexes []int
}

func (c *captureSink) WriteChunk(files []FileRecord, index int) error {
	cp := make([]FileRecord, len(files))
	copy(cp, files)
	c.chunks = append(c.chunks, cp)
	c.indexes = append(c.indexes, index)
	return nil
}

type memDebug struct {
	msgs []string
}

func (m *memDebug) Append(msg string) { m.msgs = append(m.msgs, msg) }

func TestRunStreamsInPriorityOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "alpha")
	writeFile(t, root, "src/b.txt", "bravo")

	var out bytes.Buffer
	s := newTestSerializer(Options{MaxSize: 1024, Roots: []string{root}, Stream: true})
	s.Stdout = &out

	path, err := s.Run()
	require.NoError(t, err)
	assert.Empty(t, path)

	// src/b.txt outranks a.txt, so it comes last.
	want := ">>>> a.txt\nalpha\n\n>>>> src/b.txt\nbravo\n\n"
	assert.Equal(t, want, out.String())
}

func TestRunTiesKeepDiscoveryOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.txt", "bee")
	writeFile(t, root, "a.txt", "ay")
	writeFile(t, root, "c.txt", "sea")

	var out bytes.Buffer
	s := newTestSerializer(Options{MaxSize: 1024, Roots: []string{root}, Stream: true})
	s.Stdout = &out

	_, err := s.Run()
	require.NoError(t, err)

	want := ">>>> a.txt\nay\n\n>>>> b.txt\nbee\n\n>>>> c.txt\nsea\n\n"
	assert.Equal(t, want, out.String())
}

func TestRunRoundTripConcatenation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "one.txt", "first file body")
	writeFile(t, root, "two.txt", "second file body")
	writeFile(t, root, "src/three.txt", "third file body")

	var out bytes.Buffer
	s := newTestSerializer(Options{MaxSize: 40, Roots: []string{root}, Stream: true})
	s.Stdout = &out

	_, err := s.Run()
	require.NoError(t, err)

	// The first two fill chunk 0, the third overflows into chunk 1. The
	// streamed concatenation holds every file exactly once, in order.
	want := ">>>> one.txt\nfirst file body\n\n" +
		">>>> two.txt\nsecond file body\n\n" +
		">>>> src/three.txt\nthird file body\n\n"
	assert.Equal(t, want, out.String())
}

func TestRunMultipleRoots(t *testing.T) {
	rootA := t.TempDir()
	writeFile(t, rootA, "a.txt", "from a")
	rootB := t.TempDir()
	writeFile(t, rootB, "b.txt", "from b")

	var out bytes.Buffer
	s := newTestSerializer(Options{MaxSize: 1024, Roots: []string{rootA, rootB}, Stream: true})
	s.Stdout = &out

	_, err := s.Run()
	require.NoError(t, err)

	want := ">>>> a.txt\nfrom a\n\n>>>> b.txt\nfrom b\n\n"
	assert.Equal(t, want, out.String())
}

func TestRunWritesChunkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "alpha")

	outDir := filepath.Join(t.TempDir(), "chunks")
	s := newTestSerializer(Options{MaxSize: 1024, Roots: []string{root}, OutputDir: outDir})

	path, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, outDir, path)

	data, err := os.ReadFile(filepath.Join(outDir, "chunk-0.txt"))
	require.NoError(t, err)
	assert.Equal(t, ">>>> a.txt\nalpha\n\n", string(data))
}

func TestRunChunkFilesConcatenateInOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "aaaa")
	writeFile(t, root, "b.txt", "bbbb")
	writeFile(t, root, "c.txt", "cccc")

	outDir := filepath.Join(t.TempDir(), "chunks")
	s := newTestSerializer(Options{MaxSize: 8, Roots: []string{root}, OutputDir: outDir})

	path, err := s.Run()
	require.NoError(t, err)
	require.Equal(t, outDir, path)

	// The first two files fill chunk 0, the third lands in chunk 1.
	names, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, names, 2)

	var joined []byte
	for i := range names {
		data, err := os.ReadFile(filepath.Join(outDir, fmt.Sprintf("chunk-%d.txt", i)))
		require.NoError(t, err)
		joined = append(joined, data...)
	}
	want := ">>>> a.txt\naaaa\n\n" +
		">>>> b.txt\nbbbb\n\n" +
		">>>> c.txt\ncccc\n\n"
	assert.Equal(t, want, string(joined))
}

func TestRunDefaultOutputDirUsesChecksum(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "alpha")

	s := newTestSerializer(Options{MaxSize: 1024, Roots: []string{root}})
	s.Hashes = stubHashes{hashes: []gitmeta.FileHash{{Path: "a.txt", Hash: "abc"}}, ok: true}

	path, err := s.Run()
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(path) })

	sum := sha256.Sum256([]byte("a.txt:abc\n"))
	want := filepath.Join(os.TempDir(), "yek-"+hex.EncodeToString(sum[:])[:8])
	assert.Equal(t, want, path)

	_, statErr := os.Stat(filepath.Join(path, "chunk-0.txt"))
	assert.NoError(t, statErr)
}

func TestRunEmptyRoot(t *testing.T) {
	root := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "chunks")
	s := newTestSerializer(Options{MaxSize: 100, Roots: []string{root}, OutputDir: outDir})

	path, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, outDir, path)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no chunk files for an empty root")
}

func TestRunMissingRoot(t *testing.T) {
	absent := filepath.Join(t.TempDir(), "absent")
	s := newTestSerializer(Options{MaxSize: 100, Roots: []string{absent}, Stream: true})

	_, err := s.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve root")
}

func TestRunRejectsNonPositiveMaxSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "alpha")

	for _, max := range []int{0, -8} {
		s := newTestSerializer(Options{MaxSize: max, Roots: []string{root}, Stream: true})
		_, err := s.Run()
		require.Error(t, err, "MaxSize %d", max)
		assert.Contains(t, err.Error(), "max size")
	}
}
