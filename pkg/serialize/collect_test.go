package serialize

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFilters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.log\n")
	writeFile(t, root, "app.log", "excluded by .gitignore")
	writeFile(t, root, "a.txt", "alpha")
	writeFile(t, root, "node_modules/x.js", "excluded by ignore rules")
	writeFile(t, root, "src/main.go", "package main")
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob"), []byte{0x00, 0x01}, 0o644))

	s := newTestSerializer(Options{MaxSize: 1024})
	entries := s.collect(root)

	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Rel)
	assert.Equal(t, 40, entries[0].Priority)
	assert.Equal(t, "src/main.go", entries[1].Rel)
	assert.Equal(t, 50, entries[1].Priority)
}

func TestCollectRecencyBonus(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "fresh.txt", "new")
	writeFile(t, root, "stale.txt", "old")

	now := time.Now()
	s := newTestSerializer(Options{MaxSize: 1024})
	s.now = func() time.Time { return now }
	s.Commits = stubCommits{times: map[string]int64{
		"fresh.txt": now.Add(-24 * time.Hour).Unix(),
		"stale.txt": now.Add(-30 * 24 * time.Hour).Unix(),
	}}

	entries := s.collect(root)
	require.Len(t, entries, 2)

	byRel := make(map[string]int)
	for _, e := range entries {
		byRel[e.Rel] = e.Priority
	}
	assert.Equal(t, 90, byRel["fresh.txt"], "baseline 40 plus recency bonus")
	assert.Equal(t, 40, byRel["stale.txt"], "outside the recency window")
}

func TestCollectRecentIgnoredStaysExcluded(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/x.js", "excluded by ignore rules")
	writeFile(t, root, "kept.txt", "still here")

	now := time.Now()
	s := newTestSerializer(Options{MaxSize: 1024})
	s.now = func() time.Time { return now }
	s.Commits = stubCommits{times: map[string]int64{
		"node_modules/x.js": now.Add(-time.Hour).Unix(),
		"kept.txt":          now.Add(-time.Hour).Unix(),
	}}

	// A fresh commit on an ignored path must not bring it back.
	entries := s.collect(root)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept.txt", entries[0].Rel)
	assert.Equal(t, 90, entries[0].Priority)
}

func TestCollectNoMetadataNoBonus(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "fresh.txt", "new")

	s := newTestSerializer(Options{MaxSize: 1024})

	entries := s.collect(root)
	require.Len(t, entries, 1)
	assert.Equal(t, 40, entries[0].Priority)
}

func TestWalkFollowsSymlinks(t *testing.T) {
	outside := t.TempDir()
	writeFile(t, outside, "file.txt", "content")

	root := t.TempDir()
	writeFile(t, root, "local.txt", "here")
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "linked")))
	require.NoError(t, os.Symlink(root, filepath.Join(root, "loop")))
	require.NoError(t, os.Symlink(filepath.Join(root, "absent"), filepath.Join(root, "dangling")))

	s := newTestSerializer(Options{MaxSize: 1024})

	var rels []string
	s.walkFiles(root, func(abs, rel string) { rels = append(rels, rel) })

	// The link into outside is followed, the self-loop and the dangling
	// link are skipped.
	assert.Equal(t, []string{"linked/file.txt", "local.txt"}, rels)
}
