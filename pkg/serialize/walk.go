package serialize

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// walkFiles visits every regular file under root, following symlinks.
// Directory entries are visited in name order, so discovery order is
// deterministic for a given tree. Symlink cycles are broken by tracking
// resolved directories already entered. Unreadable directories and
// dangling links are skipped.
func (s *Serializer) walkFiles(root string, visit func(abs, rel string)) {
	visited := make(map[string]bool)
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		visited[resolved] = true
	}

	var walk func(dir string)
	walk = func(dir string) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.logger.Debug("Skipping unreadable directory", zap.String("dir", dir), zap.Error(err))
			return
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			mode := entry.Type()
			if mode&fs.ModeSymlink != 0 {
				info, err := os.Stat(path)
				if err != nil {
					continue
				}
				mode = info.Mode().Type()
			}
			switch {
			case mode.IsDir():
				resolved, err := filepath.EvalSymlinks(path)
				if err != nil {
					continue
				}
				if visited[resolved] {
					continue
				}
				visited[resolved] = true
				walk(path)
			case mode.IsRegular():
				rel, err := filepath.Rel(root, path)
				if err != nil {
					continue
				}
				visit(path, filepath.ToSlash(rel))
			}
		}
	}
	walk(root)
}
