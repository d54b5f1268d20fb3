package serialize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// repoChecksum derives a short stable identifier for root from its
// tracked-file hashes: sha256 over sorted "path:hash" lines, first 8 hex
// characters. Repeated runs over an unchanged tree therefore land in the
// same derived output directory. Without hash metadata it falls back to a
// millisecond timestamp, unique per run.
func (s *Serializer) repoChecksum(root string) string {
	hashes, ok := s.Hashes.FileHashes(root)
	if !ok {
		return fallbackStamp(s.now())
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i].Path < hashes[j].Path })

	h := sha256.New()
	for _, fh := range hashes {
		fmt.Fprintf(h, "%s:%s\n", fh.Path, fh.Hash)
	}
	return hex.EncodeToString(h.Sum(nil))[:8]
}

func fallbackStamp(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 16)
}
