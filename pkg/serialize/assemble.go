package serialize

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// truncateAfterSplit ends the run once an oversized file has been split
// into part chunks, dropping every remaining candidate. The historical
// output contract depends on this; it is isolated here so the behavior
// can be changed in one place.
const truncateAfterSplit = true

// FileRecord is one serialized file inside a chunk. Path is the display
// path: the root-relative path, suffixed ":partN" when an oversized file
// was split.
type FileRecord struct {
	Path    string
	Content string
}

// assemble reads each entry in order and packs contents into chunks of at
// most MaxSize, flushing full chunks through sink. It reports whether the
// run was cut short by an oversized file.
func (s *Serializer) assemble(entries []FileEntry, sink Sink) (bool, error) {
	var chunk []FileRecord
	chunkSize := 0
	chunkIndex := 0

	for _, entry := range entries {
		data, err := os.ReadFile(entry.Path)
		if err != nil {
			s.logger.Debug("Skipped: unreadable file", zap.String("path", entry.Rel), zap.Error(err))
			continue
		}
		if !utf8.Valid(data) {
			s.logger.Debug("Skipped: not valid UTF-8", zap.String("path", entry.Rel))
			continue
		}
		content := string(data)
		size := CountSize(content, s.opts.Mode)

		if size > s.opts.MaxSize {
			s.debugf("File exceeds chunk size, splitting into multiple chunks")
			if err := s.splitOversized(entry.Rel, content, sink); err != nil {
				return false, err
			}
			if truncateAfterSplit {
				return true, nil
			}
			continue
		}

		if chunkSize+size > s.opts.MaxSize && len(chunk) > 0 {
			s.debugf("Written chunk %d", chunkIndex)
			if err := sink.WriteChunk(chunk, chunkIndex); err != nil {
				return false, err
			}
			chunkIndex++
			chunk = nil
			chunkSize = 0
		}

		chunk = append(chunk, FileRecord{Path: entry.Rel, Content: content})
		chunkSize += size
	}

	if len(chunk) > 0 {
		if err := sink.WriteChunk(chunk, chunkIndex); err != nil {
			return false, err
		}
	}
	return false, nil
}

// splitOversized emits content as a sequence of single-file part chunks,
// each within MaxSize. The part number doubles as the chunk index, and
// the remainder is left-trimmed of whitespace between parts.
func (s *Serializer) splitOversized(rel, content string, sink Sink) error {
	remaining := content
	for part := 0; remaining != ""; part++ {
		cut := s.partLength(remaining)
		record := FileRecord{
			Path:    fmt.Sprintf("%s:part%d", rel, part),
			Content: remaining[:cut],
		}
		s.debugf("Written chunk %d", part)
		if err := sink.WriteChunk([]FileRecord{record}, part); err != nil {
			return err
		}
		remaining = strings.TrimLeftFunc(remaining[cut:], unicode.IsSpace)
	}
	return nil
}

// partLength returns how many bytes of remaining go into the next part.
// Token mode takes whole words up to MaxSize of them; byte mode takes
// MaxSize bytes, backed off to a rune boundary. Always at least one byte
// so the split makes progress.
func (s *Serializer) partLength(remaining string) int {
	var cut int
	if s.opts.Mode == Tokens {
		cut = wordsPrefix(remaining, s.opts.MaxSize)
	} else {
		cut = s.opts.MaxSize
		if cut < len(remaining) {
			for cut > 0 && !utf8.RuneStart(remaining[cut]) {
				cut--
			}
		}
	}
	if cut <= 0 {
		cut = s.opts.MaxSize
	}
	if cut > len(remaining) {
		cut = len(remaining)
	}
	return cut
}

// wordsPrefix returns the byte length of the prefix of text holding at
// most maxWords whitespace-separated words, including any separators
// before the word that follows.
func wordsPrefix(text string, maxWords int) int {
	words := 0
	inWord := false
	for i, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			if words == maxWords {
				return i
			}
			words++
			inWord = true
		}
	}
	return len(text)
}
