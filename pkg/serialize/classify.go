package serialize

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// textProbeSize is how many leading bytes are scanned for zero bytes when
// the extension alone does not classify a file.
const textProbeSize = 4096

// IsTextFile reports whether the file at path should be serialized as
// text. Extensions present in binaryExts reject the file without opening
// it; anything else is probed for zero bytes in its first 4096 bytes.
// Files that cannot be opened or read count as binary, so a bad file
// never aborts a run.
func IsTextFile(path string, binaryExts map[string]bool) bool {
	if ext := strings.ToLower(filepath.Ext(path)); ext != "" && binaryExts[ext] {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, textProbeSize)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false
	}
	return bytes.IndexByte(buf[:n], 0) < 0
}

// CountSize measures text in the unit of mode: bytes, or
// whitespace-separated tokens.
func CountSize(text string, mode SizeMode) int {
	if mode == Tokens {
		return len(strings.Fields(text))
	}
	return len(text)
}

// FormatSize renders a size for log output, 1024-based in byte mode.
func FormatSize(size int, mode SizeMode) string {
	if mode == Tokens {
		return fmt.Sprintf("%d tokens", size)
	}
	val := float64(size)
	units := []string{"B", "KB", "MB", "GB"}
	idx := 0
	for val >= 1024 && idx < len(units)-1 {
		val /= 1024
		idx++
	}
	return fmt.Sprintf("%.1f %s", val, units[idx])
}
