package serialize

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Sink receives completed chunks in index order.
type Sink interface {
	WriteChunk(files []FileRecord, index int) error
}

// streamSink writes serialized chunks straight to a writer, with no
// boundary markers between chunks.
type streamSink struct {
	w io.Writer
}

func (s *streamSink) WriteChunk(files []FileRecord, index int) error {
	if _, err := io.WriteString(s.w, renderChunk(files)); err != nil {
		return fmt.Errorf("write chunk %d to stream: %w", index, err)
	}
	return nil
}

// dirSink writes each chunk to chunk-<index>.txt inside dir.
type dirSink struct {
	dir    string
	mode   SizeMode
	logger *zap.Logger
}

func (d *dirSink) WriteChunk(files []FileRecord, index int) error {
	data := renderChunk(files)
	path := filepath.Join(d.dir, fmt.Sprintf("chunk-%d.txt", index))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chunk file %q: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if _, err := w.WriteString(data); err != nil {
		f.Close()
		return fmt.Errorf("write chunk file %q: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write chunk file %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chunk file %q: %w", path, err)
	}

	d.logger.Info("Written chunk",
		zap.Int("chunk", index),
		zap.Int("files", len(files)),
		zap.String("size", FormatSize(CountSize(data, d.mode), d.mode)))
	return nil
}

// renderChunk serializes records in order. The wire format is fixed:
// ">>>> " + path + "\n" + content + "\n\n" per record, concatenated with
// nothing in between.
func renderChunk(files []FileRecord) string {
	var b strings.Builder
	for _, f := range files {
		b.WriteString(">>>> ")
		b.WriteString(f.Path)
		b.WriteString("\n")
		b.WriteString(f.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}
