package serialize

import (
	"fmt"
	"os"
)

// DebugSink receives the engine's chunk-lifecycle messages. External
// harnesses watch these to follow a run; the engine mirrors them here in
// addition to its normal debug logging.
type DebugSink interface {
	Append(msg string)
}

// NopDebugSink discards every message.
type NopDebugSink struct{}

func (NopDebugSink) Append(string) {}

// FileDebugSink appends each message as one line to Path, creating the
// file on first use. Write failures are ignored; debug capture never
// affects a run.
type FileDebugSink struct {
	Path string
}

func (f FileDebugSink) Append(msg string) {
	fh, err := os.OpenFile(f.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer fh.Close()
	fh.WriteString(msg + "\n")
}

// debugf logs a chunk-lifecycle message and mirrors it to the debug sink.
func (s *Serializer) debugf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.logger.Debug(msg)
	s.Debug.Append(msg)
}
