package main

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/bodo-run/yek/cmd"
)

func main() {
	err := cmd.Execute()
	syncLogger(zap.L())
	if err != nil {
		os.Exit(1)
	}
}

// syncLogger flushes the global logger. Syncing stderr fails with
// "invalid argument" on some platforms, so that case is ignored.
func syncLogger(logger *zap.Logger) {
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if err := logger.Sync(); err != nil {
			lowerErr := strings.ToLower(err.Error())
			if !strings.Contains(lowerErr, "invalid argument") {
				log.Printf("Logger sync failed: %v", err)
			}
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
