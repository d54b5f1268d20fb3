package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/bodo-run/yek/pkg/config"
	"github.com/bodo-run/yek/pkg/logging"
	"github.com/bodo-run/yek/pkg/serialize"
)

var rootFlags struct {
	maxSize    string
	tokens     bool
	stream     bool
	outputDir  string
	configFile string
	debug      bool
}

// RootCmd is the base command: one pass of scan, select, chunk, write.
var RootCmd = &cobra.Command{
	Use:   "yek [flags] [path...]",
	Short: "Repository content chunker and serializer for LLM consumption",
	Long: `Yek scans one or more directories, picks out the text files worth reading,
orders them so the most relevant content comes last, and writes everything
as size-bounded chunks, either to files or straight to stdout when piped.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	flags := RootCmd.Flags()
	flags.StringVar(&rootFlags.maxSize, "max-size", "10MB", "Maximum size per chunk (e.g. '10MB', '128KB', '1GB')")
	flags.BoolVar(&rootFlags.tokens, "tokens", false, "Count size in tokens instead of bytes")
	flags.BoolVar(&rootFlags.stream, "stream", false, "Stream chunks to stdout even when it is a terminal")
	flags.StringVar(&rootFlags.outputDir, "output-dir", "", "Output directory for chunks")
	flags.StringVar(&rootFlags.configFile, "config-file", "", "Config file to use (default: nearest yek.toml or yek.yaml)")
	flags.BoolVar(&rootFlags.debug, "debug", false, "Enable debug output")
}

// Execute runs the root command and returns its error for main to exit on.
func Execute() error {
	return RootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger, err := logging.Setup(rootFlags.debug)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	maxSize, err := humanize.ParseBytes(rootFlags.maxSize)
	if err != nil {
		return fmt.Errorf("parse --max-size %q: %w", rootFlags.maxSize, err)
	}
	if maxSize == 0 {
		return fmt.Errorf("--max-size must be greater than zero")
	}
	if maxSize > math.MaxInt {
		return fmt.Errorf("--max-size %q is larger than the supported maximum", rootFlags.maxSize)
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	cfgPath := rootFlags.configFile
	if cfgPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfgPath = config.FindConfigFile(cwd)
		}
	}
	var cfg *config.Config
	if cfgPath != "" {
		cfg = config.LoadConfigFile(cfgPath, logger)
	}

	mode := serialize.Bytes
	if rootFlags.tokens {
		mode = serialize.Tokens
	}

	// Pipe detection: no explicit output dir and stdout is not a terminal
	// means the caller wants the chunks on stdout.
	stream := rootFlags.stream ||
		(rootFlags.outputDir == "" && !term.IsTerminal(int(os.Stdout.Fd())))

	s := serialize.New(serialize.Options{
		MaxSize:   int(maxSize),
		Mode:      mode,
		Roots:     roots,
		Stream:    stream,
		OutputDir: rootFlags.outputDir,
		Config:    cfg,
	}, logger)
	if path := os.Getenv("YEK_DEBUG_OUTPUT"); path != "" {
		s.Debug = serialize.FileDebugSink{Path: path}
	}

	outPath, err := s.Run()
	if err != nil {
		return err
	}
	if outPath != "" {
		logger.Info("Output written", zap.String("path", outPath))
	}
	return nil
}
