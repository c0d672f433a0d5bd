// Command igsdump inspects, exports and indexes IGES files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/iges"
	"github.com/tsawler/iges/internal/config"
)

// app holds the state shared by every command of one invocation.
type app struct {
	// Global flags
	configPath string
	verbose    bool
	encoding   string
	lenient    bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "igsdump",
		Short: "Inspect, export and index IGES files",
		Long: `igsdump decodes IGES (Initial Graphics Exchange Specification) files.

It prints the Global section and directory entries, exports whole files to
JSON, JSONL, CSV, YAML or HTML, and keeps an SQLite index of decoded files.
Gzip-compressed files (.igs.gz) are read transparently.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/"+config.FileName+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.encoding, "encoding", "", "input charset, e.g. latin1 or windows-1252")
	flags.BoolVar(&a.lenient, "lenient", false, "report dangling parameter data as warnings")

	root.AddCommand(
		newGlobalCmd(a),
		newEntriesCmd(a),
		newExportCmd(a),
		newIndexCmd(a),
		newFilesCmd(a),
		newWatchCmd(a),
	)
	return root
}

// init loads the config file, applies flag overrides and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("encoding") {
		cfg.Encoding = a.encoding
	}
	if flags.Changed("lenient") {
		cfg.Lenient = a.lenient
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	zc := zap.NewProductionConfig()
	if a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// decoder returns a Decoder for path configured from the merged settings.
func (a *app) decoder(path string) *iges.Decoder {
	d := iges.Open(path).Logger(a.logger.With(zap.String("file", path)))
	if a.cfg.Encoding != "" {
		d = d.Encoding(a.cfg.Encoding)
	}
	if a.cfg.Lenient {
		d = d.AllowDanglingParameters()
	}
	return d
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
