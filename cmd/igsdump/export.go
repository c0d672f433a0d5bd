package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/iges/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		formatName string
		output     string
		params     bool
		delimiter  string
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export a decoded file as JSON, JSONL, CSV, YAML or HTML",
		Long: `Export decodes FILE and writes the whole document in the chosen format.

The format defaults to the "format" setting of the config file, and to the
extension of --output when that is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.cfg.Format
			switch {
			case cmd.Flags().Changed("format"):
				name = formatName
			case output != "":
				if f, ok := formatForFile(output); ok {
					name = f.String()
				}
			}
			f, err := export.ParseFormat(name)
			if err != nil {
				return err
			}

			cfg := export.DefaultConfig()
			cfg.Format = f
			cfg.PrettyPrint = a.cfg.Pretty
			cfg.IncludeParameters = params
			cfg.Title = args[0]
			if delimiter != "" {
				cfg.CSVDelimiter = []rune(delimiter)[0]
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer file.Close()
				w = file
			}

			if _, err := a.decoder(args[0]).Export(w, cfg); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "output format: json, jsonl, csv, yaml, html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&params, "params", false, "include each entry's split parameter list")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", "CSV field delimiter")
	return cmd
}

// formatForFile picks the export format matching the extension of name.
func formatForFile(name string) (export.Format, bool) {
	f, err := export.ParseFormat(strings.TrimPrefix(filepath.Ext(name), "."))
	return f, err == nil
}
