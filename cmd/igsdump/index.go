package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/iges/format"
	"github.com/tsawler/iges/store"
)

func newIndexCmd(a *app) *cobra.Command {
	var (
		dbPath string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "index PATH...",
		Short: "Decode files and store them in the SQLite index",
		Long: `Index decodes every IGES file named on the command line, and every
.igs, .iges or .ige file (optionally gzipped) below named directories, and
stores their Global sections and directory entries in the SQLite index.

Re-indexing a file replaces its previous rows.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := collectPaths(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no IGES files found")
			}

			st, err := a.openStore(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			var (
				mu     sync.Mutex
				failed int
			)
			out := cmd.OutOrStdout()

			if jobs < 1 {
				jobs = 1
			}
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)
			for _, path := range paths {
				path := path
				g.Go(func() error {
					doc, _, err := a.decoder(path).Document()
					if err != nil {
						a.logger.Error("failed to decode file", zap.String("file", path), zap.Error(err))
						mu.Lock()
						failed++
						mu.Unlock()
						return nil
					}

					abs, err := filepath.Abs(path)
					if err != nil {
						return err
					}
					if _, err := st.SaveDocument(ctx, abs, doc); err != nil {
						return err
					}

					mu.Lock()
					fmt.Fprintf(out, "indexed %s (%d entries)\n", path, doc.EntryCount())
					mu.Unlock()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			a.logger.Info("indexing complete",
				zap.Int("files", len(paths)-failed),
				zap.Int("failed", failed),
				zap.String("db", st.Path()))
			if failed > 0 {
				return fmt.Errorf("failed to index %d of %d files", failed, len(paths))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "index database (default ~/.igsdump/index.db)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "files decoded in parallel")
	return cmd
}

func newFilesCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List the files in the SQLite index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			files, err := st.Files(cmd.Context())
			if err != nil {
				return err
			}

			t := newTable("ID", "Path", "Units", "Entries", "Indexed")
			for _, f := range files {
				t.Row(
					strconv.FormatInt(f.ID, 10),
					f.Path,
					f.Units,
					strconv.Itoa(f.EntryCount),
					f.IndexedAt.Local().Format(time.DateTime),
				)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "index database (default ~/.igsdump/index.db)")
	return cmd
}

// openStore opens the index named by the flag, the config file or the default.
func (a *app) openStore(flagPath string) (*store.Store, error) {
	path := flagPath
	if path == "" {
		path = a.cfg.Database
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	return st, nil
}

// collectPaths expands directories into the IGES files below them. Files
// named explicitly are kept whatever their extension.
func collectPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && format.Detect(path) != format.Unknown {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", arg, err)
		}
	}
	return paths, nil
}
