package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultDebounce batches the burst of events an editor save produces.
const defaultDebounce = 300 * time.Millisecond

// fileWatcher calls onChange after a file is written, created or replaced.
// It watches the parent directory so files replaced by rename are followed.
type fileWatcher struct {
	path     string
	debounce time.Duration
	onChange func()
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
}

func newFileWatcher(path string, debounce time.Duration, logger *zap.Logger, onChange func()) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &fileWatcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		watcher:  watcher,
	}, nil
}

// Run delivers change notifications until ctx is cancelled, then closes
// the underlying watcher.
func (w *fileWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.logger.Debug("file event", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
				fire = time.After(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			w.onChange()
		}
	}
}

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Decode a file again every time it changes",
		Long: `Watch decodes FILE, prints a one-line summary, and repeats whenever the
file is written or replaced. Stop it with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summarize := func() { a.summarize(out, path) }
			w, err := newFileWatcher(path, debounce, a.logger, summarize)
			if err != nil {
				return err
			}

			summarize()
			a.logger.Info("watching file", zap.String("file", path))
			return w.Run(ctx)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "wait this long after the last change")
	return cmd
}

// summarize decodes path and writes a one-line summary, or the error.
func (a *app) summarize(out io.Writer, path string) {
	doc, warnings, err := a.decoder(path).Document()
	stamp := time.Now().Format(time.TimeOnly)
	if err != nil {
		fmt.Fprintf(out, "%s %s: %v\n", stamp, path, err)
		return
	}

	stats := doc.Stats()
	fmt.Fprintf(out, "%s %s: %d entries, %d entity types, units %s, %d warnings\n",
		stamp, path, stats.EntryCount, len(stats.TypeCounts), stats.UnitsName, len(warnings))
}
