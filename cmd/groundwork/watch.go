package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aaa-platform/groundwork/internal/synth"
)

func newWatchCmd() *cobra.Command {
	var (
		format   string
		outDir   string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-synthesize all stacks when the context file changes",
		Long: `Watch the deploy-time context file and re-synthesize every stack on
change. Declarations are compiled in, so the context file is the only input
that can change between runs of the same binary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer watcher.Close()

			// Watch the directory: editors replace files on save, which
			// drops a watch on the file itself.
			dir := filepath.Dir(contextFile)
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watching %s: %w", dir, err)
			}

			synthAll := func() {
				ctx, err := loadContext()
				if err != nil {
					logger.Warn("context not loadable", zap.Error(err))
					return
				}
				built, err := buildStacks(ctx, nil)
				if err != nil {
					logger.Warn("stack declaration failed", zap.Error(err))
					return
				}
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					logger.Warn("output dir", zap.Error(err))
					return
				}
				for _, s := range built {
					res, err := synth.Synthesize(s)
					if err != nil {
						logger.Warn("synthesis failed", zap.String("stack", s.Name()), zap.Error(err))
						continue
					}
					data, err := render(res.Template, format)
					if err != nil {
						logger.Warn("render failed", zap.String("stack", res.Stack), zap.Error(err))
						continue
					}
					path := filepath.Join(outDir, res.Stack+"."+format)
					if err := os.WriteFile(path, data, 0o644); err != nil {
						logger.Warn("write failed", zap.String("template", path), zap.Error(err))
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d resources -> %s\n", res.Stack, len(res.Order), path)
				}
			}

			synthAll()
			fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", contextFile)

			sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watchEvents(sigCtx, watcher.Events, watcher.Errors, contextFile, debounce, synthAll)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json or yaml)")
	cmd.Flags().StringVarP(&outDir, "output", "o", "templates", "output directory")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "settle time after a change")
	return cmd
}

// watchEvents debounces change events for target and calls resynth once per
// burst. resynth runs on this goroutine only, so runs never overlap.
func watchEvents(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, target string, settle time.Duration, resynth func()) {
	target = filepath.Clean(target)
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			pending = time.After(settle)
		case <-pending:
			pending = nil
			resynth()
		case err, ok := <-errs:
			if !ok {
				return
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}
