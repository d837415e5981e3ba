package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/taigrr/softrender/pkg/render"
	"github.com/taigrr/softrender/pkg/status"
)

// watcher re-renders one model whenever the model or its configuration
// changes on disk.
type watcher struct {
	input, output string
	opts          sceneOptions
	cmd           *cobra.Command
	out           io.Writer
	debounce      time.Duration

	last status.Slot
}

// once renders and saves, recording the outcome in w.last.
func (w *watcher) once() error {
	j, err := w.opts.load(w.cmd, w.input)
	if err != nil {
		return w.last.Set(err)
	}
	var stats render.Stats
	target, err := j.renderTo(render.Options{Stats: &stats})
	if err != nil {
		return w.last.Set(err)
	}
	if err := target.Save(w.output); err != nil {
		return w.last.Set(err)
	}
	w.last.Clear()
	fmt.Fprintf(w.out, "%s %s: %s\n", time.Now().Format(time.TimeOnly), w.output, stats)
	return nil
}

// watched returns the absolute files whose changes trigger a render.
func (w *watcher) watched() ([]string, error) {
	paths := []string{w.input}
	if w.opts.configPath != "" {
		paths = append(paths, w.opts.configPath)
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		expanded, err := homedir.Expand(p)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", p, status.InvalidValue)
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %v: %w", p, err, status.InvalidValue)
		}
		out = append(out, abs)
	}
	return out, nil
}

// run renders once, then again after every burst of writes until ctx is
// done. Render failures are reported and watching continues.
func (w *watcher) run(ctx context.Context) error {
	files, err := w.watched()
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// Watch directories: editors often replace files by rename, which drops
	// a watch on the file itself.
	want := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		want[f] = true
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			return fmt.Errorf("watch %s: %v: %w", d, err, status.FileOpenFailed)
		}
	}

	w.report(w.once())

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !want[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				slog.Debug("change detected", slog.String("file", ev.Name), slog.String("op", ev.Op.String()))
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", slog.Any("err", err))

		case <-timer.C:
			w.report(w.once())
		}
	}
}

func (w *watcher) report(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w.out, "%s render failed (%s): %v\n", time.Now().Format(time.TimeOnly), w.last.Code(), err)
}

func newWatchCmd() *cobra.Command {
	var (
		opts     sceneOptions
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <model> <output>",
		Short: "Re-render whenever the model or configuration changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := render.ImageFormatFromPath(args[1]); err != nil {
				return err
			}
			w := &watcher{
				input:    args[0],
				output:   args[1],
				opts:     opts,
				cmd:      cmd,
				out:      cmd.OutOrStdout(),
				debounce: debounce,
			}
			return w.run(cmd.Context())
		},
	}
	opts.bind(cmd.Flags())
	cmd.Flags().DurationVar(&debounce, "debounce", 100*time.Millisecond, "wait this long after the last change before rendering")
	return cmd
}
