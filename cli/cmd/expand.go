package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/LyonSyonII/akin/lang"
	"github.com/LyonSyonII/akin/log"
)

// Expand renders a template: declarations are stripped, the body is
// duplicated once per variable value, and references are substituted.
type Expand struct {
	Source []string `arg:""                help:"Template file(s) or '-' for stdin."        name:"source" optional:""`
	Output string   `                      help:"Write rendered output to a file."          short:"o"`
	Watch  bool     `                      help:"Re-render whenever a source file changes." short:"w"`
}

// Run executes the expand command.
func (e *Expand) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if e.Watch {
		return e.watch(ctx)
	}

	return e.renderOnce(ctx)
}

// renderOnce reads the sources, expands them, and writes the result.
func (e *Expand) renderOnce(ctx context.Context) error {
	src, err := readSource(e.Source)
	if err != nil {
		return err
	}

	out, err := lang.Render(ctx, src, lang.WithLogger(log.Default()))
	if err != nil {
		reportRenderError(err, src)

		return err
	}

	w, closeOutput, err := e.output(ctx)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, out); err != nil {
		_ = closeOutput()

		return err
	}

	return closeOutput()
}

// watch re-renders on every change to the source files until the context
// is cancelled. Stdin cannot be watched.
func (e *Expand) watch(ctx context.Context) error {
	if len(e.Source) == 0 {
		return ErrWatchStdin
	}

	for _, src := range e.Source {
		if src == stdinSource {
			return ErrWatchStdin
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the containing directories: editors that write via
	// rename-and-replace drop the watch on the file itself.
	watched := make(map[string]struct{})

	for _, src := range e.Source {
		dir := filepath.Dir(src)
		if _, ok := watched[dir]; ok {
			continue
		}

		watched[dir] = struct{}{}

		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	targets := make(map[string]struct{}, len(e.Source))
	for _, src := range e.Source {
		targets[filepath.Clean(src)] = struct{}{}
	}

	// Initial render; errors are reported but do not stop the watch.
	if err := e.renderOnce(ctx); err != nil {
		log.ErrorContext(ctx, "render failed", slog.Any("error", err))
	}

	log.InfoContext(ctx, "watching for changes",
		slog.Any("sources", e.Source))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if _, relevant := targets[filepath.Clean(event.Name)]; !relevant {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			log.DebugContext(ctx, "source changed",
				slog.String("file", event.Name),
				slog.String("op", event.Op.String()))

			if err := e.renderOnce(ctx); err != nil {
				log.ErrorContext(ctx, "render failed", slog.Any("error", err))
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.WarnContext(ctx, "watch error", slog.Any("error", werr))
		}
	}
}

func (e *Expand) output(ctx context.Context) (io.Writer, func() error, error) {
	if e.Output == "" {
		return stdout(ctx), func() error { return nil }, nil
	}

	return openOutput(e.Output)
}

// reportRenderError prints a caret-marked source snippet to stderr when the
// error carries a position.
func reportRenderError(err error, src string) {
	var expErr *lang.Error
	if !errors.As(err, &expErr) {
		return
	}

	if snippet := expErr.Snippet(src); snippet != "" {
		fmt.Fprint(os.Stderr, snippet)
	}
}
