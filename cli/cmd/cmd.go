package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

// contextKey stores a [kong.Context] value in a [context.Context].
type contextKey struct{}

// WithContext returns a new context carrying the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok {
		return nil
	}

	return ktx
}

// stdout returns the output writer configured on the kong parser, falling
// back to the process stdout when the command runs outside kong (tests).
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdinSource is the path spelling that selects standard input.
const stdinSource = "-"

// readSource returns the template text from the named sources concatenated
// in order. Duplicate paths are read once; every "-" collapses into a
// single read of stdin, placed after the regular files. An empty source
// list reads stdin alone.
func readSource(sources []string) (string, error) {
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	var (
		parts    [][]byte
		seen     = make(map[string]struct{})
		useStdin bool
	)

	for _, src := range sources {
		if src == stdinSource {
			useStdin = true

			continue
		}

		path, err := filepath.Abs(src)
		if err == nil {
			if resolved, rerr := filepath.EvalSymlinks(path); rerr == nil {
				path = resolved
			}
		} else {
			path = src
		}

		if _, dup := seen[path]; dup {
			continue
		}

		seen[path] = struct{}{}

		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}

		parts = append(parts, data)
	}

	if useStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}

		parts = append(parts, data)
	}

	var out []byte
	for i, part := range parts {
		if i > 0 && len(out) > 0 && out[len(out)-1] != '\n' {
			out = append(out, '\n')
		}

		out = append(out, part...)
	}

	return string(out), nil
}

// openOutput returns the destination writer for rendered text: stdout when
// path is empty or "-", otherwise the named file, created or truncated.
// The returned closer is a no-op for stdout.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == stdinSource {
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}
