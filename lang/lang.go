package lang

import (
	"context"
	"log/slog"

	"github.com/LyonSyonII/akin/log"
)

// DefaultMaxDepth is the default maximum group nesting depth.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 100

// options holds parse and expansion configuration.
type options struct {
	logger   log.Logger
	maxDepth int
}

// Option configures parsing or expansion behavior.
type Option func(*options)

// WithMaxDepth sets the maximum nesting depth for child blocks.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Parse tokenizes template source and builds the variable table from its
// declaration region and the block tree from its body. Both are read-only
// afterwards; nothing is retained between invocations.
func Parse(
	ctx context.Context,
	src string,
	opts ...Option,
) (*Table, *Block, error) {
	o := makeOptions(opts...)

	tokens, err := Scan(src)
	if err != nil {
		return nil, nil, err
	}

	o.logger.TraceContext(ctx, "scan complete",
		slog.Int("token_count", len(tokens)))

	table, rest, err := parseDecls(tokens, o.maxDepth)
	if err != nil {
		return nil, nil, err
	}

	o.logger.TraceContext(ctx, "declarations parsed",
		slog.Int("variable_count", table.Len()))

	body, err := parseBody(rest, table, o.maxDepth)
	if err != nil {
		return nil, nil, err
	}

	o.logger.TraceContext(ctx, "body parsed",
		slog.Int("node_count", len(body.Nodes)))

	return table, body, nil
}

// ExpandAndRender expands the body against the variable table and
// serializes the result. The inputs are not modified and may be reused.
func ExpandAndRender(
	ctx context.Context,
	table *Table,
	body *Block,
	opts ...Option,
) (string, error) {
	o := makeOptions(opts...)

	out, err := expand(table, body)
	if err != nil {
		return "", err
	}

	o.logger.TraceContext(ctx, "expansion complete",
		slog.Int("token_count", len(out)))

	return renderTokens(out), nil
}

// Render runs the full pipeline: tokenize, parse declarations and body,
// expand, and serialize. It is a pure function of its input; any error
// aborts the invocation before output is produced.
func Render(ctx context.Context, src string, opts ...Option) (string, error) {
	table, body, err := Parse(ctx, src, opts...)
	if err != nil {
		return "", err
	}

	return ExpandAndRender(ctx, table, body, opts...)
}
