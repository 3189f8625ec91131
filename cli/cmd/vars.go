package cmd

import (
	"context"
	"log/slog"

	"github.com/LyonSyonII/akin/lang"
	"github.com/LyonSyonII/akin/log"
)

// Vars prints the variable table of a template without expanding its body.
type Vars struct {
	Source []string `arg:""       help:"Template file(s) or '-' for stdin."   name:"source" optional:""`
	Format string   `default:"text" enum:"text,json,yaml" help:"Output format." short:"f"`
	Indent int      `default:"2"  help:"Indent width for json and yaml output." short:"i"`
}

// Run executes the vars command.
func (v *Vars) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := readSource(v.Source)
	if err != nil {
		return err
	}

	table, _, err := lang.Parse(ctx, src, lang.WithLogger(log.Default()))
	if err != nil {
		reportRenderError(err, src)

		return err
	}

	log.DebugContext(ctx, "variable table parsed",
		slog.Int("count", table.Len()),
		slog.String("format", v.Format))

	w := stdout(ctx)

	switch v.Format {
	case "json":
		return table.FormatJSON(ctx, w, v.Indent)

	case "yaml":
		return table.FormatYAML(ctx, w, v.Indent)

	default:
		return table.Format(ctx, w)
	}
}
