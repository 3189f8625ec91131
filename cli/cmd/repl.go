package cmd

import (
	"context"

	"github.com/LyonSyonII/akin/cli/cmd/repl"
	"github.com/LyonSyonII/akin/log"
)

// Repl opens an interactive playground: edit a template in one pane and
// watch its expansion update live in the other.
type Repl struct {
	Source []string `arg:"" help:"Template file(s) to preload." name:"source" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var initial string

	if len(r.Source) > 0 {
		initial, err = readSource(r.Source)
		if err != nil {
			return err
		}
	}

	return repl.Run(ctx, initial, log.Default())
}
