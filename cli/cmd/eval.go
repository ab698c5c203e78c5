package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/sci/cli/cmd/repl"
)

// Eval evaluates expressions without interaction.
type Eval struct {
	Exprs []string `arg:"" help:"Expression(s) to evaluate; reads --source or stdin when omitted" name:"expr" optional:""`

	in  io.Reader `kong:"-"`
	out io.Writer `kong:"-"`
}

// Run executes the eval command. Each argument, or each line of input, is
// executed in one session and its reply printed. Errors in expressions are
// reported in the output and do not fail the command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := settingsFrom(ctx)

	out := e.out
	if out == nil {
		out = os.Stdout
	}

	var input io.Reader

	switch src := sourceFilesFrom(ctx); {
	case len(e.Exprs) > 0:
		input = strings.NewReader(strings.Join(e.Exprs, "\n"))

	case src != nil:
		defer src.Close()

		s.Logger.DebugContext(ctx, "evaluating sources",
			slog.Any("sources", src.Names()))

		input = src

	case e.in != nil:
		input = e.in

	default:
		input = os.Stdin
	}

	ra := readahead.NewReader(input)
	defer ra.Close()

	err = repl.Loop(ctx, newSession(ctx), ra, out,
		repl.WithPrompt(""),
		repl.WithBanner(false),
		repl.WithLogger(s.Logger),
	)
	if err != nil {
		return ErrReadSource.In("eval").Wrap(err)
	}

	return nil
}
