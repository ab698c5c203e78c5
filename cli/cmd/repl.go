package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/sci/cli/cmd/repl"
)

// Repl runs the interactive calculator.
type Repl struct {
	in  io.Reader `kong:"-"`
	out io.Writer `kong:"-"`
}

// Run executes the repl command. Lines from --source, if any, are evaluated
// first in the same session. The terminal UI is used when both stdin and
// stdout are terminals and --plain is unset; otherwise a plain line loop
// reads stdin.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := settingsFrom(ctx)
	sess := newSession(ctx)

	in, out := r.streams()

	if src := sourceFilesFrom(ctx); src != nil {
		defer src.Close()

		s.Logger.DebugContext(ctx, "preloading sources",
			slog.Any("sources", src.Names()))

		err = repl.Loop(ctx, sess, src, out,
			repl.WithPrompt(""),
			repl.WithBanner(false),
			repl.WithLogger(s.Logger),
		)
		if err != nil {
			return ErrReadSource.In("repl").Wrap(err)
		}
	}

	if !s.Plain && isTerminal(in) && isTerminal(out) {
		return repl.Run(ctx, sess, s.Logger)
	}

	return repl.Loop(ctx, sess, in, out, repl.WithLogger(s.Logger))
}

func (r *Repl) streams() (io.Reader, io.Writer) {
	in, out := r.in, r.out
	if in == nil {
		in = os.Stdin
	}

	if out == nil {
		out = os.Stdout
	}

	return in, out
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
