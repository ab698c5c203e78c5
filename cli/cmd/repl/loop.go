package repl

import (
	"bufio"
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/sci/log"
	"github.com/ardnew/sci/session"
)

// Prompt is written before each line is read.
const Prompt = ">>> "

// maxLineSize bounds the length of one input line.
const maxLineSize = 1 << 20

type loopConfig struct {
	prompt string
	banner bool
	logger log.Logger
}

// LoopOption configures [Loop].
type LoopOption func(loopConfig) loopConfig

// WithPrompt replaces the default [Prompt]. An empty prompt disables it.
func WithPrompt(prompt string) LoopOption {
	return func(c loopConfig) loopConfig { c.prompt = prompt; return c }
}

// WithBanner controls whether the welcome banner is written first.
func WithBanner(banner bool) LoopOption {
	return func(c loopConfig) loopConfig { c.banner = banner; return c }
}

// WithLogger sets the logger used for loop tracing.
func WithLogger(logger log.Logger) LoopOption {
	return func(c loopConfig) loopConfig { c.logger = logger; return c }
}

// Loop reads lines from in, executes each in sess and writes the reply text
// to out. It returns nil when the session asks to quit or in reaches EOF, and
// the context error if ctx is canceled between lines.
func Loop(
	ctx context.Context,
	sess *session.Session,
	in io.Reader,
	out io.Writer,
	opts ...LoopOption,
) error {
	if sess == nil {
		return ErrNoSession
	}

	cfg := loopConfig{prompt: Prompt, banner: true}
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	w := bufio.NewWriter(out)
	defer w.Flush()

	if cfg.banner {
		w.WriteString(session.Banner(sess.Engine().Registry()) + "\n\n")
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	for lines := 0; ; lines++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		w.WriteString(cfg.prompt)

		if err := w.Flush(); err != nil {
			return err
		}

		if !scanner.Scan() {
			if cfg.prompt != "" {
				w.WriteString("\n")
			}

			cfg.logger.TraceContext(ctx, "loop end of input",
				slog.Int("lines", lines))

			return scanner.Err()
		}

		reply := sess.Execute(ctx, scanner.Text())

		for _, line := range reply.Lines {
			w.WriteString(line.Text + "\n")
		}

		if reply.Quit {
			cfg.logger.TraceContext(ctx, "loop exit",
				slog.Int("lines", lines+1))

			return nil
		}
	}
}
