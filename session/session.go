package session

//go:generate go tool stringer --linecomment --type Mode,Op,Kind --output session_string.go

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/ardnew/sci/calc"
	"github.com/ardnew/sci/log"
)

// Session is the mutable state of one calculator run.
type Session struct {
	id      string
	engine  *calc.Engine
	logger  log.Logger
	mode    Mode
	history []calc.Number
}

// Option configures a [Session].
type Option func(*Session)

// WithEngine sets the expression engine. A nil engine selects [calc.New].
func WithEngine(e *calc.Engine) Option {
	return func(s *Session) {
		s.engine = e
	}
}

// WithMode sets the initial angle mode.
func WithMode(m Mode) Option {
	return func(s *Session) {
		s.mode = m
	}
}

// WithLogger sets the logger. Records carry the session ID.
func WithLogger(logger log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New returns a session with an empty history.
func New(opts ...Option) *Session {
	s := &Session{
		id:     uuid.Must(uuid.NewV7()).String(),
		logger: log.Default(),
		mode:   DefaultMode,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.engine == nil {
		s.engine = calc.New(calc.WithLogger(s.logger))
	}

	s.logger = s.logger.With(slog.String("session", s.id))

	return s
}

// ID returns the unique identifier of s.
func (s *Session) ID() string { return s.id }

// Engine returns the expression engine of s.
func (s *Session) Engine() *calc.Engine { return s.engine }

// Mode returns the current angle mode.
func (s *Session) Mode() Mode { return s.mode }

// SetMode changes the angle mode.
func (s *Session) SetMode(m Mode) { s.mode = m }

// History returns a copy of the results since the last clear.
func (s *Session) History() []calc.Number { return slices.Clone(s.history) }

// Last returns the most recent result.
func (s *Session) Last() (calc.Number, bool) {
	if len(s.history) == 0 {
		return calc.Number{}, false
	}

	return s.history[len(s.history)-1], true
}

// Clear empties the history.
func (s *Session) Clear() { s.history = s.history[:0] }

// Execute classifies line and runs it. Errors are reported as reply lines;
// none escape.
func (s *Session) Execute(ctx context.Context, line string) Reply {
	cmd := Classify(line)

	s.logger.DebugContext(ctx, "execute",
		slog.String("op", cmd.Op.String()),
		slog.String("arg", cmd.Arg))

	var r Reply

	switch cmd.Op {
	case OpNone:

	case OpExit:
		r.Quit = true

	case OpSetMode:
		m, err := ParseMode(cmd.Arg)
		if err != nil {
			s.fail(ctx, &r, err)

			break
		}

		s.SetMode(m)
		r.add(KindSuccess, "Mode switched to "+m.String())

	case OpHelp:
		r.add(KindInfo, Help(s.engine.Registry()))

	case OpAns:
		if n, ok := s.Last(); ok {
			r.add(KindResult, "Last answer: "+n.String())
		} else {
			r.add(KindInfo, "No previous calculations found.")
		}

	case OpHistory:
		if len(s.history) == 0 {
			r.add(KindInfo, "History is empty.")
		}

		for i, n := range s.history {
			r.add(KindPlain, "["+strconv.Itoa(i+1)+"] = "+n.String())
		}

	case OpClear:
		s.Clear()
		r.add(KindSuccess, "Memory cleared.")

	case OpEvaluate:
		form, n, err := s.Evaluate(ctx, cmd.Arg)
		if err != nil {
			s.fail(ctx, &r, err)

			break
		}

		r.add(KindResult, "= "+form)
		r.add(KindResult, "= "+n.String())
		r.add(KindInfo, "Last answer: "+n.String())
	}

	return r
}

// Evaluate runs the expression pipeline on text: ans substitution, parse,
// angle-mode rewrite and numeric evaluation. On success the result is
// appended to the history and the rewritten form is returned with it. On
// failure the history is unchanged.
func (s *Session) Evaluate(ctx context.Context, text string) (string, calc.Number, error) {
	text, err := s.Substitute(text)
	if err != nil {
		return "", calc.Number{}, err
	}

	x, err := s.engine.Parse(ctx, text)
	if err != nil {
		return "", calc.Number{}, err
	}

	if s.mode == ModeDeg {
		x = x.Rewrite(calc.DegreesRewriter(s.engine.Registry()))
	}

	n, err := x.Evaluate(ctx)
	if err != nil {
		return "", calc.Number{}, err
	}

	s.history = append(s.history, n)

	s.logger.DebugContext(ctx, "result",
		slog.String("expr", x.String()),
		slog.String("mode", s.mode.String()),
		slog.Any("value", n),
		slog.Int("history", len(s.history)))

	return x.String(), n, nil
}

var ansPattern = regexp.MustCompile(`(?i)\bans\b`)

// Substitute replaces every whole-word occurrence of ans in text with the
// parenthesized last result. It fails with [calc.ErrSubstitution] when ans
// is used and the history is empty.
func (s *Session) Substitute(text string) (string, error) {
	if !ansPattern.MatchString(text) {
		return text, nil
	}

	n, ok := s.Last()
	if !ok {
		return "", calc.ErrSubstitution.Wrapf("history is empty")
	}

	return ansPattern.ReplaceAllLiteralString(text, "("+n.String()+")"), nil
}

// fail logs err and renders it as a reply line.
func (s *Session) fail(ctx context.Context, r *Reply, err error) {
	class := calc.Classify(err)

	s.logger.DebugContext(ctx, "command failed",
		slog.String("class", class.String()),
		slog.Any("error", err))

	kind := KindWarning
	if class == calc.ClassUsage {
		kind = KindFailure
	}

	r.add(kind, Message(err))
}

// Message renders err as the text shown to the user.
func Message(err error) string {
	detail := err.Error()

	var ce *calc.Error
	if errors.As(err, &ce) && ce.Detail() != "" {
		detail = ce.Detail()
	}

	switch calc.Classify(err) {
	case calc.ClassNone:
		return ""
	case calc.ClassUsage:
		return "Use 'mode deg' or 'mode rad'"
	case calc.ClassSubstitution:
		return "Error: No previous answer available."
	case calc.ClassParse:
		return "Parse error: " + detail
	case calc.ClassDivisionByZero:
		return "Division by zero is undefined."
	case calc.ClassDomain:
		return "Math domain error: " + detail
	default:
		return "Error: " + detail
	}
}
