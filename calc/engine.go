package calc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/conf"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/parser"

	"github.com/ardnew/sci/log"
)

// DefaultCacheSize is the number of compiled programs an [Engine] keeps.
const DefaultCacheSize = 256

// Engine parses, rewrites and evaluates expressions against a [Registry].
// An Engine is safe for concurrent use.
type Engine struct {
	reg       *Registry
	logger    log.Logger
	precision int
	cacheSize int
	cache     *programCache
	env       map[string]any
}

// Option configures an [Engine].
type Option func(*Engine)

// WithRegistry sets the functions, constants and symbols the engine
// understands. A nil registry selects [DefaultRegistry].
func WithRegistry(reg *Registry) Option {
	return func(e *Engine) {
		e.reg = reg
	}
}

// WithLogger sets the logger used for trace and debug output.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPrecision sets the significant digits of returned numbers.
// Non-positive values select [DefaultPrecision].
func WithPrecision(digits int) Option {
	return func(e *Engine) {
		e.precision = digits
	}
}

// WithCacheSize bounds the compiled program cache. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		e.cacheSize = n
	}
}

func applyDefaults(e *Engine) {
	e.reg = DefaultRegistry()
	e.logger = log.Default()
	e.precision = DefaultPrecision
	e.cacheSize = DefaultCacheSize
}

// New returns an engine configured by opts.
func New(opts ...Option) *Engine {
	e := new(Engine)

	applyDefaults(e)

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if e.reg == nil {
		e.reg = DefaultRegistry()
	}

	if e.precision <= 0 {
		e.precision = DefaultPrecision
	}

	e.env = e.reg.env()
	e.cache = newProgramCache(e.cacheSize)

	return e
}

// Registry returns the registry of e.
func (e *Engine) Registry() *Registry { return e.reg }

// Precision returns the significant digits of numbers produced by e.
func (e *Engine) Precision() int { return e.precision }

// Parse parses text into an [Expression] and validates every name and call
// against the registry. All failures wrap [ErrParse].
func (e *Engine) Parse(ctx context.Context, text string) (*Expression, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrParse.Wrapf("empty expression")
	}

	tree, err := e.parse(text)
	if err != nil {
		return nil, err
	}

	callees := make(markCallees)
	ast.Walk(&tree.Node, callees)

	v := &validator{
		reg:     e.reg,
		symbols: make(map[string]bool),
		callees: callees,
	}
	ast.Walk(&tree.Node, v)

	if v.err != nil {
		e.logger.DebugContext(ctx, "reject expression",
			slog.String("source", text),
			slog.Any("error", v.err))

		return nil, v.err
	}

	x := &Expression{
		engine:  e,
		source:  text,
		symbols: sortedSymbols(v.symbols),
	}
	x.rendered = tree.Node.String()

	e.logger.TraceContext(ctx, "parse expression",
		slog.String("source", text),
		slog.String("tree", x.rendered),
		slog.Any("symbols", x.symbols))

	return x, nil
}

// parse runs the expr-lang parser with every registry function declared so
// that names shared with expr-lang builtins (abs, floor, round, ...) parse
// as ordinary calls.
func (e *Engine) parse(text string) (*parser.Tree, error) {
	cfg := conf.CreateNew()

	for _, opt := range e.options() {
		opt(cfg)
	}

	for name := range cfg.Disabled {
		delete(cfg.Builtins, name)
	}

	tree, err := parser.ParseWithConfig(text, cfg)
	if err != nil {
		return nil, parseError(err).With(slog.String("source", text))
	}

	return tree, nil
}

func parseError(err error) *Error {
	var fe *file.Error
	if errors.As(err, &fe) {
		return ErrParse.Wrap(fmt.Errorf("%s (column %d)", fe.Message, fe.Column+1))
	}

	return ErrParse.Wrap(err)
}

// options returns the expr-lang options shared by parsing and compiling:
// the constant environment, no builtins, and one function per registry
// entry plus the operator guards.
func (e *Engine) options() []expr.Option {
	fns := e.reg.Functions()
	opts := make([]expr.Option, 0, len(fns)+4)

	opts = append(opts, expr.Env(e.env), expr.DisableAllBuiltins())

	for _, f := range fns {
		opts = append(opts, expr.Function(f.Name, adapt(f)))
	}

	return append(opts,
		expr.Function(guardDiv, adapt(divide)),
		expr.Function(guardMod, adapt(modulo)),
	)
}

// adapt converts a registry function to the expr-lang calling convention.
func adapt(f Function) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if !f.Accepts(len(params)) {
			return nil, ErrEvaluate.Wrapf(fmt.Sprintf(
				"%s called with %d argument(s)", f.Name, len(params)))
		}

		args := make([]float64, len(params))

		for i, p := range params {
			v, ok := toFloat(p)
			if !ok {
				return nil, ErrEvaluate.Wrapf(fmt.Sprintf(
					"%s: argument %d is %T, not a number", f.Name, i+1, p))
			}

			args[i] = v
		}

		return f.Call(args...)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

var divide = Function{
	Name: guardDiv, MinArgs: 2, MaxArgs: 2,
	Call: func(args ...float64) (float64, error) {
		if args[1] == 0 {
			return 0, ErrDivisionByZero.Wrapf(fmt.Sprintf("%s / 0", fmtArg(args[0]))).
				With(slog.Float64("dividend", args[0]))
		}

		return args[0] / args[1], nil
	},
}

// modulo is floored: the result takes the sign of the divisor.
var modulo = Function{
	Name: guardMod, MinArgs: 2, MaxArgs: 2,
	Call: func(args ...float64) (float64, error) {
		a, b := args[0], args[1]
		if b == 0 {
			return 0, ErrDivisionByZero.Wrapf(fmt.Sprintf("%s %% 0", fmtArg(a))).
				With(slog.Float64("dividend", a))
		}

		r := math.Mod(a, b)
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}

		return r, nil
	},
}
