package calc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"
)

// Expression is an immutable, validated expression: its source text and
// the ordered rewrites applied to it.
type Expression struct {
	engine    *Engine
	source    string
	rewriters []Rewriter
	symbols   []string
	rendered  string
}

// Source returns the text x was parsed from.
func (x *Expression) Source() string { return x.source }

// String returns the expression tree after all rewrites.
func (x *Expression) String() string { return x.rendered }

// Symbols returns the free symbols used by x in sorted order.
func (x *Expression) Symbols() []string { return slices.Clone(x.symbols) }

// Rewrite returns a new Expression with r applied after any existing
// rewrites. The receiver is unchanged.
func (x *Expression) Rewrite(r Rewriter) *Expression {
	y := &Expression{
		engine:    x.engine,
		source:    x.source,
		rewriters: append(slices.Clip(x.rewriters), r),
		symbols:   x.symbols,
	}

	tree, err := x.engine.parse(x.source)
	if err != nil {
		// The source parsed once already; keep the previous rendering.
		y.rendered = x.rendered

		return y
	}

	for _, v := range y.visitors() {
		ast.Walk(&tree.Node, v)
	}

	y.rendered = tree.Node.String()

	return y
}

func (x *Expression) visitors() []ast.Visitor {
	vs := make([]ast.Visitor, len(x.rewriters))
	for i, r := range x.rewriters {
		vs[i] = &rewriteVisitor{Rewriter: r, logger: x.engine.logger}
	}

	return vs
}

// Evaluate computes the numeric value of x.
//
// Errors wrap [ErrDivisionByZero] or [ErrDomain] when a guard or function
// rejects its operands, and [ErrEvaluate] for everything else, including
// free symbols and non-finite results.
func (x *Expression) Evaluate(ctx context.Context) (Number, error) {
	e := x.engine

	if err := ctx.Err(); err != nil {
		return Number{}, ErrEvaluate.Wrap(err)
	}

	if len(x.symbols) > 0 {
		return Number{}, ErrEvaluate.Wrapf(fmt.Sprintf(
			"cannot reduce free symbol(s) %s to a number",
			strings.Join(x.symbols, ", "))).
			With(slog.String("source", x.source))
	}

	program, err := e.compile(ctx, x.source, x.rewriters)
	if err != nil {
		return Number{}, err
	}

	out, err := vm.Run(program, e.env)
	if err != nil {
		return Number{}, runError(err).With(slog.String("source", x.source))
	}

	v, ok := toFloat(out)
	if !ok {
		return Number{}, ErrEvaluate.Wrapf(fmt.Sprintf("result is %T, not a number", out))
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}, ErrEvaluate.Wrapf("undefined result").
			With(slog.String("source", x.source), slog.Float64("value", v))
	}

	n := MakeNumber(v, e.precision)

	e.logger.TraceContext(ctx, "evaluate expression",
		slog.String("expr", x.rendered),
		slog.Any("value", n))

	return n, nil
}

// runError extracts the error raised by a registry function from the
// expr-lang runtime error that carries it.
func runError(err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}

	var fe *file.Error
	if errors.As(err, &fe) {
		return ErrEvaluate.Wrapf(fe.Message)
	}

	return ErrEvaluate.Wrap(err)
}
