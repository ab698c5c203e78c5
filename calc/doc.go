// Package calc evaluates scientific calculator expressions.
//
// Parsing and bytecode evaluation are delegated to
// [github.com/expr-lang/expr]. This package owns what surrounds it: the
// [Registry] of functions, constants and free symbols an expression may
// use, validation of parsed trees against that registry, structural
// [Rewriter]s such as the degree-mode rewrite, guards that turn division
// and modulo by zero into errors, and classification of every failure.
//
//	e := calc.New()
//	x, err := e.Parse(ctx, "sin(90) + comb(5, 2)")
//	if err != nil {
//		return err
//	}
//	x = x.Rewrite(calc.DegreesRewriter(e.Registry()))
//	fmt.Println(x) // sin(90 * (pi / 180)) + comb(5, 2)
//	n, err := x.Evaluate(ctx)
//	fmt.Println(n) // 11
//
// # Errors
//
// Every error wraps one sentinel: [ErrParse], [ErrDivisionByZero],
// [ErrDomain] or [ErrEvaluate] from this package, plus [ErrUsage] and
// [ErrSubstitution] for the command layer. [Classify] maps an error to its
// [Class]. Errors carry slog attributes and log as groups.
//
// # Numbers
//
// All arithmetic is float64. Integer literals are converted before
// compilation so results never depend on integer overflow, and a [Number]
// prints integral values below 1e15 without a fractional part.
package calc
