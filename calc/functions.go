package calc

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
)

// noiseFloor is the magnitude below which the result of sin or cos at a
// non-trivial argument is taken to be an exact zero. Without it, sin(pi)
// evaluates to 1.2e-16 and tan(pi/2) to 1.6e16 instead of failing.
const noiseFloor = 1e-15

// maxExactFactorial is the largest n whose factorial is exactly
// representable as a float64.
const maxExactFactorial = 22

func fmtArg(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func domainError(name, want string, args ...float64) error {
	return ErrDomain.Wrap(fmt.Errorf("%s: %s", call(name, args...), want)).
		With(slog.String("function", name), slog.Any("args", args))
}

func zeroDivisorError(name string, args ...float64) error {
	return ErrDivisionByZero.Wrap(fmt.Errorf("%s has a zero denominator", call(name, args...))).
		With(slog.String("function", name), slog.Any("args", args))
}

func call(name string, args ...float64) string {
	s := name + "("

	for i, a := range args {
		if i > 0 {
			s += ", "
		}

		s += fmtArg(a)
	}

	return s + ")"
}

func isInteger(x float64) bool {
	return x == math.Trunc(x) && !math.IsInf(x, 0)
}

// unary adapts a single-argument function to the registry calling
// convention. Arity is checked before any call is made.
func unary(fn func(float64) (float64, error)) func(...float64) (float64, error) {
	return func(args ...float64) (float64, error) { return fn(args[0]) }
}

func pure(fn func(float64) float64) func(...float64) (float64, error) {
	return func(args ...float64) (float64, error) { return fn(args[0]), nil }
}

func binary(fn func(a, b float64) (float64, error)) func(...float64) (float64, error) {
	return func(args ...float64) (float64, error) { return fn(args[0], args[1]) }
}

func sinClean(x float64) float64 {
	s := math.Sin(x)
	if math.Abs(s) < noiseFloor && math.Abs(x) >= 1 {
		return 0
	}

	return s
}

func cosClean(x float64) float64 {
	c := math.Cos(x)
	if math.Abs(c) < noiseFloor && math.Abs(x) >= 1 {
		return 0
	}

	return c
}

func builtinFunctions() []Function {
	var fns []Function

	fns = append(fns, trigFunctions()...)
	fns = append(fns, hyperbolicFunctions()...)
	fns = append(fns, rootFunctions()...)
	fns = append(fns, logFunctions()...)
	fns = append(fns, combinatoricFunctions()...)
	fns = append(fns, miscFunctions()...)

	return fns
}

func angular(family Family, name, help string, fn func(float64) (float64, error)) Function {
	return Function{
		Name:    name,
		Family:  family,
		Params:  []string{"x"},
		MinArgs: 1,
		MaxArgs: 1,
		Help:    help,
		Angular: true,
		Call:    unary(fn),
	}
}

func trigFunctions() []Function {
	t := FamilyTrig

	return []Function{
		angular(t, "sin", "sine", func(x float64) (float64, error) {
			return sinClean(x), nil
		}),
		angular(t, "cos", "cosine", func(x float64) (float64, error) {
			return cosClean(x), nil
		}),
		angular(t, "tan", "tangent", func(x float64) (float64, error) {
			c := cosClean(x)
			if c == 0 {
				return 0, zeroDivisorError("tan", x)
			}

			return sinClean(x) / c, nil
		}),
		angular(t, "sec", "secant, 1/cos(x)", func(x float64) (float64, error) {
			c := cosClean(x)
			if c == 0 {
				return 0, zeroDivisorError("sec", x)
			}

			return 1 / c, nil
		}),
		angular(t, "csc", "cosecant, 1/sin(x)", func(x float64) (float64, error) {
			s := sinClean(x)
			if s == 0 {
				return 0, zeroDivisorError("csc", x)
			}

			return 1 / s, nil
		}),
		angular(t, "cot", "cotangent, cos(x)/sin(x)", func(x float64) (float64, error) {
			s := sinClean(x)
			if s == 0 {
				return 0, zeroDivisorError("cot", x)
			}

			return cosClean(x) / s, nil
		}),
		angular(t, "asin", "inverse sine", func(x float64) (float64, error) {
			if math.Abs(x) > 1 {
				return 0, domainError("asin", "argument must be in [-1, 1]", x)
			}

			return math.Asin(x), nil
		}),
		angular(t, "acos", "inverse cosine", func(x float64) (float64, error) {
			if math.Abs(x) > 1 {
				return 0, domainError("acos", "argument must be in [-1, 1]", x)
			}

			return math.Acos(x), nil
		}),
		angular(t, "atan", "inverse tangent", func(x float64) (float64, error) {
			return math.Atan(x), nil
		}),
		angular(t, "asec", "inverse secant", func(x float64) (float64, error) {
			if math.Abs(x) < 1 {
				return 0, domainError("asec", "argument must satisfy |x| >= 1", x)
			}

			return math.Acos(1 / x), nil
		}),
		angular(t, "acsc", "inverse cosecant", func(x float64) (float64, error) {
			if math.Abs(x) < 1 {
				return 0, domainError("acsc", "argument must satisfy |x| >= 1", x)
			}

			return math.Asin(1 / x), nil
		}),
		angular(t, "acot", "inverse cotangent", func(x float64) (float64, error) {
			if x == 0 {
				return math.Pi / 2, nil
			}

			return math.Atan(1 / x), nil
		}),
	}
}

func hyperbolicFunctions() []Function {
	h := FamilyHyperbolic

	return []Function{
		angular(h, "sinh", "hyperbolic sine", func(x float64) (float64, error) {
			return math.Sinh(x), nil
		}),
		angular(h, "cosh", "hyperbolic cosine", func(x float64) (float64, error) {
			return math.Cosh(x), nil
		}),
		angular(h, "tanh", "hyperbolic tangent", func(x float64) (float64, error) {
			return math.Tanh(x), nil
		}),
		angular(h, "sech", "hyperbolic secant, 1/cosh(x)", func(x float64) (float64, error) {
			return 1 / math.Cosh(x), nil
		}),
		angular(h, "csch", "hyperbolic cosecant, 1/sinh(x)", func(x float64) (float64, error) {
			if x == 0 {
				return 0, zeroDivisorError("csch", x)
			}

			return 1 / math.Sinh(x), nil
		}),
		angular(h, "coth", "hyperbolic cotangent, 1/tanh(x)", func(x float64) (float64, error) {
			if x == 0 {
				return 0, zeroDivisorError("coth", x)
			}

			return 1 / math.Tanh(x), nil
		}),
		angular(h, "asinh", "inverse hyperbolic sine", func(x float64) (float64, error) {
			return math.Asinh(x), nil
		}),
		angular(h, "acosh", "inverse hyperbolic cosine", func(x float64) (float64, error) {
			if x < 1 {
				return 0, domainError("acosh", "argument must be >= 1", x)
			}

			return math.Acosh(x), nil
		}),
		angular(h, "atanh", "inverse hyperbolic tangent", func(x float64) (float64, error) {
			if math.Abs(x) >= 1 {
				return 0, domainError("atanh", "argument must be in (-1, 1)", x)
			}

			return math.Atanh(x), nil
		}),
		angular(h, "asech", "inverse hyperbolic secant, acosh(1/x)", func(x float64) (float64, error) {
			if x <= 0 || x > 1 {
				return 0, domainError("asech", "argument must be in (0, 1]", x)
			}

			return math.Acosh(1 / x), nil
		}),
		angular(h, "acsch", "inverse hyperbolic cosecant, asinh(1/x)", func(x float64) (float64, error) {
			if x == 0 {
				return 0, zeroDivisorError("acsch", x)
			}

			return math.Asinh(1 / x), nil
		}),
		angular(h, "acoth", "inverse hyperbolic cotangent, atanh(1/x)", func(x float64) (float64, error) {
			if math.Abs(x) <= 1 {
				return 0, domainError("acoth", "argument must satisfy |x| > 1", x)
			}

			return math.Atanh(1 / x), nil
		}),
	}
}

// nthRoot returns the real n-th root of x. Odd integer roots of negative
// numbers are negative; even or fractional roots of negatives are outside
// the real domain.
func nthRoot(name string, x, n float64) (float64, error) {
	switch {
	case n == 0:
		return 0, domainError(name, "root index must be non-zero", x, n)
	case x >= 0:
		return math.Pow(x, 1/n), nil
	case !isInteger(n) || math.Mod(n, 2) == 0:
		return 0, domainError(name, "even or fractional root of a negative number", x, n)
	default:
		return -math.Pow(-x, 1/n), nil
	}
}

func rootFunctions() []Function {
	fixed := func(name, help string, n float64) Function {
		return Function{
			Name: name, Family: FamilyRoot, Help: help,
			Params: []string{"x"}, MinArgs: 1, MaxArgs: 1,
			Call: unary(func(x float64) (float64, error) { return nthRoot(name, x, n) }),
		}
	}

	return []Function{
		{
			Name: "sqrt", Family: FamilyRoot, Help: "square root",
			Params: []string{"x"}, MinArgs: 1, MaxArgs: 1,
			Call: unary(func(x float64) (float64, error) {
				if x < 0 {
					return 0, domainError("sqrt", "argument must be >= 0", x)
				}

				return math.Sqrt(x), nil
			}),
		},
		{
			Name: "cbrt", Family: FamilyRoot, Help: "cube root",
			Params: []string{"x"}, MinArgs: 1, MaxArgs: 1,
			Call: pure(math.Cbrt),
		},
		fixed("fourth_root", "fourth root", 4),
		fixed("fifth_root", "fifth root", 5),
		{
			Name: "root", Family: FamilyRoot, Help: "n-th root of x",
			Params: []string{"x", "n"}, MinArgs: 2, MaxArgs: 2,
			Call: binary(func(x, n float64) (float64, error) { return nthRoot("root", x, n) }),
		},
	}
}

func logarithm(name string, x, b float64) (float64, error) {
	switch {
	case x <= 0:
		return 0, domainError(name, "argument must be > 0", x, b)
	case b <= 0 || b == 1:
		return 0, domainError(name, "base must be > 0 and != 1", x, b)
	case b == 2:
		return math.Log2(x), nil
	case b == 10:
		return math.Log10(x), nil
	case b == math.E:
		return math.Log(x), nil
	default:
		return math.Log(x) / math.Log(b), nil
	}
}

func logFunctions() []Function {
	fixed := func(name, help string, b float64) Function {
		return Function{
			Name: name, Family: FamilyLog, Help: help,
			Params: []string{"x"}, MinArgs: 1, MaxArgs: 1,
			Call: unary(func(x float64) (float64, error) {
				if x <= 0 {
					return 0, domainError(name, "argument must be > 0", x)
				}

				return logarithm(name, x, b)
			}),
		}
	}

	return []Function{
		{
			Name: "log", Family: FamilyLog, Help: "natural logarithm, or logarithm to base b",
			Params: []string{"x", "b"}, MinArgs: 1, MaxArgs: 2,
			Call: func(args ...float64) (float64, error) {
				if len(args) == 1 {
					if args[0] <= 0 {
						return 0, domainError("log", "argument must be > 0", args[0])
					}

					return math.Log(args[0]), nil
				}

				return logarithm("log", args[0], args[1])
			},
		},
		fixed("ln", "natural logarithm", math.E),
		fixed("log2", "base-2 logarithm", 2),
		fixed("log10", "base-10 logarithm", 10),
		{
			Name: "logb", Family: FamilyLog, Help: "logarithm of x to base b",
			Params: []string{"x", "b"}, MinArgs: 2, MaxArgs: 2,
			Call: binary(func(x, b float64) (float64, error) { return logarithm("logb", x, b) }),
		},
		{
			Name: "exp", Family: FamilyLog, Help: "e raised to x",
			Params: []string{"x"}, MinArgs: 1, MaxArgs: 1,
			Call: pure(math.Exp),
		},
	}
}

func factorial(n float64) (float64, error) {
	if n < 0 || !isInteger(n) {
		return 0, domainError("factorial", "argument must be a non-negative integer", n)
	}

	if n > maxExactFactorial {
		return math.Gamma(n + 1), nil
	}

	f := 1.0
	for i := 2.0; i <= n; i++ {
		f *= i
	}

	return f, nil
}

func checkChoose(name string, n, r float64) error {
	switch {
	case !isInteger(n) || !isInteger(r):
		return domainError(name, "arguments must be integers", n, r)
	case n < 0 || r < 0:
		return domainError(name, "arguments must be non-negative", n, r)
	case r > n:
		return domainError(name, "r must not exceed n", n, r)
	default:
		return nil
	}
}

func combinatoricFunctions() []Function {
	return []Function{
		{
			Name: "factorial", Family: FamilyCombinatorics, Help: "n!",
			Params: []string{"n"}, MinArgs: 1, MaxArgs: 1,
			Call: unary(factorial),
		},
		{
			Name: "perm", Family: FamilyCombinatorics, Help: "permutations, n!/(n-r)!",
			Params: []string{"n", "r"}, MinArgs: 2, MaxArgs: 2,
			Call: binary(func(n, r float64) (float64, error) {
				if err := checkChoose("perm", n, r); err != nil {
					return 0, err
				}

				p := 1.0
				for i := n - r + 1; i <= n; i++ {
					p *= i
				}

				return p, nil
			}),
		},
		{
			Name: "comb", Family: FamilyCombinatorics, Help: "combinations, n!/(r!(n-r)!)",
			Params: []string{"n", "r"}, MinArgs: 2, MaxArgs: 2,
			Call: binary(func(n, r float64) (float64, error) {
				if err := checkChoose("comb", n, r); err != nil {
					return 0, err
				}

				r = min(r, n-r)

				c := 1.0
				for i := 1.0; i <= r; i++ {
					c = c * (n - r + i) / i
				}

				return math.Round(c), nil
			}),
		},
		{
			Name: "gamma", Family: FamilyCombinatorics, Help: "gamma function",
			Params: []string{"x"}, MinArgs: 1, MaxArgs: 1,
			Call: unary(func(x float64) (float64, error) {
				if x <= 0 && isInteger(x) {
					return 0, domainError("gamma", "undefined at non-positive integers", x)
				}

				return math.Gamma(x), nil
			}),
		},
	}
}

func miscFunctions() []Function {
	return []Function{
		{
			Name: "abs", Family: FamilyMisc, Help: "absolute value",
			Params: []string{"x"}, MinArgs: 1, MaxArgs: 1,
			Call: pure(math.Abs),
		},
		{
			Name: "floor", Family: FamilyMisc, Help: "largest integer <= x",
			Params: []string{"x"}, MinArgs: 1, MaxArgs: 1,
			Call: pure(math.Floor),
		},
		{
			Name: "ceil", Family: FamilyMisc, Help: "smallest integer >= x",
			Params: []string{"x"}, MinArgs: 1, MaxArgs: 1,
			Call: pure(math.Ceil),
		},
		{
			Name: "round", Family: FamilyMisc, Help: "round half to even, optionally to d decimal places",
			Params: []string{"x", "d"}, MinArgs: 1, MaxArgs: 2,
			Call: func(args ...float64) (float64, error) {
				if len(args) == 1 {
					return math.RoundToEven(args[0]), nil
				}

				x, d := args[0], args[1]
				if !isInteger(d) {
					return 0, domainError("round", "decimal places must be an integer", x, d)
				}

				p := math.Pow(10, d)

				return math.RoundToEven(x*p) / p, nil
			},
		},
	}
}
