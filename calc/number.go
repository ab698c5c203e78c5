package calc

import (
	"log/slog"
	"math"
	"strconv"
)

// DefaultPrecision is the number of significant digits used to display a
// [Number] unless configured otherwise.
const DefaultPrecision = 15

// integralLimit bounds the magnitude of values printed without a fractional
// part or exponent.
const integralLimit = 1e15

// Number is the numeric result of an evaluation.
type Number struct {
	Value     float64
	Precision int // significant digits; non-positive means DefaultPrecision
}

// MakeNumber returns a Number with the given display precision.
func MakeNumber(v float64, precision int) Number {
	return Number{Value: v, Precision: precision}
}

// String renders n with its display precision. Integral values within
// ±1e15 are printed without a fractional part.
func (n Number) String() string {
	v := n.Value

	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}

	prec := n.Precision
	if prec <= 0 {
		prec = DefaultPrecision
	}

	// Round to the display precision first so values like 0.1+0.2 and
	// 2.9999999999999996 print the way a person expects.
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', prec, 64), 64)
	if err == nil {
		v = r
	}

	if v == 0 {
		return "0"
	}

	if v == math.Trunc(v) && math.Abs(v) < integralLimit {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}

	return strconv.FormatFloat(v, 'g', prec, 64)
}

// LogValue implements slog.LogValuer.
func (n Number) LogValue() slog.Value {
	return slog.Float64Value(n.Value)
}
