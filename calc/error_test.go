package calc

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", NewError("boom"), "boom"},
		{"wrapped", NewError("boom").Wrap(errors.New("cause")), "boom: cause"},
		{"cause only", (&Error{}).Wrap(errors.New("cause")), "cause"},
		{"empty", &Error{}, ""},
		{"sentinel", ErrDomain.Wrapf("asin(2)"), "math domain error: asin(2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is_DerivedFromSentinel(t *testing.T) {
	err := ErrDivisionByZero.Wrapf("1 / 0").With(slog.Int("column", 2))

	if !errors.Is(err, ErrDivisionByZero) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(err, ErrDomain) {
		t.Error("derived error matches an unrelated sentinel")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, ErrDivisionByZero) {
		t.Error("fmt-wrapped error does not match its sentinel")
	}
}

func TestError_With_IsImmutable(t *testing.T) {
	base := ErrEvaluate.Wrapf("x")
	a := base.With(slog.String("a", "1"))
	_ = a.With(slog.String("b", "2"))

	if len(base.attrs) != 0 {
		t.Errorf("base attrs modified: %v", base.attrs)
	}

	if len(a.attrs) != 1 {
		t.Errorf("expected 1 attr, got %v", a.attrs)
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrDomain.Wrapf("sqrt(-1)").With(slog.String("function", "sqrt"))

	v := err.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("expected group, got %v", v.Kind())
	}

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"error":    "math domain error",
		"cause":    "sqrt(-1)",
		"function": "sqrt",
	}

	for k, w := range want {
		if got[k] != w {
			t.Errorf("attr %s = %q, want %q", k, got[k], w)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Class
	}{
		{nil, ClassNone},
		{ErrUsage, ClassUsage},
		{ErrSubstitution.Wrapf("empty"), ClassSubstitution},
		{ErrParse.Wrapf("bad"), ClassParse},
		{fmt.Errorf("x: %w", ErrDivisionByZero), ClassDivisionByZero},
		{ErrDomain.With(slog.Int("n", 1)), ClassDomain},
		{ErrEvaluate, ClassEvaluate},
		{errors.New("other"), ClassEvaluate},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClass_Sentinel(t *testing.T) {
	for c := ClassUsage; c <= ClassEvaluate; c++ {
		if got := Classify(c.Sentinel()); got != c {
			t.Errorf("Classify(%v.Sentinel()) = %v", c, got)
		}
	}

	if ClassNone.Sentinel() != nil {
		t.Error("ClassNone has a sentinel")
	}
}
