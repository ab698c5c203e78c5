package calc

import (
	"context"
	"math"
	"slices"
	"testing"
)

func TestFunction_Signature(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		name string
		want string
	}{
		{"sin", "sin(x)"},
		{"root", "root(x, n)"},
		{"log", "log(x, [b])"},
		{"round", "round(x, [d])"},
		{"comb", "comb(n, r)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := reg.Function(tt.name)
			if !ok {
				t.Fatalf("%s not registered", tt.name)
			}

			if got := f.Signature(); got != tt.want {
				t.Errorf("Signature() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistry_AngularFunctions(t *testing.T) {
	var names []string

	for _, f := range DefaultRegistry().Functions() {
		if f.Angular {
			names = append(names, f.Name)
		}
	}

	want := []string{
		"acos", "acosh", "acot", "acoth", "acsc", "acsch",
		"asec", "asech", "asin", "asinh", "atan", "atanh",
		"cos", "cosh", "cot", "coth", "csc", "csch",
		"sec", "sech", "sin", "sinh", "tan", "tanh",
	}

	if !slices.Equal(names, want) {
		t.Errorf("angular functions = %v, want %v", names, want)
	}
}

func TestRegistry_Constants(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		name string
		want float64
	}{
		{"pi", math.Pi},
		{"π", math.Pi},
		{"e", math.E},
		{"tau", 2 * math.Pi},
		{"τ", 2 * math.Pi},
		{"phi", 1.618033988749895},
		{"φ", 1.618033988749895},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := reg.Constant(tt.name)
			if !ok {
				t.Fatalf("%s not registered", tt.name)
			}

			if !approx(c.Value, tt.want) {
				t.Errorf("%s = %v, want %v", tt.name, c.Value, tt.want)
			}
		})
	}
}

func TestRegistry_Symbols(t *testing.T) {
	reg := DefaultRegistry()

	if got := reg.Symbols(); !slices.Equal(got, []string{"x", "y", "z"}) {
		t.Errorf("Symbols() = %v", got)
	}

	for _, s := range []string{"x", "y", "z"} {
		if !reg.IsSymbol(s) {
			t.Errorf("%s is not a symbol", s)
		}
	}

	if reg.IsSymbol("w") {
		t.Error("w is a symbol")
	}
}

func TestRegistry_Families(t *testing.T) {
	got := DefaultRegistry().Families()
	want := []Family{
		FamilyTrig, FamilyHyperbolic, FamilyRoot,
		FamilyLog, FamilyCombinatorics, FamilyMisc,
	}

	if !slices.Equal(got, want) {
		t.Errorf("Families() = %v, want %v", got, want)
	}

	reg := NewRegistry(trigFunctions(), nil, nil)
	if got := reg.Families(); !slices.Equal(got, []Family{FamilyTrig}) {
		t.Errorf("Families() = %v, want [trigonometric]", got)
	}
}

func TestRegistry_With_DoesNotModifyReceiver(t *testing.T) {
	base := DefaultRegistry()
	ext := base.With(Function{Name: "twice", MinArgs: 1, MaxArgs: 1})

	if _, ok := base.Function("twice"); ok {
		t.Error("With modified the receiver")
	}

	if _, ok := ext.Function("twice"); !ok {
		t.Error("With did not add the function")
	}

	if _, ok := ext.Function("sin"); !ok {
		t.Error("With dropped existing functions")
	}
}

func TestFunctions_DirectCalls(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		name string
		args []float64
		want float64
	}{
		{"sin", []float64{1e-20}, 1e-20},
		{"cos", []float64{math.Pi / 2}, 0},
		{"asec", []float64{2}, math.Pi / 3},
		{"acsc", []float64{2}, math.Pi / 6},
		{"acot", []float64{1}, math.Pi / 4},
		{"sech", []float64{0}, 1},
		{"acoth", []float64{2}, math.Atanh(0.5)},
		{"acsch", []float64{1}, math.Asinh(1)},
		{"root", []float64{-8, 3}, -2},
		{"root", []float64{16, 0.5}, 256},
		{"factorial", []float64{23}, math.Gamma(24)},
		{"perm", []float64{5, 0}, 1},
		{"comb", []float64{5, 5}, 1},
		{"gamma", []float64{0.5}, math.Sqrt(math.Pi)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := reg.Function(tt.name)
			if !ok {
				t.Fatalf("%s not registered", tt.name)
			}

			got, err := f.Call(tt.args...)
			if err != nil {
				t.Fatalf("%s%v: %v", tt.name, tt.args, err)
			}

			if !approx(got, tt.want) {
				t.Errorf("%s%v = %v, want %v", tt.name, tt.args, got, tt.want)
			}
		})
	}
}

func TestEngine_Functions_HelpAndFamily(t *testing.T) {
	for _, f := range New().Registry().Functions() {
		if f.Help == "" {
			t.Errorf("%s has no help text", f.Name)
		}

		if f.Family == "" {
			t.Errorf("%s has no family", f.Name)
		}

		if len(f.Params) != f.MaxArgs {
			t.Errorf("%s lists %d params for %d args", f.Name, len(f.Params), f.MaxArgs)
		}

		if f.Call == nil {
			t.Errorf("%s has no implementation", f.Name)
		}
	}

	if _, err := New().Parse(context.Background(), "fourth_root(16) + fifth_root(32)"); err != nil {
		t.Error(err)
	}
}
