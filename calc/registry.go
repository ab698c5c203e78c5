package calc

import (
	"maps"
	"math"
	"slices"
	"strings"
)

// Family groups related functions for help output and completion.
type Family string

const (
	FamilyTrig          Family = "trigonometric"
	FamilyHyperbolic    Family = "hyperbolic"
	FamilyRoot          Family = "roots"
	FamilyLog           Family = "logarithms"
	FamilyCombinatorics Family = "combinatorics"
	FamilyMisc          Family = "misc"
)

// Function is a named numeric function callable from expressions.
type Function struct {
	Name    string
	Family  Family
	Params  []string // parameter names; the last MaxArgs-MinArgs are optional
	MinArgs int
	MaxArgs int
	Help    string
	// Angular functions take an angle (or produce one) as their first
	// argument and are rewritten in degree mode.
	Angular bool
	Call    func(args ...float64) (float64, error)
}

// Signature renders the call form of f, bracketing optional parameters.
func (f Function) Signature() string {
	var sb strings.Builder

	sb.WriteString(f.Name)
	sb.WriteByte('(')

	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}

		if i >= f.MinArgs {
			sb.WriteString("[" + p + "]")
		} else {
			sb.WriteString(p)
		}
	}

	sb.WriteByte(')')

	return sb.String()
}

// Accepts reports whether f can be called with n arguments.
func (f Function) Accepts(n int) bool {
	return n >= f.MinArgs && n <= f.MaxArgs
}

// Constant is a named numeric constant.
type Constant struct {
	Name  string
	Value float64
	Help  string
}

// Registry is the fixed set of functions, constants and free symbols an
// [Engine] understands. It is not modified after construction.
type Registry struct {
	funcs   map[string]Function
	consts  map[string]Constant
	symbols []string
}

// Default symbols are valid identifiers with no value.
var defaultSymbols = []string{"x", "y", "z"}

// DefaultRegistry returns a registry with every built-in function family,
// the constants pi, e, tau and phi (with aliases π, τ and φ), and the free
// symbols x, y and z.
func DefaultRegistry() *Registry {
	return NewRegistry(builtinFunctions(), builtinConstants(), defaultSymbols)
}

// NewRegistry returns a registry containing exactly the given entries.
// Later entries replace earlier ones with the same name.
func NewRegistry(funcs []Function, consts []Constant, symbols []string) *Registry {
	r := &Registry{
		funcs:   make(map[string]Function, len(funcs)),
		consts:  make(map[string]Constant, len(consts)),
		symbols: slices.Clone(symbols),
	}

	for _, f := range funcs {
		r.funcs[f.Name] = f
	}

	for _, c := range consts {
		r.consts[c.Name] = c
	}

	slices.Sort(r.symbols)
	r.symbols = slices.Compact(r.symbols)

	return r
}

// With returns a copy of r with funcs added or replaced.
func (r *Registry) With(funcs ...Function) *Registry {
	all := slices.Collect(maps.Values(r.funcs))

	return NewRegistry(
		append(all, funcs...),
		slices.Collect(maps.Values(r.consts)),
		r.symbols,
	)
}

// Function returns the function registered as name.
func (r *Registry) Function(name string) (Function, bool) {
	f, ok := r.funcs[name]

	return f, ok
}

// Constant returns the constant registered as name.
func (r *Registry) Constant(name string) (Constant, bool) {
	c, ok := r.consts[name]

	return c, ok
}

// IsSymbol reports whether name is a free symbol.
func (r *Registry) IsSymbol(name string) bool {
	_, ok := slices.BinarySearch(r.symbols, name)

	return ok
}

// Functions returns every function sorted by name.
func (r *Registry) Functions() []Function {
	return slices.SortedFunc(maps.Values(r.funcs), func(a, b Function) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// Constants returns every constant sorted by name.
func (r *Registry) Constants() []Constant {
	return slices.SortedFunc(maps.Values(r.consts), func(a, b Constant) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// Symbols returns the free symbol names in sorted order.
func (r *Registry) Symbols() []string {
	return slices.Clone(r.symbols)
}

// Families returns the function families present in r in a stable order.
func (r *Registry) Families() []Family {
	order := []Family{
		FamilyTrig, FamilyHyperbolic, FamilyRoot,
		FamilyLog, FamilyCombinatorics, FamilyMisc,
	}

	present := make(map[Family]bool)
	for _, f := range r.funcs {
		present[f.Family] = true
	}

	return slices.DeleteFunc(order, func(f Family) bool { return !present[f] })
}

// env returns the constant values keyed by name for the expression
// environment.
func (r *Registry) env() map[string]any {
	env := make(map[string]any, len(r.consts))
	for name, c := range r.consts {
		env[name] = c.Value
	}

	return env
}

func builtinConstants() []Constant {
	phi := (1 + math.Sqrt(5)) / 2

	return []Constant{
		{Name: "pi", Value: math.Pi, Help: "ratio of a circle's circumference to its diameter"},
		{Name: "π", Value: math.Pi, Help: "alias of pi"},
		{Name: "e", Value: math.E, Help: "base of the natural logarithm"},
		{Name: "tau", Value: 2 * math.Pi, Help: "ratio of a circle's circumference to its radius"},
		{Name: "τ", Value: 2 * math.Pi, Help: "alias of tau"},
		{Name: "phi", Value: phi, Help: "golden ratio"},
		{Name: "φ", Value: phi, Help: "alias of phi"},
	}
}
