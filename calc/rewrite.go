package calc

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/expr-lang/expr/ast"

	"github.com/ardnew/sci/log"
)

// Rewriter is a structural transformation of function calls in an
// expression tree.
type Rewriter struct {
	// Name identifies the rewrite in compile cache keys and logs.
	Name string
	// Match selects the calls to transform by function name.
	Match func(name string, call *ast.CallNode) bool
	// Transform returns the node that replaces call.
	Transform func(call *ast.CallNode) ast.Node
}

// rewriteVisitor applies a Rewriter to every matching call. Walk is
// post-order, so nested calls are transformed before their parents and each
// call is visited exactly once.
type rewriteVisitor struct {
	Rewriter
	logger log.Logger
}

// Visit implements ast.Visitor.
func (v *rewriteVisitor) Visit(node *ast.Node) {
	c, ok := (*node).(*ast.CallNode)
	if !ok {
		return
	}

	name := calleeName(c)
	if name == "" || !v.Match(name, c) {
		return
	}

	repl := v.Transform(c)
	if repl == nil {
		return
	}

	ast.Patch(node, repl)

	v.logger.Trace("rewrite call",
		slog.String("rewriter", v.Name),
		slog.String("function", name),
		slog.String("result", repl.String()))
}

func calleeName(c *ast.CallNode) string {
	if id, ok := c.Callee.(*ast.IdentifierNode); ok {
		return id.Value
	}

	return ""
}

// DegreesRewriter returns the angle-mode rewrite for reg: the first argument
// a of every function flagged Angular becomes a * (pi / 180).
func DegreesRewriter(reg *Registry) Rewriter {
	return Rewriter{
		Name: "deg",
		Match: func(name string, call *ast.CallNode) bool {
			f, ok := reg.Function(name)

			return ok && f.Angular && len(call.Arguments) > 0
		},
		Transform: func(call *ast.CallNode) ast.Node {
			args := slices.Clone(call.Arguments)
			args[0] = &ast.BinaryNode{
				Operator: "*",
				Left:     args[0],
				Right: &ast.BinaryNode{
					Operator: "/",
					Left:     &ast.IdentifierNode{Value: "pi"},
					Right:    &ast.IntegerNode{Value: 180},
				},
			}

			return &ast.CallNode{Callee: call.Callee, Arguments: args}
		},
	}
}

// validator rejects trees that use anything other than numeric literals,
// registered identifiers, arithmetic operators and registered function
// calls. It records the first problem found and the free symbols used.
type validator struct {
	reg     *Registry
	err     error
	symbols map[string]bool
	callees map[*ast.IdentifierNode]bool
}

var allowedBinary = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "^": true, "**": true,
}

// Visit implements ast.Visitor.
func (v *validator) Visit(node *ast.Node) {
	if v.err != nil {
		return
	}

	switch n := (*node).(type) {
	case *ast.IntegerNode, *ast.FloatNode:

	case *ast.IdentifierNode:
		// Callees are visited before their call node; the call checks them.
		if v.callees[n] {
			return
		}

		v.identifier(n)

	case *ast.UnaryNode:
		if n.Operator != "-" && n.Operator != "+" {
			v.fail(n, "unsupported operator %q", n.Operator)
		}

	case *ast.BinaryNode:
		if !allowedBinary[n.Operator] {
			v.fail(n, "unsupported operator %q", n.Operator)
		}

	case *ast.CallNode:
		v.call(n)

	default:
		v.fail(n, "unsupported syntax %q", n.String())
	}
}

func (v *validator) identifier(n *ast.IdentifierNode) {
	if _, ok := v.reg.Constant(n.Value); ok {
		return
	}

	if v.reg.IsSymbol(n.Value) {
		v.symbols[n.Value] = true

		return
	}

	if _, ok := v.reg.Function(n.Value); ok {
		v.fail(n, "function %s used without arguments", n.Value)

		return
	}

	v.fail(n, "unknown name %s", n.Value)
}

func (v *validator) call(n *ast.CallNode) {
	name := calleeName(n)
	if name == "" {
		v.fail(n, "unsupported call %q", n.String())

		return
	}

	f, ok := v.reg.Function(name)
	if !ok {
		v.fail(n, "unknown function %s", name)

		return
	}

	if !f.Accepts(len(n.Arguments)) {
		want := fmt.Sprint(f.MinArgs)
		if f.MaxArgs != f.MinArgs {
			want = fmt.Sprintf("%d to %d", f.MinArgs, f.MaxArgs)
		}

		v.fail(n, "%s expects %s argument(s), got %d; usage: %s",
			name, want, len(n.Arguments), f.Signature())
	}
}

func (v *validator) fail(n ast.Node, format string, args ...any) {
	v.err = ErrParse.Wrap(fmt.Errorf(format, args...)).
		With(slog.Int("column", n.Location().From+1))
}

// markCallees records the callee identifiers of every call under node so
// the validator can tell a call target from a bare identifier.
type markCallees map[*ast.IdentifierNode]bool

// Visit implements ast.Visitor.
func (m markCallees) Visit(node *ast.Node) {
	if c, ok := (*node).(*ast.CallNode); ok {
		if id, ok := c.Callee.(*ast.IdentifierNode); ok {
			m[id] = true
		}
	}
}

func sortedSymbols(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for s := range m {
		out = append(out, s)
	}

	slices.Sort(out)

	return out
}

// Operator guards replace a / b and a % b with calls that report a zero
// divisor as ErrDivisionByZero instead of producing Inf or panicking.
const (
	guardDiv = "_div"
	guardMod = "_mod"
)

type guardVisitor struct{}

// Visit implements ast.Visitor.
func (guardVisitor) Visit(node *ast.Node) {
	b, ok := (*node).(*ast.BinaryNode)
	if !ok {
		return
	}

	var name string

	switch b.Operator {
	case "/":
		name = guardDiv
	case "%":
		name = guardMod
	default:
		return
	}

	ast.Patch(node, &ast.CallNode{
		Callee:    &ast.IdentifierNode{Value: name},
		Arguments: []ast.Node{b.Left, b.Right},
	})
}

// floatVisitor turns integer literals into floats so every operator works
// in float64 and integer arithmetic cannot overflow.
type floatVisitor struct{}

// Visit implements ast.Visitor.
func (floatVisitor) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	}
}

func rewriteKey(rs []Rewriter) string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}

	return strings.Join(names, ",")
}
