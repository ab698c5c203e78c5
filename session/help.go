package session

import (
	"strings"

	"github.com/ardnew/sci/calc"
	"github.com/ardnew/sci/pkg"
)

// Banner returns the welcome text printed once when an interactive loop
// starts.
func Banner(reg *calc.Registry) string {
	families := make([]string, 0, 6)
	for _, f := range reg.Families() {
		families = append(families, string(f))
	}

	var sb strings.Builder

	sb.WriteString("Welcome to " + pkg.Name + " " + pkg.Version + ", an interactive scientific calculator.\n")
	sb.WriteString("Supports: " + strings.Join(families, ", ") + ", and constants.\n")
	sb.WriteString("Try: sin(x), log(x), root(x, n), comb(n, r), perm(n, r), pi, e, tau, phi\n")
	sb.WriteString("Commands: mode rad | mode deg | ans | clear | history | help | exit")

	return sb.String()
}

// Help returns the static help text.
func Help(reg *calc.Registry) string {
	var sb strings.Builder

	sb.WriteString("Help:\n")

	for _, fam := range reg.Families() {
		var names []string

		for _, f := range reg.Functions() {
			if f.Family == fam {
				names = append(names, f.Signature())
			}
		}

		sb.WriteString("  " + string(fam) + ": " + strings.Join(names, ", ") + "\n")
	}

	var consts []string
	for _, c := range reg.Constants() {
		consts = append(consts, c.Name)
	}

	sb.WriteString("  constants: " + strings.Join(consts, ", ") + "\n")
	sb.WriteString("  symbols: " + strings.Join(reg.Symbols(), ", ") + "\n")
	sb.WriteString("  operators: + - * / % ^ ** ( )\n")
	sb.WriteString("  previous answer: use 'ans' in an expression to reuse the last result\n")
	sb.WriteString("  commands: mode deg | mode rad | ans | history | clear | help | exit")

	return sb.String()
}
