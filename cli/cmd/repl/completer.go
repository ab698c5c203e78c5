package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/sci/calc"
	"github.com/ardnew/sci/session"
)

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: whitespace, grouping, argument separators and arithmetic
// operators.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '(', ')', ',',
		'+', '-', '*', '/', '%', '^', '?':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. The cursor is a byte offset.
// Returns an empty word when the cursor sits on a boundary (after a space,
// after an operator, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// completionCandidates returns every word the user may want completed:
// command words, then function names, constants and symbols from reg.
func completionCandidates(reg *calc.Registry) []string {
	var names []string

	for _, kw := range session.Keywords() {
		for w := range strings.FieldsSeq(kw) {
			if w != "?" && !slices.Contains(names, w) {
				names = append(names, w)
			}
		}
	}

	for _, f := range reg.Functions() {
		names = append(names, f.Name)
	}

	for _, c := range reg.Constants() {
		names = append(names, c.Name)
	}

	return append(names, reg.Symbols()...)
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first) and the word boundaries. When the
// current word is empty it returns nil matches so the hint line stays visible.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, byteOffset(input, m.input.Position()))
	if word == "" || len(m.candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, m.candidates), wordStart, wordEnd
}

// byteOffset converts a rune position within s to a byte offset.
func byteOffset(s string, pos int) int {
	off := 0

	for i := 0; i < pos && off < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}

	return off
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	reg *calc.Registry,
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(reg, match, tabActive && i == suggIdx)
		entryWidth := lipgloss.Width(rendered)

		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Functions are displayed with a "()" suffix.
func renderCandidate(reg *calc.Registry, match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	if _, ok := reg.Function(match.Str); ok {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}
