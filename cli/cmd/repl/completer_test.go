package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/sci/calc"
)

func TestWordBounds_Operators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "sqr", 3, "sqr", 0, 3},
		{"after_plus", "1 + co", 6, "co", 4, 6},
		{"after_minus", "1-co", 4, "co", 2, 4},
		{"after_caret", "2^lo", 4, "lo", 2, 4},
		{"after_paren", "sqrt(lo", 7, "lo", 5, 7},
		{"after_comma", "log(8, e", 8, "e", 7, 8},
		{"empty_at_boundary", "1 + ", 4, "", 4, 4},
		{"mid_word", "factorial", 4, "factorial", 0, 9},
		{"at_start", "tan", 0, "tan", 0, 3},
		{"between_operators", "a*b", 2, "b", 2, 3},
		{"unicode", "2*π", 4, "π", 2, 4},
		{"command_arg", "mode de", 7, "de", 5, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCompletionCandidates(t *testing.T) {
	got := completionCandidates(calc.DefaultRegistry())

	for _, want := range []string{"mode", "deg", "rad", "history", "exit", "sqrt", "comb", "pi", "π", "x"} {
		if !slices.Contains(got, want) {
			t.Errorf("candidates missing %q", want)
		}
	}

	for _, bad := range []string{"?", "mode deg"} {
		if slices.Contains(got, bad) {
			t.Errorf("candidates contain %q", bad)
		}
	}

	seen := make(map[string]bool)
	for _, c := range got {
		if seen[c] {
			t.Errorf("duplicate candidate %q", c)
		}

		seen[c] = true
	}
}

func TestByteOffset(t *testing.T) {
	tests := []struct {
		s    string
		pos  int
		want int
	}{
		{"abc", 0, 0},
		{"abc", 2, 2},
		{"π+1", 1, 2},
		{"π+1", 3, 4},
		{"ab", 9, 2},
	}

	for _, tt := range tests {
		if got := byteOffset(tt.s, tt.pos); got != tt.want {
			t.Errorf("byteOffset(%q, %d) = %d, want %d", tt.s, tt.pos, got, tt.want)
		}
	}
}
