package repl

import (
	"strings"
	"testing"

	"github.com/ardnew/sci/calc"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{"no call", "pi", 2, "", 0, false},
		{"first arg", "sin(", 4, "sin", 0, true},
		{"first arg with value", "sin(30", 6, "sin", 0, true},
		{"second arg", "log(8,", 6, "log", 1, true},
		{"second arg with value", "log(8, 2", 8, "log", 1, true},
		{"nested inner", "sin(cos(", 8, "cos", 0, true},
		{"nested closed", "root(sqrt(16), ", 15, "root", 1, true},
		{"closed call", "sqrt(4) + 1", 11, "", 0, false},
		{"bare group", "(1 + 2", 6, "", 0, false},
		{"cursor before paren", "sin(30)", 2, "", 0, false},
		{"underscore name", "fourth_root(", 12, "fourth_root", 0, true},
		{"after operator", "2*log(", 6, "log", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, tt.cursor)
			if got.name != tt.wantName || got.argIndex != tt.wantIndex ||
				got.inCall != tt.wantInCall {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {%s %d %v}",
					tt.input, tt.cursor, got,
					tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	reg := calc.DefaultRegistry()

	f, ok := reg.Function("log")
	if !ok {
		t.Fatal("log not registered")
	}

	for idx := range 3 {
		hint := renderSignatureHint(f, idx)
		for _, want := range []string{"log", "x", "[b]"} {
			if !strings.Contains(hint, want) {
				t.Errorf("hint(%d) = %q, missing %q", idx, hint, want)
			}
		}
	}
}
