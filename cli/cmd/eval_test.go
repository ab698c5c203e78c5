package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/ardnew/sci/log"
	"github.com/ardnew/sci/session"
)

func testContext(mode session.Mode) context.Context {
	return WithSettings(context.Background(), Settings{
		Logger:    log.Make(nil),
		Mode:      mode,
		Precision: 15,
	})
}

func TestEvalRun(t *testing.T) {
	tests := []struct {
		name  string
		mode  session.Mode
		exprs []string
		stdin string
		want  []string
	}{
		{
			name:  "arguments",
			exprs: []string{"2^10", "ans / 4"},
			want:  []string{"= 1024", "Last answer: 1024", "= 1024 / 4", "= 256", "Last answer: 256"},
		},
		{
			name:  "degree mode",
			mode:  session.ModeDeg,
			exprs: []string{"cos(60)"},
			want:  []string{"= cos(60 * (pi / 180))", "= 0.5", "Last answer: 0.5"},
		},
		{
			name:  "stdin lines",
			stdin: "history\n3*3\n\nhistory\n",
			want:  []string{"History is empty.", "= 3 * 3", "= 9", "Last answer: 9", "[1] = 9"},
		},
		{
			name:  "errors do not stop",
			stdin: "ans + 1\n1+\n5\nexit\n6\n",
			want: []string{
				"Error: No previous answer available.",
				"= 5",
				"Last answer: 5",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder

			e := &Eval{Exprs: tt.exprs, in: strings.NewReader(tt.stdin), out: &out}

			if err := e.Run(testContext(tt.mode)); err != nil {
				t.Fatalf("Eval.Run() error = %v", err)
			}

			got := out.String()
			for _, w := range tt.want {
				if !strings.Contains(got, w+"\n") {
					t.Errorf("output missing %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestEvalRun_ExitStopsInput(t *testing.T) {
	var out strings.Builder

	e := &Eval{in: strings.NewReader("1\nquit\n2\n"), out: &out}

	if err := e.Run(testContext(session.ModeRad)); err != nil {
		t.Fatalf("Eval.Run() error = %v", err)
	}

	if got := out.String(); strings.Contains(got, "= 2\n") {
		t.Errorf("input after quit was evaluated:\n%s", got)
	}
}

func TestEvalRun_Sources(t *testing.T) {
	paths := writeFiles(t, "mode deg\nsin(90)", "ans + 1\n")

	ctx := WithSourceFiles(testContext(session.ModeRad), paths)

	var out strings.Builder

	e := &Eval{out: &out}
	if err := e.Run(ctx); err != nil {
		t.Fatalf("Eval.Run() error = %v", err)
	}

	got := out.String()
	for _, w := range []string{"Mode switched to deg", "= 1\n", "= 1 + 1", "= 2\n"} {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q:\n%s", w, got)
		}
	}
}
