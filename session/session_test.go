package session

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ardnew/sci/calc"
	"github.com/ardnew/sci/log"
)

func newSession(opts ...Option) *Session {
	return New(append([]Option{WithLogger(log.Make(nil))}, opts...)...)
}

func run(t *testing.T, s *Session, line string) Reply {
	t.Helper()

	return s.Execute(context.Background(), line)
}

func texts(r Reply) []string {
	out := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Text
	}

	return out
}

func contains(r Reply, want string) bool {
	return strings.Contains(r.String(), want)
}

func TestSession_Evaluate_Success(t *testing.T) {
	s := newSession()

	r := run(t, s, "1 + 2")

	want := []string{"= 1 + 2", "= 3", "Last answer: 3"}
	if got := texts(r); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("reply = %q, want %q", got, want)
	}

	for _, l := range r.Lines[:2] {
		if l.Kind != KindResult {
			t.Errorf("line %q has kind %v, want result", l.Text, l.Kind)
		}
	}

	if r.Quit {
		t.Error("evaluation requested quit")
	}
}

func TestSession_History_TracksSuccessfulEvaluations(t *testing.T) {
	s := newSession()

	inputs := []struct {
		line string
		ok   bool
		want float64
	}{
		{"2 * 2", true, 4},
		{"1/0", false, 0},
		{"foo(", false, 0},
		{"ans + 1", true, 5},
		{"asin(2)", false, 0},
		{"ans^2", true, 25},
		{"history", false, 0},
		{"mode deg", false, 0},
		{"sqrt(ans)", true, 5},
	}

	var want []float64

	for _, in := range inputs {
		run(t, s, in.line)

		if in.ok {
			want = append(want, in.want)
		}

		got := s.History()
		if len(got) != len(want) {
			t.Fatalf("after %q: history length %d, want %d", in.line, len(got), len(want))
		}

		for i := range want {
			if math.Abs(got[i].Value-want[i]) > 1e-9 {
				t.Errorf("after %q: history[%d] = %v, want %v", in.line, i, got[i].Value, want[i])
			}
		}
	}
}

func TestSession_Clear(t *testing.T) {
	s := newSession()

	run(t, s, "1")
	run(t, s, "2")

	r := run(t, s, "clear")
	if !contains(r, "Memory cleared.") {
		t.Errorf("clear reply = %q", r)
	}

	if n := len(s.History()); n != 0 {
		t.Errorf("history length %d after clear", n)
	}

	if r := run(t, s, "ans"); !contains(r, "No previous calculations found.") {
		t.Errorf("ans reply after clear = %q", r)
	}

	if r := run(t, s, "history"); !contains(r, "History is empty.") {
		t.Errorf("history reply after clear = %q", r)
	}

	r = run(t, s, "ans + 1")
	if !contains(r, "No previous answer available") {
		t.Errorf("substitution reply = %q", r)
	}

	if n := len(s.History()); n != 0 {
		t.Errorf("failed substitution changed history: %d", n)
	}
}

func TestSession_HistoryListing(t *testing.T) {
	s := newSession()

	for _, line := range []string{"1", "2.5", "10/4 + 1"} {
		run(t, s, line)
	}

	r := run(t, s, "history")
	want := []string{"[1] = 1", "[2] = 2.5", "[3] = 3.5"}

	if got := texts(r); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("history = %q, want %q", got, want)
	}
}

func TestSession_Ans(t *testing.T) {
	s := newSession()

	run(t, s, "2 + 2")

	if r := run(t, s, "ans"); !contains(r, "Last answer: 4") {
		t.Errorf("ans reply = %q", r)
	}

	r := run(t, s, "ans + 1")
	if !contains(r, "= 5") {
		t.Errorf("ans + 1 reply = %q", r)
	}

	if !contains(r, "= 4 + 1") {
		t.Errorf("expected substituted form in %q", r)
	}
}

func TestSession_Mode(t *testing.T) {
	s := newSession()

	if s.Mode() != ModeRad {
		t.Fatalf("default mode = %v", s.Mode())
	}

	for range 2 {
		r := run(t, s, "mode rad")
		if !contains(r, "Mode switched to rad") {
			t.Errorf("mode rad reply = %q", r)
		}

		if s.Mode() != ModeRad {
			t.Errorf("mode = %v, want rad", s.Mode())
		}
	}

	run(t, s, "mode deg")

	r := run(t, s, "mode xyz")
	if !contains(r, "Use 'mode deg' or 'mode rad'") {
		t.Errorf("mode xyz reply = %q", r)
	}

	if r.Lines[0].Kind != KindFailure {
		t.Errorf("usage error kind = %v", r.Lines[0].Kind)
	}

	if s.Mode() != ModeDeg {
		t.Errorf("invalid mode changed mode to %v", s.Mode())
	}

	if r := run(t, s, "mode"); !contains(r, "Use 'mode deg' or 'mode rad'") {
		t.Errorf("bare mode reply = %q", r)
	}
}

func TestSession_Trig_ByMode(t *testing.T) {
	tests := []struct {
		mode Mode
		line string
		form string
	}{
		{ModeRad, "sin(pi/2)", "sin(pi / 2)"},
		{ModeDeg, "sin(90)", "sin(90 * (pi / 180))"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			s := newSession(WithMode(tt.mode))

			form, n, err := s.Evaluate(context.Background(), tt.line)
			if err != nil {
				t.Fatal(err)
			}

			if form != tt.form {
				t.Errorf("form = %q, want %q", form, tt.form)
			}

			if math.Abs(n.Value-1) > 1e-12 {
				t.Errorf("value = %v, want 1", n.Value)
			}
		})
	}
}

func TestSession_Errors(t *testing.T) {
	tests := []struct {
		line string
		want string
		kind Kind
	}{
		{"1/0", "Division by zero is undefined.", KindWarning},
		{"asin(2)", "Math domain error: asin(2): argument must be in [-1, 1]", KindWarning},
		{"foo(1)", "Parse error: unknown function foo", KindWarning},
		{"x + 1", "Error: cannot reduce free symbol(s) x to a number", KindWarning},
		{"ans", "No previous calculations found.", KindInfo},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s := newSession()

			r := run(t, s, tt.line)
			if len(r.Lines) != 1 {
				t.Fatalf("reply = %q, want one line", texts(r))
			}

			if r.Lines[0].Text != tt.want {
				t.Errorf("reply = %q, want %q", r.Lines[0].Text, tt.want)
			}

			if r.Lines[0].Kind != tt.kind {
				t.Errorf("kind = %v, want %v", r.Lines[0].Kind, tt.kind)
			}

			if len(s.History()) != 0 {
				t.Error("failure changed history")
			}
		})
	}
}

func TestSession_ExitAndEmpty(t *testing.T) {
	s := newSession()

	if r := run(t, s, ""); len(r.Lines) != 0 || r.Quit {
		t.Errorf("empty line reply = %+v", r)
	}

	for _, line := range []string{"exit", "quit", "EXIT"} {
		if r := run(t, s, line); !r.Quit {
			t.Errorf("%q did not quit", line)
		}
	}
}

func TestSession_Help(t *testing.T) {
	s := newSession()

	r := run(t, s, "?")
	if len(r.Lines) < 5 {
		t.Fatalf("help too short: %q", texts(r))
	}

	for _, want := range []string{"log(x, [b])", "perm(n, r)", "pi", "mode deg"} {
		if !contains(r, want) {
			t.Errorf("help missing %q", want)
		}
	}

	if len(s.History()) != 0 || s.Mode() != ModeRad {
		t.Error("help changed state")
	}
}

func TestSession_Substitute(t *testing.T) {
	s := newSession()

	if _, err := s.Substitute("ans * 2"); !errors.Is(err, calc.ErrSubstitution) {
		t.Errorf("expected ErrSubstitution, got %v", err)
	}

	if got, err := s.Substitute("answer + 1"); err != nil || got != "answer + 1" {
		t.Errorf("Substitute(answer + 1) = %q, %v", got, err)
	}

	run(t, s, "0 - 3")

	tests := []struct {
		in   string
		want string
	}{
		{"ans", "(-3)"},
		{"ans^2", "(-3)^2"},
		{"ANS + ans", "(-3) + (-3)"},
		{"sin(ans)", "sin((-3))"},
		{"ans2 + 1", "ans2 + 1"},
		{"trans", "trans"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := s.Substitute(tt.in)
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if r := run(t, s, "ans^2"); !contains(r, "= 9") {
		t.Errorf("ans^2 reply = %q", r)
	}
}

func TestSession_ID_Unique(t *testing.T) {
	seen := map[string]bool{}

	for range 10 {
		id := newSession().ID()
		if seen[id] {
			t.Fatalf("duplicate session ID %s", id)
		}

		seen[id] = true
	}
}

func TestBanner(t *testing.T) {
	b := Banner(calc.DefaultRegistry())

	for _, want := range []string{"trigonometric", "combinatorics", "mode deg", "exit"} {
		if !strings.Contains(b, want) {
			t.Errorf("banner missing %q", want)
		}
	}
}

func TestMessage_AllClasses(t *testing.T) {
	for c := calc.ClassUsage; c <= calc.ClassEvaluate; c++ {
		t.Run(c.String(), func(t *testing.T) {
			if Message(c.Sentinel()) == "" {
				t.Errorf("empty message for %v", c)
			}
		})
	}

	if Message(errors.New("x")) != "Error: x" {
		t.Error("unexpected message for plain error")
	}
}
