package session

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"", Command{Op: OpNone}},
		{"   \t", Command{Op: OpNone}},
		{"exit", Command{Op: OpExit}},
		{"  QUIT ", Command{Op: OpExit}},
		{"help", Command{Op: OpHelp}},
		{"?", Command{Op: OpHelp}},
		{"ans", Command{Op: OpAns}},
		{"Ans", Command{Op: OpAns}},
		{"history", Command{Op: OpHistory}},
		{"clear", Command{Op: OpClear}},
		{"mode deg", Command{Op: OpSetMode, Arg: "deg"}},
		{"MODE   RAD", Command{Op: OpSetMode, Arg: "rad"}},
		{"mode deg extra", Command{Op: OpSetMode, Arg: "deg"}},
		{"mode xyz", Command{Op: OpSetMode, Arg: "xyz"}},
		{"mode", Command{Op: OpSetMode}},
		{"modes(1)", Command{Op: OpEvaluate, Arg: "modes(1)"}},
		{"ans + 1", Command{Op: OpEvaluate, Arg: "ans + 1"}},
		{"  sin(PI) ", Command{Op: OpEvaluate, Arg: "sin(PI)"}},
		{"exit now", Command{Op: OpEvaluate, Arg: "exit now"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"rad", ModeRad, false},
		{"deg", ModeDeg, false},
		{" DEG ", ModeDeg, false},
		{"grad", DefaultMode, true},
		{"", DefaultMode, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMode_TextRoundTrip(t *testing.T) {
	var m Mode

	if err := m.UnmarshalText([]byte("deg")); err != nil {
		t.Fatal(err)
	}

	b, err := m.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	if string(b) != "deg" {
		t.Errorf("MarshalText() = %q, want deg", b)
	}

	if err := m.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for bogus mode")
	}

	if m != ModeDeg {
		t.Errorf("failed unmarshal changed mode to %v", m)
	}
}
