package profile

import (
	"slices"
	"testing"
)

func TestProfiler_Start_EmptyModeIsNoop(t *testing.T) {
	s := Profiler{}.Start()

	if _, ok := s.(ignore); !ok {
		t.Fatalf("expected no-op stopper, got %T", s)
	}

	s.Stop()
	s.Stop()
}

func TestProfiler_Start_UnknownModeIsNoop(t *testing.T) {
	p := Profiler{Mode: "bogus", Path: t.TempDir(), Quiet: true}

	if p.Enabled() {
		t.Error("expected unknown mode to be disabled")
	}

	if _, ok := p.Start().(ignore); !ok {
		t.Error("expected no-op stopper for unknown mode")
	}
}

func TestModes_SortedAndSupported(t *testing.T) {
	modes := Modes()

	if !slices.IsSorted(modes) {
		t.Errorf("modes not sorted: %v", modes)
	}

	for _, m := range modes {
		if !(Profiler{Mode: m}).Enabled() {
			t.Errorf("listed mode %q is not enabled", m)
		}
	}
}
