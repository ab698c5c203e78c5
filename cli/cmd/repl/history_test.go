package repl

import (
	"errors"
	"slices"
	"testing"
)

func TestHistory_Write(t *testing.T) {
	h := NewHistory()

	for _, line := range []string{"1+1", "  ", "sin(30)", "sin(30)", " 1+1 ", "help"} {
		if _, err := h.Write(line); err != nil {
			t.Fatalf("Write(%q): %v", line, err)
		}
	}

	want := []string{"sin(30)", "1+1", "help"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %q, want %q", got, want)
	}

	if h.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", h.Len(), len(want))
	}
}

func TestHistory_GetLine(t *testing.T) {
	h := NewHistory()
	_, _ = h.Write("2^10")

	if line, err := h.GetLine(0); err != nil || line != "2^10" {
		t.Errorf("GetLine(0) = (%q, %v), want (\"2^10\", nil)", line, err)
	}

	for _, i := range []int{-1, 1} {
		if _, err := h.GetLine(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("GetLine(%d) error = %v, want ErrOutOfBounds", i, err)
		}
	}
}
