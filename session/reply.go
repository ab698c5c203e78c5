package session

import (
	"strings"
)

// Kind classifies a line of output so front-ends can style it.
type Kind int

const (
	KindPlain   Kind = iota // plain
	KindInfo                // info
	KindSuccess             // success
	KindResult              // result
	KindWarning             // warning
	KindFailure             // failure
)

// Line is one line of output.
type Line struct {
	Kind Kind
	Text string
}

// Reply is the output of executing one command.
type Reply struct {
	Lines []Line
	// Quit is set when the loop should terminate.
	Quit bool
}

func (r *Reply) add(kind Kind, text string) {
	for l := range strings.SplitSeq(text, "\n") {
		r.Lines = append(r.Lines, Line{Kind: kind, Text: l})
	}
}

// String joins the text of all lines with newlines.
func (r Reply) String() string {
	var sb strings.Builder

	for i, l := range r.Lines {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(l.Text)
	}

	return sb.String()
}
