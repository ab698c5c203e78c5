package session

import (
	"strings"
	"unicode"
)

// Op identifies the action of a [Command].
type Op int

const (
	OpNone     Op = iota // none
	OpSetMode            // mode
	OpHelp               // help
	OpAns                // ans
	OpHistory            // history
	OpClear              // clear
	OpExit               // exit
	OpEvaluate           // evaluate
)

// Command is one classified input line.
type Command struct {
	Op Op
	// Arg is the requested unit for OpSetMode and the expression text for
	// OpEvaluate. It is empty for every other Op.
	Arg string
}

// Keywords returns the command words recognized by [Classify], for help
// output and completion.
func Keywords() []string {
	return []string{"mode deg", "mode rad", "ans", "history", "clear", "help", "?", "exit", "quit"}
}

// Classify maps an input line to a [Command]. Surrounding whitespace is
// ignored and command words match case-insensitively. Expression text keeps
// its original case.
func Classify(line string) Command {
	text := strings.TrimSpace(line)
	word := strings.ToLower(text)

	switch word {
	case "":
		return Command{Op: OpNone}
	case "exit", "quit":
		return Command{Op: OpExit}
	case "help", "?":
		return Command{Op: OpHelp}
	case "ans":
		return Command{Op: OpAns}
	case "history":
		return Command{Op: OpHistory}
	case "clear":
		return Command{Op: OpClear}
	}

	if rest, ok := strings.CutPrefix(word, "mode"); ok &&
		(rest == "" || unicode.IsSpace(rune(rest[0]))) {
		var unit string

		if f := strings.Fields(rest); len(f) > 0 {
			unit = f[0]
		}

		return Command{Op: OpSetMode, Arg: unit}
	}

	return Command{Op: OpEvaluate, Arg: text}
}
