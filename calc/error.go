package calc

//go:generate go tool stringer --linecomment --type Class --output class_string.go

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values). Every error returned by this package
// wraps exactly one of them; use [errors.Is] or [Classify] to dispatch.
var (
	ErrUsage          = NewError("use 'mode deg' or 'mode rad'")
	ErrSubstitution   = NewError("no previous answer available")
	ErrParse          = NewError("parse error")
	ErrDivisionByZero = NewError("division by zero is undefined")
	ErrDomain         = NewError("math domain error")
	ErrEvaluate       = NewError("evaluation failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	base  *Error      // Sentinel this error was derived from
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
//
// The message is "<msg>: <err>" when both are set, otherwise whichever one
// is present.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || (e.base != nil && e.base == t.root())
}

// Detail returns the wrapped cause without the sentinel message, or the
// empty string when there is none.
func (e *Error) Detail() string {
	if e.err == nil {
		return ""
	}

	return e.err.Error()
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
		base:  e.root(),
	}
}

// Wrapf is Wrap with a plain message as the cause.
func (e *Error) Wrapf(msg string) *Error {
	return e.Wrap(errors.New(msg))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
		base:  e.root(),
	}
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// Class is the category of a failed command.
type Class int

const (
	ClassNone           Class = iota // none
	ClassUsage                       // usage
	ClassSubstitution                // substitution
	ClassParse                       // parse
	ClassDivisionByZero              // division by zero
	ClassDomain                      // domain
	ClassEvaluate                    // evaluate
)

// Classify maps err onto its [Class]. A nil error is [ClassNone]; errors
// that match no sentinel are [ClassEvaluate].
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrUsage):
		return ClassUsage
	case errors.Is(err, ErrSubstitution):
		return ClassSubstitution
	case errors.Is(err, ErrParse):
		return ClassParse
	case errors.Is(err, ErrDivisionByZero):
		return ClassDivisionByZero
	case errors.Is(err, ErrDomain):
		return ClassDomain
	default:
		return ClassEvaluate
	}
}

// Sentinel returns the sentinel error of class c, or nil for [ClassNone].
func (c Class) Sentinel() *Error {
	switch c {
	case ClassUsage:
		return ErrUsage
	case ClassSubstitution:
		return ErrSubstitution
	case ClassParse:
		return ErrParse
	case ClassDivisionByZero:
		return ErrDivisionByZero
	case ClassDomain:
		return ErrDomain
	case ClassEvaluate:
		return ErrEvaluate
	default:
		return nil
	}
}
