package session

import (
	"strings"

	"github.com/ardnew/sci/calc"
)

// Mode is the unit in which trigonometric arguments are interpreted.
type Mode int

const (
	ModeRad Mode = iota // rad
	ModeDeg             // deg
)

// DefaultMode is the angle mode of a new session.
const DefaultMode = ModeRad

// Modes returns the names of all modes.
func Modes() []string {
	return []string{ModeRad.String(), ModeDeg.String()}
}

// ParseMode parses a mode name case-insensitively. Unknown names wrap
// [calc.ErrUsage].
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ModeRad.String():
		return ModeRad, nil
	case ModeDeg.String():
		return ModeDeg, nil
	default:
		return DefaultMode, calc.ErrUsage.Wrapf("unknown mode " + quoteOrMissing(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for flag and config
// decoding.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}

	*m = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func quoteOrMissing(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(missing)"
	}

	return "'" + s + "'"
}
