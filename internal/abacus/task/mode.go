package task

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the kind of practice task.
type Mode int

const (
	ModeUnspecified Mode = iota
	ModeIdentity
	ModeAddition
	ModeSubtraction
)

func (m Mode) String() string {
	switch m {
	case ModeIdentity:
		return "identity"
	case ModeAddition:
		return "addition"
	case ModeSubtraction:
		return "subtraction"
	default:
		return "unspecified"
	}
}

// Arithmetic reports whether the mode shows two operand abacuses.
func (m Mode) Arithmetic() bool {
	return m == ModeAddition || m == ModeSubtraction
}

// Modes lists the selectable modes in display order.
func Modes() []Mode {
	return []Mode{ModeIdentity, ModeAddition, ModeSubtraction}
}

// ModeNames returns the names of Modes, in display order.
func ModeNames() []string {
	modes := Modes()
	names := make([]string, len(modes))
	for i, mode := range modes {
		names[i] = mode.String()
	}
	return names
}

// ErrInvalidMode indicates a mode label could not be parsed.
var ErrInvalidMode = errors.New("mode must be identity, addition or subtraction")

// ParseMode parses a mode label. "normal" is accepted for identity, and the
// short forms "add" and "sub" for the arithmetic modes.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "identity", "normal":
		return ModeIdentity, nil
	case "addition", "add":
		return ModeAddition, nil
	case "subtraction", "sub":
		return ModeSubtraction, nil
	default:
		return ModeUnspecified, fmt.Errorf("%w: %q", ErrInvalidMode, value)
	}
}
