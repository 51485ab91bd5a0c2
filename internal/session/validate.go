package session

import (
	"errors"
	"fmt"
	"strings"
)

// MaxNameLen is the longest accepted session name.
const MaxNameLen = 64

// ErrInvalidName is wrapped by every ValidateName failure.
var ErrInvalidName = errors.New("invalid mockchat session name")

// ValidateName checks that name can be used as a session directory: 1 to
// MaxNameLen characters from a-z, 0-9, '-' and '_'.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case len(name) > MaxNameLen:
		return fmt.Errorf("%w: %d bytes, at most %d allowed", ErrInvalidName, len(name), MaxNameLen)
	}
	if i := strings.IndexFunc(name, func(r rune) bool { return !nameRune(r) }); i >= 0 {
		return fmt.Errorf("%w %q: character %q not allowed (use a-z, 0-9, - and _)", ErrInvalidName, name, []rune(name[i:])[0])
	}
	return nil
}

func nameRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_'
}
