package shortcut

import (
	"errors"
	"fmt"
)

// Build errors
var (
	ErrUnknownKey   = errors.New("unknown key")
	ErrEmptyChord   = errors.New("empty chord")
	ErrInvalidChord = errors.New("invalid chord")
	ErrNilCallback  = errors.New("nil callback")
	ErrNoSymbols    = errors.New("no symbol table")
)

// BuildError reports the chord that failed to compile.
type BuildError struct {
	Chord string
	// Key is the offending key name, if any.
	Key string
	Err error
}

func (e *BuildError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("shortcut %q: %v %q", e.Chord, e.Err, e.Key)
	}
	return fmt.Sprintf("shortcut %q: %v", e.Chord, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }
