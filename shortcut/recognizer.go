package shortcut

import (
	"log"

	"chordcap/keys"
)

// MismatchPolicy decides what happens when a key has no transition from the
// current state.
type MismatchPolicy int

const (
	// MismatchIgnore holds the current state, so unrelated keys pressed in
	// the middle of a chord do not abort it.
	MismatchIgnore MismatchPolicy = iota
	// MismatchReset returns to Empty and retries the key from there, so the
	// key may begin a new chord.
	MismatchReset
)

func (p MismatchPolicy) String() string {
	switch p {
	case MismatchIgnore:
		return "ignore"
	case MismatchReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Recognizer owns a compiled table and the current state.
type Recognizer struct {
	table   *Table
	current State
	policy  MismatchPolicy
}

// Consume feeds one key press to the machine. If the key completes a chord
// the chord's callback runs before Consume returns and the machine resets to
// Empty; Consume then reports true.
func (r *Recognizer) Consume(tok keys.Token) bool {
	tr, ok := r.table.Lookup(r.current, tok)
	if !ok {
		if r.policy == MismatchReset && r.current.kind != KindEmpty {
			r.Reset()
			return r.Consume(tok)
		}
		return false
	}

	r.current = tr.Next
	accepted := r.current.kind == KindAccept
	if accepted {
		// Reset even if the callback panics.
		defer r.Reset()
	}
	if tr.Callback != nil {
		log.Printf("Shortcut matched: %s", tr.Chord)
		tr.Callback()
	}
	return accepted
}

// Reset abandons any partially typed chord.
func (r *Recognizer) Reset() {
	r.current = Empty()
}

// State returns the current state.
func (r *Recognizer) State() State { return r.current }

// Table returns the compiled transition table.
func (r *Recognizer) Table() *Table { return r.table }

// Policy returns the mismatch policy the recognizer was built with.
func (r *Recognizer) Policy() MismatchPolicy { return r.policy }
