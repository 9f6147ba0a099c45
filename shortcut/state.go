package shortcut

import "fmt"

// Kind tags the variant held by a State.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindPartial
	KindAccept
	// KindError is never produced by the recognizer; see MismatchPolicy.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindPartial:
		return "Partial"
	case KindAccept:
		return "Accept"
	case KindError:
		return "Error"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// State is a recognizer state. States are comparable and used as table keys.
// Partial states carry the sequence id of the prefix consumed so far, which
// is the consumed key names joined with the chord delimiter ("Ctrl+Alt").
type State struct {
	kind Kind
	seq  string
}

// Empty returns the idle state.
func Empty() State { return State{kind: KindEmpty} }

// Partial returns the intermediate state for the given sequence id.
func Partial(seq string) State { return State{kind: KindPartial, seq: seq} }

// Accept returns the shared terminal state.
func Accept() State { return State{kind: KindAccept} }

// Error returns the error state.
func Error() State { return State{kind: KindError} }

func (s State) Kind() Kind { return s.kind }

// Seq returns the sequence id of a Partial state and "" otherwise.
func (s State) Seq() string { return s.seq }

func (s State) String() string {
	if s.kind == KindPartial {
		return fmt.Sprintf("Partial(%s)", s.seq)
	}
	return s.kind.String()
}
