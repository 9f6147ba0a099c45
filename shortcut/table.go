package shortcut

import (
	"fmt"
	"log"

	"chordcap/keys"
)

// Callback runs when a chord completes.
type Callback func()

// Transition is one row of the table. Only the row consuming the last key of
// a chord carries a Callback; Chord names the shortcut that owns it.
type Transition struct {
	Next     State
	Callback Callback
	Chord    string
}

// Table maps (state, token) pairs to transitions. All compiled chords share
// one table; it is never modified once the Recognizer is built.
type Table struct {
	rows     map[State]map[keys.Token]Transition
	warnings []string
}

func newTable() *Table {
	return &Table{
		rows: map[State]map[keys.Token]Transition{
			Empty(): {},
		},
	}
}

// Lookup returns the transition for tok from state s.
func (t *Table) Lookup(s State, tok keys.Token) (Transition, bool) {
	row, ok := t.rows[s]
	if !ok {
		return Transition{}, false
	}
	tr, ok := row[tok]
	return tr, ok
}

// Len returns the total number of (state, token) rows.
func (t *Table) Len() int {
	n := 0
	for _, row := range t.rows {
		n += len(row)
	}
	return n
}

// States returns the number of states with at least one outgoing row.
func (t *Table) States() int {
	n := 0
	for _, row := range t.rows {
		if len(row) > 0 {
			n++
		}
	}
	return n
}

// Warnings lists chords that were redefined or shadowed while merging.
func (t *Table) Warnings() []string {
	out := make([]string, len(t.warnings))
	copy(out, t.warnings)
	return out
}

// insert adds the rows of a compiled chord, merging with rows already
// present. Intermediate rows are shared between chords with a common prefix.
func (t *Table) insert(c compiledChord, cb Callback) {
	from := Empty()
	last := len(c.tokens) - 1
	for i, tok := range c.tokens {
		tr := Transition{Next: c.states[i]}
		if i == last {
			tr.Callback = cb
			tr.Chord = c.chord
		}
		t.merge(from, tok, tr)
		from = c.states[i]
	}
}

func (t *Table) merge(from State, tok keys.Token, tr Transition) {
	row, ok := t.rows[from]
	if !ok {
		row = make(map[keys.Token]Transition)
		t.rows[from] = row
	}

	existing, ok := row[tok]
	if !ok {
		row[tok] = tr
		return
	}

	switch {
	case existing.Next.kind == KindPartial && tr.Next.kind == KindPartial:
		// Shared prefix: sequence ids are equal by construction.
	case existing.Next.kind == KindAccept && tr.Next.kind == KindAccept:
		t.warn("shortcut %q redefines %q, the later callback wins", tr.Chord, existing.Chord)
		row[tok] = tr
	case existing.Next.kind == KindAccept:
		t.warn("shortcut %q is a prefix of a longer chord and can never complete", existing.Chord)
		row[tok] = tr
	default:
		t.warn("shortcut %q is a prefix of a longer chord and can never complete", tr.Chord)
	}
}

func (t *Table) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("WARNING: %s", msg)
	t.warnings = append(t.warnings, msg)
}
