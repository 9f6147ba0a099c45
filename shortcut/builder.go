package shortcut

import (
	"chordcap/keys"
)

type binding struct {
	chord    string
	callback Callback
}

// Builder accumulates shortcuts. It has value semantics: every With method
// returns a new Builder and leaves the receiver untouched, so a partially
// configured Builder can be reused as a template.
type Builder struct {
	symbols  *keys.Table
	bindings []binding
	policy   MismatchPolicy
}

// NewBuilder returns a Builder resolving key names through symbols.
func NewBuilder(symbols *keys.Table) Builder {
	return Builder{symbols: symbols}
}

// WithShortcut adds a chord and the callback to run when it completes.
func (b Builder) WithShortcut(chord string, callback Callback) Builder {
	bindings := make([]binding, len(b.bindings), len(b.bindings)+1)
	copy(bindings, b.bindings)
	b.bindings = append(bindings, binding{chord: chord, callback: callback})
	return b
}

// WithMismatchPolicy selects how unmatched keys are treated.
func (b Builder) WithMismatchPolicy(policy MismatchPolicy) Builder {
	b.policy = policy
	return b
}

// Len returns the number of shortcuts added so far.
func (b Builder) Len() int { return len(b.bindings) }

// Build compiles every shortcut into one table. If any chord fails to
// compile no Recognizer is returned.
func (b Builder) Build() (*Recognizer, error) {
	if b.symbols == nil {
		return nil, ErrNoSymbols
	}

	compiled := make([]compiledChord, 0, len(b.bindings))
	for _, sb := range b.bindings {
		if sb.callback == nil {
			return nil, &BuildError{Chord: sb.chord, Err: ErrNilCallback}
		}
		c, err := compile(b.symbols, sb.chord)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, c)
	}

	table := newTable()
	for i, c := range compiled {
		table.insert(c, b.bindings[i].callback)
	}

	return &Recognizer{
		table:   table,
		current: Empty(),
		policy:  b.policy,
	}, nil
}
