package shortcut

import (
	"strings"

	"chordcap/keys"
)

// Delimiter separates key names in a chord string.
const Delimiter = "+"

type compiledChord struct {
	chord  string
	tokens []keys.Token
	// states[i] is the state reached after consuming tokens[i].
	states []State
}

// ParseChord splits a chord string such as "Ctrl+Alt+Key1" into its key
// names. Names are not trimmed or case-folded.
func ParseChord(chord string) ([]string, error) {
	if chord == "" {
		return nil, &BuildError{Chord: chord, Err: ErrEmptyChord}
	}
	names := strings.Split(chord, Delimiter)
	for _, name := range names {
		if name == "" {
			return nil, &BuildError{Chord: chord, Err: ErrInvalidChord}
		}
	}
	return names, nil
}

// compile resolves every key name of chord before anything is inserted, so a
// chord with an unknown key leaves no rows behind.
func compile(symbols *keys.Table, chord string) (compiledChord, error) {
	names, err := ParseChord(chord)
	if err != nil {
		return compiledChord{}, err
	}

	c := compiledChord{
		chord:  chord,
		tokens: make([]keys.Token, len(names)),
		states: make([]State, len(names)),
	}

	var seq strings.Builder
	for i, name := range names {
		tok, ok := symbols.Lookup(name)
		if !ok {
			return compiledChord{}, &BuildError{Chord: chord, Key: name, Err: ErrUnknownKey}
		}
		c.tokens[i] = tok

		if i > 0 {
			seq.WriteString(Delimiter)
		}
		seq.WriteString(tok.String())

		if i == len(names)-1 {
			c.states[i] = Accept()
		} else {
			c.states[i] = Partial(seq.String())
		}
	}
	return c, nil
}
