package eventloop

import (
	"fmt"

	"chordcap/action"
	"chordcap/config"
	"chordcap/keys"
	"chordcap/shortcut"
)

// Compile builds a recognizer whose chords dispatch their bound action.
func Compile(symbols *keys.Table, bindings []config.Binding, policy shortcut.MismatchPolicy, dispatch func(action.Action)) (*shortcut.Recognizer, error) {
	if len(bindings) == 0 {
		return nil, config.ErrNoBindings
	}

	b := shortcut.NewBuilder(symbols).WithMismatchPolicy(policy)
	for _, binding := range bindings {
		a, err := action.Parse(binding.Action)
		if err != nil {
			return nil, fmt.Errorf("shortcut %q: %w", binding.Chord, err)
		}
		b = b.WithShortcut(binding.Chord, func() { dispatch(a) })
	}
	return b.Build()
}
