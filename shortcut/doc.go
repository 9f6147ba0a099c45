// Package shortcut recognizes multi-key chords such as "Ctrl+Alt+Key1" in a
// stream of key presses.
//
// A Builder collects chord strings with their callbacks and compiles them
// into one shared transition table:
//
//	rec, err := shortcut.NewBuilder(keys.Default()).
//		WithShortcut("Ctrl+Alt+Key1", captureImage).
//		WithShortcut("Ctrl+Alt+Key2", captureGIF).
//		Build()
//
// The resulting Recognizer is a deterministic state machine fed one token at
// a time through Consume. Chords that share a prefix share the intermediate
// states for that prefix, so typing "Ctrl", "Alt" once serves both chords
// above. When the last key of a chord arrives its callback runs synchronously
// and the machine returns to the Empty state.
//
// Keys with no transition from the current state are ignored by default: the
// state is held and a later correct continuation still completes the chord.
// MismatchReset switches to restarting from Empty instead.
//
// A Recognizer is not safe for concurrent use. Callbacks must not call
// Consume on the recognizer that invoked them.
package shortcut
