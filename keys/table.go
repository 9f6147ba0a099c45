package keys

import "sort"

// Table maps key names to tokens. It is immutable once built and safe to
// share between goroutines.
type Table struct {
	byName map[string]Token
}

// NewTable builds a table from the given name mapping. The map is copied,
// so later changes to it are not observed. Several names may map to the
// same token.
func NewTable(names map[string]Token) *Table {
	byName := make(map[string]Token, len(names))
	for name, tok := range names {
		byName[name] = tok
	}
	return &Table{byName: byName}
}

// Default returns the table of canonical key names ("Ctrl", "Alt", "Key1",
// "F13", ...). Every valid token is registered under its String name.
func Default() *Table {
	byName := make(map[string]Token, int(tokenCount))
	for t := TokenNone + 1; t < tokenCount; t++ {
		byName[t.String()] = t
	}
	return &Table{byName: byName}
}

// Lookup returns the token registered for name. Names are case-sensitive.
func (t *Table) Lookup(name string) (Token, bool) {
	if t == nil {
		return TokenNone, false
	}
	tok, ok := t.byName[name]
	return tok, ok
}

// Names returns every registered name in sorted order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered names.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byName)
}
