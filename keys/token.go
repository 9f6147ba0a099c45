// Package keys defines the key tokens consumed by the shortcut recognizer
// and the symbol table that maps human-readable key names onto them.
//
// Tokens are private to chordcap: the host adapts its native key codes
// (for example Windows virtual-key rawcodes from the keyboard hook) into
// Token values at the boundary.
package keys

import "fmt"

// Token identifies one physical key.
type Token uint16

const (
	TokenNone Token = iota

	// Modifiers
	TokenCtrl
	TokenAlt
	TokenShift
	TokenWin

	// Digit row
	TokenKey0
	TokenKey1
	TokenKey2
	TokenKey3
	TokenKey4
	TokenKey5
	TokenKey6
	TokenKey7
	TokenKey8
	TokenKey9

	// Letters
	TokenA
	TokenB
	TokenC
	TokenD
	TokenE
	TokenF
	TokenG
	TokenH
	TokenI
	TokenJ
	TokenK
	TokenL
	TokenM
	TokenN
	TokenO
	TokenP
	TokenQ
	TokenR
	TokenS
	TokenT
	TokenU
	TokenV
	TokenW
	TokenX
	TokenY
	TokenZ

	// Function keys
	TokenF1
	TokenF2
	TokenF3
	TokenF4
	TokenF5
	TokenF6
	TokenF7
	TokenF8
	TokenF9
	TokenF10
	TokenF11
	TokenF12
	TokenF13
	TokenF14
	TokenF15
	TokenF16
	TokenF17
	TokenF18
	TokenF19
	TokenF20
	TokenF21
	TokenF22
	TokenF23
	TokenF24

	// Special keys
	TokenSpace
	TokenEnter
	TokenEscape
	TokenTab
	TokenBackspace
	TokenDelete
	TokenInsert
	TokenHome
	TokenEnd
	TokenPageUp
	TokenPageDown
	TokenLeft
	TokenUp
	TokenRight
	TokenDown
	TokenPrintScreen

	tokenCount
)

// String returns the canonical name of the token, the same name Default
// registers it under.
func (t Token) String() string {
	switch {
	case t >= TokenKey0 && t <= TokenKey9:
		return fmt.Sprintf("Key%d", t-TokenKey0)
	case t >= TokenA && t <= TokenZ:
		return string(rune('A' + (t - TokenA)))
	case t >= TokenF1 && t <= TokenF24:
		return fmt.Sprintf("F%d", t-TokenF1+1)
	}

	switch t {
	case TokenNone:
		return "None"
	case TokenCtrl:
		return "Ctrl"
	case TokenAlt:
		return "Alt"
	case TokenShift:
		return "Shift"
	case TokenWin:
		return "Win"
	case TokenSpace:
		return "Space"
	case TokenEnter:
		return "Enter"
	case TokenEscape:
		return "Escape"
	case TokenTab:
		return "Tab"
	case TokenBackspace:
		return "Backspace"
	case TokenDelete:
		return "Delete"
	case TokenInsert:
		return "Insert"
	case TokenHome:
		return "Home"
	case TokenEnd:
		return "End"
	case TokenPageUp:
		return "PageUp"
	case TokenPageDown:
		return "PageDown"
	case TokenLeft:
		return "Left"
	case TokenUp:
		return "Up"
	case TokenRight:
		return "Right"
	case TokenDown:
		return "Down"
	case TokenPrintScreen:
		return "PrintScreen"
	default:
		return fmt.Sprintf("Token(%d)", uint16(t))
	}
}

// Valid reports whether t is a known, non-empty token.
func (t Token) Valid() bool {
	return t > TokenNone && t < tokenCount
}
