package hotkey

import (
	"chordcap/keys"
)

// rawcodeTokens maps Windows virtual-key rawcodes reported by the keyboard
// hook to key tokens. Left and right modifier variants share one token.
var rawcodeTokens = map[uint16]keys.Token{
	// Modifier keys - both left and right variants
	162: keys.TokenCtrl,  // VK_LCONTROL
	163: keys.TokenCtrl,  // VK_RCONTROL
	164: keys.TokenAlt,   // VK_LMENU
	165: keys.TokenAlt,   // VK_RMENU
	160: keys.TokenShift, // VK_LSHIFT
	161: keys.TokenShift, // VK_RSHIFT
	91:  keys.TokenWin,   // VK_LWIN
	92:  keys.TokenWin,   // VK_RWIN
	17:  keys.TokenCtrl,  // VK_CONTROL
	18:  keys.TokenAlt,   // VK_MENU
	16:  keys.TokenShift, // VK_SHIFT

	// Common special keys
	32: keys.TokenSpace,       // VK_SPACE
	13: keys.TokenEnter,       // VK_RETURN
	27: keys.TokenEscape,      // VK_ESCAPE
	9:  keys.TokenTab,         // VK_TAB
	8:  keys.TokenBackspace,   // VK_BACK
	46: keys.TokenDelete,      // VK_DELETE
	45: keys.TokenInsert,      // VK_INSERT
	36: keys.TokenHome,        // VK_HOME
	35: keys.TokenEnd,         // VK_END
	33: keys.TokenPageUp,      // VK_PRIOR
	34: keys.TokenPageDown,    // VK_NEXT
	44: keys.TokenPrintScreen, // VK_SNAPSHOT

	// Arrow keys
	37: keys.TokenLeft,  // VK_LEFT
	38: keys.TokenUp,    // VK_UP
	39: keys.TokenRight, // VK_RIGHT
	40: keys.TokenDown,  // VK_DOWN
}

func init() {
	// Number keys (0-9) - VK codes 0x30-0x39 (48-57)
	for i := uint16(0); i <= 9; i++ {
		rawcodeTokens[48+i] = keys.TokenKey0 + keys.Token(i)
	}
	// Letter keys (A-Z) - VK codes 0x41-0x5A (65-90)
	for i := uint16(0); i < 26; i++ {
		rawcodeTokens[65+i] = keys.TokenA + keys.Token(i)
	}
	// Function keys (F1-F24) - VK codes 0x70-0x87 (112-135)
	for i := uint16(0); i < 24; i++ {
		rawcodeTokens[112+i] = keys.TokenF1 + keys.Token(i)
	}
}

// TokenForRawcode translates a Windows virtual-key rawcode to a key token.
func TokenForRawcode(rawcode uint16) (keys.Token, bool) {
	tok, ok := rawcodeTokens[rawcode]
	return tok, ok
}
