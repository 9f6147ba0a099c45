package hotkey

import (
	"context"
	"testing"
	"time"

	gohook "github.com/robotn/gohook"

	"chordcap/keys"
)

func TestTokenForRawcode(t *testing.T) {
	tests := []struct {
		rawcode  uint16
		expected keys.Token
	}{
		// Modifier keys
		{162, keys.TokenCtrl},
		{163, keys.TokenCtrl},
		{164, keys.TokenAlt},
		{165, keys.TokenAlt},
		{160, keys.TokenShift},
		{91, keys.TokenWin},
		{92, keys.TokenWin},

		// Number keys
		{48, keys.TokenKey0},
		{49, keys.TokenKey1},
		{57, keys.TokenKey9},

		// Letter keys
		{65, keys.TokenA},
		{81, keys.TokenQ},
		{90, keys.TokenZ},

		// Function keys
		{112, keys.TokenF1},
		{123, keys.TokenF12},
		{135, keys.TokenF24},

		// Special keys
		{32, keys.TokenSpace},
		{13, keys.TokenEnter},
		{27, keys.TokenEscape},
		{44, keys.TokenPrintScreen},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			tok, ok := TokenForRawcode(tt.rawcode)
			if !ok {
				t.Fatalf("TokenForRawcode(%d) not found", tt.rawcode)
			}
			if tok != tt.expected {
				t.Errorf("TokenForRawcode(%d) = %v, expected %v", tt.rawcode, tok, tt.expected)
			}
		})
	}

	if tok, ok := TokenForRawcode(255); ok {
		t.Errorf("TokenForRawcode(255) = %v, expected not found", tok)
	}
}

func collect(t *testing.T, events []gohook.Event) []keys.Token {
	t.Helper()
	in := make(chan gohook.Event, len(events))
	for _, ev := range events {
		in <- ev
	}
	close(in)

	out := make(chan keys.Token, len(events))
	done := make(chan struct{})
	go func() {
		forward(context.Background(), in, out)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("forward did not return after the event channel closed")
	}
	close(out)

	var toks []keys.Token
	for tok := range out {
		toks = append(toks, tok)
	}
	return toks
}

func TestForwardTranslatesPresses(t *testing.T) {
	toks := collect(t, []gohook.Event{
		{Kind: gohook.KeyHold, Rawcode: 162},
		{Kind: gohook.KeyHold, Rawcode: 164},
		{Kind: gohook.KeyHold, Rawcode: 49},
		{Kind: gohook.KeyDown, Rawcode: 49},
		{Kind: gohook.KeyUp, Rawcode: 49},
		{Kind: gohook.KeyUp, Rawcode: 164},
		{Kind: gohook.KeyUp, Rawcode: 162},
	})

	expected := []keys.Token{keys.TokenCtrl, keys.TokenAlt, keys.TokenKey1}
	if len(toks) != len(expected) {
		t.Fatalf("forwarded %v, expected %v", toks, expected)
	}
	for i := range expected {
		if toks[i] != expected[i] {
			t.Errorf("token %d = %v, expected %v", i, toks[i], expected[i])
		}
	}
}

func TestForwardSkipsUnknownAndMouse(t *testing.T) {
	toks := collect(t, []gohook.Event{
		{Kind: gohook.MouseDown, Rawcode: 1},
		{Kind: gohook.KeyHold, Rawcode: 255},
		{Kind: gohook.KeyDown, Rawcode: 65},
	})
	if len(toks) != 1 || toks[0] != keys.TokenA {
		t.Errorf("forwarded %v, expected [A]", toks)
	}
}

func TestForwardStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan gohook.Event)
	out := make(chan keys.Token)
	done := make(chan bool, 1)
	go func() {
		done <- forward(ctx, in, out)
	}()

	cancel()
	select {
	case ok := <-done:
		if !ok {
			t.Error("forward reported a closed hook after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("forward did not stop after cancel")
	}
}

func TestForwardReportsClosedHook(t *testing.T) {
	in := make(chan gohook.Event)
	close(in)
	if forward(context.Background(), in, make(chan keys.Token)) {
		t.Error("forward should report false when the hook closes its channel")
	}
}
