package hotkey

import (
	"context"
	"errors"
	"log"

	gohook "github.com/robotn/gohook"

	"chordcap/keys"
)

var ErrHookUnavailable = errors.New("keyboard hook unavailable")

// Listen starts the global keyboard hook and sends one token per key press
// to out until ctx is cancelled, returning nil, or the hook closes its channel,
// returning ErrHookUnavailable. It blocks; callers run it on its own goroutine.
//
// Key releases are only used to tell auto-repeat apart from presses of a new
// key; no up/down state is forwarded.
func Listen(ctx context.Context, out chan<- keys.Token) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in hotkey listener: %v", r)
			err = ErrHookUnavailable
		}
	}()

	log.Printf("Starting gohook event loop...")
	evChan := gohook.Start()
	if evChan == nil {
		return ErrHookUnavailable
	}
	defer gohook.End()
	log.Printf("gohook.Start() returned channel successfully")

	if !forward(ctx, evChan, out) {
		return ErrHookUnavailable
	}
	log.Printf("Hotkey listener stopped")
	return nil
}

// forward translates hook events into key tokens.
//
// The hook reports a press as KeyHold and, for keys that produce a
// character, a following KeyDown for the same rawcode; only the first of
// the pair is forwarded. It reports false if events was closed before ctx
// was cancelled.
func forward(ctx context.Context, events <-chan gohook.Event, out chan<- keys.Token) bool {
	var lastHeld uint16
	held := false

	for {
		select {
		case <-ctx.Done():
			return true
		case ev, ok := <-events:
			if !ok {
				log.Printf("Event channel closed")
				return false
			}

			switch ev.Kind {
			case gohook.KeyHold:
				lastHeld, held = ev.Rawcode, true
			case gohook.KeyDown:
				if held && ev.Rawcode == lastHeld {
					continue
				}
			case gohook.KeyUp:
				if held && ev.Rawcode == lastHeld {
					held = false
				}
				continue
			default:
				continue
			}

			tok, ok := TokenForRawcode(ev.Rawcode)
			if !ok {
				continue
			}
			select {
			case out <- tok:
			case <-ctx.Done():
				return true
			}
		}
	}
}
