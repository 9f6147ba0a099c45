package action

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownAction = errors.New("unknown action")

// Action is something a shortcut can trigger.
type Action int

const (
	ImageCapture Action = iota
	GifCapture
)

func (a Action) String() string {
	switch a {
	case ImageCapture:
		return "image"
	case GifCapture:
		return "gif"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Parse converts a configured action name ("image", "gif") to an Action.
func Parse(name string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "image", "png", "still":
		return ImageCapture, nil
	case "gif", "animation":
		return GifCapture, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}

// Context is the capture device an action runs against.
type Context interface {
	CaptureImage() (string, error)
	CaptureGIF() (string, error)
}

// Execute runs a against ctx and returns the path of the written file.
func Execute(a Action, ctx Context) (string, error) {
	switch a {
	case ImageCapture:
		return ctx.CaptureImage()
	case GifCapture:
		return ctx.CaptureGIF()
	default:
		return "", fmt.Errorf("%w: %v", ErrUnknownAction, a)
	}
}
