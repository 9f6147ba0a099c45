package screenshot

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kbinani/screenshot"
)

const (
	DefaultFrames     = 10
	DefaultFrameDelay = 100 * time.Millisecond
	fileTimeLayout    = "20060102-150405.000"
)

// Region represents a screen region to capture
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Bounds returns the region as an image rectangle.
func (r Region) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// ParseRegion parses "x,y,width,height".
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("invalid region %q: expected x,y,width,height", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Region{}, fmt.Errorf("invalid region %q: %w", s, err)
		}
		v[i] = n
	}
	r := Region{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	if r.Width <= 0 || r.Height <= 0 {
		return Region{}, fmt.Errorf("invalid region dimensions: width=%d, height=%d", r.Width, r.Height)
	}
	return r, nil
}

// RegionFromBounds converts an image rectangle to a Region.
func RegionFromBounds(b image.Rectangle) Region {
	return Region{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}
}

// Grabber captures the pixels inside bounds.
type Grabber func(bounds image.Rectangle) (*image.RGBA, error)

// Options configures a Device.
type Options struct {
	OutputDir string
	Display   int
	// Region, if set, is captured instead of the whole display.
	Region     *Region
	Frames     int
	FrameDelay time.Duration
	// OnImage, if set, receives the encoded PNG of every still capture,
	// e.g. to copy it to the clipboard.
	OnImage func(pngData []byte) error
}

// Device captures the configured display to files in OutputDir. It
// implements action.Context.
type Device struct {
	opts   Options
	grab   Grabber
	bounds func(display int) (image.Rectangle, error)
	now    func() time.Time
	sleep  func(time.Duration)
}

// NewDevice returns a Device backed by the screen.
func NewDevice(opts Options) *Device {
	if opts.Frames <= 0 {
		opts.Frames = DefaultFrames
	}
	if opts.FrameDelay <= 0 {
		opts.FrameDelay = DefaultFrameDelay
	}
	return &Device{
		opts:   opts,
		grab:   screenshot.CaptureRect,
		bounds: GetDisplayBounds,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// CaptureImage saves a PNG of the display and returns its path.
func (d *Device) CaptureImage() (string, error) {
	region, err := d.region()
	if err != nil {
		return "", err
	}
	data, err := captureRegion(d.grab, region)
	if err != nil {
		return "", err
	}

	path, err := d.write("png", data)
	if err != nil {
		return "", err
	}
	log.Printf("Screenshot: saved %dx%d image to %s", region.Width, region.Height, path)

	if d.opts.OnImage != nil {
		if err := d.opts.OnImage(data); err != nil {
			log.Printf("Screenshot: image hook failed: %v", err)
		}
	}
	return path, nil
}

// CaptureGIF records Frames frames FrameDelay apart, saves them as an
// animated GIF and returns its path.
func (d *Device) CaptureGIF() (string, error) {
	region, err := d.region()
	if err != nil {
		return "", err
	}

	anim := &gif.GIF{LoopCount: 0}
	delay := int(d.opts.FrameDelay / (10 * time.Millisecond))
	for i := 0; i < d.opts.Frames; i++ {
		if i > 0 {
			d.sleep(d.opts.FrameDelay)
		}
		img, err := d.grab(region.Bounds())
		if err != nil {
			return "", fmt.Errorf("failed to capture frame %d: %w", i, err)
		}
		frame := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(frame, img.Bounds(), img, img.Bounds().Min)
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return "", fmt.Errorf("failed to encode GIF: %w", err)
	}

	path, err := d.write("gif", buf.Bytes())
	if err != nil {
		return "", err
	}
	log.Printf("Screenshot: saved %d-frame GIF to %s", d.opts.Frames, path)
	return path, nil
}

func (d *Device) region() (Region, error) {
	if d.opts.Region != nil {
		return *d.opts.Region, nil
	}
	b, err := d.bounds(d.opts.Display)
	if err != nil {
		return Region{}, err
	}
	return RegionFromBounds(b), nil
}

func (d *Device) write(ext string, data []byte) (string, error) {
	if err := os.MkdirAll(d.opts.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	name := fmt.Sprintf("capture-%s.%s", d.now().Format(fileTimeLayout), ext)
	path := filepath.Join(d.opts.OutputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func captureRegion(grab Grabber, region Region) ([]byte, error) {
	// Validate region
	if region.Width <= 0 || region.Height <= 0 {
		return nil, fmt.Errorf("invalid region dimensions: width=%d, height=%d", region.Width, region.Height)
	}

	img, err := grab(region.Bounds())
	if err != nil {
		return nil, fmt.Errorf("failed to capture region: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// GetDisplayBounds returns the bounds of the given display.
func GetDisplayBounds(display int) (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	if display < 0 || display >= n {
		return image.Rectangle{}, fmt.Errorf("display %d out of range (%d active)", display, n)
	}
	return screenshot.GetDisplayBounds(display), nil
}
