// Package capture produces screenshot files for a named application using a
// layered fallback of capture methods.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kbinani/screenshot"
	"github.com/shotwatch/shotwatch/internal/platform"
	"golang.org/x/image/draw"
)

// Settle delays and crop margins. Empirically tuned against common window
// managers; kept as constants rather than derived values.
const (
	// DirectSettle is the wait after foregrounding a window before blitting
	// its surface.
	DirectSettle = 1 * time.Second

	// RegionSettle is the longer wait before reading window geometry for a
	// region capture, since activation may still be animating.
	RegionSettle = 1500 * time.Millisecond

	// BorderMargin is shaved off every side of a region capture to exclude
	// window border chrome.
	BorderMargin = 8

	// TitleBarMargin is additionally shaved off the top to exclude the
	// title bar.
	TitleBarMargin = 30
)

// Capture method names, recorded in results for observability.
const (
	MethodDirect     = "direct window capture"
	MethodRegion     = "window region capture"
	MethodFullScreen = "full screen capture"
)

// DefaultDir is where screenshot files are written.
const DefaultDir = "screenshots"

// Result is the outcome of one capture. Path is empty only when the capture
// failed outright (unrecoverable I/O error); Message always explains what
// happened.
type Result struct {
	Path    string
	Method  string
	Message string
}

// Capturer runs the capture fallback chain. The grab functions, sleep, and
// clock default to the real implementations and are swappable in tests.
type Capturer struct {
	Locator platform.Locator

	// Dir is the output directory, created on demand.
	Dir string

	// Scale in (0,1) downscales captures before encoding; 0 or 1 keeps
	// full resolution.
	Scale float64

	Sleep       func(time.Duration)
	GrabRect    func(image.Rectangle) (image.Image, error)
	GrabDisplay func() (image.Image, error)
	Now         func() time.Time
}

// New creates a Capturer with real grabbers backed by the screenshot
// library.
func New(locator platform.Locator) *Capturer {
	return &Capturer{
		Locator: locator,
		Dir:     DefaultDir,
		Sleep:   time.Sleep,
		GrabRect: func(r image.Rectangle) (image.Image, error) {
			return screenshot.CaptureRect(r)
		},
		GrabDisplay: grabPrimaryDisplay,
		Now:         time.Now,
	}
}

func grabPrimaryDisplay() (image.Image, error) {
	if screenshot.NumActiveDisplays() <= 0 {
		return nil, fmt.Errorf("no active display found")
	}
	return screenshot.CaptureRect(screenshot.GetDisplayBounds(0))
}

// Capture locates the window for appName and runs the fallback chain:
// direct surface blit, then region capture of the shrunk window rectangle,
// then a full-screen grab. A missing window does not fail the capture; the
// full-screen fallback still produces a file and the message says why.
// The returned error is non-nil only for unrecoverable capture or I/O
// failures, in which case no file is left behind.
func (c *Capturer) Capture(appName string) (Result, error) {
	win, err := c.Locator.Locate(appName)
	if err != nil {
		if !errors.Is(err, platform.ErrNotFound) {
			return Result{Message: fmt.Sprintf("error locating %q: %v", appName, err)}, err
		}
		res, err := c.captureFullScreen(appName)
		if err != nil {
			return res, err
		}
		res.Message = fmt.Sprintf("application %q not found or not running; %s", appName, res.Message)
		return res, nil
	}

	// Method 1: direct window-surface blit, where the platform has one.
	if sc, ok := win.(platform.SurfaceCapturer); ok {
		_ = win.Activate()
		if win.IsMinimized() {
			_ = win.Restore()
		}
		c.Sleep(DirectSettle)
		if img, err := sc.CaptureSurface(); err == nil {
			path, err := c.save(appName, img)
			if err != nil {
				return Result{Message: fmt.Sprintf("error saving screenshot: %v", err)}, err
			}
			return Result{Path: path, Method: MethodDirect, Message: "used " + MethodDirect}, nil
		}
	}

	// Method 2: activate, re-read geometry, capture the shrunk screen
	// region.
	if win.IsMinimized() {
		_ = win.Restore()
	}
	_ = win.Activate()
	c.Sleep(RegionSettle)
	if b, err := win.Bounds(); err == nil {
		if r := ShrinkRegion(b); !r.Empty() {
			if img, err := c.GrabRect(r.Rect()); err == nil {
				path, err := c.save(appName, img)
				if err != nil {
					return Result{Message: fmt.Sprintf("error saving screenshot: %v", err)}, err
				}
				return Result{Path: path, Method: MethodRegion, Message: "used " + MethodRegion}, nil
			}
		}
	}

	// Method 3: full screen, the unconditional last resort.
	return c.captureFullScreen(appName)
}

func (c *Capturer) captureFullScreen(appName string) (Result, error) {
	img, err := c.GrabDisplay()
	if err != nil {
		return Result{Message: fmt.Sprintf("error capturing screen: %v", err)}, err
	}
	path, err := c.save(appName, img)
	if err != nil {
		return Result{Message: fmt.Sprintf("error saving screenshot: %v", err)}, err
	}
	return Result{Path: path, Method: MethodFullScreen, Message: "used " + MethodFullScreen}, nil
}

// ShrinkRegion trims border chrome and the title bar off a window
// rectangle. The result may be degenerate; the caller falls through to the
// next capture method in that case.
func ShrinkRegion(b platform.Bounds) platform.Bounds {
	return platform.Bounds{
		X:      b.X + BorderMargin,
		Y:      b.Y + BorderMargin + TitleBarMargin,
		Width:  b.Width - 2*BorderMargin,
		Height: b.Height - 2*BorderMargin - TitleBarMargin,
	}
}

// FileName returns the output path for a capture of appName at time ts.
func FileName(dir, appName string, ts time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("screenshot_%s_%s.png", appName, ts.Format("20060102_150405")))
}

// save encodes the image as PNG under the output directory, downscaling
// first when Scale is set. A failed encode leaves no file behind.
func (c *Capturer) save(appName string, img image.Image) (string, error) {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", c.Dir, err)
	}
	if c.Scale > 0 && c.Scale < 1 {
		img = downscale(img, c.Scale)
	}

	path := FileName(c.Dir, appName, c.Now())
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func downscale(img image.Image, scale float64) image.Image {
	b := img.Bounds()
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 || h < 1 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
