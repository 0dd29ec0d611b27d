//go:build linux

package linux

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/shotwatch/shotwatch/internal/platform"
)

// window is the X11 implementation of platform.Window, wrapping an xdotool
// window ID.
type window struct {
	id    string
	title string
	run   runner
}

func (w *window) Title() string { return w.title }

func (w *window) Bounds() (platform.Bounds, error) {
	l := Locator{run: w.run}
	return l.windowGeometry(w.id)
}

// IsMinimized always reports false: xdotool's visible-only search already
// excluded iconified windows when the handle was created.
func (w *window) IsMinimized() bool { return false }

func (w *window) Restore() error { return w.Activate() }

func (w *window) Activate() error {
	if _, err := w.run("xdotool", "windowactivate", w.id); err != nil {
		return fmt.Errorf("xdotool windowactivate %s: %w", w.id, err)
	}
	return nil
}

// CaptureSurface shells out to ImageMagick's import to grab just this
// window, then decodes the temporary PNG. Implements
// platform.SurfaceCapturer.
func (w *window) CaptureSurface() (image.Image, error) {
	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("shotwatch_window_%s.png", w.id))
	defer os.Remove(tmp)

	if _, err := w.run("import", "-window", w.id, tmp); err != nil {
		return nil, fmt.Errorf("import -window %s: %w", w.id, err)
	}
	f, err := os.Open(tmp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode window capture: %w", err)
	}
	return img, nil
}
