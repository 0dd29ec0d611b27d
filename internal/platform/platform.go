package platform

import (
	"errors"
	"image"

	"github.com/shotwatch/shotwatch/internal/model"
)

// ErrNotFound is returned by Locate when neither the window-title pass nor
// the process-name pass yields a window.
var ErrNotFound = errors.New("no matching window or process found")

// Window is an opaque reference to a located application window. A Window is
// created per capture attempt and discarded afterwards; it is never persisted.
type Window interface {
	// Title returns the window title at location time.
	Title() string

	// Bounds returns the current screen rectangle of the window. It is
	// re-read per call because activation and restore move windows.
	Bounds() (Bounds, error)

	// IsMinimized reports whether the window is currently iconified.
	IsMinimized() bool

	// Restore un-minimizes the window.
	Restore() error

	// Activate brings the window to the foreground.
	Activate() error
}

// SurfaceCapturer is an optional capability of a Window: a direct blit of
// the window's backing surface into an image, without touching the rest of
// the screen. Only implemented where the platform exposes a window device
// context or an equivalent compositor handle.
type SurfaceCapturer interface {
	CaptureSurface() (image.Image, error)
}

// Locator finds application windows on the current platform.
type Locator interface {
	// Locate finds a window for the given application name fragment.
	//
	// The name is matched case-insensitively as a substring against the
	// titles of visible, positively-sized top-level windows, preferring a
	// non-minimized match and falling back to the first match. If no
	// title matches, running
	// processes are compared by lowercase name (platform executable suffix
	// stripped) and the first visible titled window owned by a matching
	// process is returned. Returns ErrNotFound when both passes fail.
	Locate(appName string) (Window, error)

	// ListWindows returns all visible top-level windows with a title.
	ListWindows() ([]model.Window, error)

	// ListApplications returns a sorted, deduplicated list of running
	// application names, to help the user pick a target.
	ListApplications() ([]string, error)
}
