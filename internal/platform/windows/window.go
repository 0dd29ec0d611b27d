//go:build windows

package windows

import (
	"fmt"

	"github.com/shotwatch/shotwatch/internal/platform"
)

// window is the Windows implementation of platform.Window, wrapping an HWND.
type window struct {
	hwnd  uintptr
	title string
}

func (w *window) Title() string { return w.title }

func (w *window) Bounds() (platform.Bounds, error) {
	b, ok := windowBounds(w.hwnd)
	if !ok {
		return platform.Bounds{}, fmt.Errorf("GetWindowRect failed for %q", w.title)
	}
	return b, nil
}

func (w *window) IsMinimized() bool { return isIconic(w.hwnd) }

func (w *window) Restore() error {
	procShowWindow.Call(w.hwnd, swRestore)
	return nil
}

func (w *window) Activate() error {
	r, _, _ := procSetForegroundWindow.Call(w.hwnd)
	if r == 0 {
		return fmt.Errorf("SetForegroundWindow failed for %q", w.title)
	}
	return nil
}
