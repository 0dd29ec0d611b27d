//go:build darwin

package darwin

import (
	"fmt"

	"github.com/shotwatch/shotwatch/internal/platform"
)

// window is the macOS implementation of platform.Window, addressing the
// front window of a System Events process.
type window struct {
	proc  string
	title string
	run   runner
}

func (w *window) Title() string { return w.title }

func (w *window) Bounds() (platform.Bounds, error) {
	l := Locator{run: w.run}
	return l.frontWindowBounds(w.proc)
}

func (w *window) IsMinimized() bool {
	out, err := w.run(fmt.Sprintf(
		`tell application "System Events" to tell process %q to get value of attribute "AXMinimized" of front window`, w.proc))
	return err == nil && out == "true"
}

func (w *window) Restore() error {
	_, err := w.run(fmt.Sprintf(
		`tell application "System Events" to tell process %q to set value of attribute "AXMinimized" of front window to false`, w.proc))
	if err != nil {
		return fmt.Errorf("restore %q: %w", w.proc, err)
	}
	return nil
}

func (w *window) Activate() error {
	if _, err := w.run(fmt.Sprintf(`tell application %q to activate`, w.proc)); err != nil {
		return fmt.Errorf("activate %q: %w", w.proc, err)
	}
	return nil
}
