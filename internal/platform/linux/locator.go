//go:build linux

// Package linux locates windows through xdotool and captures window
// surfaces through ImageMagick's import. Both tools are invoked as
// subprocesses; a missing tool surfaces as ErrNotFound or a capture error,
// never a panic.
package linux

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shotwatch/shotwatch/internal/model"
	"github.com/shotwatch/shotwatch/internal/platform"
)

// runner executes an external command and returns its stdout. Swappable in
// tests.
type runner func(name string, args ...string) (string, error)

func run(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return strings.TrimSpace(string(out)), err
}

// Locator implements platform.Locator for X11 desktops.
type Locator struct {
	run runner
}

// NewLocator creates a Linux locator.
func NewLocator() *Locator {
	return &Locator{run: run}
}

// searchWindows returns the IDs of visible windows whose name matches the
// given fragment (xdotool matches case-insensitively with --name as a
// regex; the fragment is quoted to keep it literal).
func (l *Locator) searchWindows(fragment string) []string {
	out, err := l.run("xdotool", "search", "--onlyvisible", "--name", fragment)
	if err != nil || out == "" {
		return nil
	}
	return strings.Fields(out)
}

func (l *Locator) windowName(id string) string {
	out, err := l.run("xdotool", "getwindowname", id)
	if err != nil {
		return ""
	}
	return out
}

// windowGeometry parses `xdotool getwindowgeometry --shell`, which prints
// KEY=VALUE lines (X, Y, WIDTH, HEIGHT, SCREEN, WINDOW).
func (l *Locator) windowGeometry(id string) (platform.Bounds, error) {
	out, err := l.run("xdotool", "getwindowgeometry", "--shell", id)
	if err != nil {
		return platform.Bounds{}, fmt.Errorf("xdotool getwindowgeometry %s: %w", id, err)
	}
	var b platform.Bounds
	for _, line := range strings.Split(out, "\n") {
		k, v, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		switch k {
		case "X":
			b.X = n
		case "Y":
			b.Y = n
		case "WIDTH":
			b.Width = n
		case "HEIGHT":
			b.Height = n
		}
	}
	if b.Empty() {
		return b, fmt.Errorf("window %s reported empty geometry", id)
	}
	return b, nil
}

func (l *Locator) Locate(appName string) (platform.Window, error) {
	// Title pass: pick the first visible window with positive geometry.
	// X11 has no portable minimized flag for foreign windows, so every
	// visible match counts as non-minimized here.
	for _, id := range l.searchWindows(appName) {
		if b, err := l.windowGeometry(id); err == nil && !b.Empty() {
			return &window{id: id, title: l.windowName(id), run: l.run}, nil
		}
	}

	// Process pass: pgrep by name, then the first visible titled window of
	// that PID.
	out, err := l.run("pgrep", "-i", "-f", appName)
	if err == nil && out != "" {
		for _, pid := range strings.Fields(out) {
			ids, err := l.run("xdotool", "search", "--onlyvisible", "--pid", pid)
			if err != nil || ids == "" {
				continue
			}
			for _, id := range strings.Fields(ids) {
				if title := l.windowName(id); title != "" {
					return &window{id: id, title: title, run: l.run}, nil
				}
			}
		}
	}
	return nil, platform.ErrNotFound
}

func (l *Locator) ListWindows() ([]model.Window, error) {
	ids := l.searchWindows(".")
	var out []model.Window
	for _, id := range ids {
		title := l.windowName(id)
		if title == "" {
			continue
		}
		b, err := l.windowGeometry(id)
		if err != nil {
			continue
		}
		wid, _ := strconv.Atoi(id)
		pid := 0
		if p, err := l.run("xdotool", "getwindowpid", id); err == nil {
			pid, _ = strconv.Atoi(p)
		}
		out = append(out, model.Window{
			PID:    pid,
			Title:  title,
			ID:     wid,
			Bounds: [4]int{b.X, b.Y, b.Width, b.Height},
		})
	}
	return out, nil
}

func (l *Locator) ListApplications() ([]string, error) {
	out, err := l.run("ps", "-eo", "comm=")
	if err != nil {
		return nil, fmt.Errorf("ps: %w", err)
	}
	names := strings.Split(out, "\n")
	for _, w := range l.searchWindows(".") {
		if title := l.windowName(w); title != "" {
			names = append(names, title)
		}
	}
	return platform.DedupeNames(names), nil
}
