//go:build darwin

// Package darwin locates windows through System Events scripting. Window
// enumeration and activation go through osascript; the capture fallback
// chain handles the actual pixels, since macOS offers no per-window device
// context without a compositor entitlement.
package darwin

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shotwatch/shotwatch/internal/model"
	"github.com/shotwatch/shotwatch/internal/platform"
)

type runner func(script string) (string, error)

func osascript(script string) (string, error) {
	out, err := exec.Command("osascript", "-e", script).Output()
	return strings.TrimSpace(string(out)), err
}

// Locator implements platform.Locator for macOS.
type Locator struct {
	run runner
}

// NewLocator creates a macOS locator.
func NewLocator() *Locator {
	return &Locator{run: osascript}
}

// visibleProcesses returns the names of non-background running applications.
func (l *Locator) visibleProcesses() []string {
	out, err := l.run(`tell application "System Events" to get name of every process whose visible is true`)
	if err != nil || out == "" {
		return nil
	}
	parts := strings.Split(out, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func (l *Locator) frontWindowBounds(proc string) (platform.Bounds, error) {
	out, err := l.run(fmt.Sprintf(
		`tell application "System Events" to tell process %q to get {position, size} of front window`, proc))
	if err != nil {
		return platform.Bounds{}, fmt.Errorf("front window of %q: %w", proc, err)
	}
	fields := strings.Split(out, ",")
	if len(fields) != 4 {
		return platform.Bounds{}, fmt.Errorf("unexpected geometry reply %q", out)
	}
	var nums [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return platform.Bounds{}, fmt.Errorf("unexpected geometry reply %q", out)
		}
		nums[i] = n
	}
	return platform.Bounds{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}, nil
}

func (l *Locator) frontWindowTitle(proc string) string {
	out, err := l.run(fmt.Sprintf(
		`tell application "System Events" to tell process %q to get name of front window`, proc))
	if err != nil {
		return ""
	}
	return out
}

func (l *Locator) Locate(appName string) (platform.Window, error) {
	app := strings.ToLower(appName)

	// Title pass over the front window of each visible process.
	procs := l.visibleProcesses()
	for _, proc := range procs {
		title := l.frontWindowTitle(proc)
		if !platform.MatchesTitle(title, appName) {
			continue
		}
		if b, err := l.frontWindowBounds(proc); err == nil && !b.Empty() {
			return &window{proc: proc, title: title, run: l.run}, nil
		}
	}

	// Process-name pass: case-insensitive containment on the process name.
	for _, proc := range procs {
		if !strings.Contains(strings.ToLower(proc), app) {
			continue
		}
		if title := l.frontWindowTitle(proc); title != "" {
			return &window{proc: proc, title: title, run: l.run}, nil
		}
	}
	return nil, platform.ErrNotFound
}

func (l *Locator) ListWindows() ([]model.Window, error) {
	var out []model.Window
	for _, proc := range l.visibleProcesses() {
		title := l.frontWindowTitle(proc)
		if title == "" {
			continue
		}
		b, err := l.frontWindowBounds(proc)
		if err != nil {
			continue
		}
		out = append(out, model.Window{
			App:    proc,
			Title:  title,
			Bounds: [4]int{b.X, b.Y, b.Width, b.Height},
		})
	}
	return out, nil
}

func (l *Locator) ListApplications() ([]string, error) {
	return platform.DedupeNames(l.visibleProcesses()), nil
}
