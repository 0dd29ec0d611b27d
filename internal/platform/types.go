package platform

import (
	"image"
	"sort"
	"strings"

	"github.com/shotwatch/shotwatch/internal/model"
)

// Bounds represents a screen rectangle.
type Bounds struct {
	X, Y, Width, Height int
}

// Rect converts the bounds to an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Empty reports whether the rectangle has non-positive width or height.
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// MatchesTitle reports whether a window title matches an application name
// fragment: case-insensitive substring, empty titles never match.
func MatchesTitle(title, appName string) bool {
	if title == "" || appName == "" {
		return false
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(appName))
}

// MatchesProcess reports whether a process name matches an application name
// fragment. The comparison is against the lowercase process name with the
// given executable suffix (e.g. ".exe") stripped; a substring hit on the
// raw name also counts.
func MatchesProcess(procName, appName, exeSuffix string) bool {
	if procName == "" || appName == "" {
		return false
	}
	proc := strings.ToLower(procName)
	app := strings.ToLower(appName)
	if strings.Contains(proc, app) {
		return true
	}
	return strings.TrimSuffix(proc, exeSuffix) == app
}

// PickWindow applies the selection policy to a set of title matches: prefer
// a non-minimized window, otherwise return the first match. Returns -1 for
// an empty slice.
func PickWindow(minimized []bool) int {
	if len(minimized) == 0 {
		return -1
	}
	for i, m := range minimized {
		if !m {
			return i
		}
	}
	return 0
}

// DedupeNames sorts and deduplicates application names, dropping empty and
// single-rune entries.
func DedupeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if len([]rune(n)) <= 1 || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// FilterWindows returns the windows whose title matches the app name
// fragment and whose bounds are positive.
func FilterWindows(windows []model.Window, appName string) []model.Window {
	var out []model.Window
	for _, w := range windows {
		if MatchesTitle(w.Title, appName) && w.Bounds[2] > 0 && w.Bounds[3] > 0 {
			out = append(out, w)
		}
	}
	return out
}
