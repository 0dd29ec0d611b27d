package platform

import (
	"image"
	"reflect"
	"testing"

	"github.com/shotwatch/shotwatch/internal/model"
)

func TestBounds_Rect(t *testing.T) {
	b := Bounds{X: 10, Y: 20, Width: 300, Height: 400}
	want := image.Rect(10, 20, 310, 420)
	if got := b.Rect(); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBounds_Empty(t *testing.T) {
	tests := []struct {
		b    Bounds
		want bool
	}{
		{Bounds{Width: 100, Height: 100}, false},
		{Bounds{Width: 1, Height: 1}, false},
		{Bounds{Width: 0, Height: 100}, true},
		{Bounds{Width: 100, Height: 0}, true},
		{Bounds{Width: -5, Height: 100}, true},
		{Bounds{}, true},
	}
	for _, tt := range tests {
		if got := tt.b.Empty(); got != tt.want {
			t.Errorf("Empty(%+v) = %t, want %t", tt.b, got, tt.want)
		}
	}
}

func TestMatchesTitle(t *testing.T) {
	tests := []struct {
		title, app string
		want       bool
	}{
		{"Untitled - Notepad", "notepad", true},
		{"untitled - notepad", "Notepad", true},
		{"Mozilla Firefox", "firefox", true},
		{"Mozilla Firefox", "chrome", false},
		{"", "notepad", false},
		{"Notepad", "", false},
	}
	for _, tt := range tests {
		if got := MatchesTitle(tt.title, tt.app); got != tt.want {
			t.Errorf("MatchesTitle(%q, %q) = %t, want %t", tt.title, tt.app, got, tt.want)
		}
	}
}

func TestMatchesProcess(t *testing.T) {
	tests := []struct {
		proc, app, suffix string
		want              bool
	}{
		{"notepad.exe", "notepad", ".exe", true},
		{"Notepad.exe", "NOTEPAD", ".exe", true},
		{"firefox", "firefox", "", true},
		{"firefox-bin", "firefox", "", true},
		{"explorer.exe", "notepad", ".exe", false},
		{"", "notepad", ".exe", false},
		{"notepad.exe", "", ".exe", false},
	}
	for _, tt := range tests {
		if got := MatchesProcess(tt.proc, tt.app, tt.suffix); got != tt.want {
			t.Errorf("MatchesProcess(%q, %q, %q) = %t, want %t", tt.proc, tt.app, tt.suffix, got, tt.want)
		}
	}
}

func TestPickWindow_PrefersNonMinimized(t *testing.T) {
	if got := PickWindow([]bool{true, true, false, false}); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

func TestPickWindow_AllMinimized(t *testing.T) {
	if got := PickWindow([]bool{true, true, true}); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestPickWindow_Empty(t *testing.T) {
	if got := PickWindow(nil); got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}

func TestDedupeNames(t *testing.T) {
	got := DedupeNames([]string{"firefox", "bash", "firefox", " bash ", "x", "", "code"})
	want := []string{"bash", "code", "firefox"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilterWindows(t *testing.T) {
	windows := []model.Window{
		{Title: "Untitled - Notepad", Bounds: [4]int{0, 0, 800, 600}},
		{Title: "Mozilla Firefox", Bounds: [4]int{0, 0, 800, 600}},
		{Title: "notepad++", Bounds: [4]int{0, 0, 0, 0}},
	}
	got := FilterWindows(windows, "notepad")
	if len(got) != 1 {
		t.Fatalf("got %d windows, want 1", len(got))
	}
	if got[0].Title != "Untitled - Notepad" {
		t.Errorf("got %q", got[0].Title)
	}
}
