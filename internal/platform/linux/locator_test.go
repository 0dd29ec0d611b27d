//go:build linux

package linux

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shotwatch/shotwatch/internal/platform"
)

// fakeRunner maps "cmd arg1 arg2" to canned output.
func fakeRunner(outputs map[string]string) runner {
	return func(name string, args ...string) (string, error) {
		key := strings.Join(append([]string{name}, args...), " ")
		out, ok := outputs[key]
		if !ok {
			return "", errors.New("exit status 1")
		}
		return out, nil
	}
}

const geom1 = "WINDOW=41943044\nX=100\nY=200\nWIDTH=800\nHEIGHT=600\nSCREEN=0"

func TestLocate_ByTitle(t *testing.T) {
	l := &Locator{run: fakeRunner(map[string]string{
		"xdotool search --onlyvisible --name notepad":   "41943044",
		"xdotool getwindowgeometry --shell 41943044":    geom1,
		"xdotool getwindowname 41943044":                "Untitled - Notepad",
	})}

	win, err := l.Locate("notepad")
	if err != nil {
		t.Fatal(err)
	}
	if win.Title() != "Untitled - Notepad" {
		t.Errorf("title: got %q", win.Title())
	}
	b, err := win.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	want := platform.Bounds{X: 100, Y: 200, Width: 800, Height: 600}
	if b != want {
		t.Errorf("bounds: got %+v, want %+v", b, want)
	}
}

func TestLocate_FallsBackToProcess(t *testing.T) {
	l := &Locator{run: fakeRunner(map[string]string{
		"pgrep -i -f gimp":                            "1234",
		"xdotool search --onlyvisible --pid 1234":     "555",
		"xdotool getwindowname 555":                   "GNU Image Manipulation Program",
	})}

	win, err := l.Locate("gimp")
	if err != nil {
		t.Fatal(err)
	}
	if win.Title() != "GNU Image Manipulation Program" {
		t.Errorf("title: got %q", win.Title())
	}
}

func TestLocate_NotFound(t *testing.T) {
	l := &Locator{run: fakeRunner(nil)}
	_, err := l.Locate("ghostapp")
	if !errors.Is(err, platform.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestLocate_SkipsDegenerateGeometry(t *testing.T) {
	l := &Locator{run: fakeRunner(map[string]string{
		"xdotool search --onlyvisible --name notepad": "1 2",
		"xdotool getwindowgeometry --shell 1":         "X=0\nY=0\nWIDTH=0\nHEIGHT=0",
		"xdotool getwindowgeometry --shell 2":         geom1,
		"xdotool getwindowname 2":                     "Notepad",
	})}

	win, err := l.Locate("notepad")
	if err != nil {
		t.Fatal(err)
	}
	if win.Title() != "Notepad" {
		t.Errorf("title: got %q", win.Title())
	}
}

func TestWindowGeometry_BadOutput(t *testing.T) {
	l := &Locator{run: fakeRunner(map[string]string{
		"xdotool getwindowgeometry --shell 7": "garbage",
	})}
	if _, err := l.windowGeometry("7"); err == nil {
		t.Fatal("garbage geometry should fail")
	}
}

func TestListApplications(t *testing.T) {
	l := &Locator{run: fakeRunner(map[string]string{
		"ps -eo comm=": "bash\nfirefox\nbash\nXorg",
		"xdotool search --onlyvisible --name .": "",
	})}
	names, err := l.ListApplications()
	if err != nil {
		t.Fatal(err)
	}
	want := fmt.Sprintf("%v", []string{"Xorg", "bash", "firefox"})
	if fmt.Sprintf("%v", names) != want {
		t.Errorf("got %v, want %v", names, want)
	}
}
