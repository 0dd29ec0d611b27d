//go:build windows

package windows

import (
	"syscall"
	"unsafe"

	"github.com/shotwatch/shotwatch/internal/model"
	"github.com/shotwatch/shotwatch/internal/platform"
	sys "golang.org/x/sys/windows"
)

var (
	user32 = sys.NewLazySystemDLL("user32.dll")

	procEnumWindows              = user32.NewProc("EnumWindows")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procIsIconic                 = user32.NewProc("IsIconic")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procShowWindow               = user32.NewProc("ShowWindow")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
)

const swRestore = 9

type winRect struct {
	Left, Top, Right, Bottom int32
}

func windowText(hwnd uintptr) string {
	buf := make([]uint16, 512)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return sys.UTF16ToString(buf[:n])
}

func isVisible(hwnd uintptr) bool {
	r, _, _ := procIsWindowVisible.Call(hwnd)
	return r != 0
}

func isIconic(hwnd uintptr) bool {
	r, _, _ := procIsIconic.Call(hwnd)
	return r != 0
}

func windowBounds(hwnd uintptr) (platform.Bounds, bool) {
	var rc winRect
	r, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rc)))
	if r == 0 {
		return platform.Bounds{}, false
	}
	return platform.Bounds{
		X:      int(rc.Left),
		Y:      int(rc.Top),
		Width:  int(rc.Right - rc.Left),
		Height: int(rc.Bottom - rc.Top),
	}, true
}

func windowPID(hwnd uintptr) uint32 {
	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	return pid
}

// enumTopLevelWindows collects the handles of all top-level windows.
func enumTopLevelWindows() []uintptr {
	var hwnds []uintptr
	cb := syscall.NewCallback(func(hwnd, lparam uintptr) uintptr {
		hwnds = append(hwnds, hwnd)
		return 1 // continue enumeration
	})
	procEnumWindows.Call(cb, 0)
	return hwnds
}

// processNames returns PID -> executable name from a Toolhelp32 snapshot.
func processNames() (map[uint32]string, error) {
	snap, err := sys.CreateToolhelp32Snapshot(sys.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, err
	}
	defer sys.CloseHandle(snap)

	names := make(map[uint32]string)
	var pe sys.ProcessEntry32
	pe.Size = uint32(unsafe.Sizeof(pe))
	for err := sys.Process32First(snap, &pe); err == nil; err = sys.Process32Next(snap, &pe) {
		names[pe.ProcessID] = sys.UTF16ToString(pe.ExeFile[:])
	}
	return names, nil
}

// Locator implements platform.Locator on Windows via the user32 window list
// and a Toolhelp32 process snapshot.
type Locator struct{}

// NewLocator creates a Windows locator.
func NewLocator() *Locator {
	return &Locator{}
}

func (l *Locator) Locate(appName string) (platform.Window, error) {
	// First pass: visible, positively-sized windows matched by title.
	var matches []*window
	for _, hwnd := range enumTopLevelWindows() {
		if !isVisible(hwnd) {
			continue
		}
		title := windowText(hwnd)
		if !platform.MatchesTitle(title, appName) {
			continue
		}
		if b, ok := windowBounds(hwnd); !ok || b.Empty() {
			continue
		}
		matches = append(matches, &window{hwnd: hwnd, title: title})
	}
	if len(matches) > 0 {
		minimized := make([]bool, len(matches))
		for i, w := range matches {
			minimized[i] = w.IsMinimized()
		}
		return matches[platform.PickWindow(minimized)], nil
	}

	// Second pass: match by process executable name, then take the first
	// visible titled window owned by that process.
	procs, err := processNames()
	if err != nil {
		return nil, platform.ErrNotFound
	}
	for pid, name := range procs {
		if !platform.MatchesProcess(name, appName, ".exe") {
			continue
		}
		for _, hwnd := range enumTopLevelWindows() {
			if windowPID(hwnd) != pid || !isVisible(hwnd) {
				continue
			}
			if title := windowText(hwnd); title != "" {
				return &window{hwnd: hwnd, title: title}, nil
			}
		}
	}
	return nil, platform.ErrNotFound
}

func (l *Locator) ListWindows() ([]model.Window, error) {
	procs, _ := processNames()
	var out []model.Window
	for _, hwnd := range enumTopLevelWindows() {
		if !isVisible(hwnd) {
			continue
		}
		title := windowText(hwnd)
		if title == "" {
			continue
		}
		b, ok := windowBounds(hwnd)
		if !ok {
			continue
		}
		pid := windowPID(hwnd)
		out = append(out, model.Window{
			App:       procs[pid],
			PID:       int(pid),
			Title:     title,
			ID:        int(hwnd),
			Bounds:    [4]int{b.X, b.Y, b.Width, b.Height},
			Minimized: isIconic(hwnd),
		})
	}
	return out, nil
}

func (l *Locator) ListApplications() ([]string, error) {
	procs, err := processNames()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, name := range procs {
		names = append(names, trimExe(name))
	}
	for _, hwnd := range enumTopLevelWindows() {
		if isVisible(hwnd) {
			names = append(names, windowText(hwnd))
		}
	}
	return platform.DedupeNames(names), nil
}

func trimExe(name string) string {
	if len(name) > 4 && name[len(name)-4:] == ".exe" {
		return name[:len(name)-4]
	}
	return name
}
