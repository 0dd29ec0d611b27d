//go:build windows

package windows

import (
	"fmt"
	"image"
	"unsafe"

	sys "golang.org/x/sys/windows"
)

var (
	gdi32 = sys.NewLazySystemDLL("gdi32.dll")

	procGetWindowDC            = user32.NewProc("GetWindowDC")
	procReleaseDC              = user32.NewProc("ReleaseDC")
	procPrintWindow            = user32.NewProc("PrintWindow")
	procCreateCompatibleDC     = gdi32.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = gdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject           = gdi32.NewProc("SelectObject")
	procGetDIBits              = gdi32.NewProc("GetDIBits")
	procDeleteObject           = gdi32.NewProc("DeleteObject")
	procDeleteDC               = gdi32.NewProc("DeleteDC")
)

// pwRenderFullContent asks PrintWindow to include DirectComposition content.
const pwRenderFullContent = 2

type bitmapInfoHeader struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

// CaptureSurface blits the window's backing surface into an RGBA image via
// PrintWindow, without touching the rest of the screen. Implements
// platform.SurfaceCapturer.
func (w *window) CaptureSurface() (image.Image, error) {
	b, err := w.Bounds()
	if err != nil {
		return nil, err
	}
	if b.Empty() {
		return nil, fmt.Errorf("window %q has a degenerate rectangle", w.title)
	}
	width, height := b.Width, b.Height

	hdc, _, _ := procGetWindowDC.Call(w.hwnd)
	if hdc == 0 {
		return nil, fmt.Errorf("GetWindowDC failed for %q", w.title)
	}
	defer procReleaseDC.Call(w.hwnd, hdc)

	memDC, _, _ := procCreateCompatibleDC.Call(hdc)
	if memDC == 0 {
		return nil, fmt.Errorf("CreateCompatibleDC failed")
	}
	defer procDeleteDC.Call(memDC)

	bitmap, _, _ := procCreateCompatibleBitmap.Call(hdc, uintptr(width), uintptr(height))
	if bitmap == 0 {
		return nil, fmt.Errorf("CreateCompatibleBitmap failed")
	}
	defer procDeleteObject.Call(bitmap)

	oldBitmap, _, _ := procSelectObject.Call(memDC, bitmap)
	defer procSelectObject.Call(memDC, oldBitmap)

	if ret, _, _ := procPrintWindow.Call(w.hwnd, memDC, pwRenderFullContent); ret == 0 {
		return nil, fmt.Errorf("PrintWindow failed for %q", w.title)
	}

	bmi := bitmapInfoHeader{
		BiSize:        uint32(unsafe.Sizeof(bitmapInfoHeader{})),
		BiWidth:       int32(width),
		BiHeight:      -int32(height), // top-down
		BiPlanes:      1,
		BiBitCount:    32,
		BiCompression: 0, // BI_RGB
	}

	buffer := make([]byte, width*height*4)
	ret, _, _ := procGetDIBits.Call(
		memDC,
		bitmap,
		0,
		uintptr(height),
		uintptr(unsafe.Pointer(&buffer[0])),
		uintptr(unsafe.Pointer(&bmi)),
		0, // DIB_RGB_COLORS
	)
	if ret == 0 {
		return nil, fmt.Errorf("GetDIBits failed")
	}

	// BGRA to RGBA
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i+3 < len(buffer); i += 4 {
		img.Pix[i+0] = buffer[i+2]
		img.Pix[i+1] = buffer[i+1]
		img.Pix[i+2] = buffer[i+0]
		img.Pix[i+3] = 0xff
	}
	return img, nil
}
