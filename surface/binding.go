// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Window is a native window as seen by a binding.
type Window interface {
	gpucontext.WindowProvider

	// NativeHandle returns the platform window handle: an HWND on
	// Windows, an X window id on X11.
	NativeHandle() uintptr
}

// XlibWindow is a Window backed by an X11 connection.
type XlibWindow interface {
	Window

	// XDisplay returns the Xlib Display pointer.
	XDisplay() uintptr

	// XWindow returns the X window id.
	XWindow() uint32
}

// Binding resolves a window into surface creation handles.
type Binding interface {
	// Name returns the registry name of the binding.
	Name() string

	// Handles returns the display and window handles for win.
	Handles(win Window) (display, window uintptr, err error)
}

// Binding names, in priority order.
const (
	NameWin32       = "win32"
	NameXlib        = "xlib"
	NameUnsupported = "unsupported"
)

var bindings = gpucontext.NewRegistry[Binding](
	gpucontext.WithPriority(NameWin32, NameXlib, NameUnsupported),
)

func init() {
	bindings.Register(NameUnsupported, func() Binding { return Unsupported{} })
}

// DefaultBinding returns the highest-priority binding available for the
// build target.
func DefaultBinding() Binding {
	return bindings.Best()
}

// Bindings returns the names of the bindings available for the build
// target.
func Bindings() []string {
	return bindings.Available()
}

// Unsupported is the binding for platforms without a windowing backend.
type Unsupported struct{}

// Name returns "unsupported".
func (Unsupported) Name() string { return NameUnsupported }

// Handles always fails with ErrUnsupportedPlatform.
func (Unsupported) Handles(Window) (uintptr, uintptr, error) {
	return 0, 0, ErrUnsupportedPlatform
}

// XlibBinding binds X11 windows.
type XlibBinding struct{}

// Name returns "xlib".
func (XlibBinding) Name() string { return NameXlib }

// Handles returns the Xlib display pointer and the X window id of win.
func (XlibBinding) Handles(win Window) (uintptr, uintptr, error) {
	xw, ok := win.(XlibWindow)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %T is not an Xlib window", ErrInvalidHandle, win)
	}
	display, window := xw.XDisplay(), xw.XWindow()
	if display == 0 || window == 0 {
		return 0, 0, fmt.Errorf("%w: display=%#x window=%#x", ErrInvalidHandle, display, window)
	}
	return display, uintptr(window), nil
}
