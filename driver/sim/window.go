// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sim

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/present/surface"
)

// Window is a headless window. It satisfies surface.XlibWindow, so the
// default binding on X11 platforms accepts it, and gpucontext.EventSource
// for resize notifications.
type Window struct {
	gpucontext.NullEventSource

	inst     *Instance
	handle   uintptr
	display  uintptr
	width    int
	height   int
	scale    float64
	onResize []func(width, height int)
	redraws  int
}

var (
	_ surface.XlibWindow     = (*Window)(nil)
	_ gpucontext.EventSource = (*Window)(nil)
)

// NewWindow returns a window of the given logical size. Surfaces the
// instance creates for it follow its size.
func (i *Instance) NewWindow(width, height int) *Window {
	return &Window{
		inst:    i,
		handle:  nextHandle(),
		display: nextHandle(),
		width:   width,
		height:  height,
		scale:   1,
	}
}

// NativeHandle returns the window handle.
func (w *Window) NativeHandle() uintptr { return w.handle }

// XDisplay returns the simulated display connection.
func (w *Window) XDisplay() uintptr { return w.display }

// XWindow returns the window handle as an X window id.
func (w *Window) XWindow() uint32 { return uint32(w.handle) }

// Size returns the logical size.
func (w *Window) Size() (int, int) { return w.width, w.height }

// ScaleFactor returns the DPI scale factor.
func (w *Window) ScaleFactor() float64 { return w.scale }

// SetScaleFactor changes the DPI scale factor.
func (w *Window) SetScaleFactor(s float64) { w.scale = s }

// RequestRedraw counts redraw requests.
func (w *Window) RequestRedraw() { w.redraws++ }

// Redraws returns the number of RequestRedraw calls.
func (w *Window) Redraws() int { return w.redraws }

// OnResize registers fn to be called by Resize.
func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = append(w.onResize, fn)
}

// Resize changes the logical size, updates the extent of every surface
// created for the window and notifies resize callbacks.
func (w *Window) Resize(width, height int) {
	w.width, w.height = width, height
	pw, ph := surface.PixelSize(w)
	if w.inst != nil {
		for _, s := range w.inst.surfaces[w.handle] {
			s.Resize(pw, ph)
		}
	}
	for _, fn := range w.onResize {
		fn(width, height)
	}
}
