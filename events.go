// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/present/surface"
)

type resizeRequest struct {
	width, height int
}

// RequestResize records a backbuffer resize to width x height physical
// pixels. It may be called from any goroutine; the render goroutine
// applies the latest request at the next Acquire or Present. Earlier
// pending requests are superseded.
func (p *Presenter) RequestResize(width, height int) {
	p.pending.Store(&resizeRequest{width: width, height: height})
}

// AttachEvents subscribes to resize events of src. Sizes reported in
// logical points are converted with the window's scale factor.
func (p *Presenter) AttachEvents(src gpucontext.EventSource) {
	win := p.params.Window
	src.OnResize(func(width, height int) {
		pw, ph := surface.PixelSize(sizeOnly{win, width, height})
		p.RequestResize(int(pw), int(ph))
	})
}

// sizeOnly reports a fixed logical size with the scale factor of a
// window.
type sizeOnly struct {
	gpucontext.WindowProvider
	width, height int
}

func (s sizeOnly) Size() (int, int) { return s.width, s.height }

// applyPendingResize resizes to the latest pending request, if any.
func (p *Presenter) applyPendingResize() error {
	req := p.pending.Swap(nil)
	if req == nil {
		return nil
	}
	return p.Resize(req.width, req.height, p.params.BackBufferFormat)
}
