// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package present owns the swapchain of a window and synchronizes frame
// presentation with the GPU.
//
// A Presenter binds a window to a platform surface, negotiates swapchain
// parameters with the driver (format, image count, present mode,
// pre-transform), initializes every swapchain image into a presentable
// layout, and drives the per-frame acquire and present cycle. Renderers
// draw into the Backbuffer, a stable render target identity whose native
// image and view are repointed on every acquire and every swapchain
// recreation, so references to it never dangle.
//
// # Frame cycle
//
//	p, err := present.New(dev, inst, present.DefaultParameters(win))
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	for running {
//	    if err := p.BeginDraw(); errors.Is(err, present.ErrFrameDropped) {
//	        continue
//	    } else if err != nil {
//	        return err
//	    }
//	    render(p.Backbuffer())
//	    if _, err := p.EndDraw(true); err != nil {
//	        return err
//	    }
//	}
//
// Present re-acquires the next image right after queueing the current
// one, so one image is always held by the presenter between frames.
//
// # Recreation
//
// The swapchain is never modified in place. Resize, a backbuffer format
// change or an out-of-date report from the driver replaces it: the device
// is waited on, views are destroyed, a new swapchain is created with the
// old one as a reuse hint, the old one is destroyed, and the image pool is
// rebuilt. Out-of-date conditions are recovered internally; Acquire
// reports them as ErrFrameDropped and Present as PresentDropped.
//
// # Errors
//
// Configuration errors (ErrUnsupportedPlatform, ErrInvalidHandle,
// ErrNoCompatibleFormat, ErrZeroArea, ErrInvalidParameters) are returned
// at creation. Timeouts surface as ErrAcquireTimeout and ErrDeviceBusy.
// Other present failures are returned as *PresentationError carrying the
// driver result code. Unsupported operations return ErrNotImplemented.
//
// # Drivers
//
// The presenter consumes the driver.Device contract. Package driver/sim
// provides an in-memory implementation for tests and headless use.
package present
