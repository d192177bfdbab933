// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/present/driver"
	"github.com/gogpu/present/internal/imagepool"
	"github.com/gogpu/present/internal/swapchain"
)

// BackbufferDescription is the logical description of the backbuffer.
type BackbufferDescription struct {
	Width       uint32
	Height      uint32
	Format      gputypes.TextureFormat
	ColorSpace  driver.ColorSpace
	PresentMode gputypes.PresentMode
	ImageCount  uint32
}

// backbufferState is one immutable snapshot of the backbuffer.
type backbufferState struct {
	desc       BackbufferDescription
	image      driver.Image
	view       driver.ImageView
	index      uint32
	generation uint64
}

// Backbuffer is the stable render target identity of a presenter.
//
// A presenter creates exactly one Backbuffer and never replaces it.
// Swapchain recreation and every acquire repoint its native image and view
// to the current swapchain image, so holders of a *Backbuffer never need
// to fetch it again. Repointing is a single atomic store made by the
// render goroutine; readers see a consistent image, view and generation.
//
// The native handles are only valid between Acquire and Present.
type Backbuffer struct {
	state atomic.Pointer[backbufferState]
}

func newBackbuffer() *Backbuffer {
	b := &Backbuffer{}
	b.state.Store(&backbufferState{})
	return b
}

func (b *Backbuffer) load() *backbufferState { return b.state.Load() }

// Image returns the current native image, or nil when detached.
func (b *Backbuffer) Image() driver.Image { return b.load().image }

// View returns the current native view, or nil when detached.
func (b *Backbuffer) View() driver.ImageView { return b.load().view }

// Index returns the swapchain image index the backbuffer points to.
func (b *Backbuffer) Index() uint32 { return b.load().index }

// Generation returns the swapchain generation the handles belong to.
// It is zero when detached.
func (b *Backbuffer) Generation() uint64 { return b.load().generation }

// Attached reports whether the backbuffer points to a swapchain image.
func (b *Backbuffer) Attached() bool { return b.load().image != nil }

// Description returns the logical description.
func (b *Backbuffer) Description() BackbufferDescription { return b.load().desc }

// Width returns the width in pixels.
func (b *Backbuffer) Width() uint32 { return b.load().desc.Width }

// Height returns the height in pixels.
func (b *Backbuffer) Height() uint32 { return b.load().desc.Height }

// Format returns the negotiated format.
func (b *Backbuffer) Format() gputypes.TextureFormat { return b.load().desc.Format }

// describe updates the logical description for a new swapchain and
// leaves the backbuffer detached.
func (b *Backbuffer) describe(sc *swapchain.Swapchain) {
	b.state.Store(&backbufferState{desc: BackbufferDescription{
		Width:       sc.Extent.Width,
		Height:      sc.Extent.Height,
		Format:      sc.Format,
		ColorSpace:  sc.ColorSpace,
		PresentMode: sc.PresentMode,
		ImageCount:  sc.ImageCount,
	}})
}

// repoint points the backbuffer at img of generation gen.
func (b *Backbuffer) repoint(img *imagepool.Image, gen uint64) {
	b.state.Store(&backbufferState{
		desc:       b.load().desc,
		image:      img.Native,
		view:       img.View,
		index:      img.Index,
		generation: gen,
	})
}

// detach drops the native handles, keeping the description.
func (b *Backbuffer) detach() {
	b.state.Store(&backbufferState{desc: b.load().desc})
}
