// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sim

import (
	"errors"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/present/driver"
)

// handles is the source of native handle values for every simulated
// object, so handles are unique across devices and instances.
var handles atomic.Uintptr

func nextHandle() uintptr { return handles.Add(1) }

// Instance creates simulated surfaces. It implements hal.Instance; adapter
// enumeration is delegated to the wgpu noop backend.
type Instance struct {
	noop.Instance

	surfaces map[uintptr][]*Surface
}

// NewInstance returns a new simulated instance.
func NewInstance() *Instance {
	return &Instance{surfaces: make(map[uintptr][]*Surface)}
}

// CreateSurface creates a surface for the given platform handles.
// windowHandle must be non-zero.
func (i *Instance) CreateSurface(displayHandle, windowHandle uintptr) (hal.Surface, error) {
	if windowHandle == 0 {
		return nil, errors.New("sim: null window handle")
	}
	s := &Surface{
		handle:  nextHandle(),
		display: displayHandle,
		window:  windowHandle,
		extent:  driver.UndefinedExtent,
	}
	if i.surfaces == nil {
		i.surfaces = make(map[uintptr][]*Surface)
	}
	i.surfaces[windowHandle] = append(i.surfaces[windowHandle], s)
	return s, nil
}

var _ hal.Instance = (*Instance)(nil)

// Surface is a simulated platform surface.
type Surface struct {
	noop.Surface

	handle    uintptr
	display   uintptr
	window    uintptr
	extent    driver.Extent
	lost      bool
	destroyed bool
}

// NativeHandle returns the surface handle.
func (s *Surface) NativeHandle() uintptr { return s.handle }

// Display returns the display handle the surface was created with.
func (s *Surface) Display() uintptr { return s.display }

// Window returns the window handle the surface was created with.
func (s *Surface) Window() uintptr { return s.window }

// Resize changes the surface's current extent, as a window resize would.
// Swapchains whose extent no longer matches become out of date.
func (s *Surface) Resize(width, height uint32) {
	s.extent = driver.Extent{Width: width, Height: height}
}

// Lose marks the surface as lost, as closing the window would.
func (s *Surface) Lose() { s.lost = true }

// Destroy releases the surface.
func (s *Surface) Destroy() { s.destroyed = true }

// Destroyed reports whether Destroy was called.
func (s *Surface) Destroyed() bool { return s.destroyed }

// Swapchain is a simulated swapchain.
type Swapchain struct {
	handle    uintptr
	desc      driver.SwapchainDescriptor
	surface   *Surface
	images    []*Image
	acquired  []bool
	next      int
	presents  int
	retired   bool
	destroyed bool
}

// NativeHandle returns the swapchain handle.
func (s *Swapchain) NativeHandle() uintptr { return s.handle }

// Descriptor returns the descriptor the swapchain was created with.
// OldSwapchain is always nil in the returned copy.
func (s *Swapchain) Descriptor() driver.SwapchainDescriptor { return s.desc }

// Images returns the swapchain images.
func (s *Swapchain) Images() []*Image { return s.images }

// Presents returns the number of successful presents.
func (s *Swapchain) Presents() int { return s.presents }

// Retired reports whether the swapchain was replaced by a newer one.
func (s *Swapchain) Retired() bool { return s.retired }

// Destroyed reports whether the swapchain was destroyed.
func (s *Swapchain) Destroyed() bool { return s.destroyed }

func (s *Swapchain) live() bool { return !s.retired && !s.destroyed }

func (s *Swapchain) outdated() bool {
	if !s.live() {
		return true
	}
	cur := s.surface.extent
	return cur != driver.UndefinedExtent && cur != s.desc.Extent
}

func (s *Swapchain) acquiredCount() int {
	n := 0
	for _, a := range s.acquired {
		if a {
			n++
		}
	}
	return n
}

// Image is a simulated swap image.
type Image struct {
	handle  uintptr
	owner   *Swapchain
	layout  driver.ImageLayout
	cleared bool
	color   gputypes.Color
}

// NativeHandle returns the image handle.
func (i *Image) NativeHandle() uintptr { return i.handle }

// Layout returns the layout the image is in after all submitted work.
func (i *Image) Layout() driver.ImageLayout { return i.layout }

// ClearColor returns the last clear color and whether the image was
// cleared at all.
func (i *Image) ClearColor() (gputypes.Color, bool) { return i.color, i.cleared }

// ImageView is a simulated image view.
type ImageView struct {
	handle    uintptr
	image     *Image
	desc      hal.TextureViewDescriptor
	destroyed bool
}

// NativeHandle returns the view handle.
func (v *ImageView) NativeHandle() uintptr { return v.handle }

// Image returns the viewed image.
func (v *ImageView) Image() *Image { return v.image }

// Destroyed reports whether the view was destroyed.
func (v *ImageView) Destroyed() bool { return v.destroyed }

// Semaphore is a simulated binary semaphore.
type Semaphore struct {
	handle   uintptr
	signaled bool
}

// NativeHandle returns the semaphore handle.
func (s *Semaphore) NativeHandle() uintptr { return s.handle }

// Signaled reports whether the semaphore is signaled.
func (s *Semaphore) Signaled() bool { return s.signaled }
