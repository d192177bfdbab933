// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Swapchain is a driver-owned rotating set of presentable images.
type Swapchain interface {
	hal.NativeHandle
}

// Image is a presentable image owned by a swapchain.
// The presenter never destroys images; they are released together with
// the swapchain.
type Image interface {
	hal.NativeHandle
}

// ImageView is a view over a swapchain image.
type ImageView interface {
	hal.NativeHandle
}

// Semaphore is a GPU-side synchronization primitive signaled by image
// acquisition and waited on by the first submission that renders into the
// acquired image.
type Semaphore interface {
	hal.NativeHandle
}

// Device is the logical device the presenter drives.
type Device interface {
	// TextureFormatCapabilities returns the optimal-tiling capabilities
	// of format.
	TextureFormatCapabilities(format gputypes.TextureFormat) hal.TextureFormatCapabilities

	// SurfaceCapabilities returns the current capabilities of sf.
	// It returns an error wrapping hal.ErrSurfaceLost if sf is no longer
	// valid.
	SurfaceCapabilities(sf hal.Surface) (*SurfaceCapabilities, error)

	// SurfaceFormats returns the formats sf can present.
	// A single entry with TextureFormatUndefined means that the surface
	// places no constraint on the format.
	SurfaceFormats(sf hal.Surface) ([]SurfaceFormat, error)

	// SurfacePresentModes returns the present modes sf supports.
	// PresentModeFifo is always included.
	SurfacePresentModes(sf hal.Surface) ([]gputypes.PresentMode, error)

	// CreateSwapchain creates a new swapchain.
	// If desc.OldSwapchain is not nil, it is retired by this call even
	// if creation fails, and must still be destroyed by the caller.
	CreateSwapchain(desc *SwapchainDescriptor) (Swapchain, error)

	// DestroySwapchain destroys sc and releases its images.
	// The device must be idle with respect to sc.
	DestroySwapchain(sc Swapchain)

	// SwapchainImages returns the images of sc, in index order.
	SwapchainImages(sc Swapchain) ([]Image, error)

	// CreateImageView creates a view over img.
	CreateImageView(img Image, desc *hal.TextureViewDescriptor) (ImageView, error)

	// DestroyImageView destroys view.
	DestroyImageView(view ImageView)

	// CreateSemaphore creates an unsignaled semaphore.
	CreateSemaphore() (Semaphore, error)

	// DestroySemaphore destroys sem.
	DestroySemaphore(sem Semaphore)

	// CopyCommandBuffer returns the device's one-shot copy command
	// buffer. It must be reset after each submission.
	CopyCommandBuffer() CommandBuffer

	// Submit submits cmd to the device queue. The submission waits on
	// wait and signals signal when it completes.
	Submit(cmd CommandBuffer, wait, signal []Semaphore) error

	// AcquireNextImage blocks for at most timeout until an image of sc is
	// available, and returns its index. signal is signaled when the
	// presentation engine has released the image.
	//
	// Errors:
	//   - hal.ErrSurfaceOutdated: sc no longer matches the surface
	//   - hal.ErrSurfaceLost: the surface is gone
	//   - hal.ErrTimeout: no image became available in time
	AcquireNextImage(sc Swapchain, timeout time.Duration, signal Semaphore) (uint32, error)

	// Present queues image index of sc for presentation after wait is
	// signaled. It returns hal.ErrSurfaceOutdated if sc must be recreated.
	Present(sc Swapchain, index uint32, wait []Semaphore) error

	// WaitIdle blocks for at most timeout until the device queue has
	// finished all submitted work. It returns hal.ErrTimeout on expiry.
	WaitIdle(timeout time.Duration) error
}
