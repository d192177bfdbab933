// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package driver defines the explicit graphics-device contract consumed by
// the presenter.
//
// The contract is deliberately lower level than wgpu's hal.Surface: a
// swapchain is created and destroyed as a unit, its images are enumerated
// up front, views are created per image, and image layouts are tracked
// and transitioned explicitly through a one-shot command buffer. This is
// the shape of Vulkan's VK_KHR_swapchain, which is what the presenter
// needs in order to guarantee that no swap image is ever observed in an
// undefined layout.
//
// Types that already exist in the gogpu stack are reused instead of being
// redeclared:
//
//   - surfaces are hal.Surface values created by a hal.Instance
//   - texture formats, usages, present modes and colors come from gputypes
//   - format capabilities are hal.TextureFormatCapabilities
//   - view descriptors are hal.TextureViewDescriptor
//   - failure conditions are signaled with the hal error sentinels
//     (hal.ErrSurfaceOutdated, hal.ErrSurfaceLost, hal.ErrTimeout, ...)
//
// Implementations:
//
//   - driver/sim: an in-memory device for tests and headless runs
//
// A Device is used from a single rendering goroutine. Implementations are
// not required to be safe for concurrent use.
package driver
