// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface binds native windows to graphics API surfaces.
//
// A Binding turns a Window into the display and window handles a surface
// Creator (such as a wgpu hal.Instance) expects. One binding per platform
// is compiled in and registered at init time:
//
//   - Win32Binding on windows: the display handle is the module handle
//     of the running process and the window must be a live HWND.
//   - XlibBinding on linux and freebsd: the window must implement
//     XlibWindow, supplied by the windowing toolkit.
//   - Unsupported everywhere: fails fast with ErrUnsupportedPlatform.
//
// DefaultBinding returns the best binding registered for the build
// target.
//
// Surfaces have no per-frame behavior. A Surface is destroyed exactly once,
// after every swapchain built on it.
package surface
