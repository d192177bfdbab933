// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "errors"

var (
	// ErrUnsupportedPlatform is returned when no window binding exists for
	// the build target.
	ErrUnsupportedPlatform = errors.New("present: unsupported platform")

	// ErrInvalidHandle is returned when a window is nil, has a zero native
	// handle, or does not match the binding's window type.
	ErrInvalidHandle = errors.New("present: invalid window handle")
)
