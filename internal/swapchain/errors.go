// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNoCompatibleFormat is returned when neither the preference list
	// nor the surface offers a format usable as a color attachment.
	ErrNoCompatibleFormat = errors.New("present: no compatible backbuffer format")

	// ErrZeroArea is returned when the negotiated extent has zero width or
	// height, typically because the window is minimized.
	ErrZeroArea = fmt.Errorf("present: %w", hal.ErrZeroArea)

	// ErrSurfaceLost is returned when the platform reports the surface
	// invalid. It is not retried.
	ErrSurfaceLost = errors.New("present: surface lost")

	// ErrDeviceBusy is returned when the device does not become idle
	// within two bounded waits.
	ErrDeviceBusy = errors.New("present: device busy")
)

// classify wraps a driver error from op with the matching package error.
func classify(op string, err error) error {
	if errors.Is(err, hal.ErrSurfaceLost) {
		return fmt.Errorf("%w: %s: %w", ErrSurfaceLost, op, err)
	}
	return fmt.Errorf("present: %s: %w", op, err)
}
