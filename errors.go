// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"errors"
	"fmt"

	"github.com/gogpu/present/driver"
	"github.com/gogpu/present/internal/swapchain"
	"github.com/gogpu/present/surface"
)

// Configuration errors. They are returned at creation and are not
// retryable.
var (
	ErrUnsupportedPlatform = surface.ErrUnsupportedPlatform
	ErrInvalidHandle       = surface.ErrInvalidHandle
	ErrNoCompatibleFormat  = swapchain.ErrNoCompatibleFormat
	ErrZeroArea            = swapchain.ErrZeroArea
	ErrInvalidParameters   = errors.New("present: invalid presentation parameters")
)

var (
	// ErrSurfaceLost is returned when the platform invalidates the
	// surface, for example because the window was closed.
	ErrSurfaceLost = swapchain.ErrSurfaceLost

	// ErrDeviceBusy is returned when an idle wait before a destructive
	// operation times out twice.
	ErrDeviceBusy = swapchain.ErrDeviceBusy

	// ErrAcquireTimeout is returned when no image becomes available
	// within the acquire timeout.
	ErrAcquireTimeout = errors.New("present: acquire timed out")

	// ErrFrameDropped is returned by Acquire when the swapchain was out
	// of date. The swapchain has been recreated and the next Acquire is
	// expected to succeed.
	ErrFrameDropped = errors.New("present: frame dropped")

	// ErrInvalidState is returned when a frame operation is called in the
	// wrong FrameState.
	ErrInvalidState = errors.New("present: invalid frame state")

	// ErrNotImplemented is returned by operations this presenter does not
	// support, such as exclusive full-screen and device recreation.
	ErrNotImplemented = errors.New("present: not implemented")

	// ErrClosed is returned by operations on a closed presenter.
	ErrClosed = errors.New("present: presenter closed")
)

// PresentationError is a present failure other than an out-of-date
// swapchain. The frame is lost; the caller decides whether to retry,
// resize or tear down.
type PresentationError struct {
	Code driver.Result
	Err  error
}

func (e *PresentationError) Error() string {
	return fmt.Sprintf("present: presentation failed (%s): %v", e.Code, e.Err)
}

func (e *PresentationError) Unwrap() error { return e.Err }
