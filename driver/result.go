// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// Result is a driver status code. Values match VkResult so that codes
// reported by a Vulkan driver can be passed through unchanged.
type Result int32

// Non-negative codes report success or a condition the caller can act on.
const (
	// Success means the operation completed.
	Success Result = 0
	// NotReady means an acquire with a zero timeout found no image ready.
	NotReady Result = 1
	// Timeout means a wait or acquire ran out of time.
	Timeout Result = 2
	// Suboptimal means the image was acquired or presented but the
	// swapchain no longer matches the surface exactly. Recreation is
	// advised, not required.
	Suboptimal Result = 1000001003
)

// Negative codes are failures.
const (
	ErrorOutOfHostMemory   Result = -1
	ErrorOutOfDeviceMemory Result = -2
	// ErrorDeviceLost means the device must be recreated.
	ErrorDeviceLost Result = -4
	ErrorUnknown    Result = -13
	// ErrorSurfaceLost means the surface is gone and must be recreated
	// along with its swapchain.
	ErrorSurfaceLost Result = -1000000000
	// ErrorOutOfDate means the swapchain no longer matches the surface
	// and must be recreated before the next present.
	ErrorOutOfDate Result = -1000001004
)

// String returns the name of r.
func (r Result) String() string {
	switch r {
	case Success:
		return "Success"
	case NotReady:
		return "NotReady"
	case Timeout:
		return "Timeout"
	case Suboptimal:
		return "Suboptimal"
	case ErrorOutOfHostMemory:
		return "ErrorOutOfHostMemory"
	case ErrorOutOfDeviceMemory:
		return "ErrorOutOfDeviceMemory"
	case ErrorDeviceLost:
		return "ErrorDeviceLost"
	case ErrorUnknown:
		return "ErrorUnknown"
	case ErrorSurfaceLost:
		return "ErrorSurfaceLost"
	case ErrorOutOfDate:
		return "ErrorOutOfDate"
	default:
		return fmt.Sprintf("Result(%d)", int32(r))
	}
}

// IsError reports whether r is a failure code.
func (r Result) IsError() bool {
	return r < 0
}

// sentinel returns the hal error matching r, or nil.
func (r Result) sentinel() error {
	switch r {
	case NotReady:
		return hal.ErrNotReady
	case Timeout:
		return hal.ErrTimeout
	case ErrorOutOfHostMemory, ErrorOutOfDeviceMemory:
		return hal.ErrDeviceOutOfMemory
	case ErrorDeviceLost:
		return hal.ErrDeviceLost
	case ErrorSurfaceLost:
		return hal.ErrSurfaceLost
	case ErrorOutOfDate:
		return hal.ErrSurfaceOutdated
	default:
		return nil
	}
}

// ResultError is an error carrying a driver result code.
// It matches the corresponding hal sentinel with errors.Is, so callers can
// test for hal.ErrSurfaceOutdated without knowing the code.
type ResultError struct {
	Op     string
	Result Result
}

// NewResultError returns an error for a failed operation.
func NewResultError(op string, r Result) *ResultError {
	return &ResultError{Op: op, Result: r}
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("driver: %s: %s", e.Op, e.Result)
}

// Is reports whether target is the hal sentinel for e.Result.
func (e *ResultError) Is(target error) bool {
	s := e.Result.sentinel()
	return s != nil && target == s
}

// ResultOf maps err to a result code.
// A nil error is Success; errors that are neither a *ResultError nor one of
// the hal sentinels map to ErrorUnknown.
func ResultOf(err error) Result {
	if err == nil {
		return Success
	}
	var re *ResultError
	if errors.As(err, &re) {
		return re.Result
	}
	switch {
	case errors.Is(err, hal.ErrSurfaceOutdated):
		return ErrorOutOfDate
	case errors.Is(err, hal.ErrSurfaceLost):
		return ErrorSurfaceLost
	case errors.Is(err, hal.ErrDeviceLost):
		return ErrorDeviceLost
	case errors.Is(err, hal.ErrDeviceOutOfMemory):
		return ErrorOutOfDeviceMemory
	case errors.Is(err, hal.ErrTimeout):
		return Timeout
	case errors.Is(err, hal.ErrNotReady):
		return NotReady
	default:
		return ErrorUnknown
	}
}

// IsOutOfDate reports whether err means the swapchain must be recreated.
func IsOutOfDate(err error) bool {
	return errors.Is(err, hal.ErrSurfaceOutdated)
}
