// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

// FrameState is the position of a presenter in the frame cycle
// Idle -> Acquired -> Presented -> Idle.
type FrameState uint8

const (
	// FrameIdle means no image is acquired.
	FrameIdle FrameState = iota
	// FrameAcquired means the backbuffer points to an acquired image that
	// can be rendered into.
	FrameAcquired
	// FramePresented is held while the acquired image is handed to the
	// presentation engine.
	FramePresented
)

// String returns the state name.
func (s FrameState) String() string {
	switch s {
	case FrameIdle:
		return "Idle"
	case FrameAcquired:
		return "Acquired"
	case FramePresented:
		return "Presented"
	default:
		return "Unknown"
	}
}

// PresentResult is the outcome of Present.
type PresentResult uint8

const (
	// PresentOK means the frame was queued for display.
	PresentOK PresentResult = iota
	// PresentDropped means the swapchain was out of date. It has been
	// recreated and the frame was not shown. This is not an error.
	PresentDropped
	// PresentFailed means presentation failed. The accompanying error is
	// a *PresentationError.
	PresentFailed
)

// String returns the result name.
func (r PresentResult) String() string {
	switch r {
	case PresentOK:
		return "OK"
	case PresentDropped:
		return "Dropped"
	case PresentFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
