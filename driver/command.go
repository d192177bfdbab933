// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// ImageLayout is the memory organization of an image.
// An image must be in the layout an operation expects before the
// operation executes.
type ImageLayout uint32

const (
	// LayoutUndefined is the initial layout of swap images.
	// Contents are not preserved when transitioning out of it.
	LayoutUndefined ImageLayout = iota

	// LayoutTransferDst is required by clear and copy destinations.
	LayoutTransferDst

	// LayoutColorAttachment is required by render pass color targets.
	LayoutColorAttachment

	// LayoutPresentSrc is required by presentation.
	LayoutPresentSrc
)

// String returns the name of the layout.
func (l ImageLayout) String() string {
	switch l {
	case LayoutUndefined:
		return "Undefined"
	case LayoutTransferDst:
		return "TransferDst"
	case LayoutColorAttachment:
		return "ColorAttachment"
	case LayoutPresentSrc:
		return "PresentSrc"
	default:
		return fmt.Sprintf("ImageLayout(%d)", uint32(l))
	}
}

// AccessFlags is a bit set of memory access types.
type AccessFlags uint32

const (
	AccessNone AccessFlags = 0

	AccessTransferWrite AccessFlags = 1 << iota
	AccessColorAttachmentWrite
	AccessMemoryRead
)

// PipelineStage is a bit set of pipeline stages.
type PipelineStage uint32

const (
	StageTopOfPipe PipelineStage = 1 << iota
	StageTransfer
	StageColorAttachmentOutput
	StageBottomOfPipe
	StageAllCommands
)

// ImageBarrier is a layout transition and memory dependency on an image.
type ImageBarrier struct {
	Image     Image
	OldLayout ImageLayout
	NewLayout ImageLayout
	SrcAccess AccessFlags
	DstAccess AccessFlags

	// Aspect selects the image aspect. Swap images use TextureAspectAll.
	Aspect gputypes.TextureAspect
}

// CommandBuffer records commands for a single submission.
type CommandBuffer interface {
	// Begin starts recording. The buffer must be in the initial state.
	Begin() error

	// PipelineBarrier records a dependency between src and dst stages and
	// the image barriers to apply between them.
	PipelineBarrier(src, dst PipelineStage, barriers ...ImageBarrier)

	// ClearColorImage clears img, which must be in layout, to c.
	ClearColorImage(img Image, layout ImageLayout, c gputypes.Color)

	// End finishes recording.
	End() error

	// Reset returns the buffer to the initial state. The buffer must not
	// be pending execution.
	Reset() error
}
