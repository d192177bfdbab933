// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Extent is a two-dimensional size in physical pixels.
type Extent struct {
	Width  uint32
	Height uint32
}

// UndefinedExtent is reported as SurfaceCapabilities.CurrentExtent when the
// surface size is determined by the swapchain extent.
var UndefinedExtent = Extent{Width: ^uint32(0), Height: ^uint32(0)}

// IsZero reports whether e has zero area.
func (e Extent) IsZero() bool {
	return e.Width == 0 || e.Height == 0
}

// String returns e formatted as WxH.
func (e Extent) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// SurfaceTransform is a bit set of display pre-transforms.
type SurfaceTransform uint32

const (
	TransformIdentity SurfaceTransform = 1 << iota
	TransformRotate90
	TransformRotate180
	TransformRotate270
	TransformHorizontalMirror
	TransformHorizontalMirrorRotate90
	TransformHorizontalMirrorRotate180
	TransformHorizontalMirrorRotate270
	TransformInherit
)

// Contains reports whether t includes every bit of flag.
func (t SurfaceTransform) Contains(flag SurfaceTransform) bool {
	return t&flag == flag
}

// String returns the name of a single transform.
func (t SurfaceTransform) String() string {
	switch t {
	case TransformIdentity:
		return "Identity"
	case TransformRotate90:
		return "Rotate90"
	case TransformRotate180:
		return "Rotate180"
	case TransformRotate270:
		return "Rotate270"
	case TransformHorizontalMirror:
		return "HorizontalMirror"
	case TransformHorizontalMirrorRotate90:
		return "HorizontalMirrorRotate90"
	case TransformHorizontalMirrorRotate180:
		return "HorizontalMirrorRotate180"
	case TransformHorizontalMirrorRotate270:
		return "HorizontalMirrorRotate270"
	case TransformInherit:
		return "Inherit"
	default:
		return fmt.Sprintf("SurfaceTransform(%#x)", uint32(t))
	}
}

// ColorSpace is the color space swap images are interpreted in.
type ColorSpace uint32

const (
	// ColorSpaceSRGBNonlinear is the sRGB color space with the sRGB
	// transfer function.
	ColorSpaceSRGBNonlinear ColorSpace = iota

	// ColorSpacePassThrough passes values to the display unmodified.
	ColorSpacePassThrough
)

// String returns the name of the color space.
func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceSRGBNonlinear:
		return "SRGBNonlinear"
	case ColorSpacePassThrough:
		return "PassThrough"
	default:
		return fmt.Sprintf("ColorSpace(%d)", uint32(c))
	}
}

// SurfaceFormat is a format and color space pair a surface can present.
type SurfaceFormat struct {
	Format     gputypes.TextureFormat
	ColorSpace ColorSpace
}

// SurfaceCapabilities describes what a surface supports on a device.
type SurfaceCapabilities struct {
	// MinImageCount is the minimum number of swapchain images.
	MinImageCount uint32

	// MaxImageCount is the maximum number of swapchain images.
	// Zero means there is no upper bound.
	MaxImageCount uint32

	// CurrentExtent is the current surface size, or UndefinedExtent.
	CurrentExtent Extent

	MinExtent Extent
	MaxExtent Extent

	// SupportedTransforms is the set of supported pre-transforms.
	SupportedTransforms SurfaceTransform

	// CurrentTransform is the surface's current transform relative to
	// the presentation engine's natural orientation.
	CurrentTransform SurfaceTransform

	// SupportedUsage is the set of image usages swap images may have.
	// TextureUsageRenderAttachment is always included.
	SupportedUsage gputypes.TextureUsage

	// AlphaModes are the supported composite alpha modes.
	AlphaModes []gputypes.CompositeAlphaMode
}

// SwapchainDescriptor describes a swapchain to create.
type SwapchainDescriptor struct {
	Label string

	// Surface is the target surface. It must be a value returned by the
	// same hal.Instance the device was opened from.
	Surface hal.Surface

	MinImageCount uint32
	Format        gputypes.TextureFormat
	ColorSpace    ColorSpace
	Extent        Extent
	Usage         gputypes.TextureUsage
	PreTransform  SurfaceTransform
	AlphaMode     gputypes.CompositeAlphaMode
	PresentMode   gputypes.PresentMode

	// Clipped allows the presentation engine to discard pixels that are
	// not visible.
	Clipped bool

	// OldSwapchain is the swapchain being replaced, or nil. Drivers may
	// reuse its resources.
	OldSwapchain Swapchain
}
