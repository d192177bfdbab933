// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sim

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/present/driver"
)

// Config describes the capabilities the simulated device reports.
type Config struct {
	// MinImageCount and MaxImageCount bound the swapchain image count.
	// A zero MaxImageCount means no upper bound.
	MinImageCount uint32
	MaxImageCount uint32

	// ExtraImages is added to the requested image count when a swapchain
	// is created. Drivers may return more images than requested.
	ExtraImages uint32

	MinExtent driver.Extent
	MaxExtent driver.Extent

	SupportedTransforms driver.SurfaceTransform
	CurrentTransform    driver.SurfaceTransform

	// Formats is the surface format list. A single Undefined entry means
	// unconstrained.
	Formats []driver.SurfaceFormat

	// PresentModes lists the supported present modes. FIFO is reported
	// even when omitted.
	PresentModes []gputypes.PresentMode

	AlphaModes     []gputypes.CompositeAlphaMode
	SupportedUsage gputypes.TextureUsage

	// FormatCapabilities holds the capability flags per texture format.
	// Formats not present report no capabilities.
	FormatCapabilities map[gputypes.TextureFormat]hal.TextureFormatCapabilityFlags
}

// DefaultConfig returns the capabilities of a typical desktop driver:
// two to three images, FIFO, mailbox and immediate modes, and BGRA8
// surface formats.
func DefaultConfig() Config {
	color := hal.TextureFormatCapabilitySampled |
		hal.TextureFormatCapabilityRenderAttachment |
		hal.TextureFormatCapabilityBlendable
	return Config{
		MinImageCount:       2,
		MaxImageCount:       3,
		MinExtent:           driver.Extent{Width: 1, Height: 1},
		MaxExtent:           driver.Extent{Width: 16384, Height: 16384},
		SupportedTransforms: driver.TransformIdentity | driver.TransformRotate90 | driver.TransformRotate180 | driver.TransformRotate270,
		CurrentTransform:    driver.TransformIdentity,
		Formats: []driver.SurfaceFormat{
			{Format: gputypes.TextureFormatBGRA8UnormSrgb, ColorSpace: driver.ColorSpaceSRGBNonlinear},
			{Format: gputypes.TextureFormatBGRA8Unorm, ColorSpace: driver.ColorSpaceSRGBNonlinear},
		},
		PresentModes: []gputypes.PresentMode{
			gputypes.PresentModeFifo,
			gputypes.PresentModeMailbox,
			gputypes.PresentModeImmediate,
		},
		AlphaModes:     []gputypes.CompositeAlphaMode{gputypes.CompositeAlphaModeOpaque},
		SupportedUsage: gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst,
		FormatCapabilities: map[gputypes.TextureFormat]hal.TextureFormatCapabilityFlags{
			gputypes.TextureFormatBGRA8UnormSrgb:      color,
			gputypes.TextureFormatBGRA8Unorm:          color,
			gputypes.TextureFormatRGBA8UnormSrgb:      color,
			gputypes.TextureFormatRGBA8Unorm:          color,
			gputypes.TextureFormatRGBA16Float:         color,
			gputypes.TextureFormatDepth24PlusStencil8: hal.TextureFormatCapabilityRenderAttachment,
			gputypes.TextureFormatDepth32Float:        hal.TextureFormatCapabilityRenderAttachment,
		},
	}
}
