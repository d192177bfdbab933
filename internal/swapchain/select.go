// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import (
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/present/driver"
)

// Interval is the requested presentation interval.
type Interval uint8

const (
	// IntervalDefault waits for vertical blank.
	IntervalDefault Interval = iota
	// IntervalOne presents once per vertical blank.
	IntervalOne
	// IntervalTwo presents every second vertical blank. Drivers offer no
	// way to skip blanks, so it is served by FIFO.
	IntervalTwo
	// IntervalImmediate presents without waiting.
	IntervalImmediate
)

// String returns the interval name.
func (i Interval) String() string {
	switch i {
	case IntervalDefault:
		return "Default"
	case IntervalOne:
		return "One"
	case IntervalTwo:
		return "Two"
	case IntervalImmediate:
		return "Immediate"
	default:
		return "Unknown"
	}
}

// PreferredFormats lists backbuffer formats in preference order.
var PreferredFormats = []gputypes.TextureFormat{
	gputypes.TextureFormatBGRA8UnormSrgb,
	gputypes.TextureFormatRGBA8UnormSrgb,
	gputypes.TextureFormatBGRA8Unorm,
	gputypes.TextureFormatRGBA8Unorm,
}

// FormatQuerier reports texture format capabilities.
type FormatQuerier interface {
	TextureFormatCapabilities(format gputypes.TextureFormat) hal.TextureFormatCapabilities
}

// SelectFormat picks the backbuffer format.
//
// Candidates are the requested format, if set, followed by
// PreferredFormats. The first candidate the device can render to wins. If
// available reports a constrained list, only candidates in that list are
// considered, and the list's first entry is used when none qualifies.
func SelectFormat(q FormatQuerier, available []driver.SurfaceFormat, requested gputypes.TextureFormat, cs driver.ColorSpace) (driver.SurfaceFormat, error) {
	if len(available) == 0 {
		return driver.SurfaceFormat{}, ErrNoCompatibleFormat
	}
	candidates := PreferredFormats
	if requested != gputypes.TextureFormatUndefined {
		candidates = append([]gputypes.TextureFormat{requested}, PreferredFormats...)
	}
	constrained := len(available) != 1 || available[0].Format != gputypes.TextureFormatUndefined

	for _, f := range candidates {
		caps := q.TextureFormatCapabilities(f)
		if caps.Flags&hal.TextureFormatCapabilityRenderAttachment == 0 {
			continue
		}
		if !constrained {
			return driver.SurfaceFormat{Format: f, ColorSpace: cs}, nil
		}
		if sf, ok := findFormat(available, f, cs); ok {
			return sf, nil
		}
	}
	if !constrained {
		return driver.SurfaceFormat{}, ErrNoCompatibleFormat
	}
	return available[0], nil
}

// findFormat returns the entry for f in list, preferring color space cs.
func findFormat(list []driver.SurfaceFormat, f gputypes.TextureFormat, cs driver.ColorSpace) (driver.SurfaceFormat, bool) {
	i := slices.Index(list, driver.SurfaceFormat{Format: f, ColorSpace: cs})
	if i >= 0 {
		return list[i], true
	}
	i = slices.IndexFunc(list, func(sf driver.SurfaceFormat) bool { return sf.Format == f })
	if i >= 0 {
		return list[i], true
	}
	return driver.SurfaceFormat{}, false
}

// SelectImageCount returns max(caps.MinImageCount, desired), clamped to
// caps.MaxImageCount when the device reports an upper bound. A zero
// desired count means one more than the minimum.
func SelectImageCount(caps *driver.SurfaceCapabilities, desired uint32) uint32 {
	if desired == 0 {
		desired = caps.MinImageCount + 1
	}
	n := max(caps.MinImageCount, desired)
	if caps.MaxImageCount != 0 && n > caps.MaxImageCount {
		n = caps.MaxImageCount
	}
	return n
}

// SelectTransform returns the identity transform when supported and the
// current transform otherwise.
func SelectTransform(caps *driver.SurfaceCapabilities) driver.SurfaceTransform {
	if caps.SupportedTransforms.Contains(driver.TransformIdentity) {
		return driver.TransformIdentity
	}
	return caps.CurrentTransform
}

// SelectPresentMode maps interval to a supported present mode.
// An immediate request prefers immediate, then mailbox. Everything else,
// and any request the device cannot serve, gets FIFO.
func SelectPresentMode(modes []gputypes.PresentMode, interval Interval) gputypes.PresentMode {
	if interval == IntervalImmediate {
		for _, m := range []gputypes.PresentMode{gputypes.PresentModeImmediate, gputypes.PresentModeMailbox} {
			if slices.Contains(modes, m) {
				return m
			}
		}
	}
	return gputypes.PresentModeFifo
}

// SelectExtent returns the surface's current extent when defined, and the
// requested size clamped to the supported range otherwise.
func SelectExtent(caps *driver.SurfaceCapabilities, width, height uint32) (driver.Extent, error) {
	e := caps.CurrentExtent
	if e == driver.UndefinedExtent {
		if width == 0 || height == 0 {
			return driver.Extent{}, ErrZeroArea
		}
		e = driver.Extent{
			Width:  clamp(width, caps.MinExtent.Width, caps.MaxExtent.Width),
			Height: clamp(height, caps.MinExtent.Height, caps.MaxExtent.Height),
		}
	}
	if e.IsZero() {
		return driver.Extent{}, ErrZeroArea
	}
	return e, nil
}

func clamp(v, lo, hi uint32) uint32 {
	if hi != 0 && v > hi {
		v = hi
	}
	return max(v, lo)
}

// selectAlphaMode returns opaque when supported, else the first mode.
func selectAlphaMode(modes []gputypes.CompositeAlphaMode) gputypes.CompositeAlphaMode {
	if len(modes) == 0 || slices.Contains(modes, gputypes.CompositeAlphaModeOpaque) {
		return gputypes.CompositeAlphaModeOpaque
	}
	return modes[0]
}
