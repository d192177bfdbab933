// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/colornames"

	"github.com/gogpu/present/driver"
	"github.com/gogpu/present/internal/swapchain"
	"github.com/gogpu/present/surface"
)

// PresentInterval selects how presentation synchronizes with vertical
// blank.
type PresentInterval uint8

const (
	// PresentIntervalDefault is the same as PresentIntervalOne.
	PresentIntervalDefault PresentInterval = iota
	// PresentIntervalOne presents at most once per vertical blank (FIFO).
	PresentIntervalOne
	// PresentIntervalTwo is served by FIFO; drivers cannot skip blanks.
	PresentIntervalTwo
	// PresentIntervalImmediate presents without waiting, falling back to
	// mailbox and then FIFO.
	PresentIntervalImmediate
)

// String returns the interval name.
func (i PresentInterval) String() string {
	return i.interval().String()
}

func (i PresentInterval) interval() swapchain.Interval {
	switch i {
	case PresentIntervalOne:
		return swapchain.IntervalOne
	case PresentIntervalTwo:
		return swapchain.IntervalTwo
	case PresentIntervalImmediate:
		return swapchain.IntervalImmediate
	default:
		return swapchain.IntervalDefault
	}
}

// ColorSpace is the color space the renderer works in.
type ColorSpace uint8

const (
	// ColorSpaceLinear presents values unchanged.
	ColorSpaceLinear ColorSpace = iota
	// ColorSpaceGamma presents in sRGB nonlinear encoding.
	ColorSpaceGamma
)

// String returns the color space name.
func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceLinear:
		return "Linear"
	case ColorSpaceGamma:
		return "Gamma"
	default:
		return fmt.Sprintf("ColorSpace(%d)", uint8(c))
	}
}

func (c ColorSpace) driver() driver.ColorSpace {
	if c == ColorSpaceGamma {
		return driver.ColorSpaceSRGBNonlinear
	}
	return driver.ColorSpacePassThrough
}

// PresentationParameters configures a presenter. Width, height and format
// may be changed later with Presenter.Resize.
type PresentationParameters struct {
	// BackBufferWidth and BackBufferHeight are in physical pixels. Zero
	// means the window's current pixel size.
	BackBufferWidth  int
	BackBufferHeight int

	// BackBufferFormat is the preferred backbuffer format. Undefined lets
	// the negotiation pick one.
	BackBufferFormat gputypes.TextureFormat

	// DepthStencilFormat is the format of the companion depth buffer.
	// Undefined means no depth buffer.
	DepthStencilFormat gputypes.TextureFormat

	PresentationInterval PresentInterval
	ColorSpace           ColorSpace

	// IsFullScreen requests exclusive full-screen. Not supported.
	IsFullScreen bool

	// Window is the window to present to.
	Window surface.Window
}

// DefaultParameters returns parameters presenting to win at its pixel
// size with the default interval.
func DefaultParameters(win surface.Window) PresentationParameters {
	return PresentationParameters{
		ColorSpace: ColorSpaceGamma,
		Window:     win,
	}
}

func (p *PresentationParameters) validate() error {
	if p.Window == nil {
		return fmt.Errorf("%w: nil window", ErrInvalidHandle)
	}
	if p.BackBufferWidth < 0 || p.BackBufferHeight < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidParameters, p.BackBufferWidth, p.BackBufferHeight)
	}
	if p.PresentationInterval > PresentIntervalImmediate {
		return fmt.Errorf("%w: unknown interval %d", ErrInvalidParameters, p.PresentationInterval)
	}
	if f := p.DepthStencilFormat; f != gputypes.TextureFormatUndefined && !f.HasDepth() && !f.HasStencil() {
		return fmt.Errorf("%w: %s is not a depth/stencil format", ErrInvalidParameters, f)
	}
	if p.IsFullScreen {
		return fmt.Errorf("full-screen: %w", ErrNotImplemented)
	}
	return nil
}

// size returns the requested size, defaulting each zero dimension to the
// window's pixel size.
func (p *PresentationParameters) size() (uint32, uint32) {
	w, h := uint32(p.BackBufferWidth), uint32(p.BackBufferHeight)
	if w == 0 || h == 0 {
		pw, ph := surface.PixelSize(p.Window)
		if w == 0 {
			w = pw
		}
		if h == 0 {
			h = ph
		}
	}
	return w, h
}

func (p *PresentationParameters) swapchainParams() swapchain.Params {
	w, h := p.size()
	return swapchain.Params{
		Width:      w,
		Height:     h,
		Format:     p.BackBufferFormat,
		ColorSpace: p.ColorSpace.driver(),
		Interval:   p.PresentationInterval.interval(),
	}
}

// ClearColorByName returns the CSS color with the given name, such as
// "cornflowerblue", as a clear color.
func ClearColorByName(name string) (gputypes.Color, bool) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return gputypes.Color{}, false
	}
	return gputypes.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}, true
}
