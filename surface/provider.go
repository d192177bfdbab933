// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// Creator creates graphics API surfaces from platform handles.
// hal.Instance implementations satisfy it.
type Creator interface {
	CreateSurface(displayHandle, windowHandle uintptr) (hal.Surface, error)
}

// Provider creates surfaces through one binding.
type Provider struct {
	creator Creator
	binding Binding
	log     *slog.Logger
}

// NewProvider returns a provider creating surfaces with c. A nil binding
// selects DefaultBinding and a nil logger discards output.
func NewProvider(c Creator, b Binding, log *slog.Logger) *Provider {
	if b == nil {
		b = DefaultBinding()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Provider{creator: c, binding: b, log: log}
}

// Binding returns the binding the provider uses.
func (p *Provider) Binding() Binding { return p.binding }

// Create binds win to a new surface.
func (p *Provider) Create(win Window) (*Surface, error) {
	if win == nil {
		return nil, fmt.Errorf("%w: nil window", ErrInvalidHandle)
	}
	if _, ok := p.binding.(Unsupported); !ok && win.NativeHandle() == 0 {
		return nil, fmt.Errorf("%w: zero native handle", ErrInvalidHandle)
	}
	display, window, err := p.binding.Handles(win)
	if err != nil {
		return nil, err
	}
	sf, err := p.creator.CreateSurface(display, window)
	if err != nil {
		return nil, fmt.Errorf("present: create surface: %w", err)
	}
	p.log.Debug("surface: created", "binding", p.binding.Name(), "window", fmt.Sprintf("%#x", window))
	return &Surface{hal: sf, window: win, binding: p.binding.Name(), log: p.log}, nil
}

// Surface is a window bound to a graphics API surface.
type Surface struct {
	hal       hal.Surface
	window    Window
	binding   string
	log       *slog.Logger
	destroyed bool
}

// HAL returns the underlying surface. It is nil after Destroy.
func (s *Surface) HAL() hal.Surface { return s.hal }

// Window returns the bound window.
func (s *Surface) Window() Window { return s.window }

// Binding returns the name of the binding that created s.
func (s *Surface) Binding() string { return s.binding }

// PixelSize returns the window size in physical pixels.
func (s *Surface) PixelSize() (width, height uint32) {
	return PixelSize(s.window)
}

// Destroy releases the native binding. Every swapchain built on s must
// already be destroyed. Calling Destroy again only logs a warning.
func (s *Surface) Destroy() {
	if s.destroyed {
		s.log.Warn("surface: destroy called twice", "binding", s.binding)
		return
	}
	s.destroyed = true
	s.hal.Destroy()
	s.hal = nil
	s.log.Debug("surface: destroyed", "binding", s.binding)
}

// Destroyed reports whether Destroy was called.
func (s *Surface) Destroyed() bool { return s.destroyed }

// PixelSize converts the logical size of w to physical pixels.
func PixelSize(w gpucontext.WindowProvider) (width, height uint32) {
	lw, lh := w.Size()
	scale := w.ScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	return toPixels(lw, scale), toPixels(lh, scale)
}

func toPixels(v int, scale float64) uint32 {
	if v <= 0 {
		return 0
	}
	return uint32(math.Round(float64(v) * scale))
}
