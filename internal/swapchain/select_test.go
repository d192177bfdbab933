package swapchain

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/present/driver"
)

// capsQuerier reports render-attachment support for a fixed set of formats.
type capsQuerier map[gputypes.TextureFormat]bool

func (q capsQuerier) TextureFormatCapabilities(f gputypes.TextureFormat) hal.TextureFormatCapabilities {
	if q[f] {
		return hal.TextureFormatCapabilities{Flags: hal.TextureFormatCapabilityRenderAttachment}
	}
	return hal.TextureFormatCapabilities{Flags: hal.TextureFormatCapabilitySampled}
}

var unconstrained = []driver.SurfaceFormat{{Format: gputypes.TextureFormatUndefined}}

func sf(f gputypes.TextureFormat) driver.SurfaceFormat {
	return driver.SurfaceFormat{Format: f, ColorSpace: driver.ColorSpaceSRGBNonlinear}
}

func TestSelectFormat(t *testing.T) {
	all := capsQuerier{
		gputypes.TextureFormatBGRA8UnormSrgb: true,
		gputypes.TextureFormatRGBA8UnormSrgb: true,
		gputypes.TextureFormatBGRA8Unorm:     true,
		gputypes.TextureFormatRGBA8Unorm:     true,
		gputypes.TextureFormatRGBA16Float:    true,
	}
	tests := []struct {
		name      string
		q         capsQuerier
		available []driver.SurfaceFormat
		requested gputypes.TextureFormat
		want      gputypes.TextureFormat
		wantErr   error
	}{
		{
			name:      "unconstrained picks first preferred",
			q:         all,
			available: unconstrained,
			want:      gputypes.TextureFormatBGRA8UnormSrgb,
		},
		{
			name:      "requested format tried first",
			q:         all,
			available: unconstrained,
			requested: gputypes.TextureFormatRGBA16Float,
			want:      gputypes.TextureFormatRGBA16Float,
		},
		{
			name:      "skips formats without color attachment",
			q:         capsQuerier{gputypes.TextureFormatBGRA8Unorm: true},
			available: unconstrained,
			want:      gputypes.TextureFormatBGRA8Unorm,
		},
		{
			name:      "constrained list restricts selection",
			q:         all,
			available: []driver.SurfaceFormat{sf(gputypes.TextureFormatRGBA8Unorm), sf(gputypes.TextureFormatRGBA8UnormSrgb)},
			want:      gputypes.TextureFormatRGBA8UnormSrgb,
		},
		{
			name:      "requested format not on surface is ignored",
			q:         all,
			available: []driver.SurfaceFormat{sf(gputypes.TextureFormatBGRA8UnormSrgb)},
			requested: gputypes.TextureFormatRGBA16Float,
			want:      gputypes.TextureFormatBGRA8UnormSrgb,
		},
		{
			name:      "no intersection falls back to first surface format",
			q:         all,
			available: []driver.SurfaceFormat{sf(gputypes.TextureFormatRGBA16Float), sf(gputypes.TextureFormatDepth32Float)},
			want:      gputypes.TextureFormatRGBA16Float,
		},
		{
			name:      "unconstrained with no renderable format",
			q:         capsQuerier{},
			available: unconstrained,
			wantErr:   ErrNoCompatibleFormat,
		},
		{
			name:    "empty surface list",
			q:       all,
			wantErr: ErrNoCompatibleFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectFormat(tt.q, tt.available, tt.requested, driver.ColorSpaceSRGBNonlinear)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SelectFormat() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Format != tt.want {
				t.Errorf("SelectFormat() = %v, want %v", got.Format, tt.want)
			}
		})
	}
}

func TestSelectFormatColorSpace(t *testing.T) {
	q := capsQuerier{gputypes.TextureFormatBGRA8UnormSrgb: true}
	available := []driver.SurfaceFormat{
		{Format: gputypes.TextureFormatBGRA8UnormSrgb, ColorSpace: driver.ColorSpaceSRGBNonlinear},
		{Format: gputypes.TextureFormatBGRA8UnormSrgb, ColorSpace: driver.ColorSpacePassThrough},
	}
	got, err := SelectFormat(q, available, gputypes.TextureFormatUndefined, driver.ColorSpacePassThrough)
	if err != nil {
		t.Fatalf("SelectFormat() error = %v", err)
	}
	if got.ColorSpace != driver.ColorSpacePassThrough {
		t.Errorf("ColorSpace = %v, want %v", got.ColorSpace, driver.ColorSpacePassThrough)
	}
}

func TestSelectImageCount(t *testing.T) {
	tests := []struct {
		min, max, desired uint32
		want              uint32
	}{
		{2, 3, 0, 3},
		{2, 3, 1, 2},
		{2, 3, 2, 2},
		{2, 3, 8, 3},
		{3, 0, 0, 4},
		{3, 0, 10, 10},
		{1, 1, 0, 1},
	}
	for _, tt := range tests {
		caps := &driver.SurfaceCapabilities{MinImageCount: tt.min, MaxImageCount: tt.max}
		got := SelectImageCount(caps, tt.desired)
		if got != tt.want {
			t.Errorf("SelectImageCount(min=%d, max=%d, desired=%d) = %d, want %d",
				tt.min, tt.max, tt.desired, got, tt.want)
		}
		if got < tt.min || (tt.max != 0 && got > tt.max) {
			t.Errorf("SelectImageCount(min=%d, max=%d, desired=%d) = %d, out of bounds",
				tt.min, tt.max, tt.desired, got)
		}
	}
}

func TestSelectTransform(t *testing.T) {
	caps := &driver.SurfaceCapabilities{
		SupportedTransforms: driver.TransformIdentity | driver.TransformRotate90,
		CurrentTransform:    driver.TransformRotate90,
	}
	if got := SelectTransform(caps); got != driver.TransformIdentity {
		t.Errorf("SelectTransform() = %v, want identity", got)
	}
	caps.SupportedTransforms = driver.TransformRotate90
	if got := SelectTransform(caps); got != driver.TransformRotate90 {
		t.Errorf("SelectTransform() = %v, want current transform", got)
	}
}

func TestSelectPresentMode(t *testing.T) {
	fifo := gputypes.PresentModeFifo
	mailbox := gputypes.PresentModeMailbox
	immediate := gputypes.PresentModeImmediate
	tests := []struct {
		name     string
		modes    []gputypes.PresentMode
		interval Interval
		want     gputypes.PresentMode
	}{
		{"immediate available", []gputypes.PresentMode{fifo, mailbox, immediate}, IntervalImmediate, immediate},
		{"immediate falls back to mailbox", []gputypes.PresentMode{fifo, mailbox}, IntervalImmediate, mailbox},
		{"immediate falls back to fifo", []gputypes.PresentMode{fifo}, IntervalImmediate, fifo},
		{"default is fifo", []gputypes.PresentMode{fifo, mailbox, immediate}, IntervalDefault, fifo},
		{"one is fifo", []gputypes.PresentMode{fifo, immediate}, IntervalOne, fifo},
		{"two is fifo", []gputypes.PresentMode{fifo, mailbox}, IntervalTwo, fifo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectPresentMode(tt.modes, tt.interval)
			if got != tt.want {
				t.Errorf("SelectPresentMode(%v) = %v, want %v", tt.interval, got, tt.want)
			}
			if !slices.Contains(tt.modes, got) {
				t.Errorf("SelectPresentMode(%v) = %v, not in supported set", tt.interval, got)
			}
		})
	}
}

func TestSelectExtent(t *testing.T) {
	limits := driver.SurfaceCapabilities{
		CurrentExtent: driver.UndefinedExtent,
		MinExtent:     driver.Extent{Width: 16, Height: 16},
		MaxExtent:     driver.Extent{Width: 4096, Height: 4096},
	}
	tests := []struct {
		name    string
		current driver.Extent
		w, h    uint32
		want    driver.Extent
		wantErr error
	}{
		{"requested within limits", driver.UndefinedExtent, 800, 600, driver.Extent{Width: 800, Height: 600}, nil},
		{"clamped to max", driver.UndefinedExtent, 8000, 600, driver.Extent{Width: 4096, Height: 600}, nil},
		{"clamped to min", driver.UndefinedExtent, 4, 4, driver.Extent{Width: 16, Height: 16}, nil},
		{"current extent wins", driver.Extent{Width: 1920, Height: 1080}, 800, 600, driver.Extent{Width: 1920, Height: 1080}, nil},
		{"zero request", driver.UndefinedExtent, 0, 600, driver.Extent{}, ErrZeroArea},
		{"minimized window", driver.Extent{}, 800, 600, driver.Extent{}, ErrZeroArea},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := limits
			caps.CurrentExtent = tt.current
			got, err := SelectExtent(&caps, tt.w, tt.h)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SelectExtent() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SelectExtent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrZeroAreaWrapsHal(t *testing.T) {
	if !errors.Is(ErrZeroArea, hal.ErrZeroArea) {
		t.Error("ErrZeroArea does not wrap hal.ErrZeroArea")
	}
}
