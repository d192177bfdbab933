// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/present/internal/swapchain"
	"github.com/gogpu/present/surface"
)

// DefaultAcquireTimeout bounds the wait for the next swapchain image.
const DefaultAcquireTimeout = 5 * time.Second

// DefaultIdleTimeout bounds a single device idle wait.
const DefaultIdleTimeout = swapchain.DefaultIdleTimeout

// Option configures a Presenter during creation.
//
// Example:
//
//	p, err := present.New(dev, inst, params,
//	    present.WithAcquireTimeout(time.Second),
//	    present.WithImageCount(3))
type Option func(*options)

type options struct {
	acquireTimeout time.Duration
	idleTimeout    time.Duration
	imageCount     uint32
	binding        surface.Binding
	clearColor     gputypes.Color
	depthDevice    TextureDevice
}

func defaultOptions() options {
	return options{
		acquireTimeout: DefaultAcquireTimeout,
		idleTimeout:    DefaultIdleTimeout,
		clearColor:     gputypes.Color{A: 1},
	}
}

// WithAcquireTimeout bounds the wait for the next image. Values <= 0 are
// ignored.
func WithAcquireTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.acquireTimeout = d
		}
	}
}

// WithIdleTimeout bounds each device idle wait before destructive
// operations. A timed out wait is retried once before ErrDeviceBusy is
// returned. Values <= 0 are ignored.
func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.idleTimeout = d
		}
	}
}

// WithImageCount sets the desired number of swapchain images. The count
// is clamped to what the surface supports. By default one more than the
// surface minimum is used.
func WithImageCount(n uint32) Option {
	return func(o *options) {
		o.imageCount = n
	}
}

// WithBinding overrides the platform window binding.
func WithBinding(b surface.Binding) Option {
	return func(o *options) {
		o.binding = b
	}
}

// WithClearColor sets the color new swapchain images are cleared to.
// The default is opaque black.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithDepthDevice sets the device depth buffers are created on. By
// default the driver device is used if it can create textures.
func WithDepthDevice(d TextureDevice) Option {
	return func(o *options) {
		o.depthDevice = d
	}
}
