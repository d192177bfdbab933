// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package swapchain negotiates swapchain parameters with a driver and
// creates and destroys swapchains as whole units.
package swapchain

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/present/driver"
)

// DefaultIdleTimeout bounds a single device idle wait.
const DefaultIdleTimeout = 2 * time.Second

// Params is the input of one negotiation.
type Params struct {
	Width, Height uint32
	Format        gputypes.TextureFormat
	ColorSpace    driver.ColorSpace
	Interval      Interval
}

// Swapchain is a negotiated, live swapchain.
type Swapchain struct {
	Handle      driver.Swapchain
	Format      gputypes.TextureFormat
	ColorSpace  driver.ColorSpace
	PresentMode gputypes.PresentMode
	Transform   driver.SurfaceTransform
	Extent      driver.Extent

	// ImageCount is the requested image count until the images are
	// fetched, then the number the driver actually returned.
	ImageCount uint32

	// Generation increases by one with every swapchain a Negotiator
	// creates, starting at 1.
	Generation uint64
}

// Config configures a Negotiator.
type Config struct {
	// IdleTimeout bounds each device idle wait. Zero means
	// DefaultIdleTimeout.
	IdleTimeout time.Duration

	// ImageCount is the desired image count. Zero means one more than
	// the device minimum.
	ImageCount uint32

	Logger *slog.Logger
}

// Negotiator owns swapchain creation and destruction for one device.
type Negotiator struct {
	dev        driver.Device
	formats    *CapabilityCache
	log        *slog.Logger
	idle       time.Duration
	imageCount uint32
	generation uint64
}

// New returns a Negotiator for dev.
func New(dev driver.Device, cfg Config) *Negotiator {
	n := &Negotiator{
		dev:        dev,
		formats:    NewCapabilityCache(dev),
		log:        cfg.Logger,
		idle:       cfg.IdleTimeout,
		imageCount: cfg.ImageCount,
	}
	if n.idle <= 0 {
		n.idle = DefaultIdleTimeout
	}
	if n.log == nil {
		n.log = slog.New(slog.DiscardHandler)
	}
	return n
}

// Generation returns the generation of the last created swapchain.
func (n *Negotiator) Generation() uint64 { return n.generation }

// FormatCache returns the format capability cache used by negotiation.
func (n *Negotiator) FormatCache() *CapabilityCache { return n.formats }

// Create negotiates and creates a swapchain on sf.
//
// If old is not nil, Create first waits for the device to become idle,
// passes old's handle to the driver as a reuse hint and destroys old
// before returning, whether or not creation succeeded. The caller must
// have released everything that references old's images. If the idle
// wait fails, old is left untouched.
func (n *Negotiator) Create(sf hal.Surface, p Params, old *Swapchain) (*Swapchain, error) {
	if old != nil && old.Handle != nil {
		if err := n.WaitIdle(); err != nil {
			return nil, err
		}
	} else {
		old = nil
	}
	sc, err := n.create(sf, p, old)
	if old != nil {
		n.dev.DestroySwapchain(old.Handle)
		old.Handle = nil
		n.log.Debug("swapchain: destroyed", "generation", old.Generation)
	}
	if err != nil {
		return nil, err
	}
	n.generation++
	sc.Generation = n.generation
	n.log.Info("swapchain: created",
		"generation", sc.Generation,
		"format", sc.Format,
		"images", sc.ImageCount,
		"mode", sc.PresentMode,
		"extent", sc.Extent)
	return sc, nil
}

func (n *Negotiator) create(sf hal.Surface, p Params, old *Swapchain) (*Swapchain, error) {
	caps, err := n.dev.SurfaceCapabilities(sf)
	if err != nil {
		return nil, classify("surface capabilities", err)
	}
	formats, err := n.dev.SurfaceFormats(sf)
	if err != nil {
		return nil, classify("surface formats", err)
	}
	modes, err := n.dev.SurfacePresentModes(sf)
	if err != nil {
		return nil, classify("present modes", err)
	}

	format, err := SelectFormat(n.formats, formats, p.Format, p.ColorSpace)
	if err != nil {
		return nil, err
	}
	extent, err := SelectExtent(caps, p.Width, p.Height)
	if err != nil {
		return nil, err
	}

	usage := gputypes.TextureUsageRenderAttachment
	if caps.SupportedUsage.Contains(gputypes.TextureUsageCopyDst) {
		usage |= gputypes.TextureUsageCopyDst
	} else {
		n.log.Warn("swapchain: surface does not support copy destination usage")
	}

	desc := &driver.SwapchainDescriptor{
		Label:         "backbuffer",
		Surface:       sf,
		MinImageCount: SelectImageCount(caps, n.imageCount),
		Format:        format.Format,
		ColorSpace:    format.ColorSpace,
		Extent:        extent,
		Usage:         usage,
		PreTransform:  SelectTransform(caps),
		AlphaMode:     selectAlphaMode(caps.AlphaModes),
		PresentMode:   SelectPresentMode(modes, p.Interval),
		Clipped:       true,
	}
	if old != nil {
		desc.OldSwapchain = old.Handle
	}
	n.log.Debug("swapchain: negotiating",
		"requested", p.Format,
		"interval", p.Interval,
		"minImages", caps.MinImageCount,
		"maxImages", caps.MaxImageCount)

	h, err := n.dev.CreateSwapchain(desc)
	if err != nil {
		return nil, classify("create swapchain", err)
	}
	return &Swapchain{
		Handle:      h,
		Format:      desc.Format,
		ColorSpace:  desc.ColorSpace,
		ImageCount:  desc.MinImageCount,
		PresentMode: desc.PresentMode,
		Transform:   desc.PreTransform,
		Extent:      desc.Extent,
	}, nil
}

// Destroy waits for the device to become idle and destroys sc.
// If the device stays busy, sc is left alive and the error wraps
// ErrDeviceBusy.
func (n *Negotiator) Destroy(sc *Swapchain) error {
	if sc == nil || sc.Handle == nil {
		return nil
	}
	if err := n.WaitIdle(); err != nil {
		return err
	}
	n.dev.DestroySwapchain(sc.Handle)
	sc.Handle = nil
	n.log.Debug("swapchain: destroyed", "generation", sc.Generation)
	return nil
}

// WaitIdle waits for the device to finish all submitted work.
// A timed out wait is retried once.
func (n *Negotiator) WaitIdle() error {
	err := n.dev.WaitIdle(n.idle)
	if err == nil {
		return nil
	}
	if !errors.Is(err, hal.ErrTimeout) {
		return fmt.Errorf("present: wait idle: %w", err)
	}
	n.log.Warn("swapchain: device idle wait timed out, retrying", "timeout", n.idle)
	err = n.dev.WaitIdle(n.idle)
	if err == nil {
		return nil
	}
	if errors.Is(err, hal.ErrTimeout) {
		return fmt.Errorf("%w: %w", ErrDeviceBusy, err)
	}
	return fmt.Errorf("present: wait idle: %w", err)
}
