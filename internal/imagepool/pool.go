// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package imagepool manages the views and initial layout of the images of
// a live swapchain.
package imagepool

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/present/driver"
	"github.com/gogpu/present/internal/swapchain"
)

// Image is one swapchain image and its view.
type Image struct {
	Index  uint32
	Native driver.Image
	View   driver.ImageView
	Layout driver.ImageLayout
}

// Config configures a Pool.
type Config struct {
	// ClearColor is the color every image is cleared to on build.
	ClearColor gputypes.Color

	// WaitIdle blocks until submitted work completes. It is called after
	// the initial layout transition and before views are destroyed.
	WaitIdle func() error

	Logger *slog.Logger
}

// Pool holds the images of one swapchain generation.
// Images are owned by the swapchain; the pool owns only the views.
type Pool struct {
	dev    driver.Device
	cfg    Config
	log    *slog.Logger
	images []Image
}

// New returns an empty pool.
func New(dev driver.Device, cfg Config) *Pool {
	p := &Pool{dev: dev, cfg: cfg, log: cfg.Logger}
	if p.log == nil {
		p.log = slog.New(slog.DiscardHandler)
	}
	if p.cfg.WaitIdle == nil {
		p.cfg.WaitIdle = func() error { return dev.WaitIdle(swapchain.DefaultIdleTimeout) }
	}
	return p
}

// Len returns the number of images.
func (p *Pool) Len() int { return len(p.images) }

// Images returns the images. The slice is valid until the next Build or
// Teardown.
func (p *Pool) Images() []Image { return p.images }

// Image returns the image at index i. An index outside the pool is a
// driver or caller defect and panics.
func (p *Pool) Image(i uint32) *Image {
	if int(i) >= len(p.images) {
		panic(fmt.Sprintf("imagepool: image index %d out of range [0, %d)", i, len(p.images)))
	}
	return &p.images[i]
}

// Build enumerates the images of sc, creates a view per image and
// transitions every image from the undefined layout through a clear into
// the presentable layout. Build waits for the transition to complete, so
// on success every image is in driver.LayoutPresentSrc.
//
// Build sets sc.ImageCount to the number of images the driver returned,
// which may exceed the requested count.
//
// The pool must be empty. On failure no views are left alive, except
// when the wait for the initialization commands fails: the views may
// still be in use, so they are kept for Teardown.
func (p *Pool) Build(sc *swapchain.Swapchain) ([]Image, error) {
	if len(p.images) != 0 {
		return nil, errors.New("imagepool: build on a pool that was not torn down")
	}
	natives, err := p.dev.SwapchainImages(sc.Handle)
	if err != nil {
		return nil, fmt.Errorf("imagepool: images: %w", err)
	}

	images := make([]Image, 0, len(natives))
	for i, img := range natives {
		view, err := p.dev.CreateImageView(img, &hal.TextureViewDescriptor{
			Label:           fmt.Sprintf("backbuffer %d", i),
			Format:          sc.Format,
			Dimension:       gputypes.TextureViewDimension2D,
			Aspect:          gputypes.TextureAspectAll,
			MipLevelCount:   1,
			ArrayLayerCount: 1,
		})
		if err != nil {
			p.destroyViews(images)
			return nil, fmt.Errorf("imagepool: view %d: %w", i, err)
		}
		images = append(images, Image{
			Index:  uint32(i),
			Native: img,
			View:   view,
			Layout: driver.LayoutUndefined,
		})
	}

	if err := p.transition(images); err != nil {
		p.destroyViews(images)
		return nil, err
	}
	for i := range images {
		images[i].Layout = driver.LayoutPresentSrc
	}
	p.images = images
	if err := p.cfg.WaitIdle(); err != nil {
		return nil, fmt.Errorf("imagepool: layout transition: %w", err)
	}
	sc.ImageCount = uint32(len(images))
	p.log.Debug("imagepool: built", "generation", sc.Generation, "images", len(images))
	return images, nil
}

// transition records and submits the one-shot initialization commands.
func (p *Pool) transition(images []Image) error {
	toTransfer := make([]driver.ImageBarrier, len(images))
	toPresent := make([]driver.ImageBarrier, len(images))
	for i, img := range images {
		toTransfer[i] = driver.ImageBarrier{
			Image:     img.Native,
			OldLayout: driver.LayoutUndefined,
			NewLayout: driver.LayoutTransferDst,
			SrcAccess: driver.AccessNone,
			DstAccess: driver.AccessTransferWrite,
			Aspect:    gputypes.TextureAspectAll,
		}
		toPresent[i] = driver.ImageBarrier{
			Image:     img.Native,
			OldLayout: driver.LayoutTransferDst,
			NewLayout: driver.LayoutPresentSrc,
			SrcAccess: driver.AccessTransferWrite,
			DstAccess: driver.AccessMemoryRead,
			Aspect:    gputypes.TextureAspectAll,
		}
	}

	cmd := p.dev.CopyCommandBuffer()
	if err := cmd.Reset(); err != nil {
		return fmt.Errorf("imagepool: reset commands: %w", err)
	}
	if err := cmd.Begin(); err != nil {
		return fmt.Errorf("imagepool: begin commands: %w", err)
	}
	cmd.PipelineBarrier(driver.StageTopOfPipe, driver.StageTransfer, toTransfer...)
	for _, img := range images {
		cmd.ClearColorImage(img.Native, driver.LayoutTransferDst, p.cfg.ClearColor)
	}
	cmd.PipelineBarrier(driver.StageTransfer, driver.StageBottomOfPipe, toPresent...)
	if err := cmd.End(); err != nil {
		return fmt.Errorf("imagepool: end commands: %w", err)
	}
	if err := p.dev.Submit(cmd, nil, nil); err != nil {
		return fmt.Errorf("imagepool: submit: %w", err)
	}
	return nil
}

// Teardown waits for the device to become idle and destroys every view.
// The images themselves belong to the swapchain and are left alone.
// If the wait fails the views are kept and the error is returned.
func (p *Pool) Teardown() error {
	if len(p.images) == 0 {
		return nil
	}
	if err := p.cfg.WaitIdle(); err != nil {
		return fmt.Errorf("imagepool: teardown: %w", err)
	}
	p.destroyViews(p.images)
	p.log.Debug("imagepool: torn down", "images", len(p.images))
	p.images = nil
	return nil
}

func (p *Pool) destroyViews(images []Image) {
	for i := range images {
		if images[i].View != nil {
			p.dev.DestroyImageView(images[i].View)
			images[i].View = nil
		}
	}
}
