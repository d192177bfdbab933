// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// TextureDevice is the subset of hal.Device needed for depth buffers.
type TextureDevice interface {
	CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error)
	DestroyTexture(texture hal.Texture)
	CreateTextureView(texture hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error)
	DestroyTextureView(view hal.TextureView)
}

// DepthStencil is the depth/stencil companion of a backbuffer. It is
// resized together with the backbuffer but lives outside the swapchain.
type DepthStencil struct {
	dev     TextureDevice
	desc    hal.TextureDescriptor
	texture hal.Texture
	view    hal.TextureView
}

// NewDepthStencil creates a width x height depth buffer of format.
func NewDepthStencil(dev TextureDevice, format gputypes.TextureFormat, width, height uint32) (*DepthStencil, error) {
	if !format.HasDepth() && !format.HasStencil() {
		return nil, fmt.Errorf("%w: %s is not a depth/stencil format", ErrInvalidParameters, format)
	}
	d := &DepthStencil{
		dev: dev,
		desc: hal.TextureDescriptor{
			Label:         "depth-stencil",
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        format,
			Usage:         gputypes.TextureUsageRenderAttachment,
		},
	}
	if err := d.create(width, height); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DepthStencil) create(width, height uint32) error {
	if width == 0 || height == 0 {
		return ErrZeroArea
	}
	desc := d.desc
	desc.Size = hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}
	tex, err := d.dev.CreateTexture(&desc)
	if err != nil {
		return fmt.Errorf("present: depth texture: %w", err)
	}
	view, err := d.dev.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           "depth-stencil view",
		Format:          desc.Format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		d.dev.DestroyTexture(tex)
		return fmt.Errorf("present: depth view: %w", err)
	}
	d.desc = desc
	d.texture, d.view = tex, view
	return nil
}

// Resize destroys the depth buffer and creates it again at the new size
// with the same description.
func (d *DepthStencil) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return ErrZeroArea
	}
	d.Destroy()
	return d.create(width, height)
}

// Destroy releases the texture and its view.
func (d *DepthStencil) Destroy() {
	if d.view != nil {
		d.dev.DestroyTextureView(d.view)
		d.view = nil
	}
	if d.texture != nil {
		d.dev.DestroyTexture(d.texture)
		d.texture = nil
	}
}

// Texture returns the depth texture, or nil after Destroy.
func (d *DepthStencil) Texture() hal.Texture { return d.texture }

// View returns the depth view, or nil after Destroy.
func (d *DepthStencil) View() hal.TextureView { return d.view }

// Width returns the width in pixels.
func (d *DepthStencil) Width() uint32 { return d.desc.Size.Width }

// Height returns the height in pixels.
func (d *DepthStencil) Height() uint32 { return d.desc.Size.Height }

// Format returns the depth/stencil format.
func (d *DepthStencil) Format() gputypes.TextureFormat { return d.desc.Format }
