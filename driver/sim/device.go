// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sim

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/present/driver"
)

// Op names recorded in Event.Op.
const (
	OpWaitIdle         = "wait-idle"
	OpCreateSwapchain  = "create-swapchain"
	OpDestroySwapchain = "destroy-swapchain"
	OpSwapchainImages  = "swapchain-images"
	OpCreateView       = "create-view"
	OpDestroyView      = "destroy-view"
	OpSubmit           = "submit"
	OpAcquire          = "acquire"
	OpPresent          = "present"
)

// Event is a recorded device call.
type Event struct {
	Op     string
	Handle uintptr
	Err    error
}

// Device is a simulated logical device. It implements driver.Device, and
// the embedded noop device provides the hal texture API used for depth
// buffers.
type Device struct {
	noop.Device

	cfg        Config
	cmd        *CommandBuffer
	swapchains []*Swapchain
	views      map[*ImageView]struct{}
	busy       bool

	events     []Event
	violations []string

	acquireErrs  []error
	presentErrs  []error
	createErr    error
	submitErr    error
	idleTimeouts int
}

// NewDevice returns a simulated device reporting cfg.
func NewDevice(cfg Config) *Device {
	d := &Device{
		cfg:   cfg,
		views: make(map[*ImageView]struct{}),
	}
	d.cmd = &CommandBuffer{dev: d}
	return d
}

var _ driver.Device = (*Device)(nil)

// Config returns the device configuration. Modifying the returned value's
// maps or slices changes what the device reports.
func (d *Device) Config() *Config { return &d.cfg }

// Events returns the calls recorded so far.
func (d *Device) Events() []Event { return d.events }

// ResetEvents clears the recorded calls.
func (d *Device) ResetEvents() { d.events = d.events[:0] }

// Violations returns protocol violations observed so far.
func (d *Device) Violations() []string { return d.violations }

// Swapchains returns every swapchain created by the device, including
// destroyed ones, in creation order.
func (d *Device) Swapchains() []*Swapchain { return d.swapchains }

// LiveViews returns the number of views that were created but not
// destroyed.
func (d *Device) LiveViews() int { return len(d.views) }

// Busy reports whether submitted work has not been waited on.
func (d *Device) Busy() bool { return d.busy }

// FailAcquire queues errors returned by subsequent AcquireNextImage calls.
func (d *Device) FailAcquire(errs ...error) { d.acquireErrs = append(d.acquireErrs, errs...) }

// FailPresent queues errors returned by subsequent Present calls.
func (d *Device) FailPresent(errs ...error) { d.presentErrs = append(d.presentErrs, errs...) }

// FailCreateSwapchain makes the next CreateSwapchain call fail with err.
func (d *Device) FailCreateSwapchain(err error) { d.createErr = err }

// FailSubmit makes the next Submit call fail with err.
func (d *Device) FailSubmit(err error) { d.submitErr = err }

// TimeoutIdle makes the next n WaitIdle calls time out.
func (d *Device) TimeoutIdle(n int) { d.idleTimeouts = n }

func (d *Device) record(op string, h uintptr, err error) {
	d.events = append(d.events, Event{Op: op, Handle: h, Err: err})
}

func (d *Device) violate(format string, args ...any) {
	d.violations = append(d.violations, fmt.Sprintf(format, args...))
}

func popErr(q *[]error) error {
	if len(*q) == 0 {
		return nil
	}
	err := (*q)[0]
	*q = (*q)[1:]
	return err
}

func (d *Device) surface(sf hal.Surface) (*Surface, error) {
	s, ok := sf.(*Surface)
	if !ok || s == nil {
		return nil, fmt.Errorf("sim: foreign surface %T", sf)
	}
	if s.lost || s.destroyed {
		return nil, driver.NewResultError("surface", driver.ErrorSurfaceLost)
	}
	return s, nil
}

// TextureFormatCapabilities returns the configured capabilities of format.
func (d *Device) TextureFormatCapabilities(format gputypes.TextureFormat) hal.TextureFormatCapabilities {
	return hal.TextureFormatCapabilities{Flags: d.cfg.FormatCapabilities[format]}
}

// SurfaceCapabilities returns the configured surface capabilities.
func (d *Device) SurfaceCapabilities(sf hal.Surface) (*driver.SurfaceCapabilities, error) {
	s, err := d.surface(sf)
	if err != nil {
		return nil, err
	}
	return &driver.SurfaceCapabilities{
		MinImageCount:       d.cfg.MinImageCount,
		MaxImageCount:       d.cfg.MaxImageCount,
		CurrentExtent:       s.extent,
		MinExtent:           d.cfg.MinExtent,
		MaxExtent:           d.cfg.MaxExtent,
		SupportedTransforms: d.cfg.SupportedTransforms,
		CurrentTransform:    d.cfg.CurrentTransform,
		SupportedUsage:      d.cfg.SupportedUsage | gputypes.TextureUsageRenderAttachment,
		AlphaModes:          slices.Clone(d.cfg.AlphaModes),
	}, nil
}

// SurfaceFormats returns the configured surface formats.
func (d *Device) SurfaceFormats(sf hal.Surface) ([]driver.SurfaceFormat, error) {
	if _, err := d.surface(sf); err != nil {
		return nil, err
	}
	return slices.Clone(d.cfg.Formats), nil
}

// SurfacePresentModes returns the configured present modes, with FIFO
// always included.
func (d *Device) SurfacePresentModes(sf hal.Surface) ([]gputypes.PresentMode, error) {
	if _, err := d.surface(sf); err != nil {
		return nil, err
	}
	modes := slices.Clone(d.cfg.PresentModes)
	if !slices.Contains(modes, gputypes.PresentModeFifo) {
		modes = append(modes, gputypes.PresentModeFifo)
	}
	return modes, nil
}

// CreateSwapchain creates a swapchain with desc.MinImageCount images plus
// the configured ExtraImages, all in the undefined layout.
func (d *Device) CreateSwapchain(desc *driver.SwapchainDescriptor) (driver.Swapchain, error) {
	sc, err := d.createSwapchain(desc)
	var h uintptr
	if sc != nil {
		h = sc.handle
	}
	d.record(OpCreateSwapchain, h, err)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func (d *Device) createSwapchain(desc *driver.SwapchainDescriptor) (*Swapchain, error) {
	if desc == nil {
		return nil, errors.New("sim: nil swapchain descriptor")
	}
	var old *Swapchain
	if desc.OldSwapchain != nil {
		o, ok := desc.OldSwapchain.(*Swapchain)
		if !ok {
			return nil, errors.New("sim: foreign old swapchain")
		}
		if o.destroyed {
			d.violate("old swapchain %d passed after destruction", o.handle)
			return nil, errors.New("sim: old swapchain destroyed")
		}
		// The old swapchain is retired even if creation fails.
		o.retired = true
		old = o
	}
	if err := d.createErr; err != nil {
		d.createErr = nil
		return nil, err
	}
	s, err := d.surface(desc.Surface)
	if err != nil {
		return nil, err
	}
	for _, other := range d.swapchains {
		if other.surface == s && other.live() && other != old {
			d.violate("second live swapchain on surface %d", s.handle)
			return nil, errors.New("sim: native window in use")
		}
	}
	if desc.MinImageCount < d.cfg.MinImageCount ||
		(d.cfg.MaxImageCount != 0 && desc.MinImageCount > d.cfg.MaxImageCount) {
		return nil, fmt.Errorf("sim: image count %d outside [%d, %d]",
			desc.MinImageCount, d.cfg.MinImageCount, d.cfg.MaxImageCount)
	}
	if desc.Extent.IsZero() ||
		desc.Extent.Width > d.cfg.MaxExtent.Width || desc.Extent.Height > d.cfg.MaxExtent.Height {
		return nil, fmt.Errorf("sim: extent %s outside surface limits", desc.Extent)
	}
	if !d.formatSupported(desc.Format) {
		return nil, fmt.Errorf("sim: surface does not support format %s", desc.Format)
	}
	modes, _ := d.SurfacePresentModes(s)
	if !slices.Contains(modes, desc.PresentMode) {
		return nil, fmt.Errorf("sim: unsupported present mode %s", desc.PresentMode)
	}
	if !d.cfg.SupportedTransforms.Contains(desc.PreTransform) && desc.PreTransform != d.cfg.CurrentTransform {
		return nil, fmt.Errorf("sim: unsupported pre-transform %s", desc.PreTransform)
	}

	sc := &Swapchain{
		handle:   nextHandle(),
		desc:     *desc,
		surface:  s,
		images:   make([]*Image, desc.MinImageCount+d.cfg.ExtraImages),
		acquired: make([]bool, desc.MinImageCount+d.cfg.ExtraImages),
	}
	sc.desc.OldSwapchain = nil
	for i := range sc.images {
		sc.images[i] = &Image{handle: nextHandle(), owner: sc, layout: driver.LayoutUndefined}
	}
	d.swapchains = append(d.swapchains, sc)
	return sc, nil
}

func (d *Device) formatSupported(f gputypes.TextureFormat) bool {
	if len(d.cfg.Formats) == 1 && d.cfg.Formats[0].Format == gputypes.TextureFormatUndefined {
		return true
	}
	for _, sf := range d.cfg.Formats {
		if sf.Format == f {
			return true
		}
	}
	return false
}

// DestroySwapchain destroys sc.
func (d *Device) DestroySwapchain(sc driver.Swapchain) {
	s, ok := sc.(*Swapchain)
	if !ok || s == nil {
		d.violate("destroy of foreign swapchain %T", sc)
		return
	}
	d.record(OpDestroySwapchain, s.handle, nil)
	if s.destroyed {
		d.violate("swapchain %d destroyed twice", s.handle)
		return
	}
	if d.busy {
		d.violate("swapchain %d destroyed while device busy", s.handle)
	}
	for v := range d.views {
		if v.image.owner == s {
			d.violate("swapchain %d destroyed with live view %d", s.handle, v.handle)
		}
	}
	s.destroyed = true
}

// SwapchainImages returns the images of sc.
func (d *Device) SwapchainImages(sc driver.Swapchain) ([]driver.Image, error) {
	s, ok := sc.(*Swapchain)
	if !ok || s == nil || s.destroyed {
		return nil, errors.New("sim: invalid swapchain")
	}
	d.record(OpSwapchainImages, s.handle, nil)
	imgs := make([]driver.Image, len(s.images))
	for i, img := range s.images {
		imgs[i] = img
	}
	return imgs, nil
}

// CreateImageView creates a view over img.
func (d *Device) CreateImageView(img driver.Image, desc *hal.TextureViewDescriptor) (driver.ImageView, error) {
	si, ok := img.(*Image)
	if !ok || si == nil || si.owner.destroyed {
		return nil, errors.New("sim: invalid image")
	}
	v := &ImageView{handle: nextHandle(), image: si}
	if desc != nil {
		v.desc = *desc
	}
	d.views[v] = struct{}{}
	d.record(OpCreateView, v.handle, nil)
	return v, nil
}

// DestroyImageView destroys view.
func (d *Device) DestroyImageView(view driver.ImageView) {
	v, ok := view.(*ImageView)
	if !ok || v == nil {
		d.violate("destroy of foreign view %T", view)
		return
	}
	d.record(OpDestroyView, v.handle, nil)
	if v.destroyed {
		d.violate("view %d destroyed twice", v.handle)
		return
	}
	if d.busy {
		d.violate("view %d destroyed while device busy", v.handle)
	}
	v.destroyed = true
	delete(d.views, v)
}

// CreateSemaphore creates an unsignaled semaphore.
func (d *Device) CreateSemaphore() (driver.Semaphore, error) {
	return &Semaphore{handle: nextHandle()}, nil
}

// DestroySemaphore destroys sem.
func (d *Device) DestroySemaphore(driver.Semaphore) {}

// CopyCommandBuffer returns the device's copy command buffer.
func (d *Device) CopyCommandBuffer() driver.CommandBuffer { return d.cmd }

// Submit executes cmd immediately and marks the device busy until the
// next successful WaitIdle.
func (d *Device) Submit(cmd driver.CommandBuffer, wait, signal []driver.Semaphore) error {
	err := d.submit(cmd, wait, signal)
	d.record(OpSubmit, 0, err)
	return err
}

func (d *Device) submit(cmd driver.CommandBuffer, wait, signal []driver.Semaphore) error {
	if err := d.submitErr; err != nil {
		d.submitErr = nil
		return err
	}
	c, ok := cmd.(*CommandBuffer)
	if !ok || c.dev != d {
		return errors.New("sim: foreign command buffer")
	}
	if c.state != cmdExecutable {
		return errors.New("sim: submit of command buffer that is not executable")
	}
	for _, w := range wait {
		if s, ok := w.(*Semaphore); ok {
			s.signaled = false
		}
	}
	if err := c.execute(); err != nil {
		d.violate("%v", err)
		return err
	}
	for _, sig := range signal {
		if s, ok := sig.(*Semaphore); ok {
			s.signaled = true
		}
	}
	c.state = cmdPending
	d.busy = true
	return nil
}

// AcquireNextImage returns the next image that is not currently acquired.
// At most len(images)-MinImageCount+1 images can be held at once; beyond
// that the simulated wait expires with hal.ErrTimeout.
func (d *Device) AcquireNextImage(sc driver.Swapchain, _ time.Duration, signal driver.Semaphore) (uint32, error) {
	s, _ := sc.(*Swapchain)
	idx, err := d.acquire(s, signal)
	var h uintptr
	if s != nil {
		h = s.handle
	}
	d.record(OpAcquire, h, err)
	return idx, err
}

func (d *Device) acquire(s *Swapchain, signal driver.Semaphore) (uint32, error) {
	if err := popErr(&d.acquireErrs); err != nil {
		return 0, err
	}
	if s == nil || s.destroyed {
		return 0, errors.New("sim: invalid swapchain")
	}
	if s.surface.lost {
		return 0, driver.NewResultError("acquire", driver.ErrorSurfaceLost)
	}
	if s.outdated() {
		return 0, driver.NewResultError("acquire", driver.ErrorOutOfDate)
	}
	limit := len(s.images) - int(d.cfg.MinImageCount) + 1
	if s.acquiredCount() >= limit {
		return 0, driver.NewResultError("acquire", driver.Timeout)
	}
	for n := range s.images {
		i := (s.next + n) % len(s.images)
		if s.acquired[i] {
			continue
		}
		s.acquired[i] = true
		s.next = (i + 1) % len(s.images)
		if sem, ok := signal.(*Semaphore); ok {
			sem.signaled = true
		}
		return uint32(i), nil
	}
	return 0, driver.NewResultError("acquire", driver.Timeout)
}

// Present releases image index of sc back to the presentation engine.
func (d *Device) Present(sc driver.Swapchain, index uint32, wait []driver.Semaphore) error {
	s, _ := sc.(*Swapchain)
	err := d.present(s, index, wait)
	var h uintptr
	if s != nil {
		h = s.handle
	}
	d.record(OpPresent, h, err)
	return err
}

func (d *Device) present(s *Swapchain, index uint32, wait []driver.Semaphore) error {
	if s == nil || s.destroyed {
		return errors.New("sim: invalid swapchain")
	}
	if int(index) >= len(s.images) || !s.acquired[index] {
		d.violate("present of image %d that was not acquired", index)
		return fmt.Errorf("sim: image %d not acquired", index)
	}
	// The image is consumed whether or not presentation succeeds.
	s.acquired[index] = false
	for _, w := range wait {
		if sem, ok := w.(*Semaphore); ok {
			sem.signaled = false
		}
	}
	if err := popErr(&d.presentErrs); err != nil {
		return err
	}
	if s.surface.lost {
		return driver.NewResultError("present", driver.ErrorSurfaceLost)
	}
	if s.outdated() {
		return driver.NewResultError("present", driver.ErrorOutOfDate)
	}
	if l := s.images[index].layout; l != driver.LayoutPresentSrc {
		d.violate("present of image %d in layout %s", index, l)
	}
	s.presents++
	return nil
}

// WaitIdle completes all submitted work unless a timeout was injected.
func (d *Device) WaitIdle(time.Duration) error {
	if d.idleTimeouts > 0 {
		d.idleTimeouts--
		err := driver.NewResultError("wait idle", driver.Timeout)
		d.record(OpWaitIdle, 0, err)
		return err
	}
	d.busy = false
	if d.cmd.state == cmdPending {
		d.cmd.state = cmdExecutable
	}
	d.record(OpWaitIdle, 0, nil)
	return nil
}
