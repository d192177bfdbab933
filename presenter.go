// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/present/driver"
	"github.com/gogpu/present/internal/imagepool"
	"github.com/gogpu/present/internal/swapchain"
	"github.com/gogpu/present/surface"
)

// Presenter presents frames to a window through a swapchain.
//
// A Presenter is driven by a single render goroutine. Only RequestResize
// and the Backbuffer accessors may be used from other goroutines.
type Presenter struct {
	dev    driver.Device
	opts   options
	log    *slog.Logger
	params PresentationParameters

	surface    *surface.Surface
	neg        *swapchain.Negotiator
	pool       *imagepool.Pool
	sc         *swapchain.Swapchain
	backbuffer *Backbuffer
	depth      *DepthStencil

	// acquireSems is a ring of semaphores signaled by acquisition.
	// renderSems holds one semaphore per image, signaled by Submit and
	// waited on by Present.
	acquireSems []driver.Semaphore
	renderSems  []driver.Semaphore
	nextSem     int
	curAcquire  driver.Semaphore
	rendered    bool

	// stale is set while a rebuild is incomplete. The next Acquire
	// rebuilds again.
	stale bool

	state   FrameState
	index   uint32
	pending atomic.Pointer[resizeRequest]
	closed  bool
}

// New creates a presenter for params.Window on dev. creator creates the
// platform surface; a wgpu hal.Instance can be passed directly.
//
// On success a swapchain exists, every image is initialized and the first
// image is acquired, so the backbuffer is immediately usable.
func New(dev driver.Device, creator surface.Creator, params PresentationParameters, opts ...Option) (*Presenter, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := Logger()

	p := &Presenter{
		dev:        dev,
		opts:       o,
		log:        log,
		params:     params,
		backbuffer: newBackbuffer(),
	}
	p.neg = swapchain.New(dev, swapchain.Config{
		IdleTimeout: o.idleTimeout,
		ImageCount:  o.imageCount,
		Logger:      log,
	})
	p.pool = imagepool.New(dev, imagepool.Config{
		ClearColor: o.clearColor,
		WaitIdle:   p.neg.WaitIdle,
		Logger:     log,
	})

	sf, err := surface.NewProvider(creator, o.binding, log).Create(params.Window)
	if err != nil {
		return nil, err
	}
	p.surface = sf

	if err := p.rebuild(true); err != nil && !errors.Is(err, ErrFrameDropped) {
		return nil, errors.Join(err, p.OnDestroyed())
	}
	if params.DepthStencilFormat != gputypes.TextureFormatUndefined {
		if err := p.createDepth(); err != nil {
			return nil, errors.Join(err, p.OnDestroyed())
		}
	}
	return p, nil
}

func (p *Presenter) createDepth() error {
	td := p.opts.depthDevice
	if td == nil {
		var ok bool
		if td, ok = p.dev.(TextureDevice); !ok {
			return fmt.Errorf("%w: depth format set but %T cannot create textures", ErrInvalidParameters, p.dev)
		}
	}
	d, err := NewDepthStencil(td, p.params.DepthStencilFormat, p.backbuffer.Width(), p.backbuffer.Height())
	if err != nil {
		return err
	}
	p.depth = d
	return nil
}

// Backbuffer returns the backbuffer. The returned pointer stays valid for
// the life of the presenter.
func (p *Presenter) Backbuffer() *Backbuffer { return p.backbuffer }

// DepthStencil returns the depth buffer, or nil if none was requested.
func (p *Presenter) DepthStencil() *DepthStencil { return p.depth }

// State returns the frame state.
func (p *Presenter) State() FrameState { return p.state }

// FrameIndex returns the index of the acquired image.
func (p *Presenter) FrameIndex() uint32 { return p.index }

// Generation returns the generation of the live swapchain, or zero if
// there is none.
func (p *Presenter) Generation() uint64 {
	if p.sc == nil {
		return 0
	}
	return p.sc.Generation
}

// SurfaceFormat returns the negotiated backbuffer format, so canvases can
// match it.
func (p *Presenter) SurfaceFormat() gputypes.TextureFormat { return p.backbuffer.Format() }

// Description returns the presentation parameters with the negotiated
// size and format filled in.
func (p *Presenter) Description() PresentationParameters {
	d := p.params
	desc := p.backbuffer.Description()
	d.BackBufferWidth = int(desc.Width)
	d.BackBufferHeight = int(desc.Height)
	d.BackBufferFormat = desc.Format
	return d
}

// NativePresenter returns the live native swapchain, or nil.
func (p *Presenter) NativePresenter() driver.Swapchain {
	if p.sc == nil {
		return nil
	}
	return p.sc.Handle
}

// IsFullScreen reports whether the presenter is in exclusive full-screen.
// It always returns false.
func (p *Presenter) IsFullScreen() bool { return false }

// SetFullScreen switches exclusive full-screen. Entering full-screen is
// not implemented; leaving it is a no-op.
func (p *Presenter) SetFullScreen(fullScreen bool) error {
	if fullScreen {
		return fmt.Errorf("full-screen: %w", ErrNotImplemented)
	}
	return nil
}

// AcquireSemaphore returns the semaphore signaled when the acquired image
// is ready. The first submission rendering into the backbuffer must wait
// on it; Submit does this.
func (p *Presenter) AcquireSemaphore() driver.Semaphore { return p.curAcquire }

// Acquire acquires the next swapchain image and points the backbuffer to
// it. It does nothing if an image is already acquired.
//
// If the swapchain is out of date it is recreated, the backbuffer is not
// repointed and ErrFrameDropped is returned; the next Acquire uses the new
// swapchain.
func (p *Presenter) Acquire() error {
	if p.closed {
		return ErrClosed
	}
	if err := p.applyPendingResize(); err != nil {
		return err
	}
	if p.state == FrameAcquired {
		return nil
	}
	if p.sc == nil || p.stale {
		return p.rebuild(true)
	}
	return p.acquire()
}

func (p *Presenter) acquire() error {
	sem := p.acquireSems[p.nextSem]
	idx, err := p.dev.AcquireNextImage(p.sc.Handle, p.opts.acquireTimeout, sem)
	switch {
	case err == nil:
	case driver.ResultOf(err) == driver.Suboptimal:
		p.log.Debug("present: suboptimal swapchain", "generation", p.sc.Generation)
	case driver.IsOutOfDate(err):
		p.log.Warn("present: swapchain out of date on acquire, recreating", "generation", p.sc.Generation)
		if rerr := p.rebuild(false); rerr != nil {
			return rerr
		}
		return ErrFrameDropped
	case errors.Is(err, hal.ErrTimeout):
		return fmt.Errorf("%w after %v: %w", ErrAcquireTimeout, p.opts.acquireTimeout, err)
	case errors.Is(err, hal.ErrSurfaceLost):
		return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	default:
		return fmt.Errorf("present: acquire: %w", err)
	}

	img := p.pool.Image(idx)
	p.nextSem = (p.nextSem + 1) % len(p.acquireSems)
	p.curAcquire = sem
	p.rendered = false
	p.index = idx
	p.backbuffer.repoint(img, p.sc.Generation)
	p.state = FrameAcquired
	p.log.Debug("present: acquired", "index", idx, "generation", p.sc.Generation)
	return nil
}

// Submit submits cmd, which renders into the backbuffer. The submission
// waits for the acquired image and signals the semaphore Present waits
// on.
func (p *Presenter) Submit(cmd driver.CommandBuffer) error {
	if p.closed {
		return ErrClosed
	}
	if p.state != FrameAcquired {
		return fmt.Errorf("%w: submit in state %s", ErrInvalidState, p.state)
	}
	var wait []driver.Semaphore
	if !p.rendered {
		wait = []driver.Semaphore{p.curAcquire}
	}
	if err := p.dev.Submit(cmd, wait, []driver.Semaphore{p.renderSems[p.index]}); err != nil {
		return fmt.Errorf("present: submit: %w", err)
	}
	p.rendered = true
	return nil
}

// Present queues the acquired image for display and then acquires the
// next image, so one image is always held by the presenter.
//
// An out-of-date swapchain is recreated and reported as PresentDropped
// with a nil error. Other present failures return PresentFailed and a
// *PresentationError. If the image was presented but the following
// acquire fails, PresentOK is returned with that error.
func (p *Presenter) Present() (PresentResult, error) {
	if p.closed {
		return PresentFailed, ErrClosed
	}
	if p.state != FrameAcquired {
		return PresentFailed, fmt.Errorf("%w: present in state %s", ErrInvalidState, p.state)
	}

	wait := p.curAcquire
	if p.rendered {
		wait = p.renderSems[p.index]
	}
	p.state = FramePresented
	err := p.dev.Present(p.sc.Handle, p.index, []driver.Semaphore{wait})
	p.state = FrameIdle
	p.rendered = false

	switch {
	case err == nil:
		p.log.Debug("present: presented", "index", p.index, "generation", p.sc.Generation)
	case driver.ResultOf(err) == driver.Suboptimal:
		p.log.Debug("present: presented to suboptimal swapchain", "generation", p.sc.Generation)
	case driver.IsOutOfDate(err):
		p.log.Warn("present: swapchain out of date on present, frame dropped", "generation", p.sc.Generation)
		if rerr := p.rebuild(true); rerr != nil && !errors.Is(rerr, ErrFrameDropped) {
			return PresentDropped, rerr
		}
		return PresentDropped, nil
	default:
		return PresentFailed, &PresentationError{Code: driver.ResultOf(err), Err: err}
	}

	if err := p.applyPendingResize(); err != nil {
		return PresentOK, err
	}
	if p.state == FrameAcquired {
		return PresentOK, nil
	}
	if err := p.acquire(); err != nil && !errors.Is(err, ErrFrameDropped) {
		return PresentOK, fmt.Errorf("present: next image: %w", err)
	}
	return PresentOK, nil
}

// BeginDraw prepares the backbuffer for rendering, acquiring an image if
// none is held.
func (p *Presenter) BeginDraw() error {
	switch p.state {
	case FrameAcquired:
		return nil
	case FrameIdle:
		return p.Acquire()
	default:
		return fmt.Errorf("%w: begin draw in state %s", ErrInvalidState, p.state)
	}
}

// EndDraw ends rendering and presents when present is true.
func (p *Presenter) EndDraw(present bool) (PresentResult, error) {
	if p.state != FrameAcquired {
		return PresentFailed, fmt.Errorf("%w: end draw in state %s", ErrInvalidState, p.state)
	}
	if !present {
		return PresentOK, nil
	}
	return p.Present()
}

// Resize recreates the swapchain for width x height pixels and format,
// then resizes the depth buffer. An undefined format keeps the current
// preference. Any acquired image is dropped and a new one is acquired.
//
// A zero width or height returns ErrZeroArea and leaves the swapchain
// untouched.
func (p *Presenter) Resize(width, height int, format gputypes.TextureFormat) error {
	if p.closed {
		return ErrClosed
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidParameters, width, height)
	}
	if width == 0 || height == 0 {
		return ErrZeroArea
	}
	p.params.BackBufferWidth = width
	p.params.BackBufferHeight = height
	if format != gputypes.TextureFormatUndefined {
		p.params.BackBufferFormat = format
	}
	p.log.Info("present: resize", "width", width, "height", height, "format", p.params.BackBufferFormat)

	err := p.rebuild(true)
	if errors.Is(err, ErrFrameDropped) {
		err = nil
	}
	return err
}

// rebuild replaces the swapchain and its image pool and resizes the depth
// buffer to the new extent. The backbuffer is detached until the next
// acquire, which rebuild performs when acquire is true.
//
// If rebuild fails the presenter is left stale and the next Acquire
// starts over.
func (p *Presenter) rebuild(acquire bool) error {
	p.stale = true
	p.state = FrameIdle
	p.rendered = false
	p.backbuffer.detach()
	if err := p.pool.Teardown(); err != nil {
		return err
	}
	p.destroySemaphores()

	sc, err := p.neg.Create(p.surface.HAL(), p.params.swapchainParams(), p.sc)
	if err != nil {
		if p.sc != nil && p.sc.Handle == nil {
			p.sc = nil
		}
		return err
	}
	p.sc = sc
	if _, err := p.pool.Build(sc); err != nil {
		return err
	}
	if err := p.createSemaphores(p.pool.Len()); err != nil {
		return err
	}
	p.backbuffer.describe(sc)
	if d := p.depth; d != nil && (d.Width() != sc.Extent.Width || d.Height() != sc.Extent.Height) {
		if err := d.Resize(sc.Extent.Width, sc.Extent.Height); err != nil {
			return err
		}
	}
	p.stale = false
	if acquire {
		return p.acquire()
	}
	return nil
}

func (p *Presenter) createSemaphores(n int) error {
	for range n {
		a, err := p.dev.CreateSemaphore()
		if err != nil {
			return fmt.Errorf("present: semaphore: %w", err)
		}
		p.acquireSems = append(p.acquireSems, a)
		r, err := p.dev.CreateSemaphore()
		if err != nil {
			return fmt.Errorf("present: semaphore: %w", err)
		}
		p.renderSems = append(p.renderSems, r)
	}
	p.nextSem = 0
	return nil
}

func (p *Presenter) destroySemaphores() {
	for _, s := range p.acquireSems {
		p.dev.DestroySemaphore(s)
	}
	for _, s := range p.renderSems {
		p.dev.DestroySemaphore(s)
	}
	p.acquireSems, p.renderSems = nil, nil
	p.nextSem = 0
	p.curAcquire = nil
}

// OnDestroyed releases the swapchain, its views and the surface, in that
// order, after waiting for the device to become idle. It is called by the
// owning device context when the device is lost or shut down.
func (p *Presenter) OnDestroyed() error {
	p.state = FrameIdle
	p.backbuffer.detach()
	if err := p.pool.Teardown(); err != nil {
		return err
	}
	p.destroySemaphores()
	if err := p.neg.Destroy(p.sc); err != nil {
		return err
	}
	p.sc = nil
	if p.depth != nil {
		p.depth.Destroy()
	}
	if p.surface != nil && !p.surface.Destroyed() {
		p.surface.Destroy()
	}
	return nil
}

// OnRecreated would rebuild the presenter on a recreated device. Device
// recreation is not supported.
func (p *Presenter) OnRecreated() error {
	return fmt.Errorf("device recreation: %w", ErrNotImplemented)
}

// Close releases every resource. Further calls return nil.
func (p *Presenter) Close() error {
	if p.closed {
		return nil
	}
	if err := p.OnDestroyed(); err != nil {
		return err
	}
	p.closed = true
	return nil
}
