package imagepool

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/present/driver"
	"github.com/gogpu/present/driver/sim"
	"github.com/gogpu/present/internal/swapchain"
)

type fixture struct {
	dev *sim.Device
	neg *swapchain.Negotiator
	sc  *swapchain.Swapchain
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureConfig(t, sim.DefaultConfig())
}

func newFixtureConfig(t *testing.T, cfg sim.Config) *fixture {
	t.Helper()
	dev := sim.NewDevice(cfg)
	sf, err := sim.NewInstance().CreateSurface(0, 1)
	if err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	neg := swapchain.New(dev, swapchain.Config{})
	sc, err := neg.Create(sf, swapchain.Params{Width: 640, Height: 480}, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return &fixture{dev: dev, neg: neg, sc: sc}
}

func (f *fixture) pool(bg gputypes.Color) *Pool {
	return New(f.dev, Config{ClearColor: bg, WaitIdle: f.neg.WaitIdle})
}

func TestBuildLeavesImagesPresentable(t *testing.T) {
	f := newFixture(t)
	bg := gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}
	p := f.pool(bg)

	images, err := p.Build(f.sc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if uint32(len(images)) != f.sc.ImageCount {
		t.Fatalf("len(images) = %d, want %d", len(images), f.sc.ImageCount)
	}
	for i, img := range images {
		if img.Index != uint32(i) {
			t.Errorf("images[%d].Index = %d", i, img.Index)
		}
		if img.Layout != driver.LayoutPresentSrc {
			t.Errorf("images[%d].Layout = %v, want PresentSrc", i, img.Layout)
		}
		native := img.Native.(*sim.Image)
		if native.Layout() != driver.LayoutPresentSrc {
			t.Errorf("native image %d layout = %v, want PresentSrc", i, native.Layout())
		}
		got, cleared := native.ClearColor()
		if !cleared || got != bg {
			t.Errorf("native image %d clear = (%v, %v), want (%v, true)", i, got, cleared, bg)
		}
		if img.View.(*sim.ImageView).Image() != native {
			t.Errorf("images[%d].View does not view the image", i)
		}
	}
	if f.dev.Busy() {
		t.Error("device busy after Build, want transition waited on")
	}
	if v := f.dev.Violations(); len(v) != 0 {
		t.Errorf("violations = %v", v)
	}
}

func TestBuildSubmitsOnce(t *testing.T) {
	f := newFixture(t)
	f.dev.ResetEvents()
	if _, err := f.pool(gputypes.Color{}).Build(f.sc); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	submits := 0
	for _, e := range f.dev.Events() {
		if e.Op == sim.OpSubmit {
			submits++
		}
	}
	if submits != 1 {
		t.Errorf("submits = %d, want 1", submits)
	}
}

func TestTeardownDestroysViewsNotImages(t *testing.T) {
	f := newFixture(t)
	p := f.pool(gputypes.Color{})
	images, err := p.Build(f.sc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	views := make([]*sim.ImageView, len(images))
	for i, img := range images {
		views[i] = img.View.(*sim.ImageView)
	}

	if err := p.Teardown(); err != nil {
		t.Fatalf("Teardown() error = %v", err)
	}
	for i, v := range views {
		if !v.Destroyed() {
			t.Errorf("view %d not destroyed", i)
		}
	}
	if n := f.dev.LiveViews(); n != 0 {
		t.Errorf("LiveViews() = %d, want 0", n)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d after Teardown, want 0", p.Len())
	}
	if f.sc.Handle.(*sim.Swapchain).Destroyed() {
		t.Error("Teardown destroyed the swapchain")
	}
	if err := p.Teardown(); err != nil {
		t.Errorf("second Teardown() error = %v", err)
	}
}

func TestBuildFailureDestroysViews(t *testing.T) {
	f := newFixture(t)
	injected := errors.New("queue lost")
	f.dev.FailSubmit(injected)

	p := f.pool(gputypes.Color{})
	if _, err := p.Build(f.sc); !errors.Is(err, injected) {
		t.Fatalf("Build() error = %v, want %v", err, injected)
	}
	if n := f.dev.LiveViews(); n != 0 {
		t.Errorf("LiveViews() = %d after failed Build, want 0", n)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d after failed Build, want 0", p.Len())
	}
}

func TestBuildKeepsViewsWhenTransitionWaitFails(t *testing.T) {
	f := newFixture(t)
	p := f.pool(gputypes.Color{})

	// Build waits once; the wait and its retry both time out.
	f.dev.TimeoutIdle(2)
	if _, err := p.Build(f.sc); !errors.Is(err, swapchain.ErrDeviceBusy) {
		t.Fatalf("Build() error = %v, want ErrDeviceBusy", err)
	}
	if v := f.dev.Violations(); len(v) != 0 {
		t.Fatalf("violations after failed wait = %v, want views kept", v)
	}
	if p.Len() == 0 || f.dev.LiveViews() != p.Len() {
		t.Fatalf("Len() = %d, LiveViews() = %d, want views kept", p.Len(), f.dev.LiveViews())
	}

	if err := p.Teardown(); err != nil {
		t.Fatalf("Teardown() error = %v", err)
	}
	if n := f.dev.LiveViews(); n != 0 {
		t.Errorf("LiveViews() = %d after Teardown, want 0", n)
	}
	if v := f.dev.Violations(); len(v) != 0 {
		t.Errorf("violations = %v", v)
	}
}

func TestBuildReportsDriverImageCount(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.ExtraImages = 2
	f := newFixtureConfig(t, cfg)
	requested := f.sc.ImageCount

	images, err := f.pool(gputypes.Color{}).Build(f.sc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(images) != int(requested)+2 {
		t.Fatalf("len(images) = %d, want %d", len(images), requested+2)
	}
	if f.sc.ImageCount != uint32(len(images)) {
		t.Errorf("ImageCount = %d after Build, want %d", f.sc.ImageCount, len(images))
	}
}

func TestBuildRequiresTeardown(t *testing.T) {
	f := newFixture(t)
	p := f.pool(gputypes.Color{})
	if _, err := p.Build(f.sc); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := p.Build(f.sc); err == nil {
		t.Error("second Build() without Teardown succeeded")
	}
}

func TestTeardownKeepsViewsWhenBusy(t *testing.T) {
	f := newFixture(t)
	p := f.pool(gputypes.Color{})
	if _, err := p.Build(f.sc); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	f.dev.TimeoutIdle(2)
	err := p.Teardown()
	if !errors.Is(err, swapchain.ErrDeviceBusy) {
		t.Fatalf("Teardown() error = %v, want ErrDeviceBusy", err)
	}
	if p.Len() == 0 {
		t.Error("Teardown dropped views although the device stayed busy")
	}
}

func TestImageOutOfRangePanics(t *testing.T) {
	f := newFixture(t)
	p := f.pool(gputypes.Color{})
	if _, err := p.Build(f.sc); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("Image() with out-of-range index did not panic")
		}
	}()
	p.Image(uint32(p.Len()))
}
