package present

import (
	"testing"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/present/driver/sim"
	"github.com/gogpu/present/surface"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.acquireTimeout != DefaultAcquireTimeout {
		t.Errorf("acquireTimeout = %v, want %v", o.acquireTimeout, DefaultAcquireTimeout)
	}
	if o.idleTimeout != DefaultIdleTimeout {
		t.Errorf("idleTimeout = %v, want %v", o.idleTimeout, DefaultIdleTimeout)
	}
	if o.imageCount != 0 {
		t.Errorf("imageCount = %d, want 0", o.imageCount)
	}
	if o.binding != nil {
		t.Errorf("binding = %v, want nil", o.binding)
	}
	if o.clearColor != (gputypes.Color{A: 1}) {
		t.Errorf("clearColor = %v, want opaque black", o.clearColor)
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		check func(*testing.T, options)
	}{
		{
			name: "acquire timeout",
			opt:  WithAcquireTimeout(time.Second),
			check: func(t *testing.T, o options) {
				if o.acquireTimeout != time.Second {
					t.Errorf("acquireTimeout = %v, want 1s", o.acquireTimeout)
				}
			},
		},
		{
			name: "non-positive acquire timeout ignored",
			opt:  WithAcquireTimeout(-time.Second),
			check: func(t *testing.T, o options) {
				if o.acquireTimeout != DefaultAcquireTimeout {
					t.Errorf("acquireTimeout = %v, want default", o.acquireTimeout)
				}
			},
		},
		{
			name: "idle timeout",
			opt:  WithIdleTimeout(100 * time.Millisecond),
			check: func(t *testing.T, o options) {
				if o.idleTimeout != 100*time.Millisecond {
					t.Errorf("idleTimeout = %v, want 100ms", o.idleTimeout)
				}
			},
		},
		{
			name: "zero idle timeout ignored",
			opt:  WithIdleTimeout(0),
			check: func(t *testing.T, o options) {
				if o.idleTimeout != DefaultIdleTimeout {
					t.Errorf("idleTimeout = %v, want default", o.idleTimeout)
				}
			},
		},
		{
			name: "image count",
			opt:  WithImageCount(3),
			check: func(t *testing.T, o options) {
				if o.imageCount != 3 {
					t.Errorf("imageCount = %d, want 3", o.imageCount)
				}
			},
		},
		{
			name: "binding",
			opt:  WithBinding(surface.XlibBinding{}),
			check: func(t *testing.T, o options) {
				if o.binding == nil || o.binding.Name() != surface.NameXlib {
					t.Errorf("binding = %v, want xlib", o.binding)
				}
			},
		},
		{
			name: "clear color",
			opt:  WithClearColor(gputypes.Color{R: 1, A: 1}),
			check: func(t *testing.T, o options) {
				if o.clearColor != (gputypes.Color{R: 1, A: 1}) {
					t.Errorf("clearColor = %v, want red", o.clearColor)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			tt.opt(&o)
			tt.check(t, o)
		})
	}
}

func TestWithImageCountReachesSwapchain(t *testing.T) {
	f := newFixture(sim.DefaultConfig())
	p := f.newPresenter(t, f.params(), WithImageCount(2))
	if got := p.Backbuffer().Description().ImageCount; got != 2 {
		t.Errorf("ImageCount = %d, want 2", got)
	}
}

func TestWithClearColorReachesImages(t *testing.T) {
	f := newFixture(sim.DefaultConfig())
	blue, ok := ClearColorByName("cornflowerblue")
	if !ok {
		t.Fatal("cornflowerblue not found")
	}
	p := f.newPresenter(t, f.params(), WithClearColor(blue))
	for i, img := range p.NativePresenter().(*sim.Swapchain).Images() {
		if got, cleared := img.ClearColor(); !cleared || got != blue {
			t.Errorf("image %d clear = (%v, %v), want (%v, true)", i, got, cleared, blue)
		}
	}
}
