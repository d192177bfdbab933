package surface

import (
	"bytes"
	"errors"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// mockWindow is a Window with a fixed native handle.
type mockWindow struct {
	gpucontext.NullWindowProvider
	handle uintptr
}

func (w mockWindow) NativeHandle() uintptr { return w.handle }

// mockXlibWindow adds Xlib handles to mockWindow.
type mockXlibWindow struct {
	mockWindow
	display uintptr
	xid     uint32
}

func (w mockXlibWindow) XDisplay() uintptr { return w.display }
func (w mockXlibWindow) XWindow() uint32   { return w.xid }

// mockSurface records Destroy calls.
type mockSurface struct {
	noop.Surface
	destroys int
}

func (s *mockSurface) Destroy() { s.destroys++ }

// mockCreator records the handles surfaces are created with.
type mockCreator struct {
	display, window uintptr
	err             error
	created         []*mockSurface
}

func (c *mockCreator) CreateSurface(display, window uintptr) (hal.Surface, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.display, c.window = display, window
	s := &mockSurface{}
	c.created = append(c.created, s)
	return s, nil
}

func TestXlibBindingHandles(t *testing.T) {
	win := mockXlibWindow{mockWindow: mockWindow{handle: 7}, display: 0x1000, xid: 42}
	c := &mockCreator{}
	s, err := NewProvider(c, XlibBinding{}, nil).Create(win)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.display != 0x1000 || c.window != 42 {
		t.Errorf("CreateSurface(%#x, %d), want (0x1000, 42)", c.display, c.window)
	}
	if s.Binding() != NameXlib {
		t.Errorf("Binding() = %q, want %q", s.Binding(), NameXlib)
	}
	if s.Window() != Window(win) {
		t.Error("Window() does not return the bound window")
	}
}

func TestCreateErrors(t *testing.T) {
	tests := []struct {
		name    string
		binding Binding
		win     Window
		wantErr error
	}{
		{"nil window", XlibBinding{}, nil, ErrInvalidHandle},
		{"zero handle", XlibBinding{}, mockXlibWindow{display: 1, xid: 1}, ErrInvalidHandle},
		{"not an xlib window", XlibBinding{}, mockWindow{handle: 1}, ErrInvalidHandle},
		{"zero display", XlibBinding{}, mockXlibWindow{mockWindow: mockWindow{handle: 1}, xid: 1}, ErrInvalidHandle},
		{"zero xid", XlibBinding{}, mockXlibWindow{mockWindow: mockWindow{handle: 1}, display: 1}, ErrInvalidHandle},
		{"unsupported platform", Unsupported{}, mockWindow{handle: 1}, ErrUnsupportedPlatform},
		{"unsupported with zero handle", Unsupported{}, mockWindow{}, ErrUnsupportedPlatform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &mockCreator{}
			_, err := NewProvider(c, tt.binding, nil).Create(tt.win)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if len(c.created) != 0 {
				t.Error("surface created despite error")
			}
		})
	}
}

func TestCreatorError(t *testing.T) {
	injected := errors.New("no vulkan")
	c := &mockCreator{err: injected}
	win := mockXlibWindow{mockWindow: mockWindow{handle: 1}, display: 1, xid: 1}
	if _, err := NewProvider(c, XlibBinding{}, nil).Create(win); !errors.Is(err, injected) {
		t.Errorf("Create() error = %v, want %v", err, injected)
	}
}

func TestDestroyTwiceWarns(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := &mockCreator{}
	win := mockXlibWindow{mockWindow: mockWindow{handle: 1}, display: 1, xid: 1}
	s, err := NewProvider(c, XlibBinding{}, log).Create(win)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	s.Destroy()
	s.Destroy()
	if got := c.created[0].destroys; got != 1 {
		t.Errorf("native destroys = %d, want 1", got)
	}
	if !s.Destroyed() || s.HAL() != nil {
		t.Error("surface not marked destroyed")
	}
	if !strings.Contains(buf.String(), "destroy called twice") {
		t.Errorf("log = %q, want double destroy warning", buf.String())
	}
}

func TestDefaultBinding(t *testing.T) {
	want := NameUnsupported
	switch runtime.GOOS {
	case "windows":
		want = NameWin32
	case "linux", "freebsd":
		want = NameXlib
	}
	if got := DefaultBinding().Name(); got != want {
		t.Errorf("DefaultBinding() = %q, want %q on %s", got, want, runtime.GOOS)
	}
	if !slices.Contains(Bindings(), NameUnsupported) {
		t.Errorf("Bindings() = %v, want unsupported registered", Bindings())
	}
	if p := NewProvider(&mockCreator{}, nil, nil); p.Binding().Name() != want {
		t.Errorf("NewProvider(nil binding).Binding() = %q, want %q", p.Binding().Name(), want)
	}
}

func TestPixelSize(t *testing.T) {
	tests := []struct {
		w, h   int
		scale  float64
		pw, ph uint32
	}{
		{800, 600, 0, 800, 600},
		{800, 600, 1, 800, 600},
		{800, 600, 2, 1600, 1200},
		{1000, 500, 1.25, 1250, 625},
		{0, 600, 2, 0, 1200},
		{-1, 10, 1, 0, 10},
	}
	for _, tt := range tests {
		pw, ph := PixelSize(gpucontext.NullWindowProvider{W: tt.w, H: tt.h, SF: tt.scale})
		if pw != tt.pw || ph != tt.ph {
			t.Errorf("PixelSize(%d, %d, %v) = (%d, %d), want (%d, %d)",
				tt.w, tt.h, tt.scale, pw, ph, tt.pw, tt.ph)
		}
	}
}
