package present

import (
	"sync"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/present/driver"
	"github.com/gogpu/present/internal/imagepool"
	"github.com/gogpu/present/internal/swapchain"
)

type fakeImage uintptr

func (i fakeImage) NativeHandle() uintptr { return uintptr(i) }

type fakeView uintptr

func (v fakeView) NativeHandle() uintptr { return uintptr(v) }

func TestBackbufferLifecycle(t *testing.T) {
	b := newBackbuffer()
	if b.Attached() || b.Generation() != 0 || b.Width() != 0 {
		t.Fatal("new backbuffer is not detached and empty")
	}

	b.describe(&swapchain.Swapchain{
		Format:      gputypes.TextureFormatBGRA8Unorm,
		ImageCount:  3,
		PresentMode: gputypes.PresentModeFifo,
		Extent:      driver.Extent{Width: 640, Height: 480},
		Generation:  4,
	})
	if b.Attached() {
		t.Error("describe attached the backbuffer")
	}
	if b.Width() != 640 || b.Height() != 480 || b.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("description = %+v", b.Description())
	}

	b.repoint(&imagepool.Image{Index: 2, Native: fakeImage(7), View: fakeView(8)}, 4)
	if !b.Attached() || b.Index() != 2 || b.Generation() != 4 {
		t.Errorf("after repoint: attached %v index %d generation %d", b.Attached(), b.Index(), b.Generation())
	}
	if b.Image() != fakeImage(7) || b.View() != fakeView(8) {
		t.Error("repoint did not store the image and view")
	}
	if b.Description().ImageCount != 3 {
		t.Error("repoint lost the description")
	}

	b.detach()
	if b.Attached() || b.View() != nil || b.Generation() != 0 {
		t.Error("detach kept native handles")
	}
	if b.Width() != 640 {
		t.Error("detach lost the description")
	}
}

func TestBackbufferConsistentSnapshots(t *testing.T) {
	b := newBackbuffer()
	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			s := b.load()
			if s.image != nil && uint64(s.image.NativeHandle()) != s.generation {
				t.Errorf("torn snapshot: image %d generation %d", s.image.NativeHandle(), s.generation)
				return
			}
		}
	}()

	for gen := uint64(1); gen <= 1000; gen++ {
		b.repoint(&imagepool.Image{Native: fakeImage(gen), View: fakeView(gen)}, gen)
		if gen%3 == 0 {
			b.detach()
		}
	}
	close(stop)
	wg.Wait()
}
