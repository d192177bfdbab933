// Command presentdemo drives a presenter on the simulated driver: it
// clears and presents a number of frames, resizes the window halfway and
// reports what happened.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/present"
	"github.com/gogpu/present/driver"
	"github.com/gogpu/present/driver/sim"
	"github.com/gogpu/present/surface"
)

func main() {
	var (
		frames    = flag.Int("frames", 120, "number of frames to present")
		width     = flag.Int("width", 800, "initial window width")
		height    = flag.Int("height", 600, "initial window height")
		resizeW   = flag.Int("resize-width", 1920, "window width after the resize")
		resizeH   = flag.Int("resize-height", 1080, "window height after the resize")
		interval  = flag.String("interval", "one", "present interval: default, one, two or immediate")
		clearName = flag.String("clear", "cornflowerblue", "clear color name")
		depth     = flag.Bool("depth", true, "create a depth buffer")
		verbose   = flag.Bool("v", false, "log every frame")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	present.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	pi, err := parseInterval(*interval)
	if err != nil {
		log.Fatal(err)
	}
	base, ok := present.ClearColorByName(*clearName)
	if !ok {
		log.Fatalf("unknown color %q", *clearName)
	}

	inst := sim.NewInstance()
	win := inst.NewWindow(*width, *height)
	dev := sim.NewDevice(sim.DefaultConfig())

	params := present.DefaultParameters(win)
	params.PresentationInterval = pi
	if *depth {
		params.DepthStencilFormat = gputypes.TextureFormatDepth24PlusStencil8
	}

	p, err := present.New(dev, inst, params,
		present.WithBinding(surface.XlibBinding{}),
		present.WithClearColor(base))
	if err != nil {
		log.Fatalf("Failed to create presenter: %v", err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()
	p.AttachEvents(win)

	desc := p.Backbuffer().Description()
	log.Printf("Presenting %d frames at %dx%d, %s, %d images, %s",
		*frames, desc.Width, desc.Height, desc.Format, desc.ImageCount, desc.PresentMode)

	var stats struct{ ok, dropped, skipped int }
	start := time.Now()
	for i := range *frames {
		if i == *frames/2 {
			win.Resize(*resizeW, *resizeH)
		}
		if err := p.BeginDraw(); err != nil {
			if errors.Is(err, present.ErrFrameDropped) {
				stats.skipped++
				continue
			}
			log.Fatalf("frame %d: %v", i, err)
		}
		if err := drawFrame(dev, p, pulse(base, i)); err != nil {
			log.Fatalf("frame %d: %v", i, err)
		}
		res, err := p.EndDraw(true)
		if err != nil && !errors.Is(err, present.ErrAcquireTimeout) {
			log.Fatalf("frame %d: %v", i, err)
		}
		switch res {
		case present.PresentOK:
			stats.ok++
		case present.PresentDropped:
			stats.dropped++
		}
	}
	elapsed := time.Since(start)

	bb := p.Backbuffer()
	fmt.Printf("presented %d, dropped %d, skipped %d in %v\n", stats.ok, stats.dropped, stats.skipped, elapsed)
	fmt.Printf("backbuffer %dx%d %s, generation %d\n", bb.Width(), bb.Height(), bb.Format(), p.Generation())
	if ds := p.DepthStencil(); ds != nil {
		fmt.Printf("depth %dx%d %s\n", ds.Width(), ds.Height(), ds.Format())
	}
	if v := dev.Violations(); len(v) > 0 {
		for _, s := range v {
			log.Printf("driver violation: %s", s)
		}
		os.Exit(1)
	}
}

// drawFrame clears the backbuffer to c. The previous frame is waited on
// first so the single copy command buffer can be reused.
func drawFrame(dev *sim.Device, p *present.Presenter, c gputypes.Color) error {
	if err := dev.WaitIdle(time.Second); err != nil {
		return err
	}
	img := p.Backbuffer().Image()
	cmd := dev.CopyCommandBuffer()
	if err := cmd.Reset(); err != nil {
		return err
	}
	if err := cmd.Begin(); err != nil {
		return err
	}
	cmd.PipelineBarrier(driver.StageTopOfPipe, driver.StageTransfer, driver.ImageBarrier{
		Image:     img,
		OldLayout: driver.LayoutPresentSrc,
		NewLayout: driver.LayoutTransferDst,
		DstAccess: driver.AccessTransferWrite,
		Aspect:    gputypes.TextureAspectAll,
	})
	cmd.ClearColorImage(img, driver.LayoutTransferDst, c)
	cmd.PipelineBarrier(driver.StageTransfer, driver.StageBottomOfPipe, driver.ImageBarrier{
		Image:     img,
		OldLayout: driver.LayoutTransferDst,
		NewLayout: driver.LayoutPresentSrc,
		SrcAccess: driver.AccessTransferWrite,
		DstAccess: driver.AccessMemoryRead,
		Aspect:    gputypes.TextureAspectAll,
	})
	if err := cmd.End(); err != nil {
		return err
	}
	return p.Submit(cmd)
}

// pulse modulates the brightness of c over time.
func pulse(c gputypes.Color, frame int) gputypes.Color {
	k := 0.75 + 0.25*math.Sin(float64(frame)*math.Pi/30)
	return gputypes.Color{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

func parseInterval(s string) (present.PresentInterval, error) {
	switch s {
	case "default":
		return present.PresentIntervalDefault, nil
	case "one":
		return present.PresentIntervalOne, nil
	case "two":
		return present.PresentIntervalTwo, nil
	case "immediate":
		return present.PresentIntervalImmediate, nil
	default:
		return 0, fmt.Errorf("unknown interval %q", s)
	}
}
