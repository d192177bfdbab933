// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sim

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/present/driver"
)

type cmdState uint8

const (
	cmdInitial cmdState = iota
	cmdRecording
	cmdExecutable
	cmdPending
)

// command is a recorded operation, executed at submission.
type command struct {
	barriers []driver.ImageBarrier
	clear    *Image
	layout   driver.ImageLayout
	color    gputypes.Color
}

// CommandBuffer is a simulated command buffer.
type CommandBuffer struct {
	dev   *Device
	state cmdState
	cmds  []command
}

// Begin starts recording.
func (c *CommandBuffer) Begin() error {
	if c.state != cmdInitial {
		return fmt.Errorf("sim: begin: command buffer not in initial state")
	}
	c.state = cmdRecording
	return nil
}

// PipelineBarrier records image barriers.
func (c *CommandBuffer) PipelineBarrier(_, _ driver.PipelineStage, barriers ...driver.ImageBarrier) {
	if c.state != cmdRecording {
		c.dev.violate("barrier recorded outside of recording")
		return
	}
	c.cmds = append(c.cmds, command{barriers: append([]driver.ImageBarrier(nil), barriers...)})
}

// ClearColorImage records a clear.
func (c *CommandBuffer) ClearColorImage(img driver.Image, layout driver.ImageLayout, col gputypes.Color) {
	if c.state != cmdRecording {
		c.dev.violate("clear recorded outside of recording")
		return
	}
	si, ok := img.(*Image)
	if !ok {
		c.dev.violate("clear of foreign image")
		return
	}
	c.cmds = append(c.cmds, command{clear: si, layout: layout, color: col})
}

// End finishes recording.
func (c *CommandBuffer) End() error {
	if c.state != cmdRecording {
		return errors.New("sim: end: command buffer not recording")
	}
	c.state = cmdExecutable
	return nil
}

// Reset returns the buffer to the initial state.
func (c *CommandBuffer) Reset() error {
	if c.state == cmdPending {
		c.dev.violate("command buffer reset while pending")
		return errors.New("sim: reset: command buffer pending execution")
	}
	c.state = cmdInitial
	c.cmds = c.cmds[:0]
	return nil
}

// execute applies recorded commands to image state.
func (c *CommandBuffer) execute() error {
	for _, cmd := range c.cmds {
		if cmd.clear != nil {
			img := cmd.clear
			if img.layout != driver.LayoutTransferDst || cmd.layout != driver.LayoutTransferDst {
				return fmt.Errorf("sim: clear of image %d in layout %s", img.handle, img.layout)
			}
			img.cleared = true
			img.color = cmd.color
			continue
		}
		for _, b := range cmd.barriers {
			img, ok := b.Image.(*Image)
			if !ok {
				return errors.New("sim: barrier on foreign image")
			}
			if b.OldLayout != driver.LayoutUndefined && b.OldLayout != img.layout {
				return fmt.Errorf("sim: barrier on image %d expects %s, image is %s",
					img.handle, b.OldLayout, img.layout)
			}
			img.layout = b.NewLayout
		}
	}
	return nil
}
