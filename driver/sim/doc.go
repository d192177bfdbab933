// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sim provides an in-memory implementation of driver.Device.
//
// The simulated device behaves like a conformant Vulkan driver as far as
// the presenter can observe: swapchains retire when replaced, images start
// in the undefined layout and only change layout through submitted
// barriers, a bounded number of images can be acquired at once, and a
// swapchain becomes out of date when its surface is resized. Every call is
// recorded as an Event so tests can assert on ordering, and protocol
// violations (destroying resources while work is pending, presenting an
// image that was not acquired, ...) are collected instead of crashing.
//
// Failures can be injected with FailAcquire, FailPresent,
// FailCreateSwapchain, FailSubmit and TimeoutIdle.
//
// Texture creation for depth buffers is provided by the embedded
// wgpu noop device.
//
// Example:
//
//	inst := sim.NewInstance()
//	dev := sim.NewDevice(sim.DefaultConfig())
//	p, err := present.New(dev, inst, params)
package sim
