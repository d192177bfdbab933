// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import (
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// CapabilityCache memoizes per-format capabilities of a device. Format
// capabilities are fixed for the life of a physical device, so every
// recreation after the first reuses the answers.
//
// A CapabilityCache is safe for concurrent use.
type CapabilityCache struct {
	q FormatQuerier

	mu      sync.Mutex
	entries map[gputypes.TextureFormat]hal.TextureFormatCapabilities
	hits    uint64
	misses  uint64
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// NewCapabilityCache returns a cache in front of q.
func NewCapabilityCache(q FormatQuerier) *CapabilityCache {
	return &CapabilityCache{
		q:       q,
		entries: make(map[gputypes.TextureFormat]hal.TextureFormatCapabilities),
	}
}

// TextureFormatCapabilities returns the capabilities of format, querying
// the device only on the first request.
func (c *CapabilityCache) TextureFormatCapabilities(format gputypes.TextureFormat) hal.TextureFormatCapabilities {
	c.mu.Lock()
	defer c.mu.Unlock()

	if caps, ok := c.entries[format]; ok {
		c.hits++
		return caps
	}
	c.misses++
	caps := c.q.TextureFormatCapabilities(format)
	c.entries[format] = caps
	return caps
}

// Clear drops every entry. Stats are kept.
func (c *CapabilityCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Stats returns the cache statistics.
func (c *CapabilityCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Len: len(c.entries), Hits: c.hits, Misses: c.misses}
}
