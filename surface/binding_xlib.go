// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build linux || freebsd

package surface

func init() {
	bindings.Register(NameXlib, func() Binding { return XlibBinding{} })
}
