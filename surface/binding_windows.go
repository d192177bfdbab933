// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build windows

package surface

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func init() {
	bindings.Register(NameWin32, func() Binding { return Win32Binding{} })
}

// Win32Binding binds Win32 windows.
type Win32Binding struct{}

// Name returns "win32".
func (Win32Binding) Name() string { return NameWin32 }

// Handles returns the module handle of the running process and the HWND
// of win.
func (Win32Binding) Handles(win Window) (uintptr, uintptr, error) {
	hwnd := win.NativeHandle()
	if hwnd == 0 || !windows.IsWindow(windows.HWND(hwnd)) {
		return 0, 0, fmt.Errorf("%w: %#x is not a window", ErrInvalidHandle, hwnd)
	}
	var module windows.Handle
	err := windows.GetModuleHandleEx(windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT, nil, &module)
	if err != nil {
		return 0, 0, fmt.Errorf("present: module handle: %w", err)
	}
	return uintptr(module), hwnd, nil
}
