//go:build linux

package main

// Registers the X11 locator backend.
import _ "github.com/shotwatch/shotwatch/internal/platform/linux"
