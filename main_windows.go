//go:build windows

package main

// Registers the Windows locator backend.
import _ "github.com/shotwatch/shotwatch/internal/platform/windows"
