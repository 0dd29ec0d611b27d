//go:build darwin

package main

// Registers the macOS locator backend.
import _ "github.com/shotwatch/shotwatch/internal/platform/darwin"
