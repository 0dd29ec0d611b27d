//go:build windows

package windows

import "github.com/shotwatch/shotwatch/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{Locator: NewLocator()}, nil
	}
}
