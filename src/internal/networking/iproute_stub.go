//go:build !linux

package networking

import "errors"

// ErrNotSupported is returned by route lookups on platforms without netlink.
var ErrNotSupported = errors.New("kernel route lookup is only supported on linux")

type unsupportedRoutes struct{}

// NewKernelRoutes returns a lookup that always fails on this platform.
func NewKernelRoutes() KernelRoutes {
	return unsupportedRoutes{}
}

func (unsupportedRoutes) CountRoutes(RouteQuery) (int, error) {
	return 0, ErrNotSupported
}
