//go:build linux

package networking

import (
	"github.com/vishvananda/netlink"
)

// RouteLister is the subset of netlink used to look routes up. Tests replace
// it with a mock.
type RouteLister interface {
	RouteListFiltered(family int, filter *netlink.Route, filterMask uint64) ([]netlink.Route, error)
	LinkByName(name string) (netlink.Link, error)
}

type netlinkLister struct{}

func (netlinkLister) RouteListFiltered(family int, filter *netlink.Route, filterMask uint64) ([]netlink.Route, error) {
	return netlink.RouteListFiltered(family, filter, filterMask)
}

func (netlinkLister) LinkByName(name string) (netlink.Link, error) {
	return netlink.LinkByName(name)
}
