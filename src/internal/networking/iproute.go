//go:build linux

package networking

import (
	"fmt"

	"github.com/lukassup/route-ctl/src/internal/log"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

type IpRoute struct {
	*netlink.Route
}

func (r *IpRoute) String() string {
	to := "all"
	if r.Dst != nil && r.Dst.String() != "<nil>" {
		to = r.Dst.String()
	}

	via := "<nil>"
	if r.Gw != nil {
		via = r.Gw.String()
	}

	return fmt.Sprintf("table %d: dst=%s via %s (idx=%d) [metric:%d]",
		r.Table, to, via, r.LinkIndex, r.Priority)
}

// BuildIpRoute converts a query into a netlink route and the filter mask
// selecting the fields to compare.
func BuildIpRoute(q RouteQuery, lister RouteLister) (*IpRoute, uint64, error) {
	ipr := netlink.Route{
		Dst:   q.Dst,
		Table: q.Table,
	}
	if ipr.Table == 0 {
		ipr.Table = unix.RT_TABLE_MAIN
	}
	if q.Dst.IP.To4() != nil {
		ipr.Family = netlink.FAMILY_V4
	} else {
		ipr.Family = netlink.FAMILY_V6
	}

	filters := uint64(netlink.RT_FILTER_DST | netlink.RT_FILTER_TABLE)
	if q.Gateway != nil {
		ipr.Gw = q.Gateway
		filters |= netlink.RT_FILTER_GW
	}
	if q.Interface != "" {
		link, err := lister.LinkByName(q.Interface)
		if err != nil {
			return nil, 0, fmt.Errorf("interface %s not found: %w", q.Interface, err)
		}
		ipr.LinkIndex = link.Attrs().Index
		filters |= netlink.RT_FILTER_OIF
	}
	return &IpRoute{&ipr}, filters, nil
}

// NetlinkRoutes looks routes up in the kernel over netlink.
type NetlinkRoutes struct {
	lister RouteLister
}

// NewKernelRoutes returns the netlink-backed route lookup.
func NewKernelRoutes() KernelRoutes {
	return &NetlinkRoutes{lister: netlinkLister{}}
}

// NewNetlinkRoutes returns a route lookup over lister.
func NewNetlinkRoutes(lister RouteLister) *NetlinkRoutes {
	return &NetlinkRoutes{lister: lister}
}

// CountRoutes returns the number of kernel routes matching q.
func (n *NetlinkRoutes) CountRoutes(q RouteQuery) (int, error) {
	ipr, filters, err := BuildIpRoute(q, n.lister)
	if err != nil {
		return 0, err
	}

	filtered, err := n.lister.RouteListFiltered(ipr.Family, ipr.Route, filters)
	if err != nil {
		log.Warnf("Listing IP routes [%v] failed: %v", ipr, err)
		return 0, err
	}
	log.Debugf("Found %d IP routes matching [%v]", len(filtered), ipr)
	return len(filtered), nil
}
