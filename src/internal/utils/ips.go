package utils

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DefaultNetwork is the network value of a default route.
const DefaultNetwork = "default"

// NetworkToIPNet converts a route's network/netmask pair into the destination
// prefix. The network may be "default", a CIDR (netmask ignored), an IPv4
// address with a dotted netmask, or an IPv6 address with a prefix length.
func NetworkToIPNet(network, netmask string) (*net.IPNet, error) {
	network = strings.TrimSpace(network)
	netmask = strings.TrimSpace(netmask)

	if network == DefaultNetwork {
		return &net.IPNet{IP: net.IPv4zero.To4(), Mask: net.CIDRMask(0, 32)}, nil
	}
	if strings.Contains(network, "/") {
		_, ipNet, err := net.ParseCIDR(network)
		if err != nil {
			return nil, fmt.Errorf("invalid network %q: %w", network, err)
		}
		return ipNet, nil
	}

	ip := net.ParseIP(network)
	if ip == nil {
		return nil, fmt.Errorf("invalid network address: %s", network)
	}

	if ip4 := ip.To4(); ip4 != nil {
		if netmask == "" {
			return &net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}, nil
		}
		mask := net.ParseIP(netmask)
		if mask == nil || mask.To4() == nil {
			return nil, fmt.Errorf("invalid IPv4 mask: %s", netmask)
		}
		m := net.IPMask(mask.To4())
		if ones, bits := m.Size(); ones == 0 && bits == 0 {
			return nil, fmt.Errorf("non-contiguous IPv4 mask: %s", netmask)
		}
		return &net.IPNet{IP: ip4.Mask(m), Mask: m}, nil
	}

	prefixLen := 128
	if netmask != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(netmask, "/"))
		if err != nil || n < 0 || n > 128 {
			return nil, fmt.Errorf("invalid IPv6 prefix length: %s", netmask)
		}
		prefixLen = n
	}
	mask := net.CIDRMask(prefixLen, 128)
	return &net.IPNet{IP: ip.Mask(mask), Mask: mask}, nil
}
