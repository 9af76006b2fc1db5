package utils

import "testing"

func TestNetworkToIPNet_Success(t *testing.T) {
	tests := []struct {
		name     string
		network  string
		netmask  string
		expected string
	}{
		{"default route", "default", "0.0.0.0", "0.0.0.0/0"},
		{"standard subnet", "172.17.67.0", "255.255.255.0", "172.17.67.0/24"},
		{"host bits are masked", "10.1.2.3", "255.0.0.0", "10.0.0.0/8"},
		{"single host", "203.0.113.1", "255.255.255.255", "203.0.113.1/32"},
		{"no netmask", "203.0.113.1", "", "203.0.113.1/32"},
		{"cidr network", "192.168.0.0/16", "", "192.168.0.0/16"},
		{"ipv6 prefix", "2001:db8::", "64", "2001:db8::/64"},
		{"ipv6 slash prefix", "2001:db8::1", "/48", "2001:db8::/48"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ipNet, err := NetworkToIPNet(tt.network, tt.netmask)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if ipNet.String() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, ipNet.String())
			}
		})
	}
}

func TestNetworkToIPNet_Errors(t *testing.T) {
	tests := []struct {
		name    string
		network string
		netmask string
	}{
		{"garbage network", "not-an-ip", "255.0.0.0"},
		{"garbage mask", "10.0.0.0", "255.0.0"},
		{"non-contiguous mask", "10.0.0.0", "255.0.255.0"},
		{"bad cidr", "10.0.0.0/33", ""},
		{"bad ipv6 prefix", "2001:db8::", "129"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NetworkToIPNet(tt.network, tt.netmask); err == nil {
				t.Errorf("Expected error for %s/%s", tt.network, tt.netmask)
			}
		})
	}
}
