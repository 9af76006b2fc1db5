// Package utils provides small helpers shared across route-ctl.
//
//   - Path utilities: resolve paths relative to the configuration directory
//   - File utilities: close files and log failures
//   - IP utilities: turn a route's network/netmask pair into a CIDR
//
// Path resolution:
//
//	absPath := utils.GetAbsolutePath("manifests/routes.pp", "/etc/route-ctl")
//	// Returns: /etc/route-ctl/manifests/routes.pp
//
// Route destination:
//
//	dst, err := utils.NetworkToIPNet("172.17.67.0", "255.255.255.0")
//	// dst.String() == "172.17.67.0/24"
package utils
