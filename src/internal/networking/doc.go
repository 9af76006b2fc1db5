// Package networking compares route records with the kernel routing tables.
//
// Each record is turned into a RouteQuery: the destination prefix built from
// network and netmask ("default" is 0.0.0.0/0), the gateway, the output
// interface, and the table named by a "table N" option. On Linux the query
// is answered with netlink.RouteListFiltered; other platforms report
// ErrNotSupported for every record.
//
//	checker := networking.NewChecker(networking.NewKernelRoutes())
//	results := checker.Check(records)
//	if networking.Failed(results) {
//	    // at least one route is missing, unexpected or could not be checked
//	}
//
// Records whose network, netmask, gateway or interface refer to a Puppet
// variable are skipped, since only Puppet can resolve them.
package networking
