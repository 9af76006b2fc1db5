// Package manager orchestrates route file operations.
//
// Every operation is a full cycle: the route file is parsed into memory,
// transformed with the functions of package routes, and regenerated from
// scratch by the builder (after an optional backup). Nothing is patched in
// place.
//
//	m := manager.New("/etc/puppet/routes.pp", manager.DefaultOptions())
//	all, err := m.CreateOrUpdate(&routes.Record{
//		Name:    "10.1.0.0/16",
//		Ensure:  routes.EnsurePresent,
//		Network: "10.1.0.0",
//		Netmask: "255.255.0.0",
//	})
//
// Mutating methods return the full collection as written. A route file that
// does not exist yet behaves as an empty collection, so the first create
// bootstraps it.
package manager
