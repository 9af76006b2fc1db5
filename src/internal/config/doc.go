// Package config handles the route-ctl configuration file.
//
// The configuration is an optional TOML file. Every key has a default, so a
// missing file at the default location simply yields Default():
//
//	[general]
//	route_file = "/etc/puppetlabs/code/modules/netroutes/manifests/routes.pp"
//	identity   = "name_or_network"
//
//	[backup]
//	enabled = true
//	suffix  = ".backup"
//
//	[grammar]
//	class_name    = "netroutes::routes"
//	resource_type = "network_route"
//
//	[api]
//	bind_address = "127.0.0.1:8080"
//
// # Precedence
//
// The configuration file is taken from -config, then ROUTE_CTL_CONFIG, then
// DefaultConfigPath. The route file is taken from -F, then ROUTE_FILE, then
// general.route_file, which is resolved against the configuration directory.
//
// # Example Usage
//
//	path, explicit := config.ResolveConfigPath(flagConfig)
//	cfg, err := config.LoadConfig(path, explicit)
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	routeFile, err := cfg.ResolveRouteFile(flagRouteFile)
//
// ValidateConfig reports every problem at once as ValidationErrors, with TOML
// key paths such as "backup.suffix".
package config
