package config

import (
	"path/filepath"

	"github.com/lukassup/route-ctl/src/internal/routes"
)

type Config struct {
	// General holds the route file location and identity policy.
	General GeneralConfig `toml:"general" json:"general"`
	// Backup controls the copy made before each rewrite.
	Backup BackupConfig `toml:"backup" json:"backup"`
	// Grammar names the Puppet class and resource type of the route blocks.
	Grammar GrammarConfig `toml:"grammar" json:"grammar"`
	// API configures the `serve` subcommand.
	API APIConfig `toml:"api" json:"api"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// RouteFile is the Puppet manifest holding the routes. Relative paths are
	// resolved against the directory of the configuration file.
	RouteFile string `toml:"route_file" json:"route_file"`
	// Identity decides when two routes are the same: name_or_network, name or network.
	Identity string `toml:"identity" json:"identity" validate:"omitempty,oneof=name_or_network name network"`
}

type BackupConfig struct {
	// Enabled copies the route file before each rewrite (default: true).
	Enabled bool `toml:"enabled" json:"enabled"`
	// Suffix is appended to the route file path to name the backup (default: ".backup").
	Suffix string `toml:"suffix" json:"suffix" validate:"required_if=Enabled true,backup_suffix"`
}

type GrammarConfig struct {
	// ClassName is the class wrapping all route blocks (default: "netroutes::routes").
	ClassName string `toml:"class_name" json:"class_name" validate:"required,class_name"`
	// ResourceType opens every route block (default: "network_route").
	ResourceType string `toml:"resource_type" json:"resource_type" validate:"required,resource_type"`
}

type APIConfig struct {
	// BindAddress is the listen address of the HTTP API (default: "127.0.0.1:8080").
	BindAddress string `toml:"bind_address" json:"bind_address" validate:"required,listen_address"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			Identity: string(routes.IdentityNameOrNetwork),
		},
		Backup: BackupConfig{
			Enabled: true,
			Suffix:  routes.DefaultBackupSuffix,
		},
		Grammar: GrammarConfig{
			ClassName:    routes.DefaultGrammar.ClassName,
			ResourceType: routes.DefaultGrammar.ResourceType,
		},
		API: APIConfig{
			BindAddress: DefaultBindAddress,
		},
	}
}

// GetConfigFilePath returns the absolute path the configuration was loaded
// from, or "" for the built-in defaults.
func (c *Config) GetConfigFilePath() string {
	return c._absConfigFilePath
}

// GetConfigDir returns the directory relative paths in the configuration are
// resolved against.
func (c *Config) GetConfigDir() string {
	if c._absConfigFilePath == "" {
		return "."
	}
	return filepath.Dir(c._absConfigFilePath)
}
