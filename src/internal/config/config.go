package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/lukassup/route-ctl/src/internal/log"
	"github.com/lukassup/route-ctl/src/internal/manager"
	"github.com/lukassup/route-ctl/src/internal/routes"
	"github.com/lukassup/route-ctl/src/internal/utils"
)

const (
	// DefaultConfigPath is read when neither -config nor ROUTE_CTL_CONFIG is set.
	DefaultConfigPath = "/etc/route-ctl/route-ctl.toml"
	// DefaultBindAddress is the default listen address of the HTTP API.
	DefaultBindAddress = "127.0.0.1:8080"

	// EnvConfigFile selects the configuration file.
	EnvConfigFile = "ROUTE_CTL_CONFIG"
	// EnvRouteFile selects the route file, overriding general.route_file.
	EnvRouteFile = "ROUTE_FILE"
)

// ResolveConfigPath picks the configuration file: the explicit path, then
// ROUTE_CTL_CONFIG, then DefaultConfigPath. The second result reports whether
// the path was chosen explicitly.
func ResolveConfigPath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if env := os.Getenv(EnvConfigFile); env != "" {
		return env, true
	}
	return DefaultConfigPath, false
}

// LoadConfig reads the configuration at configPath on top of the defaults.
// A missing file is an error only when required is set; otherwise the
// defaults are returned.
func LoadConfig(configPath string, required bool) (*Config, error) {
	configFile := filepath.Clean(utils.ExpandHome(configPath))

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %v", err)
		} else {
			configFile = path
		}
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			log.Debugf("Configuration file %s not found, using defaults", configFile)
			return Default(), nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found: %s", configFile)
		}
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	config := Default()
	if err := toml.Unmarshal(content, config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, fmt.Errorf("failed to parse config file %s: error at line %d, column %d", configFile, row, col)
		}
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	config._absConfigFilePath = configFile

	log.Debugf("Configuration file path: %s", configFile)

	return config, nil
}

// SerializeConfig encodes the configuration as TOML.
func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

// ResolveRouteFile picks the route file: the -F flag value, then ROUTE_FILE,
// then general.route_file (relative to the configuration directory).
func (c *Config) ResolveRouteFile(flagValue string) (string, error) {
	if flagValue != "" {
		return absPath(flagValue)
	}
	if env := os.Getenv(EnvRouteFile); env != "" {
		return absPath(env)
	}
	if c.General.RouteFile != "" {
		return utils.GetAbsolutePath(c.General.RouteFile, c.GetConfigDir()), nil
	}
	return "", fmt.Errorf("no route file given (use -F, %s or general.route_file)", EnvRouteFile)
}

func absPath(path string) (string, error) {
	path = utils.ExpandHome(path)
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %v", err)
	}
	return abs, nil
}

// ManagerOptions converts the configuration into manager options.
func (c *Config) ManagerOptions() (manager.Options, error) {
	identity, err := routes.ParseIdentityPolicy(c.General.Identity)
	if err != nil {
		return manager.Options{}, err
	}
	return manager.Options{
		Grammar: routes.Grammar{
			ClassName:    c.Grammar.ClassName,
			ResourceType: c.Grammar.ResourceType,
		},
		Backup: routes.BackupPolicy{
			Enabled: c.Backup.Enabled,
			Suffix:  c.Backup.Suffix,
		},
		Identity: identity,
	}, nil
}
