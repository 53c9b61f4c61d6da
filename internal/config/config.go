// Package config loads the client configuration from an HCL file and
// the login credentials from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete client configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Player PlayerSettings `hcl:"player,block"`
	UI     UISettings     `hcl:"ui,block"`
}

// ServerSettings contains connection settings.
type ServerSettings struct {
	URL            string `hcl:"url"`
	ConnectTimeout int    `hcl:"connect_timeout,optional"`
}

// PlayerSettings contains player-specific settings.
type PlayerSettings struct {
	Name      string `hcl:"name,optional"`
	AutoLogin bool   `hcl:"auto_login,optional"`
}

// UISettings contains user interface settings.
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			URL:            "ws://localhost:19380",
			ConnectTimeout: 10,
		},
		Player: PlayerSettings{
			AutoLogin: true,
		},
		UI: UISettings{
			LogLevel: "warn",
			LogFile:  "pokercli.log",
		},
	}
}

// Load reads the configuration from an HCL file, falling back to
// defaults when the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}

	defaults := Default()
	if cfg.Server.URL == "" {
		cfg.Server.URL = defaults.Server.URL
	}
	if cfg.Server.ConnectTimeout == 0 {
		cfg.Server.ConnectTimeout = defaults.Server.ConnectTimeout
	}
	if cfg.UI.LogLevel == "" {
		cfg.UI.LogLevel = defaults.UI.LogLevel
	}
	if cfg.UI.LogFile == "" {
		cfg.UI.LogFile = defaults.UI.LogFile
	}
	return &cfg, nil
}

// Validate checks the configuration for values the client cannot run
// with.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server URL is required")
	}
	if c.Server.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive")
	}
	switch c.UI.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.UI.LogLevel)
	}
	return nil
}
