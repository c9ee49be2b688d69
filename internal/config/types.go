// Package config provides configuration loading and management for specflow.
//
// Configuration is loaded using Viper, supporting YAML or JSON config files and
// environment variable overrides. The defaults work out of the box; a config
// file is only needed to rename the server or tune logging.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//   - [ServerConfig] names the MCP server implementation
//   - [LogConfig] controls structured logging
//   - [GuidanceConfig] controls the guidance diagnostic on stderr
//
// Configuration priority (highest to lowest):
//  1. Environment variables (SPECFLOW_ prefix, plus DISABLE_WORKFLOW_LOGGING)
//  2. Config file specified by SPECFLOW_CONFIG_PATH
//  3. User config directory (platform-standard):
//     - Linux: ~/.config/specflow/config.yaml
//     - macOS: ~/Library/Application Support/specflow/config.yaml
//     - Windows: %APPDATA%\specflow\config.yaml
//  4. ./specflow.yaml
//  5. [DefaultConfig] defaults
package config

// Config represents the root configuration structure.
//
// This is the main configuration container loaded by [Loader] and used throughout
// the application. Use [DefaultConfig] to get sensible defaults.
type Config struct {
	// Server contains the MCP implementation identity.
	Server ServerConfig `mapstructure:"server"`

	// Logging contains structured logging configuration.
	Logging LogConfig `mapstructure:"logging"`

	// Guidance contains the guidance diagnostic configuration.
	Guidance GuidanceConfig `mapstructure:"guidance"`
}

// ServerConfig is the implementation identity reported during the MCP
// initialize handshake.
type ServerConfig struct {
	// Name is the implementation name. Default: "spec-workflow-server"
	Name string `mapstructure:"name"`

	// Version is the implementation version. Default: "1.0.0"
	Version string `mapstructure:"version"`
}

// LogConfig controls the zap logger. Logs always go to stderr because
// stdout carries the MCP protocol.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: "info"
	Level string `mapstructure:"level"`

	// Format is "console" or "json". Default: "console"
	Format string `mapstructure:"format"`
}

// GuidanceConfig controls echoing stage guidance to stderr after each
// successful transition.
type GuidanceConfig struct {
	// DisableLogging suppresses the guidance echo.
	// Can be set with DISABLE_WORKFLOW_LOGGING or SPECFLOW_GUIDANCE_DISABLE_LOGGING.
	// Default: false
	DisableLogging bool `mapstructure:"disable_logging"`
}

// DefaultConfig returns a new [Config] with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:    "spec-workflow-server",
			Version: "1.0.0",
		},
		Logging: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Guidance: GuidanceConfig{
			DisableLogging: false,
		},
	}
}
