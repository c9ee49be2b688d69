package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// appName is used for the env prefix and the user config directory.
const appName = "specflow"

// legacyDisableLoggingEnv is the unprefixed guidance toggle.
const legacyDisableLoggingEnv = "DISABLE_WORKFLOW_LOGGING"

// Loader handles configuration loading with Viper.
//
// Use [NewLoader] to create an instance, then [Loader.Load] for the standard
// search order or [Loader.LoadFromFile] for an explicit file.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new [Loader] with defaults and environment bindings
// registered.
func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// setDefaults registers every key so Unmarshal sees env overrides.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.name", cfg.Server.Name)
	v.SetDefault("server.version", cfg.Server.Version)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("guidance.disable_logging", cfg.Guidance.DisableLogging)
}

// Load loads configuration following the documented priority order.
//
// A missing config file is not an error; defaults and environment variables
// still apply.
func (l *Loader) Load() (*Config, error) {
	if path := os.Getenv("SPECFLOW_CONFIG_PATH"); path != "" {
		return l.LoadFromFile(path)
	}

	if path, err := DefaultConfigPath(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return l.LoadFromFile(path)
		}
	}

	if _, err := os.Stat(appName + ".yaml"); err == nil {
		return l.LoadFromFile(appName + ".yaml")
	}

	return l.unmarshal()
}

// LoadFromFile loads configuration from the given file. The format is
// inferred from the extension (yaml, yml, json).
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	cfg := DefaultConfig()
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	// The unprefixed variable is what existing MCP client configs set.
	// Unparseable values leave guidance logging on.
	if disable, err := strconv.ParseBool(os.Getenv(legacyDisableLoggingEnv)); err == nil && disable {
		cfg.Guidance.DisableLogging = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at startup.
func (c *Config) Validate() error {
	if c.Server.Name == "" {
		return fmt.Errorf("config: server.name is required")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("config: logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// MustLoad loads configuration with [Loader.Load] and panics on error.
func MustLoad() *Config {
	cfg, err := NewLoader().Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// ConfigDir returns the platform-standard specflow configuration directory.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// DefaultConfigPath returns the path of config.yaml inside [ConfigDir].
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// EnsureConfigDir creates [ConfigDir] if it does not exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	return nil
}
