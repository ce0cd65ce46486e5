// Package config loads the YAML configuration shared by the itupctl
// commands: page geometry, named index schemas, and logging.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/indextuple/pkg/catalog"
	"github.com/ssargent/indextuple/pkg/itup"
)

// Config represents the itupctl configuration
type Config struct {
	DataDir string                      `yaml:"data_dir"`
	Page    itup.PageGeometry           `yaml:"page"`
	Schemas map[string][]catalog.Column `yaml:"schemas"`
	Logging Logging                     `yaml:"logging"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// SlogLevel parses Level; an empty level means info.
func (l Logging) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, errors.Wrapf(err, "invalid logging level %q", l.Level)
	}
	return level, nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Page:    itup.DefaultPageGeometry,
		Schemas: map[string][]catalog.Column{
			"default": {
				{Name: "id", Type: catalog.TypeInt4},
				{Name: "label", Type: catalog.TypeText},
				{Name: "rank", Type: catalog.TypeInt4},
			},
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Validate checks the page geometry, every schema, and the logging level.
func (c *Config) Validate() error {
	if c.Page.PageSize <= c.Page.PageHeaderSize || c.Page.SlotSize <= 0 {
		return errors.Newf("invalid page geometry: %+v", c.Page)
	}
	if itup.MaxTuplesPerPage(c.Page) == 0 {
		return errors.Newf("page geometry %+v cannot hold a single tuple", c.Page)
	}
	for _, name := range c.SchemaNames() {
		if _, err := c.Table(name); err != nil {
			return err
		}
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SchemaNames returns the configured schema names in sorted order.
func (c *Config) SchemaNames() []string {
	names := make([]string, 0, len(c.Schemas))
	for name := range c.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table builds the named schema.
func (c *Config) Table(name string) (*catalog.Table, error) {
	cols, ok := c.Schemas[name]
	if !ok {
		return nil, errors.Newf("schema %q is not configured", name)
	}
	tbl, err := catalog.NewTable(cols)
	if err != nil {
		return nil, errors.Wrapf(err, "schema %q", name)
	}
	return tbl, nil
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.Newf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, errors.Wrap(err, "invalid config path")
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	config := DefaultConfig()
	config.Schemas = nil
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// BootstrapConfig writes a default configuration if none exists at
// configPath and returns whatever is there afterwards.
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	if ConfigExists(configPath) {
		return LoadConfig(configPath)
	}

	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, errors.Wrap(err, "failed to save bootstrap config")
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./itupctl.yaml"
	}

	// For Linux/macOS, use ~/.config/itupctl/config.yaml
	configDir := filepath.Join(homeDir, ".config", "itupctl")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
