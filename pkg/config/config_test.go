package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/indextuple/pkg/catalog"
	"github.com/ssargent/indextuple/pkg/itup"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "./data", config.DataDir)
	assert.Equal(t, itup.DefaultPageGeometry, config.Page)
	assert.Equal(t, []string{"default"}, config.SchemaNames())
	assert.Equal(t, "info", config.Logging.Level)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		tmpDir := t.TempDir()

		configPath := filepath.Join(tmpDir, "config.yaml")
		expectedConfig := &Config{
			DataDir: "/custom/data",
			Page:    itup.PageGeometry{PageSize: 4096, PageHeaderSize: 24, SlotSize: 4},
			Schemas: map[string][]catalog.Column{
				"routes": {
					{Name: "tenant", Type: catalog.TypeInt4},
					{Name: "path", Type: catalog.TypeText},
				},
			},
			Logging: Logging{
				Level: "debug",
			},
		}

		err := SaveConfig(expectedConfig, configPath)
		require.NoError(t, err)

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expectedConfig, loadedConfig)
	})

	t.Run("missing sections keep defaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "partial.yaml")
		content := "schemas:\n  ids:\n    - name: id\n      type: int8\n"
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, itup.DefaultPageGeometry, loadedConfig.Page)
		assert.Equal(t, []string{"ids"}, loadedConfig.SchemaNames())
		assert.Equal(t, "info", loadedConfig.Logging.Level)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := LoadConfig("/non/existent/config.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config file does not exist")
	})

	t.Run("load invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "invalid.yaml")
		err := os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644)
		require.NoError(t, err)

		_, err = LoadConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	config := DefaultConfig()

	err := SaveConfig(config, configPath)
	require.NoError(t, err)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loadedConfig, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loadedConfig)
}

func TestBootstrapConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	config, err := BootstrapConfig(configPath, "/custom/data/dir")
	require.NoError(t, err)
	assert.Equal(t, "/custom/data/dir", config.DataDir)
	assert.True(t, ConfigExists(configPath))

	// A second bootstrap keeps the file that is already there.
	again, err := BootstrapConfig(configPath, "/other")
	require.NoError(t, err)
	assert.Equal(t, config, again)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"page header larger than page", func(c *Config) { c.Page.PageHeaderSize = c.Page.PageSize }},
		{"no slot size", func(c *Config) { c.Page.SlotSize = 0 }},
		{"page too small for a tuple", func(c *Config) { c.Page = itup.PageGeometry{PageSize: 40, PageHeaderSize: 24, SlotSize: 4} }},
		{"unknown type", func(c *Config) { c.Schemas["bad"] = []catalog.Column{{Name: "x", Type: "money"}} }},
		{"empty schema", func(c *Config) { c.Schemas["empty"] = nil }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestTable(t *testing.T) {
	config := DefaultConfig()

	tbl, err := config.Table("default")
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Schema.NumAttrs())

	_, err = config.Table("missing")
	assert.Error(t, err)
}

func TestLoggingLevel(t *testing.T) {
	level, err := Logging{Level: "debug"}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = Logging{}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "itupctl")
	assert.Contains(t, path, "yaml")
}

func TestConfigExists(t *testing.T) {
	tmpDir := t.TempDir()

	existingPath := filepath.Join(tmpDir, "exists.yaml")
	nonExistentPath := filepath.Join(tmpDir, "does-not-exist.yaml")

	err := os.WriteFile(existingPath, []byte("test"), 0644)
	require.NoError(t, err)

	assert.True(t, ConfigExists(existingPath))
	assert.False(t, ConfigExists(nonExistentPath))
}

func TestConfigYAMLMarshalling(t *testing.T) {
	config := DefaultConfig()
	config.Logging.Level = "warn"

	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	assert.Contains(t, string(data), "page_size: 8192")

	var unmarshalled Config
	err = yaml.Unmarshal(data, &unmarshalled)
	require.NoError(t, err)

	assert.Equal(t, config, &unmarshalled)
}

func TestSaveConfigErrorHandling(t *testing.T) {
	config := DefaultConfig()

	// A regular file cannot be used as a parent directory.
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := SaveConfig(config, filepath.Join(blocker, "config.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create config directory")
}
