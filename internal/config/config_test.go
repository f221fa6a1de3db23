package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonexplorer/internal/errors"
)

func writeTempConfig(t *testing.T, pattern, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", pattern)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	_ = tmpFile.Close()
	return tmpFile.Name()
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "res.", cfg.PathPrefix)
	assert.Equal(t, 4, cfg.Render.IndentWidth)
	assert.False(t, cfg.Render.Color)
	assert.Equal(t, []string{"enter", " "}, cfg.Keys.Activate)
	assert.Equal(t, []string{" "}, cfg.Keys.Toggle)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.False(t, cfg.Dev.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
path_prefix: "response."
render:
  indent_width: 2
  color: true
keys:
  activate: ["enter"]
  toggle: ["space"]
theme:
  target: "205"
output:
  format: yaml
dev:
  debug: true
`
	path := writeTempConfig(t, "config_test_*.yml", yamlContent)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "response.", cfg.PathPrefix)
	assert.Equal(t, 2, cfg.Render.IndentWidth)
	assert.True(t, cfg.Render.Color)
	assert.Equal(t, []string{"enter"}, cfg.Keys.Activate)
	assert.Equal(t, "205", cfg.Theme.Target)
	assert.Equal(t, "#a6d189", cfg.Theme.String) // default kept
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.True(t, cfg.Dev.Debug)
}

func TestConfig_LoadExplicitEmptyPrefix(t *testing.T) {
	path := writeTempConfig(t, "config_prefix_*.yml", `path_prefix: ""`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.PathPrefix)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	invalidYAML := `
path_prefix: "res."
invalid_yaml: [unclosed array
`
	path := writeTempConfig(t, "invalid_*.yml", invalidYAML)

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero indent", mutate: func(c *Config) { c.Render.IndentWidth = 0 }},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "xml" }},
		{name: "no activation keys", mutate: func(c *Config) { c.Keys.Activate = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidConfig))
		})
	}
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_search_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	err = os.MkdirAll(nestedDir, 0o755)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, "project", ".jsonexplorer.yml")
	configContent := `path_prefix: "found."`
	err = os.WriteFile(configPath, []byte(configContent), 0o644)
	require.NoError(t, err)

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(nestedDir)
	require.NoError(t, err)

	// Should find the file in a parent directory
	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), `path_prefix: "found."`)
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "no_config_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(tmpDir)
	require.NoError(t, err)

	foundPath := FindConfigFile()
	assert.Empty(t, foundPath)
}

func TestKeysConfig_Matching(t *testing.T) {
	keys := KeysConfig{
		Activate: []string{"enter", "space"},
		Toggle:   []string{" "},
	}

	assert.True(t, keys.IsActivate("enter"))
	assert.True(t, keys.IsActivate(" "))
	assert.True(t, keys.IsActivate("return"))
	assert.False(t, keys.IsActivate("tab"))

	assert.True(t, keys.IsToggle("space"))
	assert.True(t, keys.IsToggle(" "))
	assert.False(t, keys.IsToggle("enter"))
}

func TestConfig_MergeWithCLI(t *testing.T) {
	base := NewConfig()
	base.PathPrefix = "response."
	base.Render.IndentWidth = 2

	empty := ""
	merged := MergeConfigs(base, Overrides{
		PathPrefix: &empty,
		Format:     "json",
		Color:      true,
	})

	assert.Equal(t, "", merged.PathPrefix)        // Overridden by CLI
	assert.Equal(t, 2, merged.Render.IndentWidth) // Kept from base
	assert.Equal(t, "json", merged.Output.Format) // Overridden by CLI
	assert.True(t, merged.Render.Color)           // Overridden by CLI
	assert.Equal(t, "response.", base.PathPrefix) // Base untouched
}

func TestLoadConfigWithPrecedence(t *testing.T) {
	configYAML := `
path_prefix: "data."
render:
  indent_width: 8
output:
  format: yaml
`
	path := writeTempConfig(t, "precedence_test_*.yml", configYAML)

	cfg, err := LoadConfigWithCLI(path, Overrides{IndentWidth: 3, Debug: true})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Render.IndentWidth)      // From CLI
	assert.True(t, cfg.Dev.Debug)                   // From CLI
	assert.Equal(t, "data.", cfg.PathPrefix)        // From config file
	assert.Equal(t, "yaml", cfg.Output.Format)      // From config file
	assert.Equal(t, []string{" "}, cfg.Keys.Toggle) // Default value
}

func TestLoadConfigWithPrecedence_InvalidOverride(t *testing.T) {
	_, err := LoadConfigWithCLI("", Overrides{Format: "toml"})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidConfig))
}
