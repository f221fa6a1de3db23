package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonexplorer/internal/errors"
)

// Config represents the complete configuration for jsonexplorer
type Config struct {
	PathPrefix string       `yaml:"path_prefix"`
	Render     RenderConfig `yaml:"render"`
	Keys       KeysConfig   `yaml:"keys"`
	Theme      ThemeConfig  `yaml:"theme"`
	Output     OutputConfig `yaml:"output"`
	Dev        DevConfig    `yaml:"dev"`
}

// RenderConfig controls the tree layout
type RenderConfig struct {
	IndentWidth int  `yaml:"indent_width"`
	Color       bool `yaml:"color"`
}

// KeysConfig lists the keys that activate tree targets and checkboxes.
// A key is named the way the terminal reports it ("enter", " ");
// "space" is accepted as an alias for " ".
type KeysConfig struct {
	Activate []string `yaml:"activate"`
	Toggle   []string `yaml:"toggle"`
}

// ThemeConfig holds lipgloss colour strings ("205", "#a6d189")
type ThemeConfig struct {
	Key      string `yaml:"key"`
	Target   string `yaml:"target"`
	Selected string `yaml:"selected"`
	String   string `yaml:"string"`
	Number   string `yaml:"number"`
	Literal  string `yaml:"literal"`
	Muted    string `yaml:"muted"`
}

// OutputConfig controls how resolved values are printed
type OutputConfig struct {
	Format string `yaml:"format"` // text, json or yaml
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		PathPrefix: "res.",
		Render: RenderConfig{
			IndentWidth: 4,
			Color:       false,
		},
		Keys: KeysConfig{
			Activate: []string{"enter", " "},
			Toggle:   []string{" "},
		},
		Theme: ThemeConfig{
			Key:      "#c6d0f5",
			Target:   "#8caaee",
			Selected: "#ca9ee6",
			String:   "#a6d189",
			Number:   "#ef9f76",
			Literal:  "#ea999c",
			Muted:    "240",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonexplorer.yml", ".jsonexplorer.yaml", "jsonexplorer.yml", "jsonexplorer.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks values that cannot be defaulted silently
func (c *Config) Validate() error {
	if c.Render.IndentWidth <= 0 {
		return errors.NewConfigError(
			fmt.Sprintf("render.indent_width must be positive, got %d", c.Render.IndentWidth),
			errors.ErrInvalidConfig,
		)
	}

	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return errors.NewConfigError(
			fmt.Sprintf("output.format must be text, json or yaml, got %q", c.Output.Format),
			errors.ErrInvalidConfig,
		)
	}

	if len(c.Keys.Activate) == 0 {
		return errors.NewConfigError("keys.activate must list at least one key", errors.ErrInvalidConfig)
	}

	return nil
}

// NormalizeKey maps key aliases onto the names the terminal reports
func NormalizeKey(key string) string {
	switch strings.ToLower(key) {
	case "space", "spacebar":
		return " "
	case "return":
		return "enter"
	default:
		return key
	}
}

func containsKey(keys []string, key string) bool {
	key = NormalizeKey(key)
	for _, k := range keys {
		if NormalizeKey(k) == key {
			return true
		}
	}
	return false
}

// IsActivate reports whether key activates a tree target
func (k KeysConfig) IsActivate(key string) bool {
	return containsKey(k.Activate, key)
}

// IsToggle reports whether key toggles a checkbox
func (k KeysConfig) IsToggle(key string) bool {
	return containsKey(k.Toggle, key)
}

// Overrides carries values set on the command line. Zero values mean "not set"
// except PathPrefix, which is a pointer so an explicit empty prefix can be given.
type Overrides struct {
	PathPrefix  *string
	IndentWidth int
	Format      string
	Color       bool
	Debug       bool
}

// MergeConfigs applies CLI overrides on top of a base config
func MergeConfigs(base *Config, override Overrides) *Config {
	merged := *base // Start with a copy of base

	if override.PathPrefix != nil {
		merged.PathPrefix = *override.PathPrefix
	}
	if override.IndentWidth > 0 {
		merged.Render.IndentWidth = override.IndentWidth
	}
	if override.Format != "" {
		merged.Output.Format = override.Format
	}

	// Flags can only switch these on
	if override.Color {
		merged.Render.Color = true
	}
	if override.Debug {
		merged.Dev.Debug = true
	}

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// CLI > config file > defaults
func LoadConfigWithCLI(configPath string, override Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	merged := MergeConfigs(cfg, override)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
