package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".uibench"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// SiteConfig holds per-URL overrides for capture behavior.
// Keys in File.Sites are hostnames; settings here take effect only for
// captures of matching targets.
type SiteConfig struct {
	// Cookie is an HTTP cookie header value to set before navigation.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers to include in requests to this site.
	Headers map[string]string `yaml:"headers,omitempty"`

	// SettleDelaySeconds overrides the global settle delay for this site.
	// Useful for pages with slow hero animations or lazy-loaded imagery.
	SettleDelaySeconds int `yaml:"settleDelaySeconds,omitempty"`
}

// File represents the structure of the .uibench configuration file.
type File struct {
	// Preset overrides the default preset name when no flag is given.
	Preset string `yaml:"preset,omitempty"`

	// Viewports overrides the default viewport list when no flag is given.
	Viewports []string `yaml:"viewports,omitempty"`

	// OutputDir overrides the default output directory when no flag is given.
	OutputDir string `yaml:"outputDir,omitempty"`

	// Model overrides the default vision model identifier.
	Model string `yaml:"model,omitempty"`

	// Sites maps hostnames to their site-specific capture overrides.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`
}

// GetSiteConfig returns the overrides for a specific hostname.
// A host with no entry gets the zero SiteConfig.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	if cf == nil || cf.Sites == nil {
		return SiteConfig{}
	}
	return cf.Sites[host]
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Sites == nil {
		cf.Sites = make(map[string]SiteConfig)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .uibench in the current directory
// 3. Look for .uibench in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// ApplyFile folds config-file values into a Config, without overriding
// values that were already set explicitly (flags win over file).
func (c *Config) ApplyFile(cf *File, presetFlagSet, viewportsFlagSet, outputFlagSet, modelFlagSet bool) {
	if cf == nil {
		return
	}
	c.SiteConfigs = cf

	if cf.Preset != "" && !presetFlagSet {
		c.PresetName = cf.Preset
	}
	if len(cf.Viewports) > 0 && !viewportsFlagSet {
		c.Viewports = cf.Viewports
	}
	if cf.OutputDir != "" && !outputFlagSet {
		c.OutputDir = cf.OutputDir
	}
	if cf.Model != "" && !modelFlagSet {
		c.Model = cf.Model
	}
}
