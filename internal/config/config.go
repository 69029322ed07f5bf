// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fieldtrace/internal/resolver"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format    string `yaml:"format"`
		Checks    string `yaml:"checks"`
		ChunkSize int    `yaml:"chunk_size"`
		Verbose   bool   `yaml:"verbose"`
		NoColor   bool   `yaml:"no_color"`
		ShowMatch bool   `yaml:"show_match"`
	} `yaml:"defaults"`

	// Key names that trigger the keyword-field matcher
	Keywords []string `yaml:"keywords"`

	// Field-resolution cascade configuration
	Resolver resolver.Config `yaml:"resolver"`

	// Profiles for different scanning scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a scanning profile with specific settings
type Profile struct {
	Format      string `yaml:"format"`
	Checks      string `yaml:"checks"`
	ChunkSize   int    `yaml:"chunk_size"`
	Verbose     bool   `yaml:"verbose"`
	NoColor     bool   `yaml:"no_color"`
	ShowMatch   bool   `yaml:"show_match"`
	Description string `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	config.Defaults.Format = "text"
	config.Defaults.Checks = "all"
	config.Defaults.ChunkSize = 100
	config.Keywords = []string{"name", "policy number"}
	config.Resolver = resolver.DefaultConfig()

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize config.yaml
	for _, candidate := range []string{"config.yaml", "fieldtrace.yaml", "fieldtrace.yml", ".fieldtrace.yaml", ".fieldtrace.yml"} {
		if fileExists(candidate) {
			return candidate
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeConfig := filepath.Join(home, ".fieldtrace.yaml")
	if fileExists(homeConfig) {
		return homeConfig
	}
	homeConfig = filepath.Join(home, ".fieldtrace.yml")
	if fileExists(homeConfig) {
		return homeConfig
	}

	// Check XDG config directory
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	xdgConfigFile := filepath.Join(xdgConfig, "fieldtrace", "config.yaml")
	if fileExists(xdgConfigFile) {
		return xdgConfigFile
	}

	return ""
}

// LoadConfigOrDefault loads configuration from configFile (or searches
// standard locations when configFile is empty). If loading fails, it returns
// a default configuration — callers should not crash on a bad config file.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if config.Defaults.ChunkSize < 0 {
		return fmt.Errorf("chunk_size cannot be negative")
	}

	valid := map[string]bool{
		resolver.StrategyStructural: true,
		resolver.StrategyKeyValue:   true,
		resolver.StrategyContains:   true,
		resolver.StrategyDomain:     true,
	}
	for _, s := range config.Resolver.Strategies {
		if !valid[s] {
			return fmt.Errorf("unknown resolver strategy %q", s)
		}
	}

	for name, profile := range config.Profiles {
		if profile.ChunkSize < 0 {
			return fmt.Errorf("chunk_size cannot be negative in profile %q", name)
		}
	}

	return nil
}

// ListProfiles returns a list of available profile names
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
