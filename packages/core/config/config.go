package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/abdul-hamid-achik/rdiff/packages/core/runner"
)

// Config represents the rdiff tool settings
type Config struct {
	Timeout         int               `json:"timeout,omitempty"` // milliseconds
	FollowRedirects *bool             `json:"followRedirects,omitempty"`
	MaxRedirects    int               `json:"maxRedirects,omitempty"`
	ValidateSSL     *bool             `json:"validateSSL,omitempty"`
	Proxy           string            `json:"proxy,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"` // Default headers for all requests
	EnvFiles        []string          `json:"envFiles,omitempty"`
	NoColor         *bool             `json:"noColor,omitempty"`
	Theme           string            `json:"theme,omitempty"`
	Context         int               `json:"context,omitempty"` // unchanged lines around a change
	Width           int               `json:"width,omitempty"`   // hunk separator width
}

// boolPtr returns a pointer to a bool value
func boolPtr(b bool) *bool {
	return &b
}

// BoolPtr is exported version of boolPtr for external use
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetTimeout returns the request timeout as a duration
func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

// RunnerConfig converts the settings into runner options
func (c *Config) RunnerConfig() *runner.Config {
	return &runner.Config{
		Timeout:        c.GetTimeout(),
		FollowRedirect: c.GetFollowRedirects(),
		MaxRedirects:   c.MaxRedirects,
		Insecure:       !c.GetValidateSSL(),
		Proxy:          c.Proxy,
		Headers:        c.Headers,
		Context:        c.Context,
	}
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".rdiff.config.json",
	"rdiff.config.json",
	".rdiffrc",
	".rdiffrc.json",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}

	log.WithField("path", path).Debug("loaded settings")
	return config, nil
}

// Validate rejects settings that cannot be applied
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %d", c.Timeout)
	}
	if c.MaxRedirects < 0 {
		return fmt.Errorf("maxRedirects must not be negative, got %d", c.MaxRedirects)
	}
	if c.Context < 0 {
		return fmt.Errorf("context must not be negative, got %d", c.Context)
	}
	if c.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	return nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.MaxRedirects > 0 {
		result.MaxRedirects = other.MaxRedirects
	}
	if other.Proxy != "" {
		result.Proxy = other.Proxy
	}
	if other.Theme != "" {
		result.Theme = other.Theme
	}
	if other.Context > 0 {
		result.Context = other.Context
	}
	if other.Width > 0 {
		result.Width = other.Width
	}

	// Boolean flags - only override if explicitly set in other config
	if other.FollowRedirects != nil {
		result.FollowRedirects = other.FollowRedirects
	}
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	// Merge headers
	if len(other.Headers) > 0 {
		merged := make(map[string]string, len(result.Headers)+len(other.Headers))
		for k, v := range result.Headers {
			merged[k] = v
		}
		for k, v := range other.Headers {
			merged[k] = v
		}
		result.Headers = merged
	}

	if len(other.EnvFiles) > 0 {
		result.EnvFiles = other.EnvFiles
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
