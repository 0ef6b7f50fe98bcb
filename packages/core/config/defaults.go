package config

import (
	"maps"
	"slices"

	"github.com/abdul-hamid-achik/rdiff/packages/diff"
	"github.com/abdul-hamid-achik/rdiff/packages/highlight"
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Timeout:         30000, // 30 seconds
		FollowRedirects: boolPtr(true),
		MaxRedirects:    10,
		ValidateSSL:     boolPtr(true),
		Proxy:           "",
		Headers:         nil,
		NoColor:         boolPtr(false),
		Theme:           highlight.DefaultTheme,
		Context:         diff.DefaultContext,
		Width:           diff.DefaultWidth,
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.Timeout == defaults.Timeout &&
		c.GetFollowRedirects() == defaults.GetFollowRedirects() &&
		c.MaxRedirects == defaults.MaxRedirects &&
		c.GetValidateSSL() == defaults.GetValidateSSL() &&
		c.Proxy == defaults.Proxy &&
		len(c.Headers) == 0 &&
		len(c.EnvFiles) == 0 &&
		c.GetNoColor() == defaults.GetNoColor() &&
		c.Theme == defaults.Theme &&
		c.Context == defaults.Context &&
		c.Width == defaults.Width
}

// HeaderNames returns the default header names in sorted order
func (c *Config) HeaderNames() []string {
	return slices.Sorted(maps.Keys(c.Headers))
}
