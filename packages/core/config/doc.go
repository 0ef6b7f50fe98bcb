// Package config handles the rdiff tool settings.
//
// It provides functionality for:
//   - Loading settings from .rdiff.config.json, rdiff.config.json or .rdiffrc
//   - Default values for every setting
//   - Merging command line overrides over file settings
//
// Settings configure the HTTP client and the report rendering. Profiles are
// loaded separately by the profile package.
package config
