package profile

import (
	"bytes"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
)

// Config is the behavior shared by both profile documents.
type Config interface {
	Names() []string
	Validate() error
	ValidateAll() []error
}

// DiffConfig maps profile names to comparison profiles.
type DiffConfig struct {
	Profiles map[string]*DiffProfile `yaml:",inline"`
}

func NewDiffConfig(profiles map[string]*DiffProfile) *DiffConfig {
	if profiles == nil {
		profiles = make(map[string]*DiffProfile)
	}
	return &DiffConfig{Profiles: profiles}
}

// Get looks a profile up by exact name.
func (c *DiffConfig) Get(name string) (*DiffProfile, bool) {
	p, ok := c.Profiles[name]
	return p, ok && p != nil
}

// Lookup is Get returning a ProfileNotFoundError naming source.
func (c *DiffConfig) Lookup(name, source string) (*DiffProfile, error) {
	if p, ok := c.Get(name); ok {
		return p, nil
	}
	return nil, errdefs.NewProfileNotFoundError(name, source)
}

func (c *DiffConfig) Names() []string {
	return sortedNames(c.Profiles)
}

// Validate returns the first failing profile, in name order.
func (c *DiffConfig) Validate() error {
	return firstError(c.ValidateAll())
}

// ValidateAll validates every profile and returns one error per failure.
func (c *DiffConfig) ValidateAll() []error {
	var errs []error
	for _, name := range c.Names() {
		p := c.Profiles[name]
		if p == nil {
			errs = append(errs, errdefs.NewConfigValidationError(name, errdefs.NewInvalidShapeError("profile", "is empty")))
			continue
		}
		if err := p.Validate(); err != nil {
			errs = append(errs, errdefs.NewConfigValidationError(name, err))
		}
	}
	return errs
}

// Marshal renders the config as a YAML document prefixed with "---".
func (c *DiffConfig) Marshal() ([]byte, error) {
	return marshalDocument(c)
}

// RequestConfig maps profile names to single request profiles.
type RequestConfig struct {
	Profiles map[string]*RequestProfile `yaml:",inline"`
}

func NewRequestConfig(profiles map[string]*RequestProfile) *RequestConfig {
	if profiles == nil {
		profiles = make(map[string]*RequestProfile)
	}
	return &RequestConfig{Profiles: profiles}
}

func (c *RequestConfig) Get(name string) (*RequestProfile, bool) {
	p, ok := c.Profiles[name]
	return p, ok && p != nil
}

func (c *RequestConfig) Lookup(name, source string) (*RequestProfile, error) {
	if p, ok := c.Get(name); ok {
		return p, nil
	}
	return nil, errdefs.NewProfileNotFoundError(name, source)
}

func (c *RequestConfig) Names() []string {
	return sortedNames(c.Profiles)
}

func (c *RequestConfig) Validate() error {
	return firstError(c.ValidateAll())
}

func (c *RequestConfig) ValidateAll() []error {
	var errs []error
	for _, name := range c.Names() {
		p := c.Profiles[name]
		if p == nil {
			errs = append(errs, errdefs.NewConfigValidationError(name, errdefs.NewInvalidShapeError("profile", "is empty")))
			continue
		}
		if err := p.Validate(); err != nil {
			errs = append(errs, errdefs.NewConfigValidationError(name, err))
		}
	}
	return errs
}

func (c *RequestConfig) Marshal() ([]byte, error) {
	return marshalDocument(c)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func firstError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

func marshalDocument(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
