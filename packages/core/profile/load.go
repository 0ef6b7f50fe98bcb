package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/rdiff/packages/core/env"
)

const (
	// DefaultDiffFile is read when no config path is given.
	DefaultDiffFile = "rdiff.yaml"
	// DefaultRequestFile is read by the xreq commands when no path is given.
	DefaultRequestFile = "xreq.yaml"
)

// Format is the syntax of a profile document.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	default:
		return "yaml"
	}
}

// FormatFromPath picks the format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

type loadOptions struct {
	resolver       *env.Resolver
	skipValidation bool
}

type LoadOption func(*loadOptions)

// WithResolver expands {{...}} expressions in string values before decoding.
func WithResolver(r *env.Resolver) LoadOption {
	return func(o *loadOptions) {
		o.resolver = r
	}
}

// WithoutValidation skips schema lint and typed validation, leaving them to
// the caller (ValidateAll).
func WithoutValidation() LoadOption {
	return func(o *loadOptions) {
		o.skipValidation = true
	}
}

// LoadDiffConfig reads, expands, lints, decodes and validates a comparison
// profile document.
func LoadDiffConfig(path string, opts ...LoadOption) (*DiffConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := ParseDiffConfig(data, FormatFromPath(path), opts...)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"path": path, "profiles": len(cfg.Profiles)}).Debug("loaded diff config")
	return cfg, nil
}

// LoadRequestConfig is LoadDiffConfig for single request documents.
func LoadRequestConfig(path string, opts ...LoadOption) (*RequestConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := ParseRequestConfig(data, FormatFromPath(path), opts...)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"path": path, "profiles": len(cfg.Profiles)}).Debug("loaded request config")
	return cfg, nil
}

func ParseDiffConfig(data []byte, format Format, opts ...LoadOption) (*DiffConfig, error) {
	cfg, err := parse[DiffConfig](data, format, DiffSchema, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*DiffProfile)
	}
	return cfg, nil
}

func ParseRequestConfig(data []byte, format Format, opts ...LoadOption) (*RequestConfig, error) {
	cfg, err := parse[RequestConfig](data, format, RequestSchema, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*RequestProfile)
	}
	return cfg, nil
}

// parse runs the load pipeline shared by both document kinds. Schema errors
// are all reported, joined; typed validation stops at the first failing
// profile in name order.
func parse[T any, PT interface {
	*T
	Config
}](data []byte, format Format, schema string, opts ...LoadOption) (PT, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	node, err := parseNode(data, format)
	if err != nil {
		return nil, err
	}

	if o.resolver != nil {
		o.resolver.ExpandNode(node)
	}

	if !o.skipValidation && node.Kind != 0 {
		var doc any
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding %s document: %w", format, err)
		}
		if errs := lint(schema, normalizeValue(doc)); len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
	}

	cfg := PT(new(T))
	if node.Kind != 0 {
		if err := node.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decoding %s document: %w", format, err)
		}
	}

	if !o.skipValidation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// parseNode turns the raw document into a YAML tree. JSON is valid YAML;
// TOML is decoded first and re-encoded.
func parseNode(data []byte, format Format) (*yaml.Node, error) {
	if format == FormatTOML {
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing toml document: %w", err)
		}
		out, err := yaml.Marshal(m)
		if err != nil {
			return nil, err
		}
		data = out
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s document: %w", format, err)
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0], nil
	}
	return &doc, nil
}
