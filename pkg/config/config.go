// Package config provides environment-aware configuration loading for
// gregal applications. A config file is a set of named sections; each
// component unmarshals its own section into a typed, validated struct.
// The detected runtime environment selects which file is loaded, so
// "config.production.yaml" and "config.development.yaml" can live side by
// side in the same directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/animalet/gregal-go/internal/deepcopy"
	"github.com/animalet/gregal-go/internal/expansion"
	"github.com/animalet/gregal-go/pkg/environment"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Validatable is implemented by every typed configuration section.
type Validatable interface {
	Validate() error
}

// ClientFactory is implemented by configuration sections that can create a
// client for the service they describe (Vault, AWS, databases, ...).
type ClientFactory[T any] interface {
	Validatable
	// CreateClient creates and configures a client from the config details.
	CreateClient() (T, error)
}

// Config holds a loaded configuration file as raw named sections. Typed
// access goes through Get.
type Config struct {
	file     string
	sections map[string]any
	// decoded caches expanded and validated sections; Get hands out deep
	// copies of these so no caller can mutate what another caller sees.
	decoded map[string]any
}

var extensions = []string{"yaml", "yml", "toml"}

// NewConfig loads a configuration file. The format is chosen by extension:
// ".yaml"/".yml" or ".toml".
func NewConfig(file string) (*Config, error) {
	data, err := os.ReadFile(file) // #nosec G304 -- the path comes from the operator
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read configuration file %q", file)
	}

	sections := make(map[string]any)
	switch ext := filepath.Ext(file); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &sections)
	case ".toml":
		err = toml.Unmarshal(data, &sections)
	default:
		return nil, errors.Errorf("unsupported configuration format %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse configuration file %q", file)
	}

	return &Config{file: file, sections: sections, decoded: make(map[string]any)}, nil
}

// NewConfigForEnvironment loads the configuration file matching the given
// environment from dir: "config.<name>.<ext>" when present, falling back
// to "config.<ext>". This is how the detected environment decides what the
// application reads at startup.
func NewConfigForEnvironment(dir string, env environment.Environment) (*Config, error) {
	var candidates []string
	if env.Name() != "" {
		for _, ext := range extensions {
			candidates = append(candidates, fmt.Sprintf("config.%s.%s", env.Name(), ext))
		}
	}
	for _, ext := range extensions {
		candidates = append(candidates, "config."+ext)
	}

	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		log.Info().
			Str("environment", env.Name()).
			Str("file", path).
			Msg("Loading configuration")
		return NewConfig(path)
	}

	return nil, errors.Errorf("no configuration file for environment %q in %q", env.Name(), dir)
}

// File returns the path the configuration was loaded from.
func (c *Config) File() string {
	return c.file
}

// Has reports whether a section with the given key is present.
func (c *Config) Has(key string) bool {
	_, exists := c.sections[key]
	return exists
}

// Get unmarshals the named section into a struct of type T, expands
// ${...} references through the secret resolvers, validates the result,
// and returns a deep copy so callers cannot mutate shared state.
//
// A missing section is not an error: Get returns (nil, nil) and the caller
// decides whether the component is optional.
//
// Sections are decoded once; expansion and validation do not run again on
// repeated lookups of the same key.
func Get[T Validatable](cfg *Config, key string) (*T, error) {
	if cached, exists := cfg.decoded[key]; exists {
		if typed, ok := cached.(*T); ok {
			return deepcopy.Copy(typed)
		}
	}

	raw, exists := cfg.sections[key]
	if !exists {
		return nil, nil
	}

	// Round-trip through YAML to decode the raw section into T. This keeps
	// a single set of struct tags working for both input formats.
	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "error marshalling section %q", key)
	}

	section := new(T)
	if err = yaml.Unmarshal(data, section); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling section %q", key)
	}

	if err = expansion.ExpandVariables(section); err != nil {
		return nil, errors.Wrapf(err, "error expanding section %q", key)
	}

	if err = (*section).Validate(); err != nil {
		return nil, errors.Wrapf(err, "section %q is invalid", key)
	}

	cfg.decoded[key] = section
	return deepcopy.Copy(section)
}
