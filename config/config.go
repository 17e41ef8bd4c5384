// Package config loads the xdom command configuration file.
//
// The file is YAML, named .xdom.yaml and looked up from the working
// directory towards the filesystem root:
//
//	format: atom
//	indent: 2
//	color: auto
//	naming: kebab-case
//	denyUnknown: true
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/signadot/xdom/format"
	"github.com/signadot/xdom/naming"
)

const FileName = ".xdom.yaml"

type Config struct {
	Format      string `yaml:"format" validate:"omitempty,oneof=x xml a atom s svg"`
	Indent      int    `yaml:"indent" validate:"gte=0,lte=8"`
	Color       string `yaml:"color" validate:"omitempty,oneof=auto always never"`
	Naming      string `yaml:"naming"`
	Declaration bool   `yaml:"declaration"`
	KeepSpace   bool   `yaml:"keepSpace"`
	DenyUnknown bool   `yaml:"denyUnknown"`

	// Path is the file the configuration was read from, empty for the
	// default configuration.
	Path string `yaml:"-"`
}

func Default() *Config {
	return &Config{Format: "xml", Indent: 2, Color: "auto"}
}

// Load reads and validates the configuration at path. Unset values keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	if _, err := naming.ParseStyle(cfg.Naming); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find looks for FileName in dir and its parents, returning the default
// configuration when there is none.
func Find(dir string) (*Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		p := filepath.Join(dir, FileName)
		cfg, err := Load(p)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

func (c *Config) GetFormat() format.Format {
	f, err := format.ParseFormat(c.Format)
	if err != nil {
		return format.XMLFormat
	}
	return f
}

func (c *Config) GetNaming() naming.Style {
	s, err := naming.ParseStyle(c.Naming)
	if err != nil {
		return naming.Default
	}
	return s
}
