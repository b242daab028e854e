// Package config assembles the dispatcher configuration from its sources.
//
// Sources apply in increasing priority: defaults, a YAML file, PETRI_*
// environment variables, then explicit overrides (command-line flags).
// The result is validated before it is returned.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/petricontrols/bootstrap/application/validation"
	"github.com/petricontrols/bootstrap/domain/entities"
	domainerrors "github.com/petricontrols/bootstrap/domain/errors"
	"github.com/petricontrols/bootstrap/domain/ports"
	"github.com/petricontrols/bootstrap/infrastructure/parser"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PETRI_"

type loadConfig struct {
	parser      ports.ConfigParser
	environment map[string]string
	overrides   []entities.ConfigOption
	validate    func(*entities.Config) error
	skipSchema  bool
}

// Option configures Load.
type Option func(*loadConfig)

// WithParser replaces the YAML parser.
func WithParser(p ports.ConfigParser) Option {
	return func(c *loadConfig) {
		c.parser = p
	}
}

// WithEnvironment reads variables from env instead of the process environment.
func WithEnvironment(environment map[string]string) Option {
	return func(c *loadConfig) {
		c.environment = environment
	}
}

// WithOverrides applies options after every other source.
func WithOverrides(opts ...entities.ConfigOption) Option {
	return func(c *loadConfig) {
		c.overrides = append(c.overrides, opts...)
	}
}

// WithValidator replaces the final validation, for commands that need only part
// of the configuration.
func WithValidator(fn func(*entities.Config) error) Option {
	return func(c *loadConfig) {
		c.validate = fn
	}
}

// WithoutSchemaCheck skips the JSON schema check of the file, for parsers of
// formats other than YAML or JSON.
func WithoutSchemaCheck() Option {
	return func(c *loadConfig) {
		c.skipSchema = true
	}
}

// Load builds the configuration. path may be empty, in which case no file is read.
// Invalid configuration is reported as *errors.ConfigError.
func Load(path string, opts ...Option) (*entities.Config, error) {
	lc := loadConfig{
		parser:   parser.NewYamlConfigParser(),
		validate: validation.ValidateConfig,
	}
	for _, opt := range opts {
		opt(&lc)
	}

	cfg, err := fromFile(path, &lc)
	if err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: lc.environment,
	}); err != nil {
		return nil, &domainerrors.ConfigError{Err: fmt.Errorf("parse env: %w", err)}
	}

	for _, opt := range lc.overrides {
		opt(cfg)
	}

	if err := lc.validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromFile(path string, lc *loadConfig) (*entities.Config, error) {
	if path == "" {
		cfg := entities.DefaultConfig()
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if !lc.skipSchema {
		sv, err := validation.NewSchemaValidator()
		if err != nil {
			return nil, err
		}
		if err := sv.ValidateYAML(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg, err := lc.parser.Parse(data)
	if err != nil {
		return nil, &domainerrors.ConfigError{Err: fmt.Errorf("%s: %w", path, err)}
	}
	return cfg, nil
}
