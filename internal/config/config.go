// Package config loads gqlfetch settings from a YAML file. ${VAR}
// references in the file are expanded from the environment, which may be
// seeded from .env files first.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	graphql "github.com/joaopandolfi/graphql-sigv4"
)

const (
	defaultService = "appsync"
	defaultTimeout = 30 * time.Second
)

// Config is the gqlfetch configuration file.
type Config struct {
	Endpoint string            `yaml:"endpoint"`
	AWS      AWS               `yaml:"aws"`
	Headers  map[string]string `yaml:"headers"`
	Timeout  time.Duration     `yaml:"timeout"`
}

// AWS holds the signing settings.
type AWS struct {
	AccessKeyID  string `yaml:"access_key_id"`
	SecretKey    string `yaml:"secret_key"`
	SessionToken string `yaml:"session_token"`
	Region       string `yaml:"region"`
	Service      string `yaml:"service"`
}

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads the file at path. envFiles, if any, are loaded into the
// environment first; variables already set are not overridden.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, errors.Wrap(err, "load env files")
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	return Parse(data)
}

// Parse expands, decodes, defaults and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	expanded := os.Expand(string(data), os.Getenv)

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	cfg.setDefaults()
	if errs := cfg.Validate(); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return nil, errors.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.AWS.Service == "" {
		c.AWS.Service = defaultService
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the fields the client cannot work without. The endpoint
// may also come from the command line, so it is not checked here.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	if c.AWS.AccessKeyID == "" {
		errs = append(errs, ValidationError{Field: "aws.access_key_id", Message: "is required"})
	}
	if c.AWS.SecretKey == "" {
		errs = append(errs, ValidationError{Field: "aws.secret_key", Message: "is required"})
	}
	if c.AWS.Region == "" {
		errs = append(errs, ValidationError{Field: "aws.region", Message: "is required"})
	}
	if c.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "timeout", Message: "must not be negative"})
	}
	return errs
}

// Credentials returns the signing configuration for graphql.NewClient.
func (c *Config) Credentials() graphql.Credentials {
	return graphql.Credentials{
		AccessKeyID:  c.AWS.AccessKeyID,
		SecretKey:    c.AWS.SecretKey,
		SessionToken: c.AWS.SessionToken,
		Region:       c.AWS.Region,
		Service:      c.AWS.Service,
	}
}
