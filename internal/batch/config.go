// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

// Package batch renders many schemas described by one YAML job file.
package batch

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/jsonschema2md"
)

const (
	// maxWorkers caps concurrent job groups.
	maxWorkers = 64
	// dotEnvFile is read from the job file directory for ${VAR} fallbacks.
	dotEnvFile = ".env"
)

var (
	// ErrReadConfig is returned when job file cannot be read.
	ErrReadConfig = errors.New("read batch config")
	// ErrParseConfig is returned when job file is not valid YAML for Config.
	ErrParseConfig = errors.New("parse batch config")
	// ErrInvalidConfig is returned when job file fails validation.
	ErrInvalidConfig = errors.New("invalid batch config")
)

// tokenPattern restricts marker tokens to one word without whitespace.
var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9_.:/-]+$`)

// Config is the batch job file.
//
//	workers: 4
//	jobs:
//	  - schema: schemas/fruits.json
//	    output: README.md
//	    token: fruits
//	  - schema: schemas/veggies.yaml
//	    output: docs/veggies.md
//	    examples_as_yaml: true
type Config struct {
	// Workers limits concurrently processed output files; 0 means one per output.
	Workers int   `yaml:"workers"`
	Jobs    []Job `yaml:"jobs"`
}

// Job renders one schema into one output.
type Job struct {
	// Schema is the JSON or YAML schema path.
	Schema string `yaml:"schema"`
	// Output is the markdown path; with Token it must already contain markers.
	Output string `yaml:"output"`
	// Token selects marker region "<!-- token start -->" / "<!-- token end -->".
	Token                string `yaml:"token"`
	ExamplesAsYAML       bool   `yaml:"examples_as_yaml"`
	OmitTopLevelMetadata bool   `yaml:"omit_top_level_metadata"`
}

// Validate validates the job file.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Workers, validation.Min(0), validation.Max(maxWorkers)),
		validation.Field(&c.Jobs, validation.Required),
	)
}

// Validate validates one job.
func (j Job) Validate() error {
	return validation.ValidateStruct(&j,
		validation.Field(&j.Schema, validation.Required),
		validation.Field(&j.Output, validation.Required),
		validation.Field(&j.Token, validation.Match(tokenPattern)),
	)
}

// Options returns render options for job.
func (j Job) Options() jsonschema2md.Options {
	return jsonschema2md.Options{
		ExamplesAsYAML:       j.ExamplesAsYAML,
		OmitTopLevelMetadata: j.OmitTopLevelMetadata,
	}
}

// Load reads job file, expands ${ENV} references, resolves relative paths
// against the job file directory and validates the result.
//
// Variables missing from the process environment are looked up in a .env
// file next to the job file, when present.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadConfig, path, err)
	}

	dotEnv, err := readDotEnv(filepath.Join(filepath.Dir(path), dotEnvFile))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadConfig, path, err)
	}

	expanded := os.Expand(string(data), func(name string) string {
		if value, ok := os.LookupEnv(name); ok {
			return value
		}

		return dotEnv[name]
	})

	decoder := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrParseConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidConfig, path, err)
	}

	cfg.resolvePaths(filepath.Dir(path))
	return &cfg, nil
}

// readDotEnv parses optional dotenv file; a missing file yields no values.
func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	return values, nil
}

// resolvePaths makes relative job paths relative to base directory.
func (c *Config) resolvePaths(base string) {
	for index := range c.Jobs {
		c.Jobs[index].Schema = resolvePath(base, c.Jobs[index].Schema)
		c.Jobs[index].Output = resolvePath(base, c.Jobs[index].Output)
	}
}

// resolvePath joins relative path with base.
func resolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(base, path)
}
