// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package batch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "docs.yaml")
	writeFile(t, configPath, `
workers: 2
jobs:
  - schema: schemas/fruits.json
    output: README.md
    token: fruits
  - schema: /abs/veggies.yaml
    output: docs/veggies.md
    examples_as_yaml: true
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Workers != 2 || len(cfg.Jobs) != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	if got, want := cfg.Jobs[0].Schema, filepath.Join(dir, "schemas", "fruits.json"); got != want {
		t.Errorf("schema = %q, want %q", got, want)
	}

	if got, want := cfg.Jobs[0].Output, filepath.Join(dir, "README.md"); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	if got := cfg.Jobs[1].Schema; got != "/abs/veggies.yaml" {
		t.Errorf("absolute schema path changed: %q", got)
	}

	if !cfg.Jobs[1].Options().ExamplesAsYAML {
		t.Error("examples_as_yaml not mapped to render options")
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("JSONSCHEMA2MD_TEST_OUT", "generated.md")

	configPath := filepath.Join(t.TempDir(), "docs.yaml")
	writeFile(t, configPath, "jobs:\n  - schema: a.json\n    output: ${JSONSCHEMA2MD_TEST_OUT}\n")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if filepath.Base(cfg.Jobs[0].Output) != "generated.md" {
		t.Fatalf("env not expanded: %q", cfg.Jobs[0].Output)
	}
}

func TestLoadDotEnvFallback(t *testing.T) {
	t.Setenv("JSONSCHEMA2MD_TEST_SCHEMA", "override.json")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "JSONSCHEMA2MD_TEST_SCHEMA=dotenv.json\nJSONSCHEMA2MD_TEST_DOC=from-dotenv.md\n")

	configPath := filepath.Join(dir, "docs.yaml")
	writeFile(t, configPath, "jobs:\n  - schema: ${JSONSCHEMA2MD_TEST_SCHEMA}\n    output: ${JSONSCHEMA2MD_TEST_DOC}\n")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := filepath.Base(cfg.Jobs[0].Schema); got != "override.json" {
		t.Errorf("process env must win over .env, schema = %q", got)
	}

	if got := filepath.Base(cfg.Jobs[0].Output); got != "from-dotenv.md" {
		t.Errorf(".env fallback not applied, output = %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		want    error
		detail  string
	}{
		{name: "no jobs", content: "jobs: []\n", want: ErrInvalidConfig, detail: "jobs"},
		{name: "missing schema", content: "jobs:\n  - output: a.md\n", want: ErrInvalidConfig, detail: "schema"},
		{name: "missing output", content: "jobs:\n  - schema: a.json\n", want: ErrInvalidConfig, detail: "output"},
		{name: "bad token", content: "jobs:\n  - schema: a.json\n    output: a.md\n    token: two words\n", want: ErrInvalidConfig, detail: "token"},
		{name: "negative workers", content: "workers: -1\njobs:\n  - schema: a.json\n    output: a.md\n", want: ErrInvalidConfig, detail: "workers"},
		{name: "unknown field", content: "jobz: []\n", want: ErrParseConfig, detail: "jobz"},
		{name: "not yaml", content: "jobs: [\n", want: ErrParseConfig},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			configPath := filepath.Join(t.TempDir(), "docs.yaml")
			writeFile(t, configPath, tc.content)

			_, err := Load(configPath)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Load error = %v, want %v", err, tc.want)
			}

			if tc.detail != "" && !strings.Contains(err.Error(), tc.detail) {
				t.Fatalf("error %q does not mention %q", err, tc.detail)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrReadConfig) {
		t.Fatalf("Load error = %v, want ErrReadConfig", err)
	}
}
