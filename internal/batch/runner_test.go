// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/woozymasta/jsonschema2md"
)

const (
	fruitsSchema = `{"title": "Fruits", "type": "object", "properties": {"name": {"type": "string"}}}`
	veggieSchema = "title: Veggies\ntype: object\nproperties:\n  leafy:\n    type: boolean\n"
)

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return string(data)
}

func TestGroupByOutputKeepsFirstSeenOrder(t *testing.T) {
	t.Parallel()

	groups := groupByOutput([]Job{
		{Schema: "a", Output: "x.md"},
		{Schema: "b", Output: "y.md"},
		{Schema: "c", Output: "x.md"},
	})

	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}

	if len(groups[0]) != 2 || groups[0][0].Schema != "a" || groups[0][1].Schema != "c" {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}

	if len(groups[1]) != 1 || groups[1][0].Schema != "b" {
		t.Fatalf("unexpected second group: %+v", groups[1])
	}
}

func TestRunWritesFilesAndTokenRegions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "fruits.json"), fruitsSchema)
	writeFile(t, filepath.Join(dir, "veggies.yaml"), veggieSchema)
	readme := filepath.Join(dir, "README.md")
	writeFile(t, readme, "intro\n<!-- fruits start -->\n<!-- fruits end -->\n<!-- veggies start -->\nold\n<!-- veggies end -->\n")

	cfg := &Config{
		Workers: 2,
		Jobs: []Job{
			{Schema: filepath.Join(dir, "fruits.json"), Output: readme, Token: "fruits"},
			{Schema: filepath.Join(dir, "veggies.yaml"), Output: readme, Token: "veggies", OmitTopLevelMetadata: true},
			{Schema: filepath.Join(dir, "fruits.json"), Output: filepath.Join(dir, "out", "fruits.md")},
		},
	}

	if err := NewRunner(nil).Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "intro\n<!-- fruits start -->\n" +
		"# Fruits\n\n## Properties\n\n- **`name`** *(string)*\n" +
		"<!-- fruits end -->\n<!-- veggies start -->\n" +
		"## Properties\n\n- **`leafy`** *(boolean)*\n" +
		"<!-- veggies end -->\n"
	if got := readFile(t, readme); got != want {
		t.Fatalf("README mismatch:\n got: %q\nwant: %q", got, want)
	}

	standalone := readFile(t, filepath.Join(dir, "out", "fruits.md"))
	if !strings.HasPrefix(standalone, "# Fruits\n\n") {
		t.Fatalf("unexpected standalone output: %q", standalone)
	}
}

func TestRunReportsJobFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := &Config{Jobs: []Job{{Schema: filepath.Join(dir, "absent.json"), Output: filepath.Join(dir, "out.md")}}}

	err := NewRunner(nil).Run(context.Background(), cfg)
	if !errors.Is(err, jsonschema2md.ErrReadSchemaFile) {
		t.Fatalf("Run error = %v, want ErrReadSchemaFile", err)
	}
}

func TestRunMissingMarkersLeavesTargetUntouched(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "fruits.json"), fruitsSchema)
	target := filepath.Join(dir, "README.md")
	writeFile(t, target, "<!-- fruits start -->\n")

	cfg := &Config{Jobs: []Job{{Schema: filepath.Join(dir, "fruits.json"), Output: target, Token: "fruits"}}}

	err := NewRunner(nil).Run(context.Background(), cfg)
	if !errors.Is(err, jsonschema2md.ErrEndTokenNotFound) {
		t.Fatalf("Run error = %v, want ErrEndTokenNotFound", err)
	}

	if got := readFile(t, target); got != "<!-- fruits start -->\n" {
		t.Fatalf("target modified: %q", got)
	}
}

func TestWatchRerendersChangedSchema(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "fruits.json")
	outputPath := filepath.Join(dir, "out", "fruits.md")
	writeFile(t, schemaPath, fruitsSchema)

	cfg := &Config{Jobs: []Job{{Schema: schemaPath, Output: outputPath}}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewRunner(nil).Watch(ctx, cfg)
	}()

	eventually(t, 5*time.Second, func() bool {
		data, err := os.ReadFile(outputPath)
		return err == nil && strings.Contains(string(data), "# Fruits")
	}, "initial render missing")

	// watcher is registered after the initial render
	time.Sleep(300 * time.Millisecond)
	writeFile(t, schemaPath, strings.Replace(fruitsSchema, "Fruits", "Berries", 1))

	eventually(t, 5*time.Second, func() bool {
		data, err := os.ReadFile(outputPath)
		return err == nil && strings.Contains(string(data), "# Berries")
	}, "changed schema was not re-rendered")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}

// eventually polls fn until it returns true or timeout elapses.
func eventually(t *testing.T, timeout time.Duration, fn func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}

		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal(msg)
}
