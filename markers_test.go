// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package jsonschema2md

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReplaceBetweenTokens(t *testing.T) {
	t.Parallel()

	lines := []string{"# Fruits\n\n", "- **Items**\n"}

	cases := []struct {
		name    string
		content string
		want    string
		err     error
	}{
		{
			name:    "replace stale block",
			content: "head\n<!-- fruits start -->\nold\nolder\n<!-- fruits end -->\ntail\n",
			want:    "head\n<!-- fruits start -->\n# Fruits\n\n- **Items**\n<!-- fruits end -->\ntail\n",
		},
		{
			name:    "adjacent markers",
			content: "<!-- fruits start -->\n<!-- fruits end -->",
			want:    "<!-- fruits start -->\n# Fruits\n\n- **Items**\n<!-- fruits end -->",
		},
		{
			name:    "indented markers and crlf",
			content: "  <!-- fruits start -->  \r\nold\r\n\t<!-- fruits end -->\r\n",
			want:    "  <!-- fruits start -->  \r\n# Fruits\n\n- **Items**\n\t<!-- fruits end -->\r\n",
		},
		{
			name:    "other tokens untouched",
			content: "<!-- veggies start -->\nkeep\n<!-- veggies end -->\n<!-- fruits start -->\n<!-- fruits end -->\n",
			want:    "<!-- veggies start -->\nkeep\n<!-- veggies end -->\n<!-- fruits start -->\n# Fruits\n\n- **Items**\n<!-- fruits end -->\n",
		},
		{
			name:    "start on last line without newline",
			content: "<!-- fruits start -->",
			err:     ErrEndTokenNotFound,
		},
		{
			name:    "missing start",
			content: "nothing here\n",
			err:     ErrStartTokenNotFound,
		},
		{
			name:    "end before start",
			content: "<!-- fruits end -->\n<!-- fruits start -->\n",
			err:     ErrTokensOutOfOrder,
		},
		{
			name:    "marker text inside line is not marker",
			content: "see <!-- fruits start --> here\n<!-- fruits end -->\n",
			err:     ErrTokensOutOfOrder,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReplaceBetweenTokens(tc.content, lines, "fruits")
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("error = %v, want %v", err, tc.err)
				}

				return
			}

			if err != nil {
				t.Fatalf("ReplaceBetweenTokens: %v", err)
			}

			if got != tc.want {
				t.Fatalf("result mismatch:\n got: %q\nwant: %q", got, tc.want)
			}
		})
	}
}

func TestReplaceBetweenTokensEmptyLines(t *testing.T) {
	t.Parallel()

	got, err := ReplaceBetweenTokens("<!-- x start -->\nold\n<!-- x end -->\n", nil, "x")
	if err != nil {
		t.Fatalf("ReplaceBetweenTokens: %v", err)
	}

	if want := "<!-- x start -->\n<!-- x end -->\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteLinesBetweenTokenTwoRegions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "template.md")
	template := "# Food\n\n## Fruits\n\n<!-- fruits start -->\n<!-- fruits end -->\n\n## Veggies\n\n<!-- veggies start -->\n<!-- veggies end -->\n"
	if err := os.WriteFile(path, []byte(template), 0o640); err != nil {
		t.Fatalf("write template: %v", err)
	}

	parser := NewParser(Options{})
	fruits := mustParseSchema(t, parser, mustParseJSON(t, fruitListSchema))
	veggies := mustParseSchema(t, parser, mustParseJSON(t, `{
  "title": "Veggies",
  "description": "Veggies I like",
  "type": "array",
  "items": {
    "description": "A list of veggies",
    "type": "object",
    "properties": {"name": {"description": "The name of the veggie", "type": "string"}}
  }
}`))

	if err := WriteLinesBetweenToken(path, fruits, "fruits"); err != nil {
		t.Fatalf("write fruits: %v", err)
	}

	if err := WriteLinesBetweenToken(path, veggies, "veggies"); err != nil {
		t.Fatalf("write veggies: %v", err)
	}

	want := "# Food\n\n## Fruits\n\n<!-- fruits start -->\n" +
		"# Fruits\n\n" +
		"*Fruits I like*\n\n" +
		"## Items\n\n" +
		"- **Items** *(object)*: A list of fruits.\n" +
		"  - **`name`** *(string)*: The name of the fruit.\n" +
		"  - **`sweet`** *(boolean)*: Whether it is sweet or not.\n" +
		"<!-- fruits end -->\n\n## Veggies\n\n<!-- veggies start -->\n" +
		"# Veggies\n\n" +
		"*Veggies I like*\n\n" +
		"## Items\n\n" +
		"- **Items** *(object)*: A list of veggies.\n" +
		"  - **`name`** *(string)*: The name of the veggie.\n" +
		"<!-- veggies end -->\n"

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}

	if string(data) != want {
		t.Fatalf("result mismatch:\n got: %q\nwant: %q", string(data), want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat result: %v", err)
	}

	if info.Mode().Perm() != 0o640 {
		t.Fatalf("mode = %v, want 0640", info.Mode().Perm())
	}

	// rerun keeps content stable
	if err := WriteLinesBetweenToken(path, fruits, "fruits"); err != nil {
		t.Fatalf("rewrite fruits: %v", err)
	}

	again, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read rewrite: %v", err)
	}

	if string(again) != want {
		t.Fatalf("rewrite changed content: %q", string(again))
	}
}

func TestWriteLinesBetweenTokenErrorsLeaveFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := WriteLinesBetweenToken(filepath.Join(dir, "absent.md"), []string{"x\n"}, "t")
	if !errors.Is(err, ErrReadTarget) {
		t.Fatalf("missing file error = %v, want ErrReadTarget", err)
	}

	path := filepath.Join(dir, "target.md")
	original := "<!-- t end -->\n<!-- t start -->\n"
	if err := os.WriteFile(path, []byte(original), 0o600); err != nil {
		t.Fatalf("write target: %v", err)
	}

	err = WriteLinesBetweenToken(path, []string{"x\n"}, "t")
	if !errors.Is(err, ErrTokensOutOfOrder) {
		t.Fatalf("error = %v, want ErrTokensOutOfOrder", err)
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read target: %v", readErr)
	}

	if string(data) != original {
		t.Fatalf("target changed on failure: %q", string(data))
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read dir: %v", readErr)
	}

	if len(entries) != 1 {
		t.Fatalf("leftover files in target dir: %d", len(entries))
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "docs", "schema.md")
	if err := WriteFile(path, []byte("# Doc\n")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if string(data) != "# Doc\n" {
		t.Fatalf("content = %q", string(data))
	}
}
