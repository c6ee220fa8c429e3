// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

/*
Package jsonschema2md renders Markdown documentation from JSON Schema documents.

Schemas are decoded from JSON or YAML into ordered *Node trees, so properties
appear in the same order as in the source document. Rendering produces a
slice of fragments (headings, nested list items, example blocks) that join
into one Markdown document. Output is deterministic for the same input.

Render from schema bytes:

	schemaBytes, err := os.ReadFile("schema.json")
	if err != nil {
		return err
	}

	md, err := jsonschema2md.Render(schemaBytes, jsonschema2md.Options{})
	if err != nil {
		return err
	}

	fmt.Print(md)

Render from file with YAML examples and without title header:

	md, err := jsonschema2md.RenderFile("schema.yaml", jsonschema2md.Options{
		ExamplesAsYAML:       true,
		OmitTopLevelMetadata: true,
	})
	if err != nil {
		return err
	}

Work with fragments directly:

	schema, err := jsonschema2md.ParseFile("schema.json")
	if err != nil {
		return err
	}

	lines, err := jsonschema2md.NewParser(jsonschema2md.Options{}).ParseSchema(schema)
	if err != nil {
		return err
	}

Replace the region between "<!-- config start -->" and "<!-- config end -->"
lines of an existing file:

	if err := jsonschema2md.WriteLinesBetweenToken("README.md", lines, "config"); err != nil {
		return err
	}

Build schema in code:

	schema := jsonschema2md.NewNode().
		Set("title", "Service").
		Set("properties", jsonschema2md.NewNode().
			Set("port", map[string]any{"type": "integer", "minimum": 1}))

	md, err := jsonschema2md.NewParser(jsonschema2md.Options{}).Render(schema)

References ($ref) are printed as pointers, not resolved.
*/
package jsonschema2md
