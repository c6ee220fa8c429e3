// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package jsonschema2md

import (
	"strings"
)

// defaultTitle is used when schema has no "title" keyword.
const defaultTitle = "JSON Schema"

// Options configures markdown rendering. Heading levels and indentation are fixed.
type Options struct {
	// ExamplesAsYAML renders the examples section as YAML instead of JSON.
	ExamplesAsYAML bool `yaml:"examples_as_yaml"`
	// OmitTopLevelMetadata drops the title and description header.
	OmitTopLevelMetadata bool `yaml:"omit_top_level_metadata"`
}

// Parser renders schema nodes into markdown fragments.
// It holds only immutable options and is safe for concurrent use.
type Parser struct {
	opt Options
}

// NewParser returns parser with fixed options.
func NewParser(opt Options) *Parser {
	return &Parser{opt: opt}
}

// Options returns parser configuration.
func (parser *Parser) Options() Options {
	return parser.opt
}

// RenderFile reads schema from file and renders markdown documentation.
func RenderFile(path string, opt Options) (string, error) {
	schema, err := ParseFile(path)
	if err != nil {
		return "", err
	}

	return NewParser(opt).Render(schema)
}

// Render converts schema bytes (JSON or YAML) into markdown document.
func Render(schemaBytes []byte, opt Options) (string, error) {
	schema, err := Parse(schemaBytes, FormatAuto)
	if err != nil {
		return "", err
	}

	return NewParser(opt).Render(schema)
}

// Render returns concatenated ParseSchema output.
func (parser *Parser) Render(schema *Node) (string, error) {
	lines, err := parser.ParseSchema(schema)
	if err != nil {
		return "", err
	}

	return strings.Join(lines, ""), nil
}

// ParseSchema renders whole schema document into ordered markdown fragments.
//
// Sections follow fixed order: title, description, pattern properties,
// additional properties, properties, items, composition, dependencies,
// definitions, examples. Absent sections produce nothing.
func (parser *Parser) ParseSchema(schema *Node) ([]string, error) {
	if schema == nil {
		schema = NewNode()
	}

	walker := newSchemaWalker()
	release, err := walker.enter(schema, 0)
	if err != nil {
		return nil, err
	}
	defer release()

	if !parser.opt.OmitTopLevelMetadata {
		walker.writeMetadata(schema)
	}

	sections := []func(*Node) error{
		walker.writePatternPropertiesSection,
		walker.writeAdditionalPropertiesSection,
		walker.writePropertiesSection,
		walker.writeItemsSection,
		walker.writeCompositionSections,
		walker.writeDependenciesSection,
		walker.writeDefinitionsSection,
	}

	for _, section := range sections {
		if err := section(schema); err != nil {
			return nil, err
		}
	}

	if err := parser.writeExamplesSection(walker, schema); err != nil {
		return nil, err
	}

	return walker.lines, nil
}

// ParseProperty renders one named schema entry and its nested children.
func (parser *Parser) ParseProperty(name string, node *Node) ([]string, error) {
	walker := newSchemaWalker()
	if err := walker.writeEntry(asSchema(node), codeName(name), 0); err != nil {
		return nil, err
	}

	return walker.lines, nil
}

// writeMetadata emits title and description header lines.
func (walker *schemaWalker) writeMetadata(schema *Node) {
	title, _ := schema.String("title")
	title = sanitizeText(title)
	if title == "" {
		title = defaultTitle
	}

	walker.lines = append(walker.lines, "# "+title+"\n\n")

	description, _ := schema.String("description")
	if text := flattenDescription(description); text != "" {
		walker.lines = append(walker.lines, "*"+text+"*\n\n")
	}
}

// writePatternPropertiesSection emits root "patternProperties" section.
func (walker *schemaWalker) writePatternPropertiesSection(schema *Node) error {
	patterns, ok := schema.Child("patternProperties")
	if !ok || patterns.Len() == 0 {
		return nil
	}

	walker.lines = append(walker.lines, sectionHeading("Pattern Properties"))
	return walker.writeNamedEntries(patterns, 0, "")
}

// writeAdditionalPropertiesSection emits root schema-valued "additionalProperties" section.
func (walker *schemaWalker) writeAdditionalPropertiesSection(schema *Node) error {
	additional, ok := schema.Child("additionalProperties")
	if !ok {
		return nil
	}

	walker.lines = append(walker.lines, sectionHeading("Additional Properties"))
	return walker.writeEntry(additional, boldLabel("Additional Properties"), 0)
}

// writePropertiesSection emits root "properties" section.
func (walker *schemaWalker) writePropertiesSection(schema *Node) error {
	properties, ok := schema.Child("properties")
	if !ok || properties.Len() == 0 {
		return nil
	}

	walker.lines = append(walker.lines, sectionHeading("Properties"))
	return walker.writeNamedEntries(properties, 0, "")
}

// writeItemsSection emits root "items" section for array schemas.
func (walker *schemaWalker) writeItemsSection(schema *Node) error {
	if !hasType(schema, "array") {
		return nil
	}

	items, ok := schema.Child("items")
	if !ok {
		return nil
	}

	walker.lines = append(walker.lines, sectionHeading("Items"))
	return walker.writeEntry(items, boldLabel("Items"), 0)
}

// writeCompositionSections emits root allOf/anyOf/oneOf sections.
func (walker *schemaWalker) writeCompositionSections(schema *Node) error {
	for _, composition := range compositionKeywords {
		branches, ok := schema.Slice(composition.Keyword)
		if !ok || len(branches) == 0 {
			continue
		}

		walker.lines = append(walker.lines, sectionHeading(composition.Label))
		for _, raw := range branches {
			if err := walker.writeBranch(asSchema(raw), 0); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeDependenciesSection emits root "dependencies" section.
// Sequence values list required co-properties; schema values render as entries.
func (walker *schemaWalker) writeDependenciesSection(schema *Node) error {
	dependencies, ok := schema.Child("dependencies")
	if !ok || dependencies.Len() == 0 {
		return nil
	}

	walker.lines = append(walker.lines, sectionHeading("Dependencies"))
	for _, key := range dependencies.keys {
		switch typed := dependencies.values[key].(type) {
		case []any:
			walker.lines = append(walker.lines, listItem(0, codeName(key)))
			for _, item := range typed {
				walker.lines = append(walker.lines, listItem(1, "`"+formatValue(item)+"`"))
			}
		default:
			if err := walker.writeEntry(asSchema(typed), codeName(key), 0); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeDefinitionsSection emits "definitions" and "$defs" entries under one heading.
func (walker *schemaWalker) writeDefinitionsSection(schema *Node) error {
	containers := make([]*Node, 0, 2)
	for _, keyword := range []string{"definitions", "$defs"} {
		if definitions, ok := schema.Child(keyword); ok && definitions.Len() > 0 {
			containers = append(containers, definitions)
		}
	}

	if len(containers) == 0 {
		return nil
	}

	walker.lines = append(walker.lines, sectionHeading("Definitions"))
	for _, definitions := range containers {
		if err := walker.writeNamedEntries(definitions, 0, ""); err != nil {
			return err
		}
	}

	return nil
}

// writeExamplesSection emits root "examples" as fenced code blocks.
func (parser *Parser) writeExamplesSection(walker *schemaWalker, schema *Node) error {
	examples, ok := schema.Slice("examples")
	if !ok || len(examples) == 0 {
		return nil
	}

	walker.lines = append(walker.lines, sectionHeading("Examples"))
	for _, example := range examples {
		block, err := parser.exampleBlock(example)
		if err != nil {
			return err
		}

		walker.lines = append(walker.lines, block)
	}

	return nil
}
