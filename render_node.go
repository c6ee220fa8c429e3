// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package jsonschema2md

import (
	"fmt"
	"strings"
)

// maxRenderDepth bounds list nesting; deeper schemas abort the render.
const maxRenderDepth = 512

// compositionKeyword is one schema combination keyword and its label.
type compositionKeyword struct {
	Keyword string
	Label   string
}

// compositionKeywords lists combination keywords in render order.
var compositionKeywords = []compositionKeyword{
	{Keyword: "allOf", Label: "All of"},
	{Keyword: "anyOf", Label: "Any of"},
	{Keyword: "oneOf", Label: "One of"},
}

// schemaWalker accumulates markdown fragments during depth-first traversal.
type schemaWalker struct {
	active map[*Node]struct{}
	lines  []string
}

// newSchemaWalker returns walker with empty output.
func newSchemaWalker() *schemaWalker {
	return &schemaWalker{
		active: make(map[*Node]struct{}),
		lines:  make([]string, 0, 32),
	}
}

// enter registers node on the active path and returns release callback.
func (walker *schemaWalker) enter(node *Node, depth int) (func(), error) {
	if depth > maxRenderDepth {
		return nil, fmt.Errorf("%w: depth %d exceeds %d", ErrSchemaTooDeep, depth, maxRenderDepth)
	}

	if _, exists := walker.active[node]; exists {
		return nil, ErrSchemaCycle
	}

	walker.active[node] = struct{}{}
	return func() {
		delete(walker.active, node)
	}, nil
}

// writeEntry emits one labelled list item and its children.
// Line shape: "<indent>- <label> *(<type>)*: <clauses>".
func (walker *schemaWalker) writeEntry(node *Node, label string, depth int) error {
	release, err := walker.enter(node, depth)
	if err != nil {
		return err
	}
	defer release()

	text := label
	if typeName := typeText(node); typeName != "" {
		text += " *(" + typeName + ")*"
	}

	text += strings.Join(DescriptionClauses(node, false), " ")
	walker.lines = append(walker.lines, listItem(depth, text))

	return walker.writeChildren(node, depth+1, "")
}

// writeBranch emits one composition branch item and its children.
// Line shape: "<indent>- *<label>*: <clauses>".
func (walker *schemaWalker) writeBranch(node *Node, depth int) error {
	release, err := walker.enter(node, depth)
	if err != nil {
		return err
	}
	defer release()

	label, discriminator := branchLabel(node)
	text := "*" + label + "*" + strings.Join(DescriptionClauses(node, false), " ")
	walker.lines = append(walker.lines, listItem(depth, text))

	return walker.writeChildren(node, depth+1, discriminator)
}

// writeChildren emits nested structure of node at depth:
// composition, pattern properties, properties, items, additional properties.
// Property named skip is omitted.
func (walker *schemaWalker) writeChildren(node *Node, depth int, skip string) error {
	for _, composition := range compositionKeywords {
		branches, ok := node.Slice(composition.Keyword)
		if !ok || len(branches) == 0 {
			continue
		}

		walker.lines = append(walker.lines, listItem(depth, boldLabel(composition.Label)))
		for _, raw := range branches {
			if err := walker.writeBranch(asSchema(raw), depth+1); err != nil {
				return err
			}
		}
	}

	if patterns, ok := node.Child("patternProperties"); ok {
		if err := walker.writeNamedEntries(patterns, depth, ""); err != nil {
			return err
		}
	}

	if properties, ok := node.Child("properties"); ok {
		if err := walker.writeNamedEntries(properties, depth, skip); err != nil {
			return err
		}
	}

	if items, ok := node.Child("items"); ok {
		if err := walker.writeEntry(items, boldLabel("Items"), depth); err != nil {
			return err
		}
	}

	if additional, ok := node.Child("additionalProperties"); ok {
		if err := walker.writeEntry(additional, boldLabel("Additional Properties"), depth); err != nil {
			return err
		}
	}

	return nil
}

// writeNamedEntries emits one entry per mapping key in document order.
func (walker *schemaWalker) writeNamedEntries(entries *Node, depth int, skip string) error {
	for _, name := range entries.keys {
		if skip != "" && name == skip {
			continue
		}

		if err := walker.writeEntry(asSchema(entries.values[name]), codeName(name), depth); err != nil {
			return err
		}
	}

	return nil
}

// branchLabel picks composition branch label and the discriminator property
// that supplied it, if any. Priority: own const, first const-valued
// property, type, "Unknown".
func branchLabel(node *Node) (string, string) {
	if value, ok := node.Get("const"); ok {
		return formatValue(value), ""
	}

	if properties, ok := node.Child("properties"); ok {
		for _, name := range properties.keys {
			property, ok := properties.values[name].(*Node)
			if !ok {
				continue
			}

			if value, ok := property.Get("const"); ok {
				return formatValue(value), name
			}
		}
	}

	if typeName := typeText(node); typeName != "" {
		return typeName, ""
	}

	return "Unknown", ""
}
