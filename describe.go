// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package jsonschema2md

import (
	"fmt"
	"strings"
)

// numericBound is one numeric limit keyword and its clause label.
type numericBound struct {
	Keyword string
	Label   string
}

// numericBounds lists numeric limit keywords in clause order.
var numericBounds = []numericBound{
	{Keyword: "minimum", Label: "Minimum"},
	{Keyword: "exclusiveMinimum", Label: "Exclusive minimum"},
	{Keyword: "maximum", Label: "Maximum"},
	{Keyword: "exclusiveMaximum", Label: "Exclusive maximum"},
}

// DescriptionClauses returns descriptive clauses for node's own keywords.
//
// Non-empty result starts with ":" so strings.Join(clauses, " ") reads as
// ": Text. Must be of type *string*. Default: `x`.". Children are not visited.
func DescriptionClauses(node *Node, addType bool) []string {
	if node.Len() == 0 {
		return nil
	}

	clauses := make([]string, 0, 8)

	if description, ok := node.String("description"); ok {
		if text := descriptionSentence(description); text != "" {
			clauses = append(clauses, text)
		}
	}

	if addType {
		if typeName := typeText(node); typeName != "" {
			clauses = append(clauses, fmt.Sprintf("Must be of type *%s*.", typeName))
		}
	}

	if enum, ok := node.Slice("enum"); ok {
		clauses = append(clauses, fmt.Sprintf("Must be one of: `%s`.", formatLiteral(enum)))
	}

	for _, bound := range numericBounds {
		value, ok := node.Get(bound.Keyword)
		if !ok {
			continue
		}

		clauses = append(clauses, fmt.Sprintf("%s: `%s`.", bound.Label, formatValue(value)))
	}

	if clause := lengthClause(node); clause != "" {
		clauses = append(clauses, clause)
	}

	if ref, ok := node.String("$ref"); ok {
		clauses = append(clauses, fmt.Sprintf("Refer to *%s*.", ref))
	}

	if allowed, ok := node.Bool("additionalProperties"); ok {
		if allowed {
			clauses = append(clauses, "Can contain additional properties.")
		} else {
			clauses = append(clauses, "Cannot contain additional properties.")
		}
	}

	if value, ok := node.Get("default"); ok {
		clauses = append(clauses, fmt.Sprintf("Default: `%s`.", formatValue(value)))
	}

	if len(clauses) == 0 {
		return nil
	}

	return append([]string{":"}, clauses...)
}

// lengthClause describes minItems/maxItems array length limits.
func lengthClause(node *Node) string {
	minValue, hasMin := node.Get("minItems")
	maxValue, hasMax := node.Get("maxItems")

	switch {
	case hasMin && hasMax:
		minText, maxText := formatValue(minValue), formatValue(maxValue)
		if minText == maxText {
			return "Length must be equal to " + minText + "."
		}

		return "Length must be between " + minText + " and " + maxText + " (inclusive)."
	case hasMin:
		return "Length must be at least " + formatValue(minValue) + "."
	case hasMax:
		return "Length must be at most " + formatValue(maxValue) + "."
	default:
		return ""
	}
}

// descriptionSentence flattens description into one line and terminates it.
func descriptionSentence(description string) string {
	text := flattenDescription(description)
	if text == "" {
		return ""
	}

	if strings.ContainsAny(text[len(text)-1:], ".?!;") {
		return text
	}

	return text + "."
}

// flattenDescription joins paragraphs with <br> so text fits on one list item line.
func flattenDescription(description string) string {
	text := strings.TrimSpace(normalizeLineEndings(description))
	if text == "" {
		return ""
	}

	paragraphs := strings.Split(text, "\n\n")
	out := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		if sanitized := sanitizeText(paragraph); sanitized != "" {
			out = append(out, sanitized)
		}
	}

	return strings.Join(out, "<br>")
}

// typeText converts "type" keyword into display text; unions join with ", ".
func typeText(node *Node) string {
	value, ok := node.Get("type")
	if !ok {
		return ""
	}

	switch typed := value.(type) {
	case string:
		return typed
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			parts = append(parts, formatValue(item))
		}

		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// hasType reports whether node "type" keyword names given type.
func hasType(node *Node, name string) bool {
	value, ok := node.Get("type")
	if !ok {
		return false
	}

	switch typed := value.(type) {
	case string:
		return typed == name
	case []any:
		for _, item := range typed {
			if text, ok := item.(string); ok && text == name {
				return true
			}
		}
	}

	return false
}
