// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package jsonschema2md

import "strings"

// indentUnit is added once per nesting level of list items.
const indentUnit = "  "

// listIndent returns list item indentation for nesting depth.
func listIndent(depth int) string {
	if depth <= 0 {
		return ""
	}

	return strings.Repeat(indentUnit, depth)
}

// listItem formats one markdown list item line.
func listItem(depth int, text string) string {
	return listIndent(depth) + "- " + text + "\n"
}

// codeName formats property-like name as bold inline code.
func codeName(name string) string {
	return "**`" + name + "`**"
}

// boldLabel formats synthetic entry label.
func boldLabel(label string) string {
	return "**" + label + "**"
}

// sectionHeading formats second-level document section heading.
func sectionHeading(title string) string {
	return "## " + title + "\n\n"
}

// indentBlock prefixes every line of text with prefix.
func indentBlock(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for index, line := range lines {
		lines[index] = prefix + line
	}

	return strings.Join(lines, "\n")
}

// sanitizeText trims and squashes repeated whitespace in plain text fields.
func sanitizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	return strings.Join(strings.Fields(text), " ")
}

// normalizeLineEndings converts CRLF/CR to LF.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}
