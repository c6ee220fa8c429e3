// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package jsonschema2md

import (
	"fmt"
	"strconv"
	"strings"
)

// formatValue renders a keyword value for inline text: strings stay unquoted,
// everything else uses literal form.
func formatValue(value any) string {
	if text, ok := value.(string); ok {
		return text
	}

	return formatLiteral(value)
}

// formatLiteral renders value in list-literal form: ['a', 1, true, {'k': null}].
func formatLiteral(value any) string {
	switch typed := value.(type) {
	case nil:
		return "null"
	case string:
		return quoteLiteral(typed)
	case bool:
		return strconv.FormatBool(typed)
	case Number:
		return typed.String()
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			parts = append(parts, formatLiteral(item))
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case *Node:
		if typed == nil {
			return "null"
		}

		parts := make([]string, 0, typed.Len())
		for _, key := range typed.keys {
			parts = append(parts, quoteLiteral(key)+": "+formatLiteral(typed.values[key]))
		}

		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return formatLiteral(normalizeFallback(typed))
	}
}

// normalizeFallback converts unknown Go values; unsupported types print with %v.
func normalizeFallback(value any) any {
	normalized := normalizeValue(value)
	switch normalized.(type) {
	case nil, string, bool, Number, []any, *Node:
		return normalized
	default:
		return fmt.Sprintf("%v", value)
	}
}

// quoteLiteral quotes string with single quotes, or double quotes when text
// has single quotes but no double quotes.
func quoteLiteral(text string) string {
	quote := byte('\'')
	if strings.ContainsRune(text, '\'') && !strings.ContainsRune(text, '"') {
		quote = '"'
	}

	var out strings.Builder
	out.Grow(len(text) + 2)
	out.WriteByte(quote)

	for _, r := range text {
		switch r {
		case '\\':
			out.WriteString(`\\`)
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		case rune(quote):
			out.WriteByte('\\')
			out.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}

	out.WriteByte(quote)
	return out.String()
}
