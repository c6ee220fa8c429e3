// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package jsonschema2md

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	// FormatAuto detects input format from file extension or document content.
	FormatAuto Format = "auto"
	// FormatJSON decodes schema as JSON.
	FormatJSON Format = "json"
	// FormatYAML decodes schema as YAML.
	FormatYAML Format = "yaml"
)

// Format selects schema document encoding.
type Format string

// jsonNumberLiteral matches number text that is valid JSON as is.
var jsonNumberLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// ParseFile reads schema file and decodes it by extension (.yaml/.yml or JSON).
func ParseFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	return Parse(data, DetectFormat(path, data))
}

// Parse decodes schema bytes in selected format.
func Parse(data []byte, format Format) (*Node, error) {
	switch normalizeFormat(format) {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	case FormatAuto:
		return Parse(data, DetectFormat("", data))
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// DetectFormat picks format by file extension, then by first significant byte.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}

	return FormatYAML
}

// normalizeFormat validates and normalizes caller format value.
func normalizeFormat(format Format) Format {
	normalized := Format(strings.ToLower(strings.TrimSpace(string(format))))
	if normalized == "" {
		return FormatAuto
	}

	return normalized
}

// ParseJSON decodes JSON schema into node tree preserving keyword order.
func ParseJSON(data []byte) (*Node, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrDecodeSchema)
		}

		return nil, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	value, err := decodeJSONToken(decoder, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	return rootNode(value)
}

// decodeJSONToken builds node value starting from already consumed token.
func decodeJSONToken(decoder *json.Decoder, token any) (any, error) {
	switch typed := token.(type) {
	case json.Delim:
		switch typed {
		case '{':
			return decodeJSONObject(decoder)
		case '[':
			return decodeJSONArray(decoder)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(typed))
		}
	case string:
		return typed, nil
	case json.Number:
		return Number(typed.String()), nil
	case float64:
		return Number(strconv.FormatFloat(typed, 'g', -1, 64)), nil
	case bool:
		return typed, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", typed)
	}
}

// decodeJSONObject reads object members until closing brace.
func decodeJSONObject(decoder *json.Decoder) (*Node, error) {
	node := NewNode()
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		if delim, ok := token.(json.Delim); ok && delim == '}' {
			return node, nil
		}

		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be string, got %v", token)
		}

		valueToken, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		value, err := decodeJSONToken(decoder, valueToken)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}

		node.set(key, value)
	}
}

// decodeJSONArray reads array items until closing bracket.
func decodeJSONArray(decoder *json.Decoder) ([]any, error) {
	out := make([]any, 0)
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		if delim, ok := token.(json.Delim); ok && delim == ']' {
			return out, nil
		}

		value, err := decodeJSONToken(decoder, token)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", len(out), err)
		}

		out = append(out, value)
	}
}

// ParseYAML decodes YAML schema into node tree preserving keyword order.
func ParseYAML(data []byte) (*Node, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	if document.Kind == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrDecodeSchema)
	}

	return yamlRootNode(&document)
}

// yamlRootNode converts YAML document root into schema node.
func yamlRootNode(document *yaml.Node) (*Node, error) {
	value, err := yamlValue(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	return rootNode(value)
}

// yamlValue converts one YAML node into node value.
func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return yamlValue(node.Content[0])
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	case yaml.MappingNode:
		return yamlMapping(node)
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := yamlValue(item)
			if err != nil {
				return nil, err
			}

			out = append(out, value)
		}

		return out, nil
	case yaml.ScalarNode:
		return yamlScalar(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
	}
}

// yamlMapping converts YAML mapping into node; merge keys fill absent keywords.
func yamlMapping(mapping *yaml.Node) (*Node, error) {
	node := NewNode()
	merged := make([]*Node, 0)

	for index := 0; index+1 < len(mapping.Content); index += 2 {
		keyNode := mapping.Content[index]
		value, err := yamlValue(mapping.Content[index+1])
		if err != nil {
			return nil, err
		}

		if keyNode.ShortTag() == "!!merge" {
			switch typed := value.(type) {
			case *Node:
				merged = append(merged, typed)
			case []any:
				for _, item := range typed {
					if source, ok := item.(*Node); ok {
						merged = append(merged, source)
					}
				}
			}

			continue
		}

		node.set(keyNode.Value, value)
	}

	for _, source := range merged {
		for _, key := range source.keys {
			if node.Has(key) {
				continue
			}

			node.set(key, source.values[key])
		}
	}

	return node, nil
}

// yamlScalar converts YAML scalar into string, Number, bool or nil.
func yamlScalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var value bool
		if err := node.Decode(&value); err != nil {
			return nil, err
		}

		return value, nil
	case "!!int":
		if jsonNumberLiteral.MatchString(node.Value) {
			return Number(node.Value), nil
		}

		var value int64
		if err := node.Decode(&value); err != nil {
			return nil, err
		}

		return Number(strconv.FormatInt(value, 10)), nil
	case "!!float":
		if jsonNumberLiteral.MatchString(node.Value) {
			return Number(node.Value), nil
		}

		var value float64
		if err := node.Decode(&value); err != nil {
			return nil, err
		}

		return Number(strconv.FormatFloat(value, 'g', -1, 64)), nil
	default:
		return node.Value, nil
	}
}

// rootNode validates decoded root value; boolean schemas become empty nodes.
func rootNode(value any) (*Node, error) {
	switch typed := value.(type) {
	case *Node:
		return typed, nil
	case bool:
		return NewNode(), nil
	default:
		return nil, ErrSchemaRootType
	}
}
