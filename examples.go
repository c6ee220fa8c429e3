// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package jsonschema2md

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	// exampleIndent is nesting indent inside encoded JSON examples.
	exampleIndent = "    "
	// exampleBlockPrefix is prepended to every line of example fenced block.
	exampleBlockPrefix = "  "
)

// exampleBlock encodes one example value as indented fenced code block fragment.
func (parser *Parser) exampleBlock(example any) (string, error) {
	language := "json"
	encode := marshalExampleJSON
	if parser.opt.ExamplesAsYAML {
		language = "yaml"
		encode = marshalExampleYAML
	}

	data, err := encode(example)
	if err != nil {
		return "", err
	}

	body := strings.TrimRight(string(data), "\n")

	var out strings.Builder
	out.Grow(len(body) + 32)
	out.WriteString(exampleBlockPrefix + "```" + language + "\n")
	out.WriteString(indentBlock(body, exampleBlockPrefix))
	out.WriteString("\n" + exampleBlockPrefix + "```\n\n")

	return out.String(), nil
}

// marshalExampleJSON serializes example as pretty JSON preserving key order.
func marshalExampleJSON(value any) ([]byte, error) {
	var out bytes.Buffer
	if err := writeExampleJSON(&out, value, 0); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleJSON, err)
	}

	return out.Bytes(), nil
}

// writeExampleJSON writes value at nesting level; empty containers stay inline.
func writeExampleJSON(out *bytes.Buffer, value any, level int) error {
	switch typed := value.(type) {
	case nil:
		out.WriteString("null")
	case bool:
		if typed {
			out.WriteString("true")
		} else {
			out.WriteString("false")
		}
	case Number:
		if jsonNumberLiteral.MatchString(string(typed)) {
			out.WriteString(string(typed))
			return nil
		}

		return writeExampleJSONString(out, string(typed))
	case string:
		return writeExampleJSONString(out, typed)
	case []any:
		if len(typed) == 0 {
			out.WriteString("[]")
			return nil
		}

		out.WriteString("[\n")
		for index, item := range typed {
			if index > 0 {
				out.WriteString(",\n")
			}

			out.WriteString(strings.Repeat(exampleIndent, level+1))
			if err := writeExampleJSON(out, item, level+1); err != nil {
				return err
			}
		}

		out.WriteString("\n" + strings.Repeat(exampleIndent, level) + "]")
	case *Node:
		if typed == nil {
			out.WriteString("null")
			return nil
		}

		if typed.Len() == 0 {
			out.WriteString("{}")
			return nil
		}

		out.WriteString("{\n")
		for index, key := range typed.keys {
			if index > 0 {
				out.WriteString(",\n")
			}

			out.WriteString(strings.Repeat(exampleIndent, level+1))
			if err := writeExampleJSONString(out, key); err != nil {
				return err
			}

			out.WriteString(": ")
			if err := writeExampleJSON(out, typed.values[key], level+1); err != nil {
				return err
			}
		}

		out.WriteString("\n" + strings.Repeat(exampleIndent, level) + "}")
	default:
		normalized := normalizeValue(typed)
		switch normalized.(type) {
		case nil, string, bool, Number, []any, *Node:
			return writeExampleJSON(out, normalized, level)
		default:
			return fmt.Errorf("unsupported example value %T", typed)
		}
	}

	return nil
}

// writeExampleJSONString writes JSON string literal without HTML escaping.
func writeExampleJSONString(out *bytes.Buffer, text string) error {
	var encoded bytes.Buffer
	encoder := json.NewEncoder(&encoded)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(text); err != nil {
		return err
	}

	out.Write(bytes.TrimRight(encoded.Bytes(), "\n"))
	return nil
}

// marshalExampleYAML serializes example as YAML with sorted mapping keys.
func marshalExampleYAML(value any) ([]byte, error) {
	node, err := yamlNodeForValue(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
	}

	data, err := marshalExampleYAMLNode(node)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
	}

	return data, nil
}

// marshalExampleYAMLNode encodes yaml.Node tree with two-space indentation.
func marshalExampleYAMLNode(node *yaml.Node) ([]byte, error) {
	document := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{node},
	}

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// yamlNodeForValue builds deterministic yaml.Node tree from node value.
func yamlNodeForValue(value any) (*yaml.Node, error) {
	switch typed := value.(type) {
	case nil:
		return yamlScalarNode("!!null", "null"), nil

	case bool:
		if typed {
			return yamlScalarNode("!!bool", "true"), nil
		}
		return yamlScalarNode("!!bool", "false"), nil

	case string:
		return yamlScalarNode("!!str", typed), nil

	case Number:
		text := typed.String()
		if !jsonNumberLiteral.MatchString(text) {
			return yamlScalarNode("!!str", text), nil
		}
		if strings.ContainsAny(text, ".eE") {
			return yamlScalarNode("!!float", text), nil
		}
		return yamlScalarNode("!!int", text), nil

	case *Node:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if typed == nil {
			return node, nil
		}

		keys := typed.Keys()
		sort.Strings(keys)
		for _, key := range keys {
			valueNode, err := yamlNodeForValue(typed.values[key])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, yamlScalarNode("!!str", key), valueNode)
		}
		return node, nil

	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range typed {
			valueNode, err := yamlNodeForValue(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, valueNode)
		}
		return node, nil

	default:
		normalized := normalizeValue(typed)
		switch normalized.(type) {
		case nil, string, bool, Number, []any, *Node:
			return yamlNodeForValue(normalized)
		default:
			return nil, fmt.Errorf("unsupported example value %T", typed)
		}
	}
}

// yamlScalarNode creates one scalar yaml.Node with explicit tag.
func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}
