// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package jsonschema2md

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Number keeps a JSON number literal exactly as written in the schema document.
type Number string

// String returns number literal text.
func (number Number) String() string {
	return string(number)
}

// MarshalJSON emits number literal text unchanged.
func (number Number) MarshalJSON() ([]byte, error) {
	if number == "" {
		return []byte("0"), nil
	}

	return []byte(number), nil
}

// Node is one JSON Schema fragment: a keyword mapping that keeps document order.
//
// Values are one of string, Number, bool, nil, []any or *Node.
type Node struct {
	values map[string]any
	keys   []string
}

// NewNode returns an empty schema node.
func NewNode() *Node {
	return &Node{values: make(map[string]any)}
}

// Set stores keyword value and returns node for chaining.
// Go-native values (ints, floats, maps, string slices) are normalized.
// Setting an existing keyword keeps its original position.
func (node *Node) Set(key string, value any) *Node {
	node.set(key, normalizeValue(value))
	return node
}

// set stores already normalized value.
func (node *Node) set(key string, value any) {
	if node.values == nil {
		node.values = make(map[string]any)
	}

	if _, exists := node.values[key]; !exists {
		node.keys = append(node.keys, key)
	}

	node.values[key] = value
}

// Get returns raw keyword value and presence flag.
func (node *Node) Get(key string) (any, bool) {
	if node == nil {
		return nil, false
	}

	value, ok := node.values[key]
	return value, ok
}

// Has reports whether keyword is present.
func (node *Node) Has(key string) bool {
	_, ok := node.Get(key)
	return ok
}

// Keys returns keywords in document order.
func (node *Node) Keys() []string {
	if node == nil {
		return nil
	}

	out := make([]string, len(node.keys))
	copy(out, node.keys)
	return out
}

// Len returns number of keywords.
func (node *Node) Len() int {
	if node == nil {
		return 0
	}

	return len(node.keys)
}

// String returns string keyword value.
func (node *Node) String(key string) (string, bool) {
	value, ok := node.Get(key)
	if !ok {
		return "", false
	}

	text, ok := value.(string)
	return text, ok
}

// Bool returns boolean keyword value.
func (node *Node) Bool(key string) (bool, bool) {
	value, ok := node.Get(key)
	if !ok {
		return false, false
	}

	flag, ok := value.(bool)
	return flag, ok
}

// Slice returns sequence keyword value.
func (node *Node) Slice(key string) ([]any, bool) {
	value, ok := node.Get(key)
	if !ok {
		return nil, false
	}

	items, ok := value.([]any)
	return items, ok
}

// Child returns schema-valued keyword (nested mapping).
func (node *Node) Child(key string) (*Node, bool) {
	value, ok := node.Get(key)
	if !ok {
		return nil, false
	}

	child, ok := value.(*Node)
	if !ok || child == nil {
		return nil, false
	}

	return child, true
}

// MarshalJSON encodes node as compact JSON object preserving keyword order.
func (node *Node) MarshalJSON() ([]byte, error) {
	if node == nil {
		return []byte("null"), nil
	}

	var out bytes.Buffer
	out.WriteByte('{')
	for index, key := range node.keys {
		if index > 0 {
			out.WriteByte(',')
		}

		keyBytes, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}

		valueBytes, err := json.Marshal(node.values[key])
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", key, err)
		}

		out.Write(keyBytes)
		out.WriteByte(':')
		out.Write(valueBytes)
	}

	out.WriteByte('}')
	return out.Bytes(), nil
}

// UnmarshalJSON decodes JSON object into node preserving keyword order.
func (node *Node) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}

	*node = *parsed
	return nil
}

// UnmarshalYAML decodes YAML mapping into node preserving keyword order.
func (node *Node) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := yamlRootNode(value)
	if err != nil {
		return err
	}

	*node = *parsed
	return nil
}

// asSchema converts raw keyword value into schema node.
// Boolean schemas and malformed values render as empty nodes.
func asSchema(value any) *Node {
	node, ok := value.(*Node)
	if !ok || node == nil {
		return NewNode()
	}

	return node
}

// normalizeValue converts Go-native values into the closed node value set.
func normalizeValue(value any) any {
	switch typed := value.(type) {
	case nil, string, bool, Number, *Node:
		return typed
	case Node:
		return &typed
	case json.Number:
		return Number(typed.String())
	case int:
		return Number(strconv.Itoa(typed))
	case int8:
		return Number(strconv.FormatInt(int64(typed), 10))
	case int16:
		return Number(strconv.FormatInt(int64(typed), 10))
	case int32:
		return Number(strconv.FormatInt(int64(typed), 10))
	case int64:
		return Number(strconv.FormatInt(typed, 10))
	case uint:
		return Number(strconv.FormatUint(uint64(typed), 10))
	case uint8:
		return Number(strconv.FormatUint(uint64(typed), 10))
	case uint16:
		return Number(strconv.FormatUint(uint64(typed), 10))
	case uint32:
		return Number(strconv.FormatUint(uint64(typed), 10))
	case uint64:
		return Number(strconv.FormatUint(typed, 10))
	case float32:
		return Number(strconv.FormatFloat(float64(typed), 'g', -1, 32))
	case float64:
		return Number(strconv.FormatFloat(typed, 'g', -1, 64))
	case []string:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, item)
		}

		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, normalizeValue(item))
		}

		return out
	case map[string]any:
		node := NewNode()
		for _, key := range sortedKeys(typed) {
			node.set(key, normalizeValue(typed[key]))
		}

		return node
	default:
		return typed
	}
}

// sortedKeys returns deterministic sorted keys for generic maps.
func sortedKeys(values map[string]any) []string {
	out := make([]string, 0, len(values))
	for key := range values {
		out = append(out, key)
	}

	sort.Strings(out)
	return out
}
