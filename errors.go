// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package jsonschema2md

import "errors"

var (
	// ErrReadSchemaFile is returned when schema file loading fails.
	ErrReadSchemaFile = errors.New("read schema file")
	// ErrDecodeSchema is returned when schema JSON or YAML decoding fails.
	ErrDecodeSchema = errors.New("decode schema")
	// ErrUnknownFormat is returned when requested schema encoding is not supported.
	ErrUnknownFormat = errors.New("unknown schema format")
	// ErrSchemaRootType is returned when schema root is not object or boolean.
	ErrSchemaRootType = errors.New("schema root must be object or boolean")
	// ErrSchemaCycle is returned when a schema node contains itself.
	ErrSchemaCycle = errors.New("schema node contains itself")
	// ErrSchemaTooDeep is returned when schema nesting exceeds render depth limit.
	ErrSchemaTooDeep = errors.New("schema nesting too deep")
	// ErrEncodeExampleJSON is returned when examples JSON encoding fails.
	ErrEncodeExampleJSON = errors.New("encode example json")
	// ErrEncodeExampleYAML is returned when examples YAML encoding fails.
	ErrEncodeExampleYAML = errors.New("encode example yaml")
	// ErrReadTarget is returned when marker target file loading fails.
	ErrReadTarget = errors.New("read target file")
	// ErrWriteTarget is returned when marker target file rewrite fails.
	ErrWriteTarget = errors.New("write target file")
	// ErrStartTokenNotFound is returned when start marker line is missing.
	ErrStartTokenNotFound = errors.New("start token not found")
	// ErrEndTokenNotFound is returned when end marker line is missing after start marker.
	ErrEndTokenNotFound = errors.New("end token not found")
	// ErrTokensOutOfOrder is returned when end marker line precedes start marker line.
	ErrTokensOutOfOrder = errors.New("end token precedes start token")
)
