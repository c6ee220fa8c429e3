// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package jsonschema2md

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Marker lines bound a managed region inside a text file:
//
//	<!-- fruits start -->
//	...generated lines...
//	<!-- fruits end -->
//
// Everything strictly between markers is replaced on each write.
// Marker lines and content outside them are kept byte for byte.

// TokenStart returns the opening marker line (without newline) for token.
func TokenStart(token string) string {
	return "<!-- " + token + " start -->"
}

// TokenEnd returns the closing marker line (without newline) for token.
func TokenEnd(token string) string {
	return "<!-- " + token + " end -->"
}

// ReplaceBetweenTokens replaces lines strictly between token markers with lines.
// Markers are matched against whole lines ignoring surrounding whitespace.
func ReplaceBetweenTokens(content string, lines []string, token string) (string, error) {
	start, end := TokenStart(token), TokenEnd(token)
	source := strings.SplitAfter(content, "\n")

	startIndex, endIndex := -1, -1
	for index, line := range source {
		trimmed := strings.TrimSpace(line)
		switch {
		case startIndex < 0 && trimmed == end:
			return "", fmt.Errorf("%w: %q", ErrTokensOutOfOrder, token)
		case startIndex < 0 && trimmed == start:
			startIndex = index
		case startIndex >= 0 && trimmed == end:
			endIndex = index
		}

		if endIndex >= 0 {
			break
		}
	}

	if startIndex < 0 {
		return "", fmt.Errorf("%w: %q", ErrStartTokenNotFound, token)
	}

	if endIndex < 0 {
		return "", fmt.Errorf("%w: %q", ErrEndTokenNotFound, token)
	}

	var out strings.Builder
	out.Grow(len(content))

	for _, line := range source[:startIndex+1] {
		out.WriteString(line)
	}

	if !strings.HasSuffix(source[startIndex], "\n") {
		out.WriteByte('\n')
	}

	replacement := strings.Join(lines, "")
	out.WriteString(replacement)
	if replacement != "" && !strings.HasSuffix(replacement, "\n") {
		out.WriteByte('\n')
	}

	for _, line := range source[endIndex:] {
		out.WriteString(line)
	}

	return out.String(), nil
}

// WriteLinesBetweenToken rewrites file at path, replacing the region between
// token markers with lines. The file is either fully rewritten or left as is.
func WriteLinesBetweenToken(path string, lines []string, token string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadTarget, err)
	}

	updated, err := ReplaceBetweenTokens(string(data), lines, token)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if updated == string(data) {
		return nil
	}

	if err := writeFileAtomic(path, []byte(updated)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTarget, err)
	}

	return nil
}

// writeFileAtomic writes content through temp file, fsync and rename,
// keeping the permission bits of an existing target.
func writeFileAtomic(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonschema2md-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	success = true
	return nil
}

// WriteFile writes rendered output to path atomically, creating parent directories.
func WriteFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteTarget, err)
		}
	}

	if err := writeFileAtomic(path, content); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTarget, err)
	}

	return nil
}
