// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner provides file discovery for API description files.
package scanner

import (
	"bytes"
	"path/filepath"
	"strings"
	"time"
)

// SpecFile represents a discovered API description file.
type SpecFile struct {
	// Path is the absolute path to the file
	Path string

	// Format is the detected serialization format ("yaml" or "json")
	Format string

	// Content is the file content
	Content []byte

	// ModTime is the last modification time
	ModTime time.Time
}

// formatExtensions maps file extensions to format identifiers.
var formatExtensions = map[string]string{
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
}

// DetectFormat detects the serialization format from a file path.
func DetectFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := formatExtensions[ext]; ok {
		return format
	}
	return ""
}

// SupportedExtensions returns a list of supported file extensions.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(formatExtensions))
	for ext := range formatExtensions {
		exts = append(exts, ext)
	}
	return exts
}

// IsSupportedFile checks if a file path has a supported extension.
func IsSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := formatExtensions[ext]
	return ok
}

// LooksLikeSpec reports whether content resembles an OpenAPI document:
// a top-level "openapi" key. It is a cheap pre-filter, not validation;
// files that pass still go through the compiler.
func (f SpecFile) LooksLikeSpec() bool {
	switch f.Format {
	case "json":
		return bytes.Contains(f.Content, []byte(`"openapi"`))
	case "yaml":
		for _, line := range bytes.Split(f.Content, []byte("\n")) {
			if bytes.HasPrefix(line, []byte("openapi:")) {
				return true
			}
		}
	}
	return false
}
