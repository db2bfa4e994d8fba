// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package emit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Writer places rendered artifacts in an output directory.
type Writer struct {
	// Dir is the output directory, created on first write.
	Dir string

	// Format post-processes rendered source before it is written or
	// compared. A nil Format writes the source as rendered; rendering
	// is already valid Go, formatting only normalizes whitespace.
	Format func([]byte) ([]byte, error)
}

// NewWriter creates a Writer targeting dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

func (w *Writer) finalSource(a Artifact) ([]byte, error) {
	if w.Format == nil {
		return a.Source, nil
	}
	formatted, err := w.Format(a.Source)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", a.Filename, err)
	}
	return formatted, nil
}

// Write stores one artifact and returns its path. The write goes
// through a temp file and a rename, so the output file is either the
// complete artifact or untouched.
func (w *Writer) Write(a Artifact) (string, error) {
	source, err := w.finalSource(a)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(w.Dir, a.Filename+".tmp*")
	if err != nil {
		return "", fmt.Errorf("write %s: %w", a.Filename, err)
	}
	if _, err := tmp.Write(source); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", a.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", a.Filename, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", a.Filename, err)
	}

	path := filepath.Join(w.Dir, a.Filename)
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", a.Filename, err)
	}
	return path, nil
}

// WriteAll stores the artifacts in order and returns their paths.
func (w *Writer) WriteAll(artifacts []Artifact) ([]string, error) {
	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path, err := w.Write(a)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Check reports whether the stored file matches the artifact's
// rendered (and formatted) source. A missing file is a mismatch, not
// an error.
func (w *Writer) Check(a Artifact) (bool, error) {
	source, err := w.finalSource(a)
	if err != nil {
		return false, err
	}
	existing, err := os.ReadFile(filepath.Join(w.Dir, a.Filename))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check %s: %w", a.Filename, err)
	}
	return bytes.Equal(existing, source), nil
}

// CheckAll compares every artifact and returns the filenames that are
// missing or stale.
func (w *Writer) CheckAll(artifacts []Artifact) ([]string, error) {
	var stale []string
	for _, a := range artifacts {
		ok, err := w.Check(a)
		if err != nil {
			return nil, err
		}
		if !ok {
			stale = append(stale, a.Filename)
		}
	}
	return stale, nil
}
