// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover enumerates candidate source documents in a directory.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// SourceExt is the source document extension.
	SourceExt = ".docx"

	// TargetExt is the fixed-format output extension.
	TargetExt = ".pdf"

	// lockPrefix marks transient owner files Word creates while a
	// document is open; these are never conversion candidates.
	lockPrefix = "~$"
)

// Discover lists the source documents in dir, non-recursive, excluding lock
// files. The extension match is case-insensitive. Results come back in name
// order, which fixes the processing order for the whole run. An empty result
// is a normal outcome, not an error.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, lockPrefix) {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), SourceExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	return paths, nil
}

// OutputPath derives the output file path for an input document: same
// directory, same base name, target extension.
func OutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + TargetExt
}
