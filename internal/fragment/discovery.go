// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package fragment

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	DefaultExtension = ".yml.tmpl"
	DefaultMainName  = "main"

	partialPrefix = "_"
)

var partialNamePattern = regexp.MustCompile(`^_([^.]+)\.`)

// Match is a partial fragment found in the project directory.
type Match struct {
	Name string
	Path string
}

// Discover lists every partial fragment (_<name><ext>) directly under dir, in
// lexical file name order. Two files with the same partial name return a
// *DuplicateError.
func Discover(dir, ext string) ([]Match, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading project directory: %w", err)
	}

	var matches []Match
	paths := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name, ok := PartialName(entry.Name(), ext)
		if !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if first, ok := paths[name]; ok {
			return nil, &DuplicateError{Name: name, Paths: []string{first, path}}
		}
		paths[name] = path

		matches = append(matches, Match{
			Name: name,
			Path: path,
		})
	}

	return matches, nil
}

// PartialName extracts the partial name from a file name such as
// "_network.yml.tmpl".
func PartialName(file, ext string) (string, bool) {
	if !strings.HasPrefix(file, partialPrefix) || !strings.HasSuffix(file, ext) {
		return "", false
	}

	m := partialNamePattern.FindStringSubmatch(file)
	if m == nil {
		return "", false
	}

	return m[1], true
}

func PartialPath(dir, name, ext string) string {
	return filepath.Join(dir, partialPrefix+name+ext)
}

func MainPath(dir, main, ext string) string {
	return filepath.Join(dir, main+ext)
}

// IsFragment reports whether file looks like a main or partial fragment.
func IsFragment(file, ext string) bool {
	return strings.HasSuffix(filepath.Base(file), ext)
}
