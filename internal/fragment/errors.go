// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package fragment

import "fmt"

// LoadError indicates a fragment file that does not exist or cannot be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load fragment %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// PreprocessError indicates a fragment whose template directives failed to
// parse or execute.
type PreprocessError struct {
	Path string
	Err  error
}

func (e *PreprocessError) Error() string {
	return fmt.Sprintf("cannot preprocess fragment %s: %v", e.Path, e.Err)
}

func (e *PreprocessError) Unwrap() error {
	return e.Err
}

// DuplicateError indicates two partial files that map to the same partial
// name, such as _foo.yml.tmpl and _foo.v2.yml.tmpl.
type DuplicateError struct {
	Name  string
	Paths []string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("partial %q is defined by both %s and %s", e.Name, e.Paths[0], e.Paths[1])
}
