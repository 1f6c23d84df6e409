// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partial

import (
	"fmt"
	"strings"
)

// ParseError indicates fragment text that is not valid YAML.
type ParseError struct {
	Fragment string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse fragment %q: %v", e.Fragment, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CycleError indicates partials that reference each other. Path starts and
// ends with the same partial name.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected between partials: %s", strings.Join(e.Path, " -> "))
}

// AnchorConflictError indicates a fragment defining an anchor that carries the
// name of a partial. Once composed, the anchor would capture every later
// reference to that partial.
type AnchorConflictError struct {
	Fragment string
	Anchor   string
}

func (e *AnchorConflictError) Error() string {
	return fmt.Sprintf("fragment %q defines anchor %q, which is the name of a partial", e.Fragment, e.Anchor)
}
