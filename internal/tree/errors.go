// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package tree

import "fmt"

// UnknownTagError reports a local tag that is not a registered intrinsic
// function while strict tag checking is on.
type UnknownTagError struct {
	Tag    string
	Line   int
	Column int
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown tag %s at line %d, column %d", e.Tag, e.Line, e.Column)
}

// RecursiveAliasError reports an alias that refers to a node containing it.
type RecursiveAliasError struct {
	Name   string
	Line   int
	Column int
}

func (e *RecursiveAliasError) Error() string {
	return fmt.Sprintf("alias *%s at line %d, column %d refers to itself", e.Name, e.Line, e.Column)
}
