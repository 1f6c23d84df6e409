// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package tree

import (
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
)

// LongForm returns a copy of node in which every registered intrinsic
// function is rewritten to its long form, e.g. `!Ref Bucket` becomes
// `{Ref: Bucket}`. node is not modified.
func LongForm(node *yaml.Node, registry *intrinsic.Registry) (*yaml.Node, error) {
	if node == nil {
		return nil, nil
	}

	if node.Kind == yaml.AliasNode {
		return LongForm(node.Alias, registry)
	}

	if registry != nil && IsLocalTag(node.Tag) {
		if _, ok := registry.Lookup(node.Tag); ok {
			fn, err := registry.Decode(node)
			if err != nil {
				return nil, err
			}
			node = fn.LongForm()
		}
	}

	c := &yaml.Node{
		Kind:   node.Kind,
		Style:  node.Style &^ yaml.TaggedStyle,
		Tag:    node.Tag,
		Value:  node.Value,
		Line:   node.Line,
		Column: node.Column,
	}

	for _, child := range node.Content {
		cc, err := LongForm(child, registry)
		if err != nil {
			return nil, err
		}
		c.Content = append(c.Content, cc)
	}

	return c, nil
}
