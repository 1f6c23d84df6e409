// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package tree

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
)

const mergeTag = "!!merge"

type expander struct {
	registry *intrinsic.Registry
	strict   bool
	active   map[*yaml.Node]bool
}

// Expand returns a deep copy of node with every alias replaced by a copy of
// its target and every anchor removed, so no two positions in the result share
// a node. Merge keys are applied. Nodes carrying a registered intrinsic tag are
// checked for a valid payload; other local tags are kept unless strict is set.
func Expand(node *yaml.Node, registry *intrinsic.Registry, strict bool) (*yaml.Node, error) {
	e := &expander{
		registry: registry,
		strict:   strict,
		active:   make(map[*yaml.Node]bool),
	}

	return e.copy(node)
}

func (e *expander) copy(n *yaml.Node) (*yaml.Node, error) {
	if n == nil {
		return nil, nil
	}

	if n.Kind == yaml.AliasNode {
		if n.Alias == nil {
			return nil, fmt.Errorf("alias *%s at line %d has no target", n.Value, n.Line)
		}
		if e.active[n.Alias] {
			return nil, &RecursiveAliasError{Name: n.Value, Line: n.Line, Column: n.Column}
		}

		return e.copy(n.Alias)
	}

	c := &yaml.Node{
		Kind:   n.Kind,
		Style:  n.Style,
		Tag:    n.Tag,
		Value:  n.Value,
		Line:   n.Line,
		Column: n.Column,
	}

	if len(n.Content) > 0 {
		// active holds the ancestors being copied
		e.active[n] = true
		c.Content = make([]*yaml.Node, 0, len(n.Content))
		for _, child := range n.Content {
			cc, err := e.copy(child)
			if err != nil {
				delete(e.active, n)
				return nil, err
			}
			c.Content = append(c.Content, cc)
		}
		delete(e.active, n)
	}

	if c.Kind == yaml.MappingNode {
		c.Content = applyMerges(c.Content)
	}

	if err := e.checkTag(c); err != nil {
		return nil, err
	}

	return c, nil
}

func (e *expander) checkTag(n *yaml.Node) error {
	if !IsLocalTag(n.Tag) {
		return nil
	}

	if e.registry != nil {
		if _, ok := e.registry.Lookup(n.Tag); ok {
			_, err := e.registry.Decode(n)
			return err
		}
	}

	if e.strict {
		return &UnknownTagError{Tag: n.Tag, Line: n.Line, Column: n.Column}
	}

	return nil
}

// IsLocalTag reports whether tag is an application tag such as "!Sub" rather
// than a core schema tag.
func IsLocalTag(tag string) bool {
	return len(tag) > 1 && tag[0] == '!' && tag[1] != '!'
}

// applyMerges replaces "<<" entries of a mapping with the pairs of the merged
// mappings. Explicit keys win over merged ones and earlier sources win over
// later ones.
func applyMerges(content []*yaml.Node) []*yaml.Node {
	hasMerge := false
	explicit := make(map[string]bool)
	for i := 0; i+1 < len(content); i += 2 {
		if isMergeKey(content[i]) {
			hasMerge = true
			continue
		}
		explicit[content[i].Value] = true
	}

	if !hasMerge {
		return content
	}

	merged := make(map[string]bool)
	out := make([]*yaml.Node, 0, len(content))
	for i := 0; i+1 < len(content); i += 2 {
		key, value := content[i], content[i+1]
		if !isMergeKey(key) {
			out = append(out, key, value)
			continue
		}

		for _, source := range mergeSources(value) {
			for j := 0; j+1 < len(source.Content); j += 2 {
				k := source.Content[j].Value
				if explicit[k] || merged[k] {
					continue
				}
				merged[k] = true
				out = append(out, source.Content[j], source.Content[j+1])
			}
		}
	}

	return out
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == mergeTag
}

func mergeSources(n *yaml.Node) []*yaml.Node {
	switch n.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{n}
	case yaml.SequenceNode:
		var sources []*yaml.Node
		for _, item := range n.Content {
			if item.Kind == yaml.MappingNode {
				sources = append(sources, item)
			}
		}
		return sources
	default:
		return nil
	}
}
