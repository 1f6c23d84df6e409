// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partial

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Partial is a named, reusable YAML fragment. It is parsed once at
// construction and is immutable afterwards.
type Partial struct {
	name     string
	text     string
	fragment *Fragment
	resolver *Resolver
}

// New parses text and returns the partial called name. The resolver is used
// to look up the partials it references and may be nil when only the
// reference names are needed.
func New(name, text string, resolver *Resolver) (*Partial, error) {
	f, err := Parse(name, text)
	if err != nil {
		return nil, err
	}

	return &Partial{
		name:     name,
		text:     text,
		fragment: f,
		resolver: resolver,
	}, nil
}

func (p *Partial) Name() string {
	return p.name
}

func (p *Partial) Text() string {
	return p.text
}

// Node returns the parsed body of the partial. References to other partials
// are aliases bound to placeholder anchors.
func (p *Partial) Node() *yaml.Node {
	return p.fragment.Root
}

// DependencyNames returns the names of the partials this one references,
// deduplicated in first-seen order.
func (p *Partial) DependencyNames() []string {
	return p.fragment.References()
}

// Anchors returns the anchors the partial defines for its own use.
func (p *Partial) Anchors() []string {
	return p.fragment.Anchors()
}

// Dependencies resolves every referenced partial through the resolver.
func (p *Partial) Dependencies() ([]*Partial, error) {
	names := p.DependencyNames()
	if len(names) == 0 {
		return nil, nil
	}

	if p.resolver == nil {
		return nil, fmt.Errorf("partial %q has no resolver for its dependencies", p.name)
	}

	deps := make([]*Partial, 0, len(names))
	for _, name := range names {
		dep, err := p.resolver.Resolve(name)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}

	return deps, nil
}

func (p *Partial) String() string {
	return p.name
}
