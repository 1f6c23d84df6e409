// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package graph

import (
	"slices"

	"github.com/platform-engineering-labs/zenith/internal/partial"
)

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// Graph is the dependency graph over a set of partials. Edges are read from
// each partial's dependencies while ordering, so partials that are only
// reachable through a dependency are included as well.
type Graph struct {
	partials []*partial.Partial
}

// New returns a graph over partials. Duplicates by identity are dropped and
// input order is kept.
func New(partials []*partial.Partial) *Graph {
	seen := make(map[*partial.Partial]bool, len(partials))
	g := &Graph{}
	for _, p := range partials {
		if p == nil || seen[p] {
			continue
		}
		seen[p] = true
		g.partials = append(g.partials, p)
	}

	return g
}

// Len returns the number of partials the graph was built from.
func (g *Graph) Len() int {
	return len(g.partials)
}

// Order returns the partials so that every partial comes after the partials it
// depends on. Unrelated partials keep their input order. A cycle returns a
// *partial.CycleError naming the partials on it.
func (g *Graph) Order() ([]*partial.Partial, error) {
	state := make(map[*partial.Partial]visitState)
	var stack []*partial.Partial
	var order []*partial.Partial

	var visit func(p *partial.Partial) error
	visit = func(p *partial.Partial) error {
		switch state[p] {
		case visited:
			return nil
		case visiting:
			return cycleFrom(stack, p)
		}

		state[p] = visiting
		stack = append(stack, p)

		deps, err := p.Dependencies()
		if err != nil {
			return err
		}

		for _, dep := range deps {
			if err := visit(dep); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		state[p] = visited
		order = append(order, p)

		return nil
	}

	for _, p := range g.partials {
		if err := visit(p); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// Edges returns each partial's dependency names keyed by partial name. Only
// partials given to New are listed as keys.
func (g *Graph) Edges() map[string][]string {
	edges := make(map[string][]string, len(g.partials))
	for _, p := range g.partials {
		edges[p.Name()] = p.DependencyNames()
	}

	return edges
}

func cycleFrom(stack []*partial.Partial, p *partial.Partial) error {
	start := slices.Index(stack, p)
	if start < 0 {
		start = 0
	}

	path := make([]string, 0, len(stack)-start+1)
	for _, s := range stack[start:] {
		path = append(path, s.Name())
	}
	path = append(path, p.Name())

	return &partial.CycleError{Path: path}
}
