// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partial

import (
	"fmt"
	"log/slog"
	"slices"
)

// LoadFunc returns the text of the partial called name.
type LoadFunc func(name string) (string, error)

// Resolver maps partial names to Partial values, loading and parsing each name
// at most once per build. A Resolver is not safe for concurrent use; each
// build owns its own.
type Resolver struct {
	load     LoadFunc
	cache    map[string]*Partial
	order    []*Partial
	building []string
}

func NewResolver(load LoadFunc) *Resolver {
	return &Resolver{
		load:  load,
		cache: make(map[string]*Partial),
	}
}

// Resolve returns the partial called name, loading it on first request.
// Requesting a name while it is still being constructed returns a
// *CycleError. Failed loads are not cached.
func (r *Resolver) Resolve(name string) (*Partial, error) {
	if p, ok := r.cache[name]; ok {
		return p, nil
	}

	if i := slices.Index(r.building, name); i >= 0 {
		path := append(slices.Clone(r.building[i:]), name)
		return nil, &CycleError{Path: path}
	}

	r.building = append(r.building, name)
	defer func() {
		r.building = r.building[:len(r.building)-1]
	}()

	text, err := r.load(name)
	if err != nil {
		return nil, fmt.Errorf("resolving partial %q: %w", name, err)
	}

	p, err := New(name, text, r)
	if err != nil {
		return nil, err
	}

	slog.Debug("Resolved partial", "name", name, "dependencies", p.DependencyNames())

	r.cache[name] = p
	r.order = append(r.order, p)

	return p, nil
}

// Cached returns the partials resolved so far, in resolution order.
func (r *Resolver) Cached() []*Partial {
	return slices.Clone(r.order)
}
