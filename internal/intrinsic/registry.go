// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package intrinsic

import (
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"
)

const tagPrefix = "!"

// FunctionNames is the closed set of intrinsic functions installed by Install.
var FunctionNames = []string{
	"Sub", "Join", "GetAtt", "Base64", "GetAZs",
	"ImportValue", "Select", "Split", "Ref",
	"And", "Equals", "If", "Not", "Or",
	"FindInMap", "Cidr", "Condition",
}

// Marker is a registered intrinsic function type.
type Marker struct {
	name string
}

func (m *Marker) Name() string { return m.name }

func (m *Marker) Tag() string { return tagPrefix + m.name }

func (m *Marker) Key() string { return LongFormKey(m.name) }

// Decode reads a node carrying this marker's tag.
func (m *Marker) Decode(node *yaml.Node) (*Function, error) {
	if node.Tag != m.Tag() {
		return nil, fmt.Errorf("node tagged %q cannot be decoded as %s", node.Tag, m.Tag())
	}

	var fn Function
	if err := node.Decode(&fn); err != nil {
		return nil, err
	}

	return &fn, nil
}

// Registry holds the marker types the tree utilities recognise. Markers are
// never removed.
type Registry struct {
	mu        sync.RWMutex
	installed bool
	markers   map[string]*Marker
	order     []*Marker
}

func NewRegistry() *Registry {
	return &Registry{
		markers: make(map[string]*Marker),
	}
}

// Default is the process-wide registry.
var Default = NewRegistry()

// Install registers FunctionNames in the default registry.
func Install() []*Marker {
	return Default.Install()
}

func IsInstalled() bool {
	return Default.IsInstalled()
}

// Register records a marker for name. Registering a name twice returns the
// marker created the first time.
func (r *Registry) Register(name string) *Marker {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.register(name)
}

func (r *Registry) register(name string) *Marker {
	if m, ok := r.markers[name]; ok {
		return m
	}

	m := &Marker{name: name}
	r.markers[name] = m
	r.order = append(r.order, m)

	return m
}

// Install registers every function in FunctionNames once and returns the
// registered markers. Later calls do nothing.
func (r *Registry) Install() []*Marker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.installed {
		for _, name := range FunctionNames {
			r.register(name)
		}
		r.installed = true
		slog.Debug("Installed intrinsic functions", "count", len(FunctionNames))
	}

	return append([]*Marker(nil), r.order...)
}

func (r *Registry) IsInstalled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.installed
}

// Markers returns the registered markers in registration order.
func (r *Registry) Markers() []*Marker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Marker(nil), r.order...)
}

// Lookup finds the marker for a YAML tag such as "!Sub".
func (r *Registry) Lookup(tag string) (*Marker, bool) {
	if len(tag) <= len(tagPrefix) || tag[:len(tagPrefix)] != tagPrefix {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.markers[tag[len(tagPrefix):]]
	return m, ok
}

// Decode decodes node with the marker registered for its tag.
func (r *Registry) Decode(node *yaml.Node) (*Function, error) {
	m, ok := r.Lookup(node.Tag)
	if !ok {
		return nil, fmt.Errorf("tag %q is not a registered intrinsic function", node.Tag)
	}

	return m.Decode(node)
}
