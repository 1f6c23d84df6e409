// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package builder

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/segmentio/ksuid"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/zenith/internal/fragment"
	"github.com/platform-engineering-labs/zenith/internal/graph"
	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
	"github.com/platform-engineering-labs/zenith/internal/partial"
	"github.com/platform-engineering-labs/zenith/internal/tree"
)

// anchorNamePattern matches the names YAML accepts as anchors.
var anchorNamePattern = regexp.MustCompile(`^[^\s,\[\]{}]+$`)

// Builder assembles one template from the fragments in a directory. A Builder
// holds no state between builds, so Compose may be called repeatedly.
type Builder struct {
	opts     Options
	loader   *fragment.Loader
	registry *intrinsic.Registry
}

func New(opts Options, options ...Option) *Builder {
	opts = opts.withDefaults()

	b := &Builder{
		opts:     opts,
		loader:   fragment.NewLoader(opts.Preprocess, opts.Vars),
		registry: intrinsic.Default,
	}
	for _, option := range options {
		option(b)
	}

	b.registry.Install()

	return b
}

func (b *Builder) Options() Options {
	return b.opts
}

// Composition is everything a build produced on its way to the template.
type Composition struct {
	// ID correlates the log lines of one build.
	ID string
	// Dir is the base directory of the build.
	Dir string
	// Partials in dependency order.
	Partials []*partial.Partial
	// Graph over every partial the build resolved.
	Graph *graph.Graph
	// Main is the parsed main fragment.
	Main *partial.Fragment
	// Paths maps partial names to the files they were loaded from.
	Paths map[string]string
	// Text is the composite document handed to the YAML parser.
	Text string
	// Template is the expanded template: no aliases, no anchors, no shared
	// nodes.
	Template *yaml.Node
}

// Compose runs discovery, resolution, ordering and composition. Any failure
// aborts the build.
func (b *Builder) Compose() (*Composition, error) {
	comp := &Composition{
		ID:    ksuid.New().String(),
		Dir:   b.opts.BaseDir,
		Paths: make(map[string]string),
	}
	log := slog.With("build", comp.ID, "dir", b.opts.BaseDir)

	log.Debug("Discovering partials", "extension", b.opts.Extension)
	matches, err := fragment.Discover(b.opts.BaseDir, b.opts.Extension)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		comp.Paths[m.Name] = m.Path
	}

	resolver := partial.NewResolver(func(name string) (string, error) {
		if !anchorNamePattern.MatchString(name) {
			return "", fmt.Errorf("partial name %q cannot be used as a YAML anchor", name)
		}

		path, ok := comp.Paths[name]
		if !ok {
			path = fragment.PartialPath(b.opts.BaseDir, name, b.opts.Extension)
			comp.Paths[name] = path
		}

		log.Debug("Loading partial", "partial", name, "path", path)
		return b.loader.Load(path)
	})

	var resolved []*partial.Partial
	for _, m := range matches {
		p, err := resolver.Resolve(m.Name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, p)
	}

	mainPath := fragment.MainPath(b.opts.BaseDir, b.opts.MainName, b.opts.Extension)
	mainText, err := b.loader.Load(mainPath)
	if err != nil {
		return nil, err
	}

	comp.Main, err = partial.Parse(b.opts.MainName, mainText)
	if err != nil {
		return nil, err
	}

	for _, name := range comp.Main.References() {
		p, err := resolver.Resolve(name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, p)
	}

	comp.Graph = graph.New(resolved)
	comp.Partials, err = comp.Graph.Order()
	if err != nil {
		return nil, err
	}
	log.Debug("Ordered partials", "count", len(comp.Partials), "resolved", comp.Graph.Len())

	if err := checkAnchors(comp); err != nil {
		return nil, err
	}

	comp.Text = RenderComposite(comp.Partials, mainText)

	raw, err := extractTemplate(comp.Text)
	if err != nil {
		return nil, err
	}

	comp.Template, err = tree.Expand(raw, b.registry, b.opts.StrictTags)
	if err != nil {
		return nil, err
	}

	log.Info("Built template", "partials", len(comp.Partials))

	return comp, nil
}

// Build returns the expanded template node.
func (b *Builder) Build() (*yaml.Node, error) {
	comp, err := b.Compose()
	if err != nil {
		return nil, err
	}

	return comp.Template, nil
}

// BuildText returns the expanded template as YAML text.
func (b *Builder) BuildText() (string, error) {
	node, err := b.Build()
	if err != nil {
		return "", err
	}

	out, err := tree.EncodeYAML(node)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// checkAnchors rejects fragments whose own anchors carry the name of a
// partial. The composite is a single document, so such an anchor would
// rebind the name for every alias that follows it.
func checkAnchors(comp *Composition) error {
	names := make(map[string]bool, len(comp.Paths)+len(comp.Partials))
	for name := range comp.Paths {
		names[name] = true
	}
	for _, p := range comp.Partials {
		names[p.Name()] = true
	}

	for _, p := range comp.Partials {
		for _, anchor := range p.Anchors() {
			if names[anchor] {
				return &partial.AnchorConflictError{Fragment: p.Name(), Anchor: anchor}
			}
		}
	}

	for _, anchor := range comp.Main.Anchors() {
		if names[anchor] {
			return &partial.AnchorConflictError{Fragment: comp.Main.Name, Anchor: anchor}
		}
	}

	return nil
}
