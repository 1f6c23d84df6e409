// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package builder

import (
	"github.com/platform-engineering-labs/zenith/internal/fragment"
	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
)

// Options configure a single build.
type Options struct {
	// BaseDir is the directory holding the main and partial fragments.
	BaseDir string
	// MainName is the base name of the main fragment, without extension.
	MainName string
	// Extension is the fragment file extension, e.g. ".yml.tmpl".
	Extension string
	// Preprocess runs the text template pass over every fragment.
	Preprocess bool
	// Vars are exposed to the text template pass as .Vars.
	Vars map[string]any
	// StrictTags rejects local tags that are not registered intrinsics.
	StrictTags bool
}

func DefaultOptions() Options {
	return Options{
		BaseDir:    ".",
		MainName:   fragment.DefaultMainName,
		Extension:  fragment.DefaultExtension,
		Preprocess: true,
	}
}

func (o Options) withDefaults() Options {
	if o.BaseDir == "" {
		o.BaseDir = "."
	}
	if o.MainName == "" {
		o.MainName = fragment.DefaultMainName
	}
	if o.Extension == "" {
		o.Extension = fragment.DefaultExtension
	}

	return o
}

// Option customises a Builder beyond its Options.
type Option func(*Builder)

// WithRegistry makes the builder validate intrinsics against registry
// instead of the process-wide default.
func WithRegistry(registry *intrinsic.Registry) Option {
	return func(b *Builder) {
		b.registry = registry
	}
}

// WithLoader replaces the fragment loader built from Options.
func WithLoader(loader *fragment.Loader) Option {
	return func(b *Builder) {
		b.loader = loader
	}
}
