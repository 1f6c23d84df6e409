// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package builder

import (
	"github.com/platform-engineering-labs/zenith/internal/imconc"
)

// maxConcurrentBuilds bounds BuildAll.
const maxConcurrentBuilds = 8

// BuildAll composes every builder concurrently. Each build owns its resolver,
// so nothing is shared between them. Results are in input order; if any build
// fails no results are returned.
func BuildAll(builders []*Builder) ([]*Composition, error) {
	comps, err := imconc.MapErr(builders, maxConcurrentBuilds, func(b *Builder) (*Composition, error) {
		return b.Compose()
	})
	if err != nil {
		return nil, err
	}

	return comps, nil
}
