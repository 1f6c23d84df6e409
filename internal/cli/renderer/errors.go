// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/ddddddO/gtree"

	"github.com/platform-engineering-labs/zenith/internal/cli/display"
	"github.com/platform-engineering-labs/zenith/internal/fragment"
	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
	"github.com/platform-engineering-labs/zenith/internal/partial"
	"github.com/platform-engineering-labs/zenith/internal/tree"
)

// RenderErrorMessage returns a human readable explanation of a build failure,
// or an empty string when err is not a build failure it knows about.
func RenderErrorMessage(err error) (string, error) {
	var (
		cycleErr      *partial.CycleError
		preprocessErr *fragment.PreprocessError
		loadErr       *fragment.LoadError
		parseErr      *partial.ParseError
		tagErr        *tree.UnknownTagError
		payloadErr    *intrinsic.PayloadError
		aliasErr      *tree.RecursiveAliasError
		anchorErr     *partial.AnchorConflictError
		duplicateErr  *fragment.DuplicateError
	)

	switch {
	case errors.As(err, &cycleErr):
		return renderCycle(cycleErr)
	case errors.As(err, &preprocessErr):
		return display.Redf("cannot preprocess fragment %s\n", preprocessErr.Path) +
			display.Grey("  "+preprocessErr.Err.Error()+"\n"), nil
	case errors.As(err, &loadErr):
		if errors.Is(loadErr, fs.ErrNotExist) {
			return display.Redf("fragment %s does not exist\n", loadErr.Path) +
				display.Grey("  partials are referenced as *name and live in files named _name<extension>\n"), nil
		}
		return display.Redf("cannot load fragment %s\n", loadErr.Path) +
			display.Grey("  "+loadErr.Err.Error()+"\n"), nil
	case errors.As(err, &parseErr):
		return display.Redf("fragment %q is not valid YAML\n", parseErr.Fragment) +
			display.Grey("  "+parseErr.Err.Error()+"\n"), nil
	case errors.As(err, &tagErr):
		return display.Redf("unknown tag %s at line %d\n", tagErr.Tag, tagErr.Line) +
			display.Grey("  run `zenith intrinsics` for the supported tags, or build without --strict-tags\n"), nil
	case errors.As(err, &payloadErr):
		return display.Redf("%s\n", payloadErr.Error()), nil
	case errors.As(err, &aliasErr):
		return display.Redf("%s\n", aliasErr.Error()), nil
	case errors.As(err, &anchorErr):
		return display.Redf("fragment %q defines anchor &%s\n", anchorErr.Fragment, anchorErr.Anchor) +
			display.Grey("  "+anchorErr.Anchor+" is the name of a partial, rename the anchor\n"), nil
	case errors.As(err, &duplicateErr):
		return display.Redf("partial %q is defined twice\n", duplicateErr.Name) +
			display.Grey("  "+strings.Join(duplicateErr.Paths, "\n  ")+"\n"), nil
	}

	return "", nil
}

func renderCycle(err *partial.CycleError) (string, error) {
	root := gtree.NewRoot(display.Red("cycle detected between partials"))

	node := root
	for i, name := range err.Path {
		label := display.LightBlue(name)
		if i == len(err.Path)-1 {
			label = display.Red(name + " (again)")
		}
		node = node.Add(label)
	}

	var buf strings.Builder
	if err := gtree.OutputFromRoot(&buf, root); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// RenderError is RenderErrorMessage with a plain fallback for other errors.
func RenderError(err error) string {
	if msg, renderErr := RenderErrorMessage(err); renderErr == nil && msg != "" {
		return msg
	}

	return display.Red("Error: "+err.Error()) + "\n"
}
