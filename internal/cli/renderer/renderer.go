// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ddddddO/gtree"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/platform-engineering-labs/zenith/internal/builder"
	"github.com/platform-engineering-labs/zenith/internal/cli/display"
	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
	"github.com/platform-engineering-labs/zenith/internal/partial"
)

func newTable(buf *strings.Builder) *tablewriter.Table {
	return tablewriter.NewTable(buf,
		tablewriter.WithRowAutoWrap(tw.WrapBreak),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On, ShowHeader: tw.On}},
		})))
}

// RenderDependencyTree shows the main fragment and every partial it reaches.
// A partial reached a second time is listed without its dependencies.
func RenderDependencyTree(comp *builder.Composition) (string, error) {
	byName := make(map[string]*partial.Partial, len(comp.Partials))
	for _, p := range comp.Partials {
		byName[p.Name()] = p
	}

	root := gtree.NewRoot(display.Gold(comp.Main.Name) + display.Grey(" (main)"))
	expanded := make(map[string]bool)

	var add func(parent *gtree.Node, name string)
	add = func(parent *gtree.Node, name string) {
		p, ok := byName[name]
		if !ok {
			parent.Add(display.Red(name + " (unresolved)"))
			return
		}

		if expanded[name] {
			parent.Add(display.LightBlue(name) + display.Grey(" (shown above)"))
			return
		}
		expanded[name] = true

		node := parent.Add(display.LightBlue(name) + display.Grey(" "+filepath.Base(comp.Paths[name])))
		for _, dep := range p.DependencyNames() {
			add(node, dep)
		}
	}

	for _, name := range comp.Main.References() {
		add(root, name)
	}

	var buf strings.Builder
	if err := gtree.OutputFromRoot(&buf, root); err != nil {
		return "", err
	}

	var unused []string
	for _, p := range comp.Partials {
		if !expanded[p.Name()] {
			unused = append(unused, p.Name())
		}
	}
	if len(unused) > 0 {
		buf.WriteString(fmt.Sprintf("\n%s %s\n", display.Gold("Unreferenced:"), strings.Join(unused, ", ")))
	}

	return buf.String(), nil
}

// RenderPartials lists the partials of a build in dependency order.
func RenderPartials(comp *builder.Composition) (string, error) {
	if len(comp.Partials) == 0 {
		return display.Gold("No partials found.\n"), nil
	}

	var buf strings.Builder
	table := newTable(&buf)
	table.Header(display.LightBlue("#"), "Partial", "File", "Depends on")

	edges := comp.Graph.Edges()
	data := make([][]string, len(comp.Partials))
	for i, p := range comp.Partials {
		deps := edges[p.Name()]
		if deps == nil {
			deps = p.DependencyNames()
		}

		data[i] = []string{
			display.LightBlue(fmt.Sprintf("%d", i+1)),
			p.Name(),
			filepath.Base(comp.Paths[p.Name()]),
			strings.Join(deps, ", "),
		}
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error rendering partials: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering partials: %v", err)
	}

	summary := fmt.Sprintf("\n%s %d partials in %s, build %s\n",
		display.Gold("Summary:"),
		len(comp.Partials),
		comp.Dir,
		comp.ID)

	return buf.String() + summary, nil
}

// RenderIntrinsics lists the registered intrinsic function tags.
func RenderIntrinsics(markers []*intrinsic.Marker) (string, error) {
	var buf strings.Builder
	table := newTable(&buf)
	table.Header(display.LightBlue("Tag"), "Long form")

	data := make([][]string, len(markers))
	for i, m := range markers {
		data[i] = []string{display.LightBlue(m.Tag()), m.Key()}
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error rendering intrinsics: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering intrinsics: %v", err)
	}

	return buf.String(), nil
}

// RenderBuildSummary describes builds whose output went to a file.
func RenderBuildSummary(comps []*builder.Composition, output string) (string, error) {
	var buf strings.Builder
	table := newTable(&buf)
	table.Header(display.LightBlue("Project"), "Partials", "Build")

	data := make([][]string, len(comps))
	for i, comp := range comps {
		data[i] = []string{display.LightBlue(comp.Dir), fmt.Sprintf("%d", len(comp.Partials)), comp.ID}
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error rendering build summary: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering build summary: %v", err)
	}

	return buf.String() + fmt.Sprintf("\n%s %s\n", display.Gold("Written to:"), output), nil
}
