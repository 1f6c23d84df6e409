// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package deps

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/zenith/internal/builder"
	"github.com/platform-engineering-labs/zenith/internal/cli/cmd"
	"github.com/platform-engineering-labs/zenith/internal/cli/printer"
	"github.com/platform-engineering-labs/zenith/internal/cli/renderer"
)

type DepsOptions struct {
	Dir            string
	Project        cmd.ProjectFlags
	OutputConsumer printer.Consumer
	OutputSchema   string
}

// Report is the machine readable dependency information of a project.
type Report struct {
	Main       string              `json:"main" yaml:"main"`
	References []string            `json:"references" yaml:"references"`
	Order      []string            `json:"order" yaml:"order"`
	Edges      map[string][]string `json:"edges" yaml:"edges"`
}

func NewReport(comp *builder.Composition) *Report {
	report := &Report{
		Main:       comp.Main.Name,
		References: comp.Main.References(),
		Order:      make([]string, len(comp.Partials)),
		Edges:      comp.Graph.Edges(),
	}
	for i, p := range comp.Partials {
		report.Order[i] = p.Name()
	}
	if report.References == nil {
		report.References = []string{}
	}

	return report
}

func validateDepsOptions(opts *DepsOptions) error {
	if opts.Dir == "" {
		return cmd.FlagErrorf("project directory is required")
	}

	return cmd.ValidateOutput(opts.OutputConsumer, opts.OutputSchema)
}

func DepsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "deps",
		Short: "Show how the partials of a project depend on each other",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			opts := &DepsOptions{}
			opts.Dir = cmd.ProjectDir(args)
			opts.Project = cmd.ProjectFlagsFromCmd(command)
			opts.OutputConsumer, opts.OutputSchema = cmd.OutputFlagsFromCmd(command)

			return runDeps(opts, command.OutOrStdout())
		},
		Annotations: map[string]string{
			"type":     "Inspect",
			"examples": "{{.Name}} {{.Command}}  |  {{.Name}} {{.Command}} --output-consumer machine ./stack",
			"args":     "[project directory]",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	cmd.AddProjectFlags(command)
	cmd.AddOutputFlags(command)

	return command
}

func runDeps(opts *DepsOptions, w io.Writer) error {
	if err := validateDepsOptions(opts); err != nil {
		return err
	}

	b, _, err := cmd.ProjectBuilder(opts.Dir, opts.Project)
	if err != nil {
		return err
	}

	comp, err := b.Compose()
	if err != nil {
		return err
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		return printer.NewMachineReadablePrinter[Report](w, opts.OutputSchema).Print(NewReport(comp))
	}

	output, err := renderer.RenderDependencyTree(comp)
	if err != nil {
		return fmt.Errorf("cannot render dependencies: %v", err)
	}
	_, err = fmt.Fprint(w, output)

	return err
}
