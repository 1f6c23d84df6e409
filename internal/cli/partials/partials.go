// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partials

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/zenith/internal/builder"
	"github.com/platform-engineering-labs/zenith/internal/cli/cmd"
	"github.com/platform-engineering-labs/zenith/internal/cli/printer"
	"github.com/platform-engineering-labs/zenith/internal/cli/renderer"
)

type PartialsOptions struct {
	Dir            string
	Project        cmd.ProjectFlags
	OutputConsumer printer.Consumer
	OutputSchema   string
}

type PartialInfo struct {
	Name      string   `json:"name" yaml:"name"`
	File      string   `json:"file" yaml:"file"`
	DependsOn []string `json:"dependsOn" yaml:"dependsOn"`
}

// Listing is the machine readable partial list, in dependency order.
type Listing struct {
	Build    string        `json:"build" yaml:"build"`
	Partials []PartialInfo `json:"partials" yaml:"partials"`
}

func NewListing(comp *builder.Composition) *Listing {
	listing := &Listing{
		Build:    comp.ID,
		Partials: make([]PartialInfo, len(comp.Partials)),
	}
	for i, p := range comp.Partials {
		deps := p.DependencyNames()
		if deps == nil {
			deps = []string{}
		}
		listing.Partials[i] = PartialInfo{
			Name:      p.Name(),
			File:      comp.Paths[p.Name()],
			DependsOn: deps,
		}
	}

	return listing
}

func validatePartialsOptions(opts *PartialsOptions) error {
	if opts.Dir == "" {
		return cmd.FlagErrorf("project directory is required")
	}

	return cmd.ValidateOutput(opts.OutputConsumer, opts.OutputSchema)
}

func PartialsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "partials",
		Short: "List the partials of a project in dependency order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			opts := &PartialsOptions{}
			opts.Dir = cmd.ProjectDir(args)
			opts.Project = cmd.ProjectFlagsFromCmd(command)
			opts.OutputConsumer, opts.OutputSchema = cmd.OutputFlagsFromCmd(command)

			return runPartials(opts, command.OutOrStdout())
		},
		Annotations: map[string]string{
			"type":     "Inspect",
			"examples": "{{.Name}} {{.Command}}  |  {{.Name}} {{.Command}} --output-consumer machine --output-schema yaml ./stack",
			"args":     "[project directory]",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	cmd.AddProjectFlags(command)
	cmd.AddOutputFlags(command)

	return command
}

func runPartials(opts *PartialsOptions, w io.Writer) error {
	if err := validatePartialsOptions(opts); err != nil {
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
		return printer.NewMachineReadablePrinter[Listing](w, opts.OutputSchema).Print(NewListing(comp))
	}

	output, err := renderer.RenderPartials(comp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, output)

	return err
}
