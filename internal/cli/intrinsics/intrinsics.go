// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package intrinsics

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/zenith/internal/cli/cmd"
	"github.com/platform-engineering-labs/zenith/internal/cli/printer"
	"github.com/platform-engineering-labs/zenith/internal/cli/renderer"
	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
)

type IntrinsicsOptions struct {
	OutputConsumer printer.Consumer
	OutputSchema   string
}

type Entry struct {
	Tag      string `json:"tag" yaml:"tag"`
	LongForm string `json:"longForm" yaml:"longForm"`
}

type Entries []Entry

func NewEntries(markers []*intrinsic.Marker) *Entries {
	entries := make(Entries, len(markers))
	for i, m := range markers {
		entries[i] = Entry{Tag: m.Tag(), LongForm: m.Key()}
	}

	return &entries
}

func IntrinsicsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "intrinsics",
		Short: "List the intrinsic function tags templates may use",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			opts := &IntrinsicsOptions{}
			opts.OutputConsumer, opts.OutputSchema = cmd.OutputFlagsFromCmd(command)

			return runIntrinsics(opts, intrinsic.Default, command.OutOrStdout())
		},
		Annotations: map[string]string{
			"type":     "Inspect",
			"examples": "{{.Name}} {{.Command}}  |  {{.Name}} {{.Command}} --output-consumer machine",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	cmd.AddOutputFlags(command)

	return command
}

func runIntrinsics(opts *IntrinsicsOptions, registry *intrinsic.Registry, w io.Writer) error {
	if err := cmd.ValidateOutput(opts.OutputConsumer, opts.OutputSchema); err != nil {
		return err
	}

	markers := registry.Install()

	if opts.OutputConsumer == printer.ConsumerMachine {
		return printer.NewMachineReadablePrinter[Entries](w, opts.OutputSchema).Print(NewEntries(markers))
	}

	output, err := renderer.RenderIntrinsics(markers)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, output)

	return err
}
