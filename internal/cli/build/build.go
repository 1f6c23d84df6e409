// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package build

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/zenith/internal/builder"
	"github.com/platform-engineering-labs/zenith/internal/cli/cmd"
	"github.com/platform-engineering-labs/zenith/internal/cli/config"
	"github.com/platform-engineering-labs/zenith/internal/cli/display"
	"github.com/platform-engineering-labs/zenith/internal/cli/printer"
	"github.com/platform-engineering-labs/zenith/internal/cli/renderer"
	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
	"github.com/platform-engineering-labs/zenith/internal/util"
)

type BuildOptions struct {
	Dirs         []string
	Project      cmd.ProjectFlags
	OutputSchema string
	OutputFile   string
	Query        string
	Beautify     bool
	Colorize     bool
	LongForm     bool
}

func validateBuildOptions(opts *BuildOptions) error {
	if len(opts.Dirs) == 0 {
		return cmd.FlagErrorf("at least one project directory is required")
	}
	if opts.OutputSchema != "" && !printer.ValidSchema(opts.OutputSchema) {
		return cmd.FlagErrorf("output-schema must be 'json' or 'yaml'")
	}
	if opts.OutputFile != "" && len(opts.Dirs) > 1 {
		return cmd.FlagErrorf("output-file can only be used with a single project directory")
	}
	if opts.LongForm && opts.OutputSchema == printer.SchemaJSON {
		return cmd.FlagErrorf("long-form only applies to yaml output, json output is always in long form")
	}

	return nil
}

func BuildCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "build",
		Short: "Build the template of one or more projects",
		RunE: func(command *cobra.Command, args []string) error {
			opts := &BuildOptions{}
			opts.Dirs = args
			if len(opts.Dirs) == 0 {
				opts.Dirs = []string{"."}
			}
			opts.Project = cmd.ProjectFlagsFromCmd(command)
			opts.OutputSchema, _ = command.Flags().GetString("output-schema")
			opts.OutputFile, _ = command.Flags().GetString("output-file")
			opts.Query, _ = command.Flags().GetString("query")
			opts.Beautify, _ = command.Flags().GetBool("beautify")
			opts.Colorize, _ = command.Flags().GetBool("colorize")
			opts.LongForm, _ = command.Flags().GetBool("long-form")

			return runBuild(opts, command.OutOrStdout())
		},
		Annotations: map[string]string{
			"type":     "Build",
			"examples": "{{.Name}} {{.Command}}  |  {{.Name}} {{.Command}} --var env=prod --output-file template.yaml ./stack  |  {{.Name}} {{.Command}} --output-schema json --query '$.Resources' a b",
			"args":     "[project directory...]",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	cmd.AddProjectFlags(command)
	command.Flags().String("output-schema", "", "The schema to use for the template (yaml | json), defaults to the project setting")
	command.Flags().String("output-file", "", "Write the template to this file instead of stdout")
	command.Flags().String("query", "", "Print only the part of the template selected by a JSONPath ($...) or path expression")
	command.Flags().Bool("beautify", true, "Indent json output")
	command.Flags().Bool("colorize", false, "Colorize output written to the terminal")
	command.Flags().Bool("long-form", false, "Write intrinsic functions in their Fn:: long form in yaml output")

	return command
}

type target struct {
	builder *builder.Builder
	project *config.Project
}

func runBuild(opts *BuildOptions, w io.Writer) error {
	if err := validateBuildOptions(opts); err != nil {
		return err
	}

	targets := make([]target, len(opts.Dirs))
	builders := make([]*builder.Builder, len(opts.Dirs))
	for i, dir := range opts.Dirs {
		b, project, err := cmd.ProjectBuilder(dir, opts.Project)
		if err != nil {
			return err
		}
		targets[i] = target{builder: b, project: project}
		builders[i] = b
	}

	schema := opts.OutputSchema
	outputFile := opts.OutputFile
	if len(targets) == 1 {
		project := targets[0].project
		if schema == "" {
			schema = project.OutputSchema
		}
		if outputFile == "" && project.Output != "" {
			outputFile = project.Output
			if !filepath.IsAbs(outputFile) {
				outputFile = filepath.Join(opts.Dirs[0], outputFile)
			}
		}
	}
	if schema == "" {
		schema = printer.SchemaYAML
	}
	outputFile = util.ExpandHomePath(outputFile)
	if opts.Colorize && outputFile != "" {
		display.Warning("colorize is ignored when writing to a file")
	}
	if !printer.ValidSchema(schema) {
		return fmt.Errorf("output-schema must be 'json' or 'yaml', project configuration has %q", schema)
	}

	comps, err := builder.BuildAll(builders)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	p := printer.NewTemplatePrinter(&buf, intrinsic.Default, printer.TemplateOptions{
		Schema:   schema,
		Beautify: opts.Beautify,
		Colorize: opts.Colorize && outputFile == "",
		LongForm: opts.LongForm,
		Query:    opts.Query,
	})
	for _, comp := range comps {
		if err := p.Print(comp.Template); err != nil {
			return fmt.Errorf("cannot serialize template of %s: %w", comp.Dir, err)
		}
	}

	if outputFile == "" {
		_, err := w.Write(buf.Bytes())
		return err
	}

	if err := util.WriteFileAtomic(outputFile, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cannot write template: %w", err)
	}

	summary, err := renderer.RenderBuildSummary(comps, outputFile)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stderr, summary)

	return nil
}
