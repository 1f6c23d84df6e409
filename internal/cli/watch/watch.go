// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/zenith/internal/builder"
	"github.com/platform-engineering-labs/zenith/internal/cli/cmd"
	"github.com/platform-engineering-labs/zenith/internal/cli/display"
	"github.com/platform-engineering-labs/zenith/internal/cli/printer"
	"github.com/platform-engineering-labs/zenith/internal/cli/renderer"
	"github.com/platform-engineering-labs/zenith/internal/imconc"
	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
	"github.com/platform-engineering-labs/zenith/internal/util"
	"github.com/platform-engineering-labs/zenith/internal/watcher"
)

type WatchOptions struct {
	Dir          string
	Project      cmd.ProjectFlags
	OutputFile   string
	OutputSchema string
	Debounce     time.Duration
}

func validateWatchOptions(opts *WatchOptions) error {
	if opts.Dir == "" {
		return cmd.FlagErrorf("project directory is required")
	}
	if opts.OutputSchema != "" && !printer.ValidSchema(opts.OutputSchema) {
		return cmd.FlagErrorf("output-schema must be 'json' or 'yaml'")
	}
	if opts.Debounce < 0 {
		return cmd.FlagErrorf("debounce must not be negative")
	}

	return nil
}

func WatchCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the template of a project whenever a fragment changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			opts := &WatchOptions{}
			opts.Dir = cmd.ProjectDir(args)
			opts.Project = cmd.ProjectFlagsFromCmd(command)
			opts.OutputFile, _ = command.Flags().GetString("output-file")
			opts.OutputSchema, _ = command.Flags().GetString("output-schema")
			opts.Debounce, _ = command.Flags().GetDuration("debounce")

			ctx, stop := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, opts, command.OutOrStdout())
		},
		Annotations: map[string]string{
			"type":     "Build",
			"examples": "{{.Name}} {{.Command}} --output-file template.yaml  |  {{.Name}} {{.Command}} --var env=dev ./stack",
			"args":     "[project directory]",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	cmd.AddProjectFlags(command)
	command.Flags().String("output-file", "", "Write the template to this file instead of stdout")
	command.Flags().String("output-schema", "", "The schema to use for the template (yaml | json), defaults to the project setting")
	command.Flags().Duration("debounce", watcher.DefaultDebounce, "Quiet period after a change before rebuilding")

	return command
}

type session struct {
	builder    *builder.Builder
	outputFile string
	template   printer.TemplateOptions
	stdout     *printer.TemplatePrinter
	builds     int
}

// rebuild builds once. Failures are reported and leave the previous output in
// place.
func (s *session) rebuild() error {
	s.builds++

	comp, err := s.builder.Compose()
	if err != nil {
		slog.Error("Build failed", "dir", s.builder.Options().BaseDir, "error", err)
		fmt.Fprint(os.Stderr, renderer.RenderError(err))
		return err
	}

	if s.outputFile == "" {
		if err := s.stdout.Print(comp.Template); err != nil {
			slog.Error("Cannot print template", "build", comp.ID, "error", err)
			return err
		}
		return nil
	}

	data, err := printer.NewTemplatePrinter(io.Discard, intrinsic.Default, s.template).Render(comp.Template)
	if err != nil {
		slog.Error("Cannot serialize template", "build", comp.ID, "error", err)
		return err
	}

	if err := util.WriteFileAtomic(s.outputFile, data, 0o644); err != nil {
		slog.Error("Cannot write template", "file", s.outputFile, "error", err)
		return err
	}
	display.Success(fmt.Sprintf("build %s written to %s", comp.ID, s.outputFile))

	return nil
}

func runWatch(ctx context.Context, opts *WatchOptions, w io.Writer) error {
	if err := validateWatchOptions(opts); err != nil {
		return err
	}

	b, project, err := cmd.ProjectBuilder(opts.Dir, opts.Project)
	if err != nil {
		return err
	}

	schema := opts.OutputSchema
	if schema == "" {
		schema = project.OutputSchema
	}
	if !printer.ValidSchema(schema) {
		return fmt.Errorf("output-schema must be 'json' or 'yaml', project configuration has %q", schema)
	}

	outputFile := opts.OutputFile
	if outputFile == "" && project.Output != "" {
		outputFile = project.Output
		if !filepath.IsAbs(outputFile) {
			outputFile = filepath.Join(opts.Dir, outputFile)
		}
	}

	outputFile = util.ExpandHomePath(outputFile)

	template := printer.TemplateOptions{Schema: schema, Beautify: true}
	s := &session{
		builder:    b,
		outputFile: outputFile,
		template:   template,
		stdout:     printer.NewTemplatePrinter(w, intrinsic.Default, template),
	}

	wt, err := watcher.New(watcher.Config{
		Dirs:      []string{opts.Dir},
		Extension: b.Options().Extension,
		Debounce:  opts.Debounce,
	})
	if err != nil {
		return err
	}

	changes, err := wt.Start()
	if err != nil {
		wt.Stop(true)
		return err
	}

	group := imconc.NewConcGroup().Add(wt)

	_ = s.rebuild()
	slog.Info("Watching project", "dir", opts.Dir)

	group.Go(func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				slog.Debug("Rebuilding", "dir", opts.Dir, "build", s.builds+1)
				_ = s.rebuild()
			}
		}
	})

	<-ctx.Done()
	group.Stop(false)
	group.Wait()

	return nil
}
