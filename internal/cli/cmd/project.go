// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cmd

import (
	"maps"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/zenith"
	"github.com/platform-engineering-labs/zenith/internal/builder"
	"github.com/platform-engineering-labs/zenith/internal/cli/config"
	"github.com/platform-engineering-labs/zenith/internal/util"
)

// ProjectFlags are the flags shared by every command that builds a project.
// Zero values mean "not given" and leave the project configuration in place.
type ProjectFlags struct {
	ConfigFile   string
	Main         string
	Extension    string
	NoPreprocess bool
	StrictTags   bool
	Vars         []string
}

func AddProjectFlags(command *cobra.Command) {
	command.Flags().String("config", "", "Project configuration file (defaults to <dir>/"+zenith.ProjectFileName+")")
	command.Flags().String("main", "", "Base name of the main fragment")
	command.Flags().String("extension", "", "Fragment file extension")
	command.Flags().Bool("no-preprocess", false, "Skip the template preprocessing pass")
	command.Flags().Bool("strict-tags", false, "Reject local tags that are not intrinsic functions")
	command.Flags().StringArray("var", nil, "Template variable as key=value (repeatable)")
}

func ProjectFlagsFromCmd(command *cobra.Command) ProjectFlags {
	var flags ProjectFlags
	flags.ConfigFile, _ = command.Flags().GetString("config")
	flags.Main, _ = command.Flags().GetString("main")
	flags.Extension, _ = command.Flags().GetString("extension")
	flags.NoPreprocess, _ = command.Flags().GetBool("no-preprocess")
	flags.StrictTags, _ = command.Flags().GetBool("strict-tags")
	flags.Vars, _ = command.Flags().GetStringArray("var")

	return flags
}

// ResolveProject loads the configuration of dir and applies flags on top of
// it, returning the builder options for the directory.
func ResolveProject(dir string, flags ProjectFlags) (builder.Options, *config.Project, error) {
	project, err := config.LoadProject(dir, util.ExpandHomePath(flags.ConfigFile))
	if err != nil {
		return builder.Options{}, nil, err
	}

	if err := project.CheckRequires(zenith.Version); err != nil {
		return builder.Options{}, nil, err
	}

	vars, err := util.ParseAssignments(flags.Vars)
	if err != nil {
		return builder.Options{}, nil, FlagErrorWrap(err)
	}

	opts := builder.Options{
		BaseDir:    dir,
		MainName:   project.Main,
		Extension:  project.Extension,
		Preprocess: project.Preprocess && !flags.NoPreprocess,
		StrictTags: project.StrictTags || flags.StrictTags,
		Vars:       maps.Clone(project.Vars),
	}
	if flags.Main != "" {
		opts.MainName = flags.Main
	}
	if flags.Extension != "" {
		opts.Extension = flags.Extension
	}
	if opts.Vars == nil {
		opts.Vars = map[string]any{}
	}
	maps.Copy(opts.Vars, vars)

	return opts, project, nil
}

// ProjectBuilder returns a builder for dir configured from its project file
// and flags.
func ProjectBuilder(dir string, flags ProjectFlags) (*builder.Builder, *config.Project, error) {
	opts, project, err := ResolveProject(dir, flags)
	if err != nil {
		return nil, nil, err
	}

	return builder.New(opts), project, nil
}

// ProjectDir returns the single directory argument of a command, "." when none
// was given.
func ProjectDir(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return "."
	}

	return args[0]
}
