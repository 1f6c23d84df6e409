// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/platform-engineering-labs/zenith"
	"github.com/platform-engineering-labs/zenith/internal/cli/build"
	"github.com/platform-engineering-labs/zenith/internal/cli/cmd"
	"github.com/platform-engineering-labs/zenith/internal/cli/config"
	"github.com/platform-engineering-labs/zenith/internal/cli/deps"
	"github.com/platform-engineering-labs/zenith/internal/cli/display"
	"github.com/platform-engineering-labs/zenith/internal/cli/intrinsics"
	"github.com/platform-engineering-labs/zenith/internal/cli/partials"
	"github.com/platform-engineering-labs/zenith/internal/cli/renderer"
	"github.com/platform-engineering-labs/zenith/internal/cli/watch"
	"github.com/platform-engineering-labs/zenith/internal/logging"
)

func longDescription() string {
	return display.Tool + ": " + display.Green("Compose YAML templates from partials shared by anchor and alias")
}

var rootCmd = &cobra.Command{
	Use:     display.Tool,
	Short:   display.Tool + " CLI",
	Long:    longDescription(),
	Version: zenith.Version,
	PersistentPreRunE: func(command *cobra.Command, args []string) error {
		level, _ := command.Flags().GetString("log-level")
		consoleLevel, err := logging.ParseLevel(level)
		if err != nil {
			return cmd.FlagErrorWrap(err)
		}

		if noColor, _ := command.Flags().GetBool("no-color"); noColor {
			display.DisableColor()
		}

		if err := config.Config.EnsureDataDirectory(); err != nil {
			slog.Warn("Logging to file disabled", "error", err)
		}

		logging.SetupClientLogging(logging.Config{
			FilePath:     config.Config.LogFilePath(),
			FileLevel:    slog.LevelDebug,
			ConsoleLevel: consoleLevel,
		})

		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	hp := rootCmd.HelpFunc()
	longestFlagName := 0
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		display.PrintBanner()
		hp(cmd, args)
	})

	rootCmd.SetHelpCommand(&cobra.Command{
		Hidden: true,
	})

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cobra.AddTemplateFunc("typeMap", func(cmds []*cobra.Command) map[string][]*cobra.Command {
		m := make(map[string][]*cobra.Command)
		for _, c := range cmds {
			if c.IsAvailableCommand() {
				t := c.Annotations["type"]
				if t == "" {
					t = "Tooling"
				}

				m[t] = append(m[t], c)
			}
		}
		return m
	})

	cobra.AddTemplateFunc("formatExamples", func(examples string, cmd *cobra.Command) string {
		cliName := cmd.Root().Name()
		cmdName := cmd.Name()
		replaced := strings.ReplaceAll(examples, "{{.Name}}", cliName)
		return strings.ReplaceAll(replaced, "{{.Command}}", cmdName)
	})

	cobra.AddTemplateFunc("optionsUsage", func(f *pflag.FlagSet) []string {
		var usage []string

		f.VisitAll(func(flag *pflag.Flag) {
			length := len(flag.Name)
			if flag.Shorthand != "" {
				length += 6
			}

			if length > longestFlagName {
				longestFlagName = length
			}
		})

		longestFlagName += 10

		f.VisitAll(func(flag *pflag.Flag) {
			s := fmt.Sprintf("      --%s ", flag.Name)
			if flag.Shorthand != "" {
				s = fmt.Sprintf("  -%s, --%s ", flag.Shorthand, flag.Name)
			}

			s = fmt.Sprintf("%-*s%s", longestFlagName, s, flag.Usage)
			if flag.DefValue != "" &&
				flag.DefValue != "[]" &&
				flag.DefValue != "false" &&
				flag.Name != "help" &&
				flag.Name != "version" {
				s += display.Grey(fmt.Sprintf(" [default: %q]", flag.DefValue))
			}

			usage = append(usage, s)
		})
		return usage
	})

	rootCmd.SetUsageTemplate(cmd.RootCmdUsageTemplate)

	rootCmd.AddCommand(build.BuildCmd())
	rootCmd.AddCommand(watch.WatchCmd())
	rootCmd.AddCommand(deps.DepsCmd())
	rootCmd.AddCommand(partials.PartialsCmd())
	rootCmd.AddCommand(intrinsics.IntrinsicsCmd())

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for "+rootCmd.Use)
	for _, cmd := range rootCmd.Commands() {
		cmd.PersistentFlags().BoolP("help", "h", false, fmt.Sprintf("Show help for %s command", cmd.Name()))
	}

	rootCmd.PersistentFlags().String("log-level", "warn", "Console log level (debug | info | warn | error | off)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show "+rootCmd.Use+" version information")
	rootCmd.SetVersionTemplate(fmt.Sprintf("zenith version: %s\ngo version: %s\n", zenith.Version, runtime.Version()))
}

func Start() {
	command, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	if cmd.IsFlagError(err) {
		fmt.Fprintln(os.Stderr, display.Red("Error: "+err.Error()))
		fmt.Fprintln(os.Stderr)
		_ = command.Usage()
		os.Exit(1)
	}

	fmt.Fprint(os.Stderr, renderer.RenderError(err))
	os.Exit(1)
}
