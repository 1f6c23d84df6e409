// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/masterminds/semver"
	"github.com/spf13/viper"

	"github.com/platform-engineering-labs/zenith"
	"github.com/platform-engineering-labs/zenith/internal/fragment"
)

const envPrefix = "ZENITH"

// Project is the optional zenith.yaml of a project directory. Keys are case
// insensitive, so variable names are lowercased.
type Project struct {
	Main         string         `mapstructure:"main"`
	Extension    string         `mapstructure:"extension"`
	Preprocess   bool           `mapstructure:"preprocess"`
	StrictTags   bool           `mapstructure:"strict_tags"`
	Output       string         `mapstructure:"output"`
	OutputSchema string         `mapstructure:"output_schema"`
	Requires     string         `mapstructure:"requires"`
	Vars         map[string]any `mapstructure:"vars"`

	// File is the configuration file that was read, empty when none exists.
	File string `mapstructure:"-"`
}

func DefaultProject() *Project {
	return &Project{
		Main:         fragment.DefaultMainName,
		Extension:    fragment.DefaultExtension,
		Preprocess:   true,
		OutputSchema: "yaml",
		Vars:         map[string]any{},
	}
}

// LoadProject reads the project configuration of dir. An explicit file must
// exist; otherwise dir/zenith.yaml is read when present. Environment
// variables prefixed ZENITH_ override file values.
func LoadProject(dir, file string) (*Project, error) {
	defaults := DefaultProject()

	v := viper.New()
	v.SetDefault("main", defaults.Main)
	v.SetDefault("extension", defaults.Extension)
	v.SetDefault("preprocess", defaults.Preprocess)
	v.SetDefault("strict_tags", defaults.StrictTags)
	v.SetDefault("output", "")
	v.SetDefault("output_schema", defaults.OutputSchema)
	v.SetDefault("requires", "")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		candidate := filepath.Join(dir, zenith.ProjectFileName)
		if _, err := os.Stat(candidate); err == nil {
			file = candidate
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("checking project config %s: %w", candidate, err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading project config %s: %w", file, err)
		}
	}

	project := &Project{}
	if err := v.Unmarshal(project); err != nil {
		return nil, fmt.Errorf("decoding project config %s: %w", file, err)
	}
	project.File = v.ConfigFileUsed()
	if project.Vars == nil {
		project.Vars = map[string]any{}
	}

	return project, nil
}

// CheckRequires verifies that version satisfies the project's requires
// constraint, e.g. ">= 0.3, < 1.0".
func (p *Project) CheckRequires(version string) error {
	if strings.TrimSpace(p.Requires) == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(p.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", p.Requires, err)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid zenith version %q: %w", version, err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("project requires zenith %s, running %s", p.Requires, version)
	}

	return nil
}
