// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package fragment

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Loader reads fragment files and optionally expands their template
// directives before they are handed to the YAML parser.
type Loader struct {
	Preprocess bool
	Vars       map[string]any
}

func NewLoader(preprocess bool, vars map[string]any) *Loader {
	if vars == nil {
		vars = map[string]any{}
	}

	return &Loader{
		Preprocess: preprocess,
		Vars:       vars,
	}
}

type templateData struct {
	Vars map[string]any
	File string
	Name string
}

// Load returns the text of the fragment at path.
func (l *Loader) Load(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fragment paths come from the project directory
	if err != nil {
		return "", &LoadError{Path: path, Err: err}
	}

	if !l.Preprocess {
		return string(data), nil
	}

	slog.Debug("Preprocessing fragment", "path", path)

	return l.expand(path, string(data))
}

func (l *Loader) expand(path, text string) (string, error) {
	name := filepath.Base(path)

	tmpl, err := template.New(name).Funcs(l.funcs()).Parse(text)
	if err != nil {
		return "", &PreprocessError{Path: path, Err: err}
	}

	fragmentName := strings.SplitN(name, ".", 2)[0]
	if m := partialNamePattern.FindStringSubmatch(name); m != nil {
		fragmentName = m[1]
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, templateData{
		Vars: l.Vars,
		File: path,
		Name: fragmentName,
	})
	if err != nil {
		return "", &PreprocessError{Path: path, Err: err}
	}

	return buf.String(), nil
}

func (l *Loader) funcs() template.FuncMap {
	return template.FuncMap{
		"env": os.Getenv,
		"var": func(name string, fallback ...any) (any, error) {
			if v, ok := l.Vars[name]; ok {
				return v, nil
			}
			if v, ok := l.Vars[strings.ToLower(name)]; ok {
				return v, nil
			}
			if len(fallback) > 0 {
				return fallback[0], nil
			}
			return nil, fmt.Errorf("variable %q is not set", name)
		},
		"default": func(fallback, value any) any {
			if value == nil {
				return fallback
			}
			if s, ok := value.(string); ok && s == "" {
				return fallback
			}
			return value
		},
		"required": func(msg string, value any) (any, error) {
			if value == nil {
				return nil, fmt.Errorf("%s", msg)
			}
			if s, ok := value.(string); ok && s == "" {
				return nil, fmt.Errorf("%s", msg)
			}
			return value, nil
		},
		"indent": Indent,
		"quote": func(value any) string {
			return fmt.Sprintf("%q", fmt.Sprint(value))
		},
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
	}
}

// Indent prefixes every non-empty line of text with n spaces.
func Indent(n int, text string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = pad + line
	}

	return strings.Join(lines, "\n")
}
