// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package printer

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
	"github.com/platform-engineering-labs/zenith/internal/tree"
)

type TemplateOptions struct {
	Schema   string
	Beautify bool
	Colorize bool
	LongForm bool
	Query    string
}

// TemplatePrinter serializes built templates. Several templates written to the
// same printer are separated as YAML documents, or one JSON value per line.
type TemplatePrinter struct {
	w        io.Writer
	registry *intrinsic.Registry
	opts     TemplateOptions
	count    int
}

func NewTemplatePrinter(w io.Writer, registry *intrinsic.Registry, opts TemplateOptions) *TemplatePrinter {
	return &TemplatePrinter{
		w:        w,
		registry: registry,
		opts:     opts,
	}
}

// Render serializes node without writing it.
func (p *TemplatePrinter) Render(node *yaml.Node) ([]byte, error) {
	var err error

	if p.opts.Query != "" {
		node, err = tree.QueryNode(node, p.registry, p.opts.Query)
		if err != nil {
			return nil, err
		}
	}

	var data []byte
	switch p.opts.Schema {
	case SchemaJSON:
		data, err = tree.EncodeJSON(node, p.registry, p.opts.Beautify)
	case SchemaYAML, "":
		if p.opts.LongForm {
			node, err = tree.LongForm(node, p.registry)
			if err != nil {
				return nil, err
			}
		}
		data, err = tree.EncodeYAML(node)
	default:
		return nil, fmt.Errorf("unsupported format: %s", p.opts.Schema)
	}
	if err != nil {
		return nil, err
	}

	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}

	if p.opts.Colorize {
		schema := p.opts.Schema
		if schema == "" {
			schema = SchemaYAML
		}
		return Highlight(data, schema)
	}

	return data, nil
}

func (p *TemplatePrinter) Print(node *yaml.Node) error {
	data, err := p.Render(node)
	if err != nil {
		return err
	}

	if p.count > 0 && p.opts.Schema != SchemaJSON {
		if _, err := io.WriteString(p.w, "---\n"); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	p.count++

	if _, err := p.w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
