// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package printer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type Consumer string

const (
	ConsumerHuman   Consumer = "human"
	ConsumerMachine Consumer = "machine"
)

const (
	SchemaYAML = "yaml"
	SchemaJSON = "json"
)

func ValidSchema(schema string) bool {
	return schema == SchemaYAML || schema == SchemaJSON
}

// MachineReadablePrinter writes reports such as dependency orders as JSON or
// YAML.
type MachineReadablePrinter[T any] struct {
	w      io.Writer
	format string
}

func NewMachineReadablePrinter[T any](w io.Writer, format string) *MachineReadablePrinter[T] {
	return &MachineReadablePrinter[T]{
		w:      w,
		format: format,
	}
}

func (p *MachineReadablePrinter[T]) Print(v *T) error {
	var data []byte
	var err error
	switch p.format {
	case SchemaJSON:
		data, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
	case SchemaYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(v); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		if err = enc.Close(); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	_, err = p.w.Write(data)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Highlight colours serialized output for a terminal.
func Highlight(code []byte, schema string) ([]byte, error) {
	var buf bytes.Buffer
	err := quick.Highlight(&buf, string(code), schema, "terminal", "vim")
	if err != nil {
		return nil, fmt.Errorf("highlight %s: %w", schema, err)
	}

	return buf.Bytes(), nil
}
