// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package tree

import (
	"bytes"
	"fmt"
	"math"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
)

// EncodeYAML serializes node with a two space indent.
func EncodeYAML(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(node); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}

	return buf.Bytes(), nil
}

// EncodeJSON serializes node as JSON with mapping key order preserved.
// Intrinsic functions registered in registry are written in long form; other
// local tags are dropped and their values kept.
func EncodeJSON(node *yaml.Node, registry *intrinsic.Registry, pretty bool) ([]byte, error) {
	long, err := LongForm(node, registry)
	if err != nil {
		return nil, err
	}

	value, err := toValue(long)
	if err != nil {
		return nil, err
	}

	if pretty {
		return json.MarshalIndent(value, "", "  ")
	}

	return json.Marshal(value)
}

type member struct {
	key   string
	value any
}

// object is a JSON object that keeps the key order of the YAML mapping it was
// built from.
type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func toValue(n *yaml.Node) (any, error) {
	if n == nil {
		return nil, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return toValue(n.Content[0])
	case yaml.AliasNode:
		return toValue(n.Alias)
	case yaml.MappingNode:
		obj := make(object, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("mapping key at line %d is not a scalar and cannot be written as JSON", key.Line)
			}

			value, err := toValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj = append(obj, member{key: key.Value, value: value})
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			value, err := toValue(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		return arr, nil
	case yaml.ScalarNode:
		if IsLocalTag(n.Tag) {
			return n.Value, nil
		}

		var value any
		if err := n.Decode(&value); err != nil {
			return nil, fmt.Errorf("decoding scalar at line %d: %w", n.Line, err)
		}
		if f, ok := value.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return nil, fmt.Errorf("scalar %q at line %d has no JSON representation", n.Value, n.Line)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}
