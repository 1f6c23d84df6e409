// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package intrinsic

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the payload shape of an intrinsic function.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Function is a decoded intrinsic function node such as `!Sub "${AWS::Region}"`
// or `!Join [",", [a, b]]`. Exactly one of Scalar or Items is meaningful,
// depending on Kind.
type Function struct {
	Name   string
	Kind   Kind
	Scalar string
	Style  yaml.Style
	Items  []*yaml.Node
}

// Tag returns the local YAML tag of the function, e.g. "!Sub".
func (f *Function) Tag() string {
	return tagPrefix + f.Name
}

// Key returns the long-form JSON key of the function, e.g. "Fn::Sub".
func (f *Function) Key() string {
	return LongFormKey(f.Name)
}

func (f *Function) UnmarshalYAML(value *yaml.Node) error {
	name, ok := strings.CutPrefix(value.Tag, tagPrefix)
	if !ok || name == "" || strings.HasPrefix(name, "!") {
		return fmt.Errorf("node tagged %q is not an intrinsic function", value.Tag)
	}

	switch value.Kind {
	case yaml.ScalarNode:
		f.Name = name
		f.Kind = KindScalar
		f.Scalar = value.Value
		f.Style = value.Style &^ yaml.TaggedStyle
		f.Items = nil
	case yaml.SequenceNode:
		f.Name = name
		f.Kind = KindSequence
		f.Scalar = ""
		f.Style = value.Style &^ yaml.TaggedStyle
		f.Items = value.Content
	default:
		return &PayloadError{Tag: value.Tag, Line: value.Line, Column: value.Column}
	}

	return nil
}

func (f *Function) MarshalYAML() (any, error) {
	return f.Node(), nil
}

// Node re-encodes the function in short form, keeping the payload shape it was
// decoded with.
func (f *Function) Node() *yaml.Node {
	if f.Kind == KindSequence {
		return &yaml.Node{
			Kind:    yaml.SequenceNode,
			Tag:     f.Tag(),
			Style:   f.Style,
			Content: f.Items,
		}
	}

	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   f.Tag(),
		Style: f.Style,
		Value: f.Scalar,
	}
}

// LongForm returns the function as the single-key mapping CloudFormation
// accepts in JSON templates. The dotted scalar form of GetAtt is split into
// its resource and attribute parts.
func (f *Function) LongForm() *yaml.Node {
	var payload *yaml.Node

	switch {
	case f.Kind == KindSequence:
		payload = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: f.Items}
	case f.Name == "GetAtt":
		resource, attribute, _ := strings.Cut(f.Scalar, ".")
		payload = &yaml.Node{
			Kind: yaml.SequenceNode,
			Tag:  "!!seq",
			Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Tag: "!!str", Value: resource},
				{Kind: yaml.ScalarNode, Tag: "!!str", Value: attribute},
			},
		}
	default:
		payload = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Scalar, Style: f.Style}
	}

	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key()},
			payload,
		},
	}
}

// LongFormKey maps a function name to its long-form key. Ref and Condition are
// the only intrinsics without the Fn:: prefix.
func LongFormKey(name string) string {
	switch name {
	case "Ref", "Condition":
		return name
	default:
		return "Fn::" + name
	}
}

// PayloadError reports an intrinsic function whose payload is neither a scalar
// nor a sequence.
type PayloadError struct {
	Tag    string
	Line   int
	Column int
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("intrinsic %s at line %d, column %d: payload must be a scalar or a sequence", e.Tag, e.Line, e.Column)
}
