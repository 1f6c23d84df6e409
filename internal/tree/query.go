// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package tree

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/theory/jsonpath"
	"github.com/theory/jsonpath/registry"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
)

// jsonpathParser is a package-level parser with RFC 9535 function extensions
var jsonpathParser = jsonpath.NewParser(jsonpath.WithRegistry(registry.New()))

// Query selects values from the JSON form of node. Expressions starting with
// "$" are JSONPath (RFC 9535); anything else is a gjson path such as
// "Resources.Bucket.Properties" or "Resources.@keys".
func Query(node *yaml.Node, reg *intrinsic.Registry, expr string) ([]any, error) {
	data, err := EncodeJSON(node, reg, false)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(expr, "$") {
		path, err := jsonpathParser.Parse(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid JSONPath query %q: %w", expr, err)
		}

		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, err
		}

		return []any(path.Select(value)), nil
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("template is not valid JSON")
	}

	result := gjson.GetBytes(data, expr)
	if !result.Exists() {
		return nil, nil
	}

	return []any{result.Value()}, nil
}

// QueryNode is Query with the results converted back to a YAML node: a
// single match is returned as is and several matches as a sequence.
func QueryNode(node *yaml.Node, reg *intrinsic.Registry, expr string) (*yaml.Node, error) {
	results, err := Query(node, reg, expr)
	if err != nil {
		return nil, err
	}

	var value any = results
	if len(results) == 1 {
		value = results[0]
	}

	var out yaml.Node
	if err := out.Encode(value); err != nil {
		return nil, fmt.Errorf("encoding query result: %w", err)
	}

	return &out, nil
}
