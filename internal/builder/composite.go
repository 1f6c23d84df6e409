// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package builder

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/zenith/internal/fragment"
	"github.com/platform-engineering-labs/zenith/internal/partial"
)

const (
	partialsKey = "partials"
	templateKey = "template"
)

// RenderComposite writes the single document in which every partial is bound
// to an anchor of its own name ahead of the main body, so that the YAML parser
// resolves every reference.
func RenderComposite(ordered []*partial.Partial, main string) string {
	var sb strings.Builder

	sb.WriteString(partialsKey + ":")
	if len(ordered) == 0 {
		sb.WriteString(" {}")
	}
	sb.WriteString("\n")

	for _, p := range ordered {
		fmt.Fprintf(&sb, "  %s: &%s\n", p.Name(), p.Name())
		if body := fragment.Indent(4, partial.TrimDocumentMarkers(p.Text())); strings.TrimSpace(body) != "" {
			sb.WriteString(body)
			sb.WriteString("\n")
		}
	}

	sb.WriteString(templateKey + ":\n")
	if body := fragment.Indent(2, partial.TrimDocumentMarkers(main)); strings.TrimSpace(body) != "" {
		sb.WriteString(body)
		sb.WriteString("\n")
	}

	return sb.String()
}

// extractTemplate parses the composite text and returns the node under the
// template key, aliases still in place.
func extractTemplate(text string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &partial.ParseError{Fragment: "composite", Err: err}
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("composite document is not a mapping")
	}

	top := doc.Content[0]
	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value == templateKey {
			return top.Content[i+1], nil
		}
	}

	return nil, fmt.Errorf("composite document has no %s entry", templateKey)
}
