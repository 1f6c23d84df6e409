// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partial

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/zenith/internal/fragment"
)

// stubLines is the number of lines parseWithStubs adds above the fragment text.
const stubLines = 2

var (
	unknownAnchorPattern = regexp.MustCompile(`unknown anchor '([^']*)' referenced`)
	lineNumberPattern    = regexp.MustCompile(`line (\d+)`)
)

// Fragment is the parsed form of one fragment's text.
type Fragment struct {
	Name string
	Root *yaml.Node

	refs    []string
	anchors []string
}

// References returns the names of anchors the fragment aliases without
// defining them itself, in first-seen order.
func (f *Fragment) References() []string {
	return append([]string(nil), f.refs...)
}

// Anchors returns the names of anchors the fragment defines, in first-seen
// order.
func (f *Fragment) Anchors() []string {
	return append([]string(nil), f.anchors...)
}

// Parse parses fragment text on its own. Aliases to anchors defined elsewhere
// (other partials) are bound to placeholder anchors so the text parses, and
// are recorded as references.
func Parse(name, text string) (*Fragment, error) {
	var stubs []string
	tried := make(map[string]bool)

	for {
		root, stubNodes, err := parseWithStubs(text, stubs)
		if err == nil {
			f := &Fragment{Name: name, Root: root}
			collectReferences(root, stubNodes, make(map[string]bool), &f.refs)
			collectAnchors(root, make(map[string]bool), &f.anchors)
			return f, nil
		}

		m := unknownAnchorPattern.FindStringSubmatch(err.Error())
		if m == nil || tried[m[1]] {
			return nil, &ParseError{Fragment: name, Err: shiftLineNumbers(err)}
		}

		tried[m[1]] = true
		stubs = append(stubs, m[1])
	}
}

func parseWithStubs(text string, stubs []string) (*yaml.Node, map[*yaml.Node]bool, error) {
	anchors := make([]string, len(stubs))
	for i, name := range stubs {
		anchors[i] = "&" + name + " ~"
	}

	var sb strings.Builder
	sb.WriteString("stubs: [" + strings.Join(anchors, ", ") + "]\n")
	sb.WriteString("body:\n")
	sb.WriteString(fragment.Indent(4, TrimDocumentMarkers(text)))
	sb.WriteString("\n")

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(sb.String()), &doc); err != nil {
		return nil, nil, err
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, nil, fmt.Errorf("fragment is not a single YAML document")
	}

	top := doc.Content[0]
	if top.Kind != yaml.MappingNode || len(top.Content) != 4 {
		return nil, nil, fmt.Errorf("fragment is not a single YAML document")
	}

	stubNodes := make(map[*yaml.Node]bool, len(stubs))
	for _, n := range top.Content[1].Content {
		stubNodes[n] = true
	}

	return top.Content[3], stubNodes, nil
}

func collectReferences(n *yaml.Node, stubs map[*yaml.Node]bool, seen map[string]bool, out *[]string) {
	if n == nil {
		return
	}

	if n.Kind == yaml.AliasNode {
		if stubs[n.Alias] && !seen[n.Value] {
			seen[n.Value] = true
			*out = append(*out, n.Value)
		}
		return
	}

	for _, child := range n.Content {
		collectReferences(child, stubs, seen, out)
	}
}

func collectAnchors(n *yaml.Node, seen map[string]bool, out *[]string) {
	if n == nil || n.Kind == yaml.AliasNode {
		return
	}

	if n.Anchor != "" && !seen[n.Anchor] {
		seen[n.Anchor] = true
		*out = append(*out, n.Anchor)
	}

	for _, child := range n.Content {
		collectAnchors(child, seen, out)
	}
}

// TrimDocumentMarkers drops a leading "---" line and a trailing "..." line so
// the text can be embedded under a mapping key.
func TrimDocumentMarkers(text string) string {
	trimmed := strings.TrimLeft(text, "\n")
	if rest, ok := strings.CutPrefix(trimmed, "---"); ok && (rest == "" || rest[0] == '\n' || rest[0] == ' ') {
		text = strings.TrimPrefix(rest, " ")
	}

	text = strings.TrimRight(text, "\n")
	if rest, ok := strings.CutSuffix(text, "\n..."); ok {
		text = rest
	} else if text == "..." {
		text = ""
	}

	return text
}

func shiftLineNumbers(err error) error {
	msg := lineNumberPattern.ReplaceAllStringFunc(err.Error(), func(s string) string {
		n, convErr := strconv.Atoi(strings.TrimPrefix(s, "line "))
		if convErr != nil || n <= stubLines {
			return s
		}
		return "line " + strconv.Itoa(n-stubLines)
	})

	return fmt.Errorf("%s", msg)
}
