// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
)

type Report struct {
	Order []string            `json:"order" yaml:"order"`
	Edges map[string][]string `json:"edges" yaml:"edges"`
}

func TestMachineReadablePrinter(t *testing.T) {
	report := Report{
		Order: []string{"tags", "bucket"},
		Edges: map[string][]string{"bucket": {"tags"}},
	}

	t.Run("prints json objects", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		printer := NewMachineReadablePrinter[Report](buf, "json")
		err := printer.Print(&report)
		assert.NoError(t, err)
		assert.Equal(t, `{"order":["tags","bucket"],"edges":{"bucket":["tags"]}}`+"\n", buf.String())
	})

	t.Run("prints yaml", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		printer := NewMachineReadablePrinter[Report](buf, "yaml")
		err := printer.Print(&report)
		assert.NoError(t, err)

		var result Report
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, report, result)
		assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		err := NewMachineReadablePrinter[Report](bytes.NewBuffer(nil), "toml").Print(&report)
		assert.EqualError(t, err, "unsupported format: toml")
	})
}

func parseTemplate(t *testing.T, src string) *yaml.Node {
	t.Helper()

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	return doc.Content[0]
}

func registry() *intrinsic.Registry {
	r := intrinsic.NewRegistry()
	r.Install()
	return r
}

func TestTemplatePrinter(t *testing.T) {
	node := parseTemplate(t, "Outputs:\n  Arn:\n    Value: !GetAtt Bucket.Arn\n")

	t.Run("yaml keeps short form", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		require.NoError(t, NewTemplatePrinter(buf, registry(), TemplateOptions{Schema: SchemaYAML}).Print(node))
		assert.Equal(t, "Outputs:\n  Arn:\n    Value: !GetAtt Bucket.Arn\n", buf.String())
	})

	t.Run("json uses long form", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		require.NoError(t, NewTemplatePrinter(buf, registry(), TemplateOptions{Schema: SchemaJSON}).Print(node))
		assert.Equal(t, `{"Outputs":{"Arn":{"Value":{"Fn::GetAtt":["Bucket","Arn"]}}}}`+"\n", buf.String())
	})

	t.Run("query selects a subtree", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		p := NewTemplatePrinter(buf, registry(), TemplateOptions{Schema: SchemaJSON, Query: "$.Outputs.Arn.Value"})
		require.NoError(t, p.Print(node))
		assert.Equal(t, `{"Fn::GetAtt":["Bucket","Arn"]}`+"\n", buf.String())
	})

	t.Run("separates yaml documents", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		p := NewTemplatePrinter(buf, registry(), TemplateOptions{Schema: SchemaYAML})
		require.NoError(t, p.Print(parseTemplate(t, "A: 1\n")))
		require.NoError(t, p.Print(parseTemplate(t, "B: 2\n")))
		assert.Equal(t, "A: 1\n---\nB: 2\n", buf.String())
	})

	t.Run("colorize adds escape codes", func(t *testing.T) {
		out, err := NewTemplatePrinter(nil, registry(), TemplateOptions{Schema: SchemaYAML, Colorize: true}).Render(node)
		require.NoError(t, err)
		assert.Contains(t, string(out), "\x1b[")
		assert.Contains(t, string(out), "Bucket.Arn")
	})
}
