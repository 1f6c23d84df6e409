// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package partial

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse_NoReferences(t *testing.T) {
	f, err := Parse("plain", "A: 1\nB: two\n")
	require.NoError(t, err)

	assert.Empty(t, f.References())
	require.NotNil(t, f.Root)
	assert.Equal(t, yaml.MappingNode, f.Root.Kind)
	assert.Len(t, f.Root.Content, 4)
}

func TestParse_ReferencesInFirstSeenOrder(t *testing.T) {
	f, err := Parse("refs", "A: *foo\nB: [*bar, *foo]\nC:\n  D: *baz\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"foo", "bar", "baz"}, f.References())
}

func TestParse_LocalAnchorsAreNotReferences(t *testing.T) {
	f, err := Parse("local", "x: &loc 1\ny: *loc\nz: *ext\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"ext"}, f.References())
	assert.Equal(t, []string{"loc"}, f.Anchors())
}

func TestParse_AnchorsSkipPlaceholders(t *testing.T) {
	f, err := Parse("nested", "a: &outer\n  b: &inner [1]\n  c: *inner\nd: *ext\ne: &outer 2\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"outer", "inner"}, f.Anchors())
	assert.Equal(t, []string{"ext"}, f.References())
}

func TestParse_ScalarAndAliasBodies(t *testing.T) {
	f, err := Parse("scalar", "bar")
	require.NoError(t, err)
	assert.Equal(t, yaml.ScalarNode, f.Root.Kind)
	assert.Equal(t, "bar", f.Root.Value)

	f, err = Parse("alias", "*foo")
	require.NoError(t, err)
	assert.Equal(t, yaml.AliasNode, f.Root.Kind)
	assert.Equal(t, []string{"foo"}, f.References())
}

func TestParse_TopLevelSequence(t *testing.T) {
	f, err := Parse("seq", "- *a\n- b\n- *c\n")
	require.NoError(t, err)

	assert.Equal(t, yaml.SequenceNode, f.Root.Kind)
	assert.Equal(t, []string{"a", "c"}, f.References())
}

func TestParse_LeadingDocumentMarker(t *testing.T) {
	f, err := Parse("doc", "---\nA: *x\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"x"}, f.References())
}

func TestParse_KeepsIntrinsicTags(t *testing.T) {
	f, err := Parse("tags", "Value: !Sub '${AWS::Region}'\nList: !GetAZs ''\n")
	require.NoError(t, err)

	assert.Equal(t, "!Sub", f.Root.Content[1].Tag)
	assert.Equal(t, "!GetAZs", f.Root.Content[3].Tag)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse("broken", "a: [1, 2\n")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "broken", parseErr.Fragment)
	assert.Contains(t, err.Error(), `cannot parse fragment "broken"`)
}

func TestTrimDocumentMarkers(t *testing.T) {
	assert.Equal(t, "a: 1", strings.TrimSpace(TrimDocumentMarkers("---\na: 1\n...\n")))
	assert.Equal(t, "a: 1", TrimDocumentMarkers("a: 1\n"))
	assert.Equal(t, "----foo", TrimDocumentMarkers("----foo"))
	assert.Equal(t, "", TrimDocumentMarkers("..."))
}

func TestShiftLineNumbers(t *testing.T) {
	err := shiftLineNumbers(errors.New("yaml: line 5: did not find expected key"))
	assert.EqualError(t, err, "yaml: line 3: did not find expected key")

	err = shiftLineNumbers(errors.New("yaml: line 1: mapping values are not allowed"))
	assert.EqualError(t, err, "yaml: line 1: mapping values are not allowed")
}
