// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package builder

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/zenith/internal/fragment"
	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
	"github.com/platform-engineering-labs/zenith/internal/partial"
	"github.com/platform-engineering-labs/zenith/internal/tree"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return dir
}

func newBuilder(dir string) *Builder {
	opts := DefaultOptions()
	opts.BaseDir = dir
	return New(opts)
}

func TestBuildText_ExpandsReference(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.yml.tmpl": "A: *foo\n",
		"_foo.yml.tmpl": "bar\n",
	})

	out, err := newBuilder(dir).BuildText()
	require.NoError(t, err)

	assert.Equal(t, "A: bar\n", out)
	assert.NotContains(t, out, "&")
	assert.NotContains(t, out, "*")
}

func TestBuildText_TransitiveReferencesAndIntrinsics(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.yml.tmpl":   "Resources:\n  Bucket: *bucket\n",
		"_bucket.yml.tmpl": "Type: AWS::S3::Bucket\nProperties:\n  BucketName: !Sub '${AWS::StackName}-data'\n  Tags: *tags\n",
		"_tags.yml.tmpl":   "- Key: team\n  Value: platform\n",
	})

	out, err := newBuilder(dir).BuildText()
	require.NoError(t, err)

	expected := "Resources:\n" +
		"  Bucket:\n" +
		"    Type: AWS::S3::Bucket\n" +
		"    Properties:\n" +
		"      BucketName: !Sub '${AWS::StackName}-data'\n" +
		"      Tags:\n" +
		"        - Key: team\n" +
		"          Value: platform\n"
	assert.Equal(t, expected, out)
}

func TestCompose_OrdersPartials(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.yml.tmpl":    "Top: *a\n",
		"_a.yml.tmpl":      "Inner: *b\n",
		"_b.yml.tmpl":      "leaf\n",
		"_unused.yml.tmpl": "spare\n",
	})

	comp, err := newBuilder(dir).Compose()
	require.NoError(t, err)

	var names []string
	for _, p := range comp.Partials {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"b", "a", "unused"}, names)
	assert.Equal(t, []string{"a"}, comp.Main.References())
	assert.NotEmpty(t, comp.ID)
	assert.Equal(t, filepath.Join(dir, "_a.yml.tmpl"), comp.Paths["a"])
	assert.Equal(t, []string{"b"}, comp.Graph.Edges()["a"])
	assert.Contains(t, comp.Text, "  b: &b\n    leaf\n  a: &a\n")
}

func TestCompose_DeepCopy(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.yml.tmpl": "A: *foo\nB: *foo\n",
		"_foo.yml.tmpl": "x: 1\n",
	})

	node, err := newBuilder(dir).Build()
	require.NoError(t, err)

	a, b := node.Content[1], node.Content[3]
	require.NotSame(t, a, b)
	a.Content[1].Value = "2"
	assert.Equal(t, "1", b.Content[1].Value)
}

func TestCompose_Cycle(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.yml.tmpl": "X: 1\n",
		"_a.yml.tmpl":   "*b\n",
		"_b.yml.tmpl":   "*a\n",
	})

	_, err := newBuilder(dir).Compose()
	require.Error(t, err)

	var cycleErr *partial.CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Contains(t, cycleErr.Path, "a")
	assert.Contains(t, cycleErr.Path, "b")
}

func TestCompose_LocalAnchorNamedLikePartial(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.yml.tmpl": "A: *b\n",
		"_b.yml.tmpl":   "real-b\n",
		"_z.yml.tmpl":   "x: &b local-in-z\n",
	})

	out, err := newBuilder(dir).BuildText()

	var anchorErr *partial.AnchorConflictError
	require.ErrorAs(t, err, &anchorErr)
	assert.Equal(t, "z", anchorErr.Fragment)
	assert.Equal(t, "b", anchorErr.Anchor)
	assert.Empty(t, out)
}

func TestCompose_MainAnchorNamedLikePartial(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.yml.tmpl": "X: &foo 1\nA: *foo\n",
		"_foo.yml.tmpl": "bar\n",
	})

	_, err := newBuilder(dir).Compose()

	var anchorErr *partial.AnchorConflictError
	require.ErrorAs(t, err, &anchorErr)
	assert.Equal(t, "main", anchorErr.Fragment)
}

func TestCompose_LocalAnchorsWithOtherNames(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.yml.tmpl": "A: *b\nB: *z\n",
		"_b.yml.tmpl":   "real-b\n",
		"_z.yml.tmpl":   "x: &shared local\ny: *shared\n",
	})

	out, err := newBuilder(dir).BuildText()
	require.NoError(t, err)
	assert.Equal(t, "A: real-b\nB:\n  x: local\n  y: local\n", out)
}

func TestCompose_DuplicatePartialNames(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.yml.tmpl":    "A: *foo\n",
		"_foo.yml.tmpl":    "one\n",
		"_foo.v2.yml.tmpl": "two\n",
	})

	_, err := newBuilder(dir).Compose()

	var dupErr *fragment.DuplicateError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "foo", dupErr.Name)
}

func TestCompose_MissingMain(t *testing.T) {
	dir := writeProject(t, map[string]string{"_foo.yml.tmpl": "bar\n"})

	_, err := newBuilder(dir).Compose()

	var loadErr *fragment.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, filepath.Join(dir, "main.yml.tmpl"), loadErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCompose_UnknownReferenceIsLoadError(t *testing.T) {
	dir := writeProject(t, map[string]string{"main.yml.tmpl": "A: *ghost\n"})

	_, err := newBuilder(dir).Compose()

	var loadErr *fragment.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, filepath.Join(dir, "_ghost.yml.tmpl"), loadErr.Path)
}

func TestCompose_UnparsablePartial(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.yml.tmpl": "A: 1\n",
		"_bad.yml.tmpl": "a: [1\n",
	})

	_, err := newBuilder(dir).Compose()

	var parseErr *partial.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "bad", parseErr.Fragment)
}

func TestCompose_Preprocess(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.yml.tmpl": "Env: *env\n",
		"_env.yml.tmpl": "name-{{ var \"env\" }}\n",
	})

	opts := DefaultOptions()
	opts.BaseDir = dir
	opts.Vars = map[string]any{"env": "prod"}

	out, err := New(opts).BuildText()
	require.NoError(t, err)
	assert.Equal(t, "Env: name-prod\n", out)

	opts.Preprocess = false
	out, err = New(opts).BuildText()
	require.NoError(t, err)
	assert.Contains(t, out, "{{")

	opts.Preprocess = true
	out, err = New(opts, WithLoader(fragment.NewLoader(true, map[string]any{"env": "dev"}))).BuildText()
	require.NoError(t, err)
	assert.Equal(t, "Env: name-dev\n", out)
}

func TestCompose_DocumentMarkers(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.yml.tmpl": "---\nA: *foo\n",
		"_foo.yml.tmpl": "---\nB: 1\n",
	})

	out, err := newBuilder(dir).BuildText()
	require.NoError(t, err)
	assert.Equal(t, "A:\n  B: 1\n", out)
}

func TestCompose_StrictTags(t *testing.T) {
	dir := writeProject(t, map[string]string{"main.yml.tmpl": "A: !Custom x\n"})

	opts := DefaultOptions()
	opts.BaseDir = dir
	opts.StrictTags = true

	_, err := New(opts, WithRegistry(intrinsic.NewRegistry())).Compose()

	var tagErr *tree.UnknownTagError
	require.True(t, errors.As(err, &tagErr))

	opts.StrictTags = false
	out, err := New(opts).BuildText()
	require.NoError(t, err)
	assert.Equal(t, "A: !Custom x\n", out)
}

func TestCompose_CustomMainAndExtension(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"stack.yaml": "A: *x\n",
		"_x.yaml":    "1\n",
	})

	opts := Options{BaseDir: dir, MainName: "stack", Extension: ".yaml"}
	out, err := New(opts).BuildText()
	require.NoError(t, err)
	assert.Equal(t, "A: 1\n", out)
}

func TestNew_InstallsRegistry(t *testing.T) {
	registry := intrinsic.NewRegistry()
	New(DefaultOptions(), WithRegistry(registry))

	assert.True(t, registry.IsInstalled())
}

func TestRenderComposite(t *testing.T) {
	foo, err := partial.New("foo", "bar\n", nil)
	require.NoError(t, err)

	assert.Equal(t, "partials:\n  foo: &foo\n    bar\ntemplate:\n  A: *foo\n", RenderComposite([]*partial.Partial{foo}, "A: *foo\n"))
	assert.Equal(t, "partials: {}\ntemplate:\n  A: 1\n", RenderComposite(nil, "A: 1"))
}

func TestBuildAll(t *testing.T) {
	first := writeProject(t, map[string]string{"main.yml.tmpl": "Name: *n\n", "_n.yml.tmpl": "first\n"})
	second := writeProject(t, map[string]string{"main.yml.tmpl": "Name: *n\n", "_n.yml.tmpl": "second\n"})

	comps, err := BuildAll([]*Builder{newBuilder(first), newBuilder(second)})
	require.NoError(t, err)
	require.Len(t, comps, 2)
	assert.Equal(t, first, comps[0].Dir)
	assert.Equal(t, "first", comps[0].Template.Content[1].Value)
	assert.Equal(t, "second", comps[1].Template.Content[1].Value)
	assert.NotEqual(t, comps[0].ID, comps[1].ID)

	broken := writeProject(t, map[string]string{"_n.yml.tmpl": "x\n"})
	_, err = BuildAll([]*Builder{newBuilder(first), newBuilder(broken)})
	assert.Error(t, err)
}
