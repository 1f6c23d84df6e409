// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package fragment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartialName(t *testing.T) {
	tests := []struct {
		file string
		name string
		ok   bool
	}{
		{file: "_foo.yml.tmpl", name: "foo", ok: true},
		{file: "_network-core.yml.tmpl", name: "network-core", ok: true},
		{file: "_foo.extra.yml.tmpl", name: "foo", ok: true},
		{file: "main.yml.tmpl", ok: false},
		{file: "_foo.yml", ok: false},
		{file: "_.yml.tmpl", ok: false},
		{file: "foo_.yml.tmpl", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			name, ok := PartialName(tt.file, DefaultExtension)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"_b.yml.tmpl", "_a.yml.tmpl", "main.yml.tmpl", "_c.json", "README.md"} {
		writeFile(t, dir, name, "x\n")
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "_d.yml.tmpl"), 0755))

	matches, err := Discover(dir, DefaultExtension)
	require.NoError(t, err)

	assert.Equal(t, []Match{
		{Name: "a", Path: filepath.Join(dir, "_a.yml.tmpl")},
		{Name: "b", Path: filepath.Join(dir, "_b.yml.tmpl")},
	}, matches)
}

func TestDiscover_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "_foo.yml.tmpl", "one\n")
	writeFile(t, dir, "_foo.v2.yml.tmpl", "two\n")

	_, err := Discover(dir, DefaultExtension)

	var dupErr *DuplicateError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "foo", dupErr.Name)
	assert.Equal(t, []string{
		filepath.Join(dir, "_foo.v2.yml.tmpl"),
		filepath.Join(dir, "_foo.yml.tmpl"),
	}, dupErr.Paths)
}

func TestDiscover_MissingDirectory(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), DefaultExtension)
	assert.ErrorContains(t, err, "reading project directory")
}

func TestPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("stack", "_vpc.yml.tmpl"), PartialPath("stack", "vpc", DefaultExtension))
	assert.Equal(t, filepath.Join("stack", "main.yml.tmpl"), MainPath("stack", "main", DefaultExtension))
	assert.True(t, IsFragment("stack/_vpc.yml.tmpl", DefaultExtension))
	assert.False(t, IsFragment("stack/zenith.yaml", DefaultExtension))
}
