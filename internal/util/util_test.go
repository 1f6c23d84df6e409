// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "template.yaml")

	require.NoError(t, WriteFileAtomic(path, []byte("A: 1\n"), 0644))
	require.NoError(t, WriteFileAtomic(path, []byte("A: 2\n"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A: 2\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestParseAssignments(t *testing.T) {
	vars, err := ParseAssignments([]string{"env=prod", "region = eu-west-1", "url=https://x?a=b", "env=dev"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"env": "dev", "region": " eu-west-1", "url": "https://x?a=b"}, vars)

	_, err = ParseAssignments([]string{"novalue"})
	assert.EqualError(t, err, `invalid assignment "novalue": expected key=value`)

	_, err = ParseAssignments([]string{"=x"})
	assert.Error(t, err)
}

func TestExpandHomePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".pel"), ExpandHomePath("~/.pel"))
	assert.Equal(t, "/tmp/x", ExpandHomePath("/tmp/x"))
}
