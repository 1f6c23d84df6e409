// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package intrinsics

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/zenith/internal/cli/printer"
	"github.com/platform-engineering-labs/zenith/internal/intrinsic"
)

func TestRunIntrinsics_Machine(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runIntrinsics(&IntrinsicsOptions{
		OutputConsumer: printer.ConsumerMachine,
		OutputSchema:   printer.SchemaJSON,
	}, intrinsic.NewRegistry(), &out))

	var entries Entries
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))

	require.Len(t, entries, len(intrinsic.FunctionNames))
	assert.Equal(t, Entry{Tag: "!Sub", LongForm: "Fn::Sub"}, entries[0])
	assert.Contains(t, entries, Entry{Tag: "!Ref", LongForm: "Ref"})
	assert.Contains(t, entries, Entry{Tag: "!Condition", LongForm: "Condition"})
}

func TestRunIntrinsics_Human(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runIntrinsics(&IntrinsicsOptions{OutputConsumer: printer.ConsumerHuman}, intrinsic.NewRegistry(), &out))

	assert.Contains(t, out.String(), "Fn::GetAtt")
	assert.Contains(t, out.String(), "Long form")
}

func TestRunIntrinsics_InvalidSchema(t *testing.T) {
	var out bytes.Buffer
	err := runIntrinsics(&IntrinsicsOptions{
		OutputConsumer: printer.ConsumerMachine,
		OutputSchema:   "xml",
	}, intrinsic.NewRegistry(), &out)

	assert.EqualError(t, err, "output-schema must be 'json' or 'yaml' for machine consumer")
}
