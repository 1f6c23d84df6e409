// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/zenith/internal/cli/printer"
)

func AddOutputFlags(command *cobra.Command) {
	command.Flags().String("output-consumer", string(printer.ConsumerHuman), "Consumer of the command result (human | machine)")
	command.Flags().String("output-schema", printer.SchemaJSON, "The schema to use for the machine output (json | yaml)")
}

func OutputFlagsFromCmd(command *cobra.Command) (printer.Consumer, string) {
	consumer, _ := command.Flags().GetString("output-consumer")
	schema, _ := command.Flags().GetString("output-schema")

	return printer.Consumer(consumer), schema
}

func ValidateOutput(consumer printer.Consumer, schema string) error {
	if consumer != printer.ConsumerHuman && consumer != printer.ConsumerMachine {
		return FlagErrorf("output-consumer must be 'human' or 'machine'")
	}
	if consumer == printer.ConsumerMachine && !printer.ValidSchema(schema) {
		return FlagErrorf("output-schema must be 'json' or 'yaml' for machine consumer")
	}

	return nil
}
