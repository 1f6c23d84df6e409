// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package zenith

var Version = "0.0.0"

// ProjectFileName is the optional per-project configuration file.
const ProjectFileName = "zenith.yaml"
