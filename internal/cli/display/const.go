// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

const (
	Tool   = "zenith"
	Banner = `
  ooooooo   oooooo   oo    o   oo  oooooooo  oo    oo
      o0   oo        o0o   o   oo     oo     oo    oo
    o0     oooooo    o0 o  o   oo     oo     oooooooo
  o0       oo        o0  o o   oo     oo     oo    oo
  ooooooo   oooooo   o0   oo   oo     oo     oo    oo   vversion
`
	DocRoot = "https://docs.platform.engineering/zenith/latest"
	CodeURL = "https://github.com/platform-engineering-labs/zenith"
)
