// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/platform-engineering-labs/zenith"
)

// banners go to stderr; stdout is reserved for built templates
var out io.Writer = os.Stderr

func PrintBanner() {
	fmt.Fprintln(out, Gold(strings.Replace(Banner, "version", zenith.Version, 1)))
}

func Success(msg string) {
	fmt.Fprint(out, Green(fmt.Sprintf("%s\n", msg)))
}

func Warning(msg string) {
	fmt.Fprint(out, Gold(fmt.Sprintf("Warning: %s\n", msg)))
}

func Links(docLinkName string, deepLinkName string) string {
	deepLink := DocRoot
	if deepLinkName != "" {
		deepLink += "/" + deepLinkName
	}

	return "\n" + Gold("Code: ") + CodeURL +
		"\n" + Gold(fmt.Sprintf("%s: ", docLinkName)) + deepLink +
		"\n" + Gold("Bugs: ") + CodeURL + "/issues"
}
