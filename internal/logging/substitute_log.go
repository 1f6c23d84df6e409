// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"bytes"
	"log/slog"
)

// slogWriter receives output of the standard log package and forwards it to
// slog, using a leading ERROR, WARN or INFO marker as the level.
type slogWriter struct{}

func (w *slogWriter) Write(p []byte) (n int, err error) {
	msg := string(bytes.TrimRight(p, "\n"))

	switch {
	case len(msg) > 6 && msg[:5] == "ERROR":
		slog.Error(msg[6:])
	case len(msg) > 5 && msg[:4] == "WARN":
		slog.Warn(msg[5:])
	case len(msg) > 5 && msg[:4] == "INFO":
		slog.Info(msg[5:])
	default:
		slog.Debug(msg)
	}

	return len(p), nil
}
