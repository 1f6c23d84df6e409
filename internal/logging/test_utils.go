// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// TestLogCapture is a thread-safe log writer for test assertions
type TestLogCapture struct {
	mu      sync.RWMutex
	entries []string
	tee     io.Writer
}

// NewTestLogCapture also writes every entry to stderr so logs stay visible in
// verbose test runs.
func NewTestLogCapture() *TestLogCapture {
	return &TestLogCapture{tee: os.Stderr}
}

func NewTestLogCaptureQuiet() *TestLogCapture {
	return &TestLogCapture{}
}

func (c *TestLogCapture) Write(p []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, string(p))
	if c.tee != nil {
		_, _ = c.tee.Write(p)
	}

	return len(p), nil
}

// ContainsAll reports whether every substring occurs in some entry.
func (c *TestLogCapture) ContainsAll(substrs ...string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, substr := range substrs {
		if !slices.ContainsFunc(c.entries, func(entry string) bool {
			return strings.Contains(entry, substr)
		}) {
			return false
		}
	}

	return true
}

// Count returns how many entries contain substr.
func (c *TestLogCapture) Count(substr string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, entry := range c.entries {
		if strings.Contains(entry, substr) {
			n++
		}
	}

	return n
}

// WaitForLog polls for an entry containing substr until timeout.
func (c *TestLogCapture) WaitForLog(substr string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if c.ContainsAll(substr) {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}

	return c.ContainsAll(substr)
}

func (c *TestLogCapture) Entries() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.entries)
}

func (c *TestLogCapture) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
}
