// Package testutil provides shared setup for package tests.
package testutil

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/worldgen/internal/logging"
)

// TestConfig holds configuration for test setup
type TestConfig struct {
	// EnableLogCapture routes log output into a buffer instead of discarding it.
	EnableLogCapture bool
}

// DefaultTestConfig returns a default test configuration suitable for most tests
func DefaultTestConfig() *TestConfig {
	return &TestConfig{}
}

// SetupTest swaps the global logger for the duration of a test.
//
// Usage:
//
//	func TestMyFunction(t *testing.T) {
//	    cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
//	    defer cleanup()
//	}
func SetupTest(t *testing.T, config *TestConfig) func() {
	t.Helper()

	original := logging.Logger
	if config.EnableLogCapture {
		logging.Logger = log.New(&captured)
		logging.Logger.SetLevel(log.DebugLevel)
	} else {
		logging.Logger = log.New(io.Discard)
	}

	return func() {
		logging.Logger = original
		captured.Reset()
	}
}

var captured logBuffer

// CapturedLogs returns everything logged since SetupTest was called with EnableLogCapture.
func CapturedLogs() string {
	return captured.String()
}

// logBuffer is a bytes.Buffer safe for the concurrent writers a logger may have.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *logBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}
