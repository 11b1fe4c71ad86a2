// Package testutil provides shared helpers for compiler tests.
package testutil

import (
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger returns a logger routed to t.Log and tagged with the
// test name. Compile traces at debug level are kept only under -v;
// warnings and errors always reach the test log so they surface on
// failure.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	level := slog.LevelWarn
	if testing.Verbose() {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(&testWriter{t: t}, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("test", t.Name())
}

type testWriter struct {
	t testing.TB
}

// Write forwards one log record to t.Log, dropping the trailing newline
// the slog handler appends so records are not double-spaced.
func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
