package testutils

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Default polling parameters for WaitFor.
const (
	WaitTimeout  = 2 * time.Second
	WaitInterval = 5 * time.Millisecond
)

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WaitFor polls cond until it holds, failing the test after WaitTimeout.
func WaitFor(t *testing.T, cond func() bool, msgAndArgs ...any) {
	t.Helper()
	require.Eventually(t, cond, WaitTimeout, WaitInterval, msgAndArgs...)
}
