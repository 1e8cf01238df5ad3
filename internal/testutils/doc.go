// Package testutils provides helpers shared by tests across packages: loggers
// that discard or capture records, and polling helpers for state that
// changes in background goroutines.
package testutils
