// Package mocks provides centralized mock implementations for testing.
//
// Mocks follow one pattern: an optional function field per interface method,
// default return values, and mutex-protected call tracking that tests can
// inspect after the fact.
//
// Usage:
//
//	import "github.com/phrazzld/lingo/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    provider := mocks.NewMockContentProviderWithLesson(mocks.SampleLesson(5))
//
//	    // Use the mock in your test...
//	}
package mocks
