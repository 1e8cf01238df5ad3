// Package task runs background work for lesson sessions.
//
// Image back-fill requests published by sessions arrive here as events. The
// ImageTaskEventHandler turns each one into an ImageBackfillTask and submits
// it to the Runner, a bounded in-memory queue drained by a fixed pool of
// worker goroutines. Nothing is persisted; tasks still queued at shutdown are
// dropped.
package task
