// Package lesson owns the lifecycle of lesson attempts.
//
// A Session runs one attempt for one language: it loads a lesson from a
// generation.ContentProvider, walks the learner through its questions,
// evaluates answers, keeps score and supports restarting. The session holds
// the only copy of its lesson; background image generation never touches it
// directly but reports results through Session.ApplyImage, which checks that
// the result still belongs to the current load.
//
// Every load starts a new epoch with its own cancellable context. Restarting
// or closing a session cancels the previous epoch's context, and results
// that arrive for an old epoch are dropped.
//
// A Manager keeps the sessions of a running server, routes image results to
// them and evicts sessions that have been idle for too long.
package lesson
