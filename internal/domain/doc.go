// Package domain contains the core entities of the lesson flow: the language
// catalog, lessons and their multiple-choice questions, answer states and the
// option presentation mapping. It is independent of the content generation
// backend and of the HTTP delivery layer.
package domain
