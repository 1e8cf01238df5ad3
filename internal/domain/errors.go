// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrCorrectAnswerMissing is returned when a question's options do not
	// contain its correct answer.
	ErrCorrectAnswerMissing = errors.New("correct answer is not among the options")

	// ErrUnknownLanguage is returned when a language is not in the catalog.
	ErrUnknownLanguage = errors.New("unknown language")
)
