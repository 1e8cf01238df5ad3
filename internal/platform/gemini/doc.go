// Package gemini implements generation.ContentProvider on top of Google's
// Gemini API.
//
// This package is an infrastructure adapter: it turns a language name into a
// prompt, asks a text model for a structured lesson, checks the returned JSON
// against a schema and converts it into domain questions. It also asks an
// image model for one square illustration per question.
//
// Key components:
//
// 1. Generator:
//   - Implements the generation.ContentProvider interface
//   - Wraps the genai models client behind a narrow interface so tests can
//     substitute a fake
//
// 2. Prompt Management:
//   - Ships an embedded lesson prompt template
//   - Optionally loads an override template from disk
//
// 3. Response Processing:
//   - Requests JSON output constrained by a genai.Schema
//   - Validates the returned text with gojsonschema before decoding
//   - Shuffles every option set through a domain.Shuffler
//
// 4. Error Handling:
//   - Lesson failures are logged with a redacted cause and returned wrapped in
//     generation.ErrGenerationFailed
//   - Image failures are logged and replaced by generation.FallbackImageURL
//
// There are no retries and no caching; every call is a fresh round trip.
package gemini
