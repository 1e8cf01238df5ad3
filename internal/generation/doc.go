// Package generation defines the boundary between the lesson flow and the
// external generative AI service (Gemini). The ContentProvider interface turns
// a language name into a complete lesson and an image prompt into a
// displayable image reference, without coupling callers to a specific
// content generation backend.
package generation
