package gemini

import (
	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"
)

// lessonResponseSchema constrains the text model's structured output.
func lessonResponseSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}

	question := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"questionInTargetLanguage": str,
			"correctAnswer":            str,
			"incorrectAnswers": {
				Type:  genai.TypeArray,
				Items: str,
			},
			"imagePrompt": str,
		},
		Required: []string{"questionInTargetLanguage", "correctAnswer", "incorrectAnswers", "imagePrompt"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": str,
			"questions": {
				Type:  genai.TypeArray,
				Items: question,
			},
		},
		Required: []string{"title", "questions"},
	}
}

// lessonJSONSchema is checked against the raw model output. It is stricter
// than lessonResponseSchema: every string must be non-empty and each question
// must carry exactly three incorrect answers.
const lessonJSONSchema = `{
  "type": "object",
  "required": ["title", "questions"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["questionInTargetLanguage", "correctAnswer", "incorrectAnswers", "imagePrompt"],
        "properties": {
          "questionInTargetLanguage": {"type": "string", "minLength": 1},
          "correctAnswer": {"type": "string", "minLength": 1},
          "incorrectAnswers": {
            "type": "array",
            "minItems": 3,
            "maxItems": 3,
            "items": {"type": "string", "minLength": 1}
          },
          "imagePrompt": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// compiledLessonSchema is parsed once at package init; the schema is a
// constant so a failure here is a programming error.
var compiledLessonSchema = mustCompileSchema(lessonJSONSchema)

func mustCompileSchema(source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(err)
	}
	return schema
}
