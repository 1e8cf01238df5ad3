package api

import (
	"github.com/phrazzld/lingo/internal/domain"
	"github.com/phrazzld/lingo/internal/lesson"
	"github.com/samber/lo"
)

// StartLessonRequest defines the payload for starting a lesson.
type StartLessonRequest struct {
	Language string `json:"language" validate:"required,max=64"`
}

// SelectAnswerRequest defines the payload for selecting an answer option.
type SelectAnswerRequest struct {
	Option string `json:"option" validate:"required,max=256"`
}

// LanguageResponse is one entry of the language catalog.
type LanguageResponse struct {
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// OptionResponse is one answer option with its presentation style.
type OptionResponse struct {
	Text  string `json:"text"`
	Style string `json:"style"`
}

// QuestionResponse is the current question of a lesson.
type QuestionResponse struct {
	Number        int              `json:"number"`
	Text          string           `json:"text"`
	Options       []OptionResponse `json:"options"`
	CorrectAnswer string           `json:"correct_answer,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	ImageLoading  bool             `json:"image_loading"`
}

// LessonResponse is the JSON rendition of a session view.
type LessonResponse struct {
	ID          string            `json:"id"`
	Language    LanguageResponse  `json:"language"`
	Phase       string            `json:"phase"`
	Title       string            `json:"title,omitempty"`
	Index       int               `json:"index"`
	Total       int               `json:"total"`
	Score       int               `json:"score"`
	Progress    float64           `json:"progress"`
	Finished    bool              `json:"finished"`
	AnswerState string            `json:"answer_state"`
	Selected    string            `json:"selected,omitempty"`
	Question    *QuestionResponse `json:"question,omitempty"`
	Error       string            `json:"error,omitempty"`
}

func toLanguageResponse(l domain.Language) LanguageResponse {
	return LanguageResponse{Name: l.Name, Flag: l.Flag}
}

func toLessonResponse(v lesson.View) LessonResponse {
	resp := LessonResponse{
		ID:          v.ID.String(),
		Language:    toLanguageResponse(v.Language),
		Phase:       string(v.Phase),
		Title:       v.Title,
		Index:       v.Index,
		Total:       v.Total,
		Score:       v.Score,
		Progress:    v.Progress,
		Finished:    v.Finished,
		AnswerState: string(v.AnswerState),
		Selected:    v.Selected,
		Error:       v.Error,
	}

	if q := v.Question; q != nil {
		resp.Question = &QuestionResponse{
			Number: q.Number,
			Text:   q.Text,
			Options: lo.Map(q.Options, func(o lesson.OptionView, _ int) OptionResponse {
				return OptionResponse{Text: o.Text, Style: string(o.Style)}
			}),
			CorrectAnswer: q.CorrectAnswer,
			ImageURL:      q.ImageURL,
			ImageLoading:  q.ImageLoading,
		}
	}

	return resp
}
