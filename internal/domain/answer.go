package domain

// AnswerState is the evaluation state of the current question.
type AnswerState string

const (
	AnswerUnanswered AnswerState = "unanswered"
	AnswerCorrect    AnswerState = "correct"
	AnswerIncorrect  AnswerState = "incorrect"
)

// Answered reports whether the question has been evaluated.
func (s AnswerState) Answered() bool {
	return s == AnswerCorrect || s == AnswerIncorrect
}

// OptionStyle is how a renderer should present one answer option.
type OptionStyle string

const (
	OptionNeutral   OptionStyle = "neutral"
	OptionSelected  OptionStyle = "selected"
	OptionCorrect   OptionStyle = "correct"
	OptionIncorrect OptionStyle = "incorrect"
	OptionDimmed    OptionStyle = "dimmed"
)

// OptionStyleFor maps the answer state, the selected option (empty when
// nothing is selected), the correct answer and a candidate option to the
// candidate's presentation.
//
// While unanswered only the selection is distinguished. Once answered the
// correct option is always highlighted, a wrong selection is marked incorrect
// and everything else is dimmed.
func OptionStyleFor(state AnswerState, selected, correct, option string) OptionStyle {
	if !state.Answered() {
		if selected != "" && selected == option {
			return OptionSelected
		}
		return OptionNeutral
	}

	switch {
	case option == correct:
		return OptionCorrect
	case option == selected:
		return OptionIncorrect
	default:
		return OptionDimmed
	}
}
