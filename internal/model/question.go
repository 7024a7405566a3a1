package model

// QuestionType is the closed set of supported question shapes.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeSingleAnswer   QuestionType = "single_answer"
	QuestionTypeOpenText       QuestionType = "open_text"
	// QuestionTypePercentage is a 1-5 rating. The name is historical; the
	// value is a bounded rating, not a percent.
	QuestionTypePercentage QuestionType = "percentage"
)

// HasOptions reports whether this question type carries an option list.
func (t QuestionType) HasOptions() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeSingleAnswer
}

// Valid reports whether t is one of the four known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeSingleAnswer, QuestionTypeOpenText, QuestionTypePercentage:
		return true
	}
	return false
}

// Option is a selectable choice owned by exactly one question.
type Option struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	OrderNum int    `json:"order_num"`
}

// Question represents a single survey question.
// Options is populated only for multiple_choice and single_answer.
type Question struct {
	ID           int          `json:"id"`
	SurveyID     string       `json:"survey_id"`
	QuestionText string       `json:"question_text"`
	QuestionType QuestionType `json:"question_type"`
	Required     bool         `json:"required"`
	OrderNum     int          `json:"order_num"`
	Options      []Option     `json:"options,omitempty"`
}

// AddQuestionRequest is the payload for adding a question to a survey.
type AddQuestionRequest struct {
	QuestionText string             `json:"question_text" binding:"required,min=1,max=2000"`
	QuestionType string             `json:"question_type" binding:"required,oneof=multiple_choice single_answer open_text percentage"`
	Required     bool               `json:"required"`
	OrderNum     int                `json:"order_num" binding:"min=0"`
	Options      []AddOptionRequest `json:"options" binding:"omitempty,dive"`
}

// AddOptionRequest is one option inside AddQuestionRequest.
type AddOptionRequest struct {
	Text     string `json:"text" binding:"required,min=1,max=500"`
	OrderNum int    `json:"order_num" binding:"min=0"`
}

// ReplaceQuestionsRequest is the payload for bulk replacing a survey's questions.
type ReplaceQuestionsRequest struct {
	Questions []AddQuestionRequest `json:"questions" binding:"dive"`
}
