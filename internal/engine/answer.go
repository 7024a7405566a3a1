// Package engine implements the survey response and analytics engine:
// the question/answer model, the per-respondent response session state
// machine, the statistics aggregator and the target-audience eligibility
// filter. It is a pure in-memory computation layer; persistence and
// transport are the caller's concern.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/campusq/survey-backend/internal/model"
)

// Engine contract errors. These indicate caller bugs, not user input
// problems, and are surfaced as explicit errors.
var (
	ErrUnknownQuestion  = errors.New("answer references a question not in this survey")
	ErrUnknownOption    = errors.New("answer references an option not owned by the question")
	ErrMultipleSelected = errors.New("single_answer question allows at most one selected option")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)

// Answer is the value a respondent gives for one question. Which field is
// meaningful depends on the owning question's type:
//
//	multiple_choice / single_answer → OptionIDs
//	open_text                       → Text
//	percentage                      → Rating (0 means unanswered)
type Answer struct {
	OptionIDs []int  `json:"option_ids,omitempty"`
	Text      string `json:"text,omitempty"`
	Rating    int    `json:"rating,omitempty"`
}

// IsAnswered reports whether a counts as an answer to q. A non-required
// question is always considered answered (it may legitimately stay empty).
func IsAnswered(q model.Question, a Answer) bool {
	if !q.Required {
		return true
	}
	return !isEmpty(q, a)
}

// isEmpty reports whether a carries no value for q's type. This is the
// per-type emptiness test behind both the required-answer gate and the
// "no entry in the submission" rule for optional questions.
func isEmpty(q model.Question, a Answer) bool {
	switch q.QuestionType {
	case model.QuestionTypeMultipleChoice:
		return len(a.OptionIDs) == 0
	case model.QuestionTypeSingleAnswer:
		return len(a.OptionIDs) != 1
	case model.QuestionTypeOpenText:
		return strings.TrimSpace(a.Text) == ""
	case model.QuestionTypePercentage:
		return a.Rating < 1 || a.Rating > 5
	}
	return true
}

// Normalize canonicalizes an answer for q before storage: selected option
// ids are sorted and deduplicated, text is trimmed, and fields not used by
// q's type are zeroed.
func Normalize(q model.Question, a Answer) Answer {
	var out Answer
	switch q.QuestionType {
	case model.QuestionTypeMultipleChoice, model.QuestionTypeSingleAnswer:
		if len(a.OptionIDs) > 0 {
			ids := make([]int, 0, len(a.OptionIDs))
			seen := make(map[int]bool, len(a.OptionIDs))
			for _, id := range a.OptionIDs {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
			sort.Ints(ids)
			out.OptionIDs = ids
		}
	case model.QuestionTypeOpenText:
		out.Text = strings.TrimSpace(a.Text)
	case model.QuestionTypePercentage:
		out.Rating = a.Rating
	}
	return out
}

// ValidateAnswer checks the answer/question contract: every selected option
// must belong to q, single_answer may select at most one option, and a set
// rating must be in [1,5]. A zero-valued answer is always valid; emptiness
// is a separate concern handled by IsAnswered.
func ValidateAnswer(q model.Question, a Answer) error {
	switch q.QuestionType {
	case model.QuestionTypeMultipleChoice, model.QuestionTypeSingleAnswer:
		if q.QuestionType == model.QuestionTypeSingleAnswer && len(a.OptionIDs) > 1 {
			return fmt.Errorf("question %d: %w", q.ID, ErrMultipleSelected)
		}
		for _, id := range a.OptionIDs {
			if !ownsOption(q, id) {
				return fmt.Errorf("question %d, option %d: %w", q.ID, id, ErrUnknownOption)
			}
		}
	case model.QuestionTypePercentage:
		if a.Rating != 0 && (a.Rating < 1 || a.Rating > 5) {
			return fmt.Errorf("question %d, rating %d: %w", q.ID, a.Rating, ErrRatingOutOfRange)
		}
	}
	return nil
}

func ownsOption(q model.Question, optionID int) bool {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}
