package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/campusq/survey-backend/internal/model"
)

func choiceQuestion(id int, qt model.QuestionType, required bool, optionIDs ...int) model.Question {
	q := model.Question{
		ID:           id,
		QuestionText: "q",
		QuestionType: qt,
		Required:     required,
	}
	for i, oid := range optionIDs {
		q.Options = append(q.Options, model.Option{ID: oid, Text: "opt", OrderNum: i})
	}
	return q
}

func TestIsAnswered(t *testing.T) {
	cases := []struct {
		name     string
		question model.Question
		answer   Answer
		want     bool
	}{
		{
			name:     "required multiple_choice with selection",
			question: choiceQuestion(1, model.QuestionTypeMultipleChoice, true, 10, 11),
			answer:   Answer{OptionIDs: []int{10}},
			want:     true,
		},
		{
			name:     "required multiple_choice empty",
			question: choiceQuestion(1, model.QuestionTypeMultipleChoice, true, 10, 11),
			answer:   Answer{},
			want:     false,
		},
		{
			name:     "optional multiple_choice empty",
			question: choiceQuestion(1, model.QuestionTypeMultipleChoice, false, 10, 11),
			answer:   Answer{},
			want:     true,
		},
		{
			name:     "required single_answer exactly one",
			question: choiceQuestion(2, model.QuestionTypeSingleAnswer, true, 10, 11),
			answer:   Answer{OptionIDs: []int{11}},
			want:     true,
		},
		{
			name:     "required single_answer none",
			question: choiceQuestion(2, model.QuestionTypeSingleAnswer, true, 10, 11),
			answer:   Answer{},
			want:     false,
		},
		{
			name:     "required open_text whitespace only",
			question: model.Question{ID: 3, QuestionType: model.QuestionTypeOpenText, Required: true},
			answer:   Answer{Text: "   \t"},
			want:     false,
		},
		{
			name:     "required open_text non-empty",
			question: model.Question{ID: 3, QuestionType: model.QuestionTypeOpenText, Required: true},
			answer:   Answer{Text: " fine "},
			want:     true,
		},
		{
			name:     "required percentage unanswered",
			question: model.Question{ID: 4, QuestionType: model.QuestionTypePercentage, Required: true},
			answer:   Answer{},
			want:     false,
		},
		{
			name:     "required percentage rated",
			question: model.Question{ID: 4, QuestionType: model.QuestionTypePercentage, Required: true},
			answer:   Answer{Rating: 3},
			want:     true,
		},
		{
			name:     "optional percentage unanswered",
			question: model.Question{ID: 4, QuestionType: model.QuestionTypePercentage, Required: false},
			answer:   Answer{},
			want:     true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAnswered(tc.question, tc.answer); got != tc.want {
				t.Errorf("IsAnswered() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	mc := choiceQuestion(1, model.QuestionTypeMultipleChoice, false, 1, 2, 3)

	got := Normalize(mc, Answer{OptionIDs: []int{3, 1, 3, 2, 1}, Text: "stray", Rating: 4})
	want := Answer{OptionIDs: []int{1, 2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize(multiple_choice) = %+v, want %+v", got, want)
	}

	text := model.Question{ID: 2, QuestionType: model.QuestionTypeOpenText}
	got = Normalize(text, Answer{Text: "  hello world  ", OptionIDs: []int{9}})
	if got.Text != "hello world" || got.OptionIDs != nil || got.Rating != 0 {
		t.Errorf("Normalize(open_text) = %+v", got)
	}

	rating := model.Question{ID: 3, QuestionType: model.QuestionTypePercentage}
	got = Normalize(rating, Answer{Rating: 5, Text: "stray"})
	if got.Rating != 5 || got.Text != "" {
		t.Errorf("Normalize(percentage) = %+v", got)
	}
}

func TestValidateAnswer(t *testing.T) {
	mc := choiceQuestion(1, model.QuestionTypeMultipleChoice, false, 1, 2)
	sa := choiceQuestion(2, model.QuestionTypeSingleAnswer, false, 5, 6)
	rating := model.Question{ID: 3, QuestionType: model.QuestionTypePercentage}

	if err := ValidateAnswer(mc, Answer{OptionIDs: []int{1, 2}}); err != nil {
		t.Errorf("valid multiple_choice answer rejected: %v", err)
	}
	if err := ValidateAnswer(mc, Answer{OptionIDs: []int{99}}); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("foreign option id: got %v, want ErrUnknownOption", err)
	}
	if err := ValidateAnswer(sa, Answer{OptionIDs: []int{5, 6}}); !errors.Is(err, ErrMultipleSelected) {
		t.Errorf("two options on single_answer: got %v, want ErrMultipleSelected", err)
	}
	if err := ValidateAnswer(rating, Answer{Rating: 6}); !errors.Is(err, ErrRatingOutOfRange) {
		t.Errorf("rating 6: got %v, want ErrRatingOutOfRange", err)
	}
	if err := ValidateAnswer(rating, Answer{Rating: 0}); err != nil {
		t.Errorf("unanswered rating rejected: %v", err)
	}
	if err := ValidateAnswer(rating, Answer{Rating: 1}); err != nil {
		t.Errorf("rating 1 rejected: %v", err)
	}
}
