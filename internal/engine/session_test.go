package engine

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/campusq/survey-backend/internal/model"
)

func sampleQuestions() []model.Question {
	return []model.Question{
		{
			ID: 1, QuestionText: "pick any", QuestionType: model.QuestionTypeMultipleChoice,
			Required: true, OrderNum: 1,
			Options: []model.Option{{ID: 10, Text: "A"}, {ID: 11, Text: "B"}},
		},
		{
			ID: 2, QuestionText: "your thoughts", QuestionType: model.QuestionTypeOpenText,
			Required: false, OrderNum: 2,
		},
		{
			ID: 3, QuestionText: "rate it", QuestionType: model.QuestionTypePercentage,
			Required: true, OrderNum: 3,
		},
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(uuid.New(), 42, sampleQuestions())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSessionOrdersQuestions(t *testing.T) {
	qs := sampleQuestions()
	// Shuffle the input order; the session must present by OrderNum.
	qs[0], qs[2] = qs[2], qs[0]

	s, err := NewSession(uuid.New(), 1, qs)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	for i, want := range []int{1, 2, 3} {
		if s.Questions[i].ID != want {
			t.Errorf("question[%d].ID = %d, want %d", i, s.Questions[i].ID, want)
		}
	}

	if _, err := NewSession(uuid.New(), 1, nil); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("empty question list: got %v, want ErrNoQuestions", err)
	}
}

func TestRequiredAnswerGate(t *testing.T) {
	s := newTestSession(t)

	// Question 1 is required and unanswered: Next must refuse and hold position.
	if s.Next() {
		t.Fatal("Next() advanced past an unanswered required question")
	}
	if s.CurrentIndex != 0 {
		t.Fatalf("CurrentIndex = %d after refused Next, want 0", s.CurrentIndex)
	}

	if err := s.SetAnswer(1, Answer{OptionIDs: []int{10}}); err != nil {
		t.Fatalf("SetAnswer: %v", err)
	}
	if !s.Next() {
		t.Fatal("Next() refused after the required question was answered")
	}
	if s.CurrentIndex != 1 {
		t.Fatalf("CurrentIndex = %d, want 1", s.CurrentIndex)
	}
}

func TestOptionalQuestionSkippable(t *testing.T) {
	s := newTestSession(t)
	if err := s.SetAnswer(1, Answer{OptionIDs: []int{11}}); err != nil {
		t.Fatal(err)
	}
	s.Next()

	// Question 2 is optional; Next without answering must succeed.
	if !s.Next() {
		t.Fatal("Next() refused an unanswered optional question")
	}
	if s.CurrentIndex != 2 {
		t.Fatalf("CurrentIndex = %d, want 2", s.CurrentIndex)
	}
}

func TestAnswerPersistenceUnderNavigation(t *testing.T) {
	s := newTestSession(t)
	if err := s.SetAnswer(1, Answer{OptionIDs: []int{10, 11}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetAnswer(2, Answer{Text: "noted"}); err != nil {
		t.Fatal(err)
	}
	s.Next()

	before := make(map[int]Answer, len(s.Answers))
	for k, v := range s.Answers {
		before[k] = v
	}

	s.Next()
	s.Previous()
	s.Previous()
	s.Previous() // clamped at 0
	s.Next()
	s.Next()

	if !reflect.DeepEqual(before, s.Answers) {
		t.Errorf("answers changed under navigation: before %+v, after %+v", before, s.Answers)
	}
	if s.CurrentIndex < 0 {
		t.Errorf("CurrentIndex went negative: %d", s.CurrentIndex)
	}
}

func TestProgress(t *testing.T) {
	s := newTestSession(t)

	last := 0
	answers := map[int]Answer{
		1: {OptionIDs: []int{10}},
		3: {Rating: 4},
	}

	for s.State == StateInProgress {
		p := s.Progress()
		if p < last {
			t.Fatalf("progress decreased: %d after %d", p, last)
		}
		last = p

		q, _ := s.Current()
		if a, ok := answers[q.ID]; ok {
			if err := s.SetAnswer(q.ID, a); err != nil {
				t.Fatal(err)
			}
		}
		if !s.Next() {
			t.Fatalf("Next() refused at question %d", q.ID)
		}
	}

	if s.State != StateReadyToSubmit {
		t.Fatalf("State = %s, want READY_TO_SUBMIT", s.State)
	}
	if s.Progress() != 100 {
		t.Fatalf("Progress() = %d at ReadyToSubmit, want 100", s.Progress())
	}
}

func TestSubmit(t *testing.T) {
	s := newTestSession(t)

	// Submitting early must refuse.
	if _, err := s.Submit(""); !errors.Is(err, ErrNotReadyToSubmit) {
		t.Fatalf("early Submit: got %v, want ErrNotReadyToSubmit", err)
	}

	if err := s.SetAnswer(1, Answer{OptionIDs: []int{11, 10}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetAnswer(3, Answer{Rating: 5}); err != nil {
		t.Fatal(err)
	}
	for s.State == StateInProgress {
		if !s.Next() {
			t.Fatal("Next() refused unexpectedly")
		}
	}

	sub, err := s.Submit("  great survey  ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.State != StateSubmitted {
		t.Fatalf("State = %s after Submit, want SUBMITTED", s.State)
	}
	if sub.Comment != "great survey" {
		t.Errorf("Comment = %q", sub.Comment)
	}
	// Normalized: sorted option ids.
	if !reflect.DeepEqual(sub.Answers[1].OptionIDs, []int{10, 11}) {
		t.Errorf("answer 1 = %+v, want sorted option ids", sub.Answers[1])
	}
	// Unanswered optional question 2 contributes no entry at all.
	if _, ok := sub.Answers[2]; ok {
		t.Error("unanswered optional question has an entry in the submission")
	}
	if sub.StudentID != 42 {
		t.Errorf("StudentID = %d", sub.StudentID)
	}

	// Terminal: no further mutation.
	if err := s.SetAnswer(1, Answer{OptionIDs: []int{10}}); !errors.Is(err, ErrSessionFinished) {
		t.Errorf("SetAnswer after Submit: got %v, want ErrSessionFinished", err)
	}
	if _, err := s.Submit(""); !errors.Is(err, ErrSessionFinished) {
		t.Errorf("double Submit: got %v, want ErrSessionFinished", err)
	}
}

func TestPreviousFromReadyToSubmit(t *testing.T) {
	s := newTestSession(t)
	if err := s.SetAnswer(1, Answer{OptionIDs: []int{10}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetAnswer(3, Answer{Rating: 2}); err != nil {
		t.Fatal(err)
	}
	for s.State == StateInProgress {
		s.Next()
	}

	s.Previous()
	if s.State != StateInProgress {
		t.Fatalf("State = %s after Previous from ReadyToSubmit", s.State)
	}
	q, ok := s.Current()
	if !ok || q.ID != 3 {
		t.Fatalf("Current() = %+v, want last question", q)
	}

	// Changing an earlier answer must not invalidate later ones.
	s.Previous()
	s.Previous()
	if err := s.SetAnswer(1, Answer{OptionIDs: []int{11}}); err != nil {
		t.Fatal(err)
	}
	if s.Answers[3].Rating != 2 {
		t.Error("later answer lost after changing an earlier one")
	}
}

func TestAbandon(t *testing.T) {
	s := newTestSession(t)
	s.Abandon()
	if s.State != StateAbandoned {
		t.Fatalf("State = %s, want ABANDONED", s.State)
	}
	if _, err := s.Submit(""); !errors.Is(err, ErrSessionFinished) {
		t.Errorf("Submit after Abandon: got %v, want ErrSessionFinished", err)
	}
}

func TestSetAnswerContractErrors(t *testing.T) {
	s := newTestSession(t)

	if err := s.SetAnswer(999, Answer{Text: "x"}); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("unknown question: got %v, want ErrUnknownQuestion", err)
	}
	if err := s.SetAnswer(1, Answer{OptionIDs: []int{777}}); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("foreign option: got %v, want ErrUnknownOption", err)
	}
}

func TestSessionRoundTripsThroughJSON(t *testing.T) {
	s := newTestSession(t)
	if err := s.SetAnswer(1, Answer{OptionIDs: []int{10}}); err != nil {
		t.Fatal(err)
	}
	s.Next()

	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored Session
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(*s, restored) {
		t.Errorf("session did not survive a JSON round trip:\n  %+v\n  %+v", *s, restored)
	}

	// The restored session keeps working.
	if err := restored.SetAnswer(3, Answer{Rating: 4}); err != nil {
		t.Fatal(err)
	}
	restored.Next()
	if !restored.Next() {
		t.Error("restored session refused to advance")
	}
}
