package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusq/survey-backend/internal/model"
)

// SessionState enumerates the response session lifecycle.
type SessionState string

const (
	StateInProgress    SessionState = "IN_PROGRESS"
	StateReadyToSubmit SessionState = "READY_TO_SUBMIT"
	StateSubmitted     SessionState = "SUBMITTED"
	StateAbandoned     SessionState = "ABANDONED"
)

// Session lifecycle errors.
var (
	ErrNoQuestions      = errors.New("survey has no questions")
	ErrSessionFinished  = errors.New("session is already submitted or abandoned")
	ErrNotReadyToSubmit = errors.New("session has not passed the last question yet")
)

// Session walks a respondent through a survey's ordered question list,
// collecting one answer per question. It is a plain serializable value:
// the caller may checkpoint it (e.g. as JSON in a session store) between
// interactions and restore it without loss.
//
// While in StateReadyToSubmit, CurrentIndex equals len(Questions).
type Session struct {
	SurveyID     uuid.UUID      `json:"survey_id"`
	StudentID    int            `json:"student_id"`
	Questions    []model.Question `json:"questions"`
	Answers      map[int]Answer `json:"answers"`
	CurrentIndex int            `json:"current_index"`
	State        SessionState   `json:"state"`
}

// Submission is the immutable result of a completed session. Unanswered
// optional questions have no entry in Answers (absence, not a null value).
type Submission struct {
	SurveyID    uuid.UUID      `json:"survey_id"`
	StudentID   int            `json:"student_id"`
	Answers     map[int]Answer `json:"answers"`
	Comment     string         `json:"comment,omitempty"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

// NewSession starts a response session over the survey's questions,
// presented in OrderNum order.
func NewSession(surveyID uuid.UUID, studentID int, questions []model.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	ordered := make([]model.Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderNum < ordered[j].OrderNum
	})

	return &Session{
		SurveyID:  surveyID,
		StudentID: studentID,
		Questions: ordered,
		Answers:   make(map[int]Answer),
		State:     StateInProgress,
	}, nil
}

// Current returns the question at the session cursor. Only defined while
// the session is InProgress.
func (s *Session) Current() (model.Question, bool) {
	if s.State != StateInProgress || s.CurrentIndex >= len(s.Questions) {
		return model.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// SetAnswer stores (or overwrites) the answer for the given question. The
// cursor does not move. Answers may be changed for any question at any time
// before submission; changing an earlier answer never invalidates later ones.
func (s *Session) SetAnswer(questionID int, a Answer) error {
	if s.State == StateSubmitted || s.State == StateAbandoned {
		return ErrSessionFinished
	}

	q, ok := s.question(questionID)
	if !ok {
		return fmt.Errorf("question %d: %w", questionID, ErrUnknownQuestion)
	}
	if err := ValidateAnswer(q, a); err != nil {
		return err
	}

	s.Answers[questionID] = Normalize(q, a)
	return nil
}

// Next advances the cursor by one question. It refuses, returning false
// with the session unchanged, when the current question is required and
// still unanswered. Advancing past the last question moves the session to
// StateReadyToSubmit. Returns false in any state other than InProgress.
func (s *Session) Next() bool {
	if s.State != StateInProgress {
		return false
	}

	q := s.Questions[s.CurrentIndex]
	if !IsAnswered(q, s.Answers[q.ID]) {
		return false
	}

	s.CurrentIndex++
	if s.CurrentIndex >= len(s.Questions) {
		s.CurrentIndex = len(s.Questions)
		s.State = StateReadyToSubmit
	}
	return true
}

// Previous moves the cursor back one question, clamped at the first.
// Always allowed before submission; collected answers are untouched.
// From ReadyToSubmit it returns to the last question.
func (s *Session) Previous() {
	if s.State == StateSubmitted || s.State == StateAbandoned {
		return
	}
	if s.State == StateReadyToSubmit {
		s.State = StateInProgress
	}
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
}

// Progress returns how far through the survey the respondent is, as a
// rounded percentage. 100 exactly once the session is ReadyToSubmit (or
// later).
func (s *Session) Progress() int {
	if s.State != StateInProgress {
		return 100
	}
	return int(math.Round(100 * float64(s.CurrentIndex+1) / float64(len(s.Questions))))
}

// Submit finalizes the session into an immutable Submission. Allowed only
// from StateReadyToSubmit. Answers that are empty for their question's type
// are dropped; an unanswered optional question contributes no entry.
func (s *Session) Submit(comment string) (*Submission, error) {
	if s.State == StateSubmitted || s.State == StateAbandoned {
		return nil, ErrSessionFinished
	}
	if s.State != StateReadyToSubmit {
		return nil, ErrNotReadyToSubmit
	}

	answers := make(map[int]Answer, len(s.Answers))
	for _, q := range s.Questions {
		a, ok := s.Answers[q.ID]
		if !ok {
			continue
		}
		a = Normalize(q, a)
		if isEmpty(q, a) {
			continue
		}
		answers[q.ID] = a
	}

	s.State = StateSubmitted

	return &Submission{
		SurveyID:    s.SurveyID,
		StudentID:   s.StudentID,
		Answers:     answers,
		Comment:     strings.TrimSpace(comment),
		SubmittedAt: time.Now().UTC(),
	}, nil
}

// Abandon discards the session. Terminal; no submission is produced.
func (s *Session) Abandon() {
	if s.State == StateSubmitted {
		return
	}
	s.State = StateAbandoned
}

func (s *Session) question(id int) (model.Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return model.Question{}, false
}
