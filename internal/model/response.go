package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SurveyResponse is a stored, finalized submission for one survey by one
// student. Answers is the JSON-encoded answer map keyed by question id;
// the engine package owns the typed form.
type SurveyResponse struct {
	ID          uuid.UUID       `json:"id"`
	SurveyID    uuid.UUID       `json:"survey_id"`
	StudentID   int             `json:"student_id"`
	Answers     json.RawMessage `json:"answers"`
	Comment     string          `json:"comment,omitempty"`
	SubmittedAt time.Time       `json:"submitted_at"`
}
