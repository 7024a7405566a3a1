package model

import (
	"time"

	"github.com/google/uuid"
)

// SurveyStatus enumerates the possible states of a survey.
type SurveyStatus string

const (
	SurveyStatusDraft     SurveyStatus = "DRAFT"
	SurveyStatusPublished SurveyStatus = "PUBLISHED"
	SurveyStatusClosed    SurveyStatus = "CLOSED"
)

// TargetGender restricts who may answer a survey. "all" matches everyone.
type TargetGender string

const (
	TargetGenderAll    TargetGender = "all"
	TargetGenderMale   TargetGender = "male"
	TargetGenderFemale TargetGender = "female"
)

// Survey represents a survey entity with its target-audience rules.
// Empty TargetAcademicYears / TargetDepartmentIDs mean "any".
type Survey struct {
	ID                   uuid.UUID    `json:"id"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	OwnerID              int          `json:"owner_id"`
	OwnerName            string       `json:"owner_name,omitempty"`
	Status               SurveyStatus `json:"status"`
	RequiredParticipants int          `json:"required_participants"`
	TargetGender         TargetGender `json:"target_gender"`
	TargetAcademicYears  []int        `json:"target_academic_years"`
	TargetDepartmentIDs  []int        `json:"target_department_ids"`
	QuestionCount        int          `json:"question_count"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// CreateSurveyRequest is the payload for creating a new survey.
type CreateSurveyRequest struct {
	Title                string `json:"title" binding:"required,min=3,max=255"`
	Description          string `json:"description" binding:"max=5000"`
	RequiredParticipants int    `json:"required_participants" binding:"min=0"`
	TargetGender         string `json:"target_gender" binding:"omitempty,oneof=all male female"`
	TargetAcademicYears  []int  `json:"target_academic_years" binding:"omitempty,dive,min=1,max=6"`
	TargetDepartmentIDs  []int  `json:"target_department_ids" binding:"omitempty,dive,min=1"`
}

// UpdateSurveyRequest is the payload for updating an existing survey.
type UpdateSurveyRequest struct {
	Title                string `json:"title" binding:"omitempty,min=3,max=255"`
	Description          *string `json:"description" binding:"omitempty,max=5000"`
	RequiredParticipants *int   `json:"required_participants" binding:"omitempty,min=0"`
	TargetGender         string `json:"target_gender" binding:"omitempty,oneof=all male female"`
	TargetAcademicYears  []int  `json:"target_academic_years" binding:"omitempty,dive,min=1,max=6"`
	TargetDepartmentIDs  []int  `json:"target_department_ids" binding:"omitempty,dive,min=1"`
}

// SurveyPayload is the Redis-cached payload served to respondents.
type SurveyPayload struct {
	SurveyID  uuid.UUID  `json:"survey_id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}
