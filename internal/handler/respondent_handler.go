package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campusq/survey-backend/internal/engine"
	"github.com/campusq/survey-backend/internal/middleware"
	"github.com/campusq/survey-backend/internal/model"
	"github.com/campusq/survey-backend/internal/response"
	"github.com/campusq/survey-backend/internal/service"
	"github.com/campusq/survey-backend/internal/validator"
)

// RespondentHandler handles student-facing endpoints: the survey lobby and
// the response session flow.
type RespondentHandler struct {
	surveyService  *service.SurveyService
	sessionService *service.ResponseSessionService
	studentService *service.StudentService
}

// NewRespondentHandler creates a new RespondentHandler.
func NewRespondentHandler(
	surveyService *service.SurveyService,
	sessionService *service.ResponseSessionService,
	studentService *service.StudentService,
) *RespondentHandler {
	return &RespondentHandler{
		surveyService:  surveyService,
		sessionService: sessionService,
		studentService: studentService,
	}
}

// sessionView is the session shape returned to the respondent. The full
// question list travels inside the session, so the frontend renders from
// this alone.
type sessionView struct {
	SurveyID        uuid.UUID             `json:"survey_id"`
	State           engine.SessionState   `json:"state"`
	CurrentIndex    int                   `json:"current_index"`
	TotalQuestions  int                   `json:"total_questions"`
	Progress        int                   `json:"progress"`
	CurrentQuestion *model.Question       `json:"current_question,omitempty"`
	Answers         map[int]engine.Answer `json:"answers"`
}

func viewOf(sess *engine.Session) sessionView {
	v := sessionView{
		SurveyID:       sess.SurveyID,
		State:          sess.State,
		CurrentIndex:   sess.CurrentIndex,
		TotalQuestions: len(sess.Questions),
		Progress:       sess.Progress(),
		Answers:        sess.Answers,
	}
	if q, ok := sess.Current(); ok {
		v.CurrentQuestion = &q
	}
	return v
}

// AnswerRequest carries one answer for one question. Exactly one of the
// value fields is meaningful, matching the question's type.
type AnswerRequest struct {
	QuestionID int    `json:"question_id" binding:"required,min=1"`
	OptionIDs  []int  `json:"option_ids" binding:"omitempty,dive,min=1"`
	Text       string `json:"text" binding:"omitempty,max=5000"`
	Rating     int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// SubmitRequest carries the optional free-form comment given on submission.
type SubmitRequest struct {
	Comment string `json:"comment" binding:"omitempty,max=5000"`
}

// GetLobby godoc
// GET /api/v1/student/lobby
// Returns published surveys the student is eligible for.
func (h *RespondentHandler) GetLobby(c *gin.Context) {
	student, ok := h.currentStudent(c)
	if !ok {
		return
	}

	lobby, err := h.surveyService.GetLobby(c.Request.Context(), student)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"surveys": lobby})
}

// GetSurveyPaper godoc
// GET /api/v1/student/surveys/:survey_id/paper
// Returns the survey payload from Redis (bypasses PostgreSQL).
func (h *RespondentHandler) GetSurveyPaper(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	surveyID, err := uuid.Parse(c.Param("survey_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	payload, err := h.surveyService.GetSurveyPayload(c.Request.Context(), surveyID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrSurveyNotPublished)
		return
	}

	response.Success(c, http.StatusOK, payload)
}

// StartSession godoc
// POST /api/v1/student/surveys/:survey_id/session
// Opens (or resumes) a response session. Idempotent: a refresh returns the
// existing session with all collected answers.
func (h *RespondentHandler) StartSession(c *gin.Context) {
	student, ok := h.currentStudent(c)
	if !ok {
		return
	}

	surveyID, err := uuid.Parse(c.Param("survey_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sess, err := h.sessionService.Start(c.Request.Context(), surveyID, student)
	if err != nil {
		h.failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": viewOf(sess)})
}

// GetSession godoc
// GET /api/v1/student/surveys/:survey_id/session
// Returns the student's checkpointed session.
func (h *RespondentHandler) GetSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	surveyID, err := uuid.Parse(c.Param("survey_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sess, err := h.sessionService.Get(c.Request.Context(), surveyID, claims.UserID)
	if err != nil {
		h.failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": viewOf(sess)})
}

// SetAnswer godoc
// PUT /api/v1/student/surveys/:survey_id/session/answer
// Records (or overwrites) one answer. The cursor does not move.
func (h *RespondentHandler) SetAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	surveyID, err := uuid.Parse(c.Param("survey_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	answer := engine.Answer{
		OptionIDs: req.OptionIDs,
		Text:      req.Text,
		Rating:    req.Rating,
	}

	sess, err := h.sessionService.SetAnswer(c.Request.Context(), surveyID, claims.UserID, req.QuestionID, answer)
	if err != nil {
		h.failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": viewOf(sess)})
}

// NextQuestion godoc
// POST /api/v1/student/surveys/:survey_id/session/next
// Advances to the next question. Refused (422) while the current question is
// required and unanswered.
func (h *RespondentHandler) NextQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	surveyID, err := uuid.Parse(c.Param("survey_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sess, advanced, err := h.sessionService.Next(c.Request.Context(), surveyID, claims.UserID)
	if err != nil {
		h.failSession(c, err)
		return
	}
	if !advanced {
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrAnswerRequired)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": viewOf(sess)})
}

// PreviousQuestion godoc
// POST /api/v1/student/surveys/:survey_id/session/previous
// Moves back one question. Always allowed before submission.
func (h *RespondentHandler) PreviousQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	surveyID, err := uuid.Parse(c.Param("survey_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sess, err := h.sessionService.Previous(c.Request.Context(), surveyID, claims.UserID)
	if err != nil {
		h.failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": viewOf(sess)})
}

// SubmitSession godoc
// POST /api/v1/student/surveys/:survey_id/session/submit
// Finalizes the session and queues the submission for persistence.
func (h *RespondentHandler) SubmitSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	surveyID, err := uuid.Parse(c.Param("survey_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req SubmitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submission, err := h.sessionService.Submit(c.Request.Context(), surveyID, claims.UserID, req.Comment)
	if err != nil {
		h.failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"submitted_at": submission.SubmittedAt,
		"answers":      len(submission.Answers),
	})
}

// AbandonSession godoc
// DELETE /api/v1/student/surveys/:survey_id/session
// Discards the session; collected answers are lost.
func (h *RespondentHandler) AbandonSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	surveyID, err := uuid.Parse(c.Param("survey_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.sessionService.Abandon(c.Request.Context(), surveyID, claims.UserID); err != nil {
		h.failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "session abandoned"})
}

// currentStudent loads the authenticated student's full record, needed for
// eligibility checks.
func (h *RespondentHandler) currentStudent(c *gin.Context) (*model.Student, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil, false
	}

	student, err := h.studentService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return nil, false
	}
	return student, true
}

// failSession maps session and engine errors onto API error codes.
func (h *RespondentHandler) failSession(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, service.ErrAlreadySubmitted):
		response.Fail(c, http.StatusConflict, response.ErrAlreadySubmitted)
	case errors.Is(err, service.ErrNotEligible):
		response.Fail(c, http.StatusForbidden, response.ErrNotEligible)
	case errors.Is(err, service.ErrSurveyNotPublished):
		response.Fail(c, http.StatusBadRequest, response.ErrSurveyNotAvailable)
	case errors.Is(err, engine.ErrNoQuestions):
		response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
	case errors.Is(err, engine.ErrNotReadyToSubmit):
		response.Fail(c, http.StatusBadRequest, response.ErrSessionNotReady)
	case errors.Is(err, engine.ErrSessionFinished):
		response.Fail(c, http.StatusConflict, response.ErrAlreadySubmitted)
	case errors.Is(err, engine.ErrUnknownQuestion),
		errors.Is(err, engine.ErrUnknownOption),
		errors.Is(err, engine.ErrMultipleSelected),
		errors.Is(err, engine.ErrRatingOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidAnswer)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
