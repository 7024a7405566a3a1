package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusq/survey-backend/internal/middleware"
	"github.com/campusq/survey-backend/internal/model"
	"github.com/campusq/survey-backend/internal/response"
	"github.com/campusq/survey-backend/internal/service"
	"github.com/campusq/survey-backend/internal/validator"
)

// SurveyHandler handles survey management endpoints.
type SurveyHandler struct {
	surveyService *service.SurveyService
}

// NewSurveyHandler creates a new SurveyHandler.
func NewSurveyHandler(surveyService *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// ownerFilter returns 0 (no filter) for superadmins, otherwise the admin's id.
func ownerFilter(claims *service.Claims) int {
	if claims.Role == model.RoleSuperAdmin {
		return 0
	}
	return claims.UserID
}

// ListSurveys godoc
// GET /api/v1/admin/surveys
// Lists surveys with pagination. Superadmins see all; staff see only their own.
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	surveys, pagination, err := h.surveyService.ListByOwner(c.Request.Context(), ownerFilter(claims), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"surveys": surveys}, pagination)
}

// GetSurvey godoc
// GET /api/v1/admin/surveys/:survey_id
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
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

	survey, err := h.surveyService.GetByID(c.Request.Context(), surveyID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if owner := ownerFilter(claims); owner != 0 && survey.OwnerID != owner {
		response.Fail(c, http.StatusForbidden, response.ErrNotSurveyOwner)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"survey": survey})
}

// CreateSurvey godoc
// POST /api/v1/admin/surveys
// Creates a new draft survey owned by the caller.
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateSurveyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	survey := &model.Survey{
		Title:                req.Title,
		Description:          req.Description,
		OwnerID:              claims.UserID,
		RequiredParticipants: req.RequiredParticipants,
		TargetGender:         model.TargetGender(req.TargetGender),
		TargetAcademicYears:  req.TargetAcademicYears,
		TargetDepartmentIDs:  req.TargetDepartmentIDs,
	}

	if err := h.surveyService.Create(c.Request.Context(), survey); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"survey": survey})
}

// UpdateSurvey godoc
// PUT /api/v1/admin/surveys/:survey_id
// Updates a draft survey. Omitted fields keep their current value.
func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
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

	var req model.UpdateSurveyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	survey, err := h.surveyService.GetByID(c.Request.Context(), surveyID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if req.Title != "" {
		survey.Title = req.Title
	}
	if req.Description != nil {
		survey.Description = *req.Description
	}
	if req.RequiredParticipants != nil {
		survey.RequiredParticipants = *req.RequiredParticipants
	}
	if req.TargetGender != "" {
		survey.TargetGender = model.TargetGender(req.TargetGender)
	}
	if req.TargetAcademicYears != nil {
		survey.TargetAcademicYears = req.TargetAcademicYears
	}
	if req.TargetDepartmentIDs != nil {
		survey.TargetDepartmentIDs = req.TargetDepartmentIDs
	}

	if err := h.surveyService.Update(c.Request.Context(), ownerFilter(claims), survey); err != nil {
		h.failSurvey(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"survey": survey})
}

// DeleteSurvey godoc
// DELETE /api/v1/admin/surveys/:survey_id
// Deletes a draft survey.
func (h *SurveyHandler) DeleteSurvey(c *gin.Context) {
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

	if err := h.surveyService.Delete(c.Request.Context(), surveyID, ownerFilter(claims)); err != nil {
		h.failSurvey(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "survey deleted"})
}

// SetQuestions godoc
// PUT /api/v1/admin/surveys/:survey_id/questions
// Replaces a draft survey's full question list atomically.
func (h *SurveyHandler) SetQuestions(c *gin.Context) {
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

	var req model.ReplaceQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.surveyService.SetQuestions(c.Request.Context(), surveyID, ownerFilter(claims), req.Questions); err != nil {
		h.failSurvey(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "questions updated"})
}

// GetQuestions godoc
// GET /api/v1/admin/surveys/:survey_id/questions
func (h *SurveyHandler) GetQuestions(c *gin.Context) {
	surveyID, err := uuid.Parse(c.Param("survey_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.surveyService.GetQuestions(c.Request.Context(), surveyID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if questions == nil {
		questions = []model.Question{}
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// PublishSurvey godoc
// POST /api/v1/admin/surveys/:survey_id/publish
// Publishes a survey: caches the respondent payload to Redis, changes status.
func (h *SurveyHandler) PublishSurvey(c *gin.Context) {
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

	if err := h.surveyService.Publish(c.Request.Context(), surveyID, ownerFilter(claims)); err != nil {
		h.failSurvey(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "survey published successfully"})
}

// CloseSurvey godoc
// POST /api/v1/admin/surveys/:survey_id/close
// Closes a published survey; no new responses are accepted.
func (h *SurveyHandler) CloseSurvey(c *gin.Context) {
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

	if err := h.surveyService.Close(c.Request.Context(), surveyID, ownerFilter(claims)); err != nil {
		h.failSurvey(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "survey closed"})
}

// failSurvey maps survey service errors onto API error codes.
func (h *SurveyHandler) failSurvey(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNotSurveyOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotSurveyOwner)
	case errors.Is(err, service.ErrNoQuestions):
		response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
	case errors.Is(err, service.ErrSurveyNotDraft):
		response.Fail(c, http.StatusBadRequest, response.ErrSurveyNotDraft)
	case errors.Is(err, service.ErrSurveyNotPublished):
		response.Fail(c, http.StatusBadRequest, response.ErrSurveyNotPublished)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
