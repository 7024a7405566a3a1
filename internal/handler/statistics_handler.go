package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusq/survey-backend/internal/middleware"
	"github.com/campusq/survey-backend/internal/response"
	"github.com/campusq/survey-backend/internal/service"
)

// StatisticsHandler serves aggregated survey results.
type StatisticsHandler struct {
	statsService *service.StatisticsService
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(statsService *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsService: statsService}
}

// GetSurveyStatistics godoc
// GET /api/v1/admin/surveys/:survey_id/statistics
// Returns the display-ready aggregate for a survey. Served from the Redis
// cache when fresh.
func (h *StatisticsHandler) GetSurveyStatistics(c *gin.Context) {
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

	stats, err := h.statsService.GetSurveyStatistics(c.Request.Context(), surveyID, ownerFilter(claims))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNotSurveyOwner):
			response.Fail(c, http.StatusForbidden, response.ErrNotSurveyOwner)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"statistics": stats})
}
