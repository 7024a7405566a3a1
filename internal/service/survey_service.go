package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campusq/survey-backend/internal/config"
	"github.com/campusq/survey-backend/internal/engine"
	"github.com/campusq/survey-backend/internal/model"
	"github.com/campusq/survey-backend/internal/repository"
	"github.com/campusq/survey-backend/internal/response"
)

// Domain Errors
var (
	ErrNotSurveyOwner     = errors.New("not the owner of this survey")
	ErrNoQuestions        = errors.New("survey has no questions, cannot publish")
	ErrSurveyNotDraft     = errors.New("survey status is not DRAFT")
	ErrSurveyNotPublished = errors.New("survey status is not PUBLISHED")
)

// SurveyService handles survey business logic and Redis caching.
type SurveyService struct {
	surveyRepo   *repository.SurveyRepository
	questionRepo *repository.QuestionRepository
	responseRepo *repository.ResponseRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewSurveyService creates a new SurveyService.
func NewSurveyService(
	surveyRepo *repository.SurveyRepository,
	questionRepo *repository.QuestionRepository,
	responseRepo *repository.ResponseRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *SurveyService {
	return &SurveyService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "survey_service").Logger(),
	}
}

// GetByID retrieves a survey by its UUID.
func (s *SurveyService) GetByID(ctx context.Context, id uuid.UUID) (*model.Survey, error) {
	return s.surveyRepo.GetByID(ctx, id)
}

// ListByOwner retrieves surveys, filtered by owner unless ownerID is 0
// (superadmin sees everything).
func (s *SurveyService) ListByOwner(ctx context.Context, ownerID, page, perPage int) ([]model.Survey, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	surveys, total, err := s.surveyRepo.ListByOwnerPaginated(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	if surveys == nil {
		surveys = []model.Survey{}
	}

	totalPages := (total + perPage - 1) / perPage

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return surveys, pagination, nil
}

// Create inserts a new survey as DRAFT.
func (s *SurveyService) Create(ctx context.Context, survey *model.Survey) error {
	survey.Status = model.SurveyStatusDraft
	if survey.TargetGender == "" {
		survey.TargetGender = model.TargetGenderAll
	}
	return s.surveyRepo.Create(ctx, survey)
}

// Update modifies an existing draft survey.
func (s *SurveyService) Update(ctx context.Context, ownerID int, survey *model.Survey) error {
	existing, err := s.surveyRepo.GetByID(ctx, survey.ID)
	if err != nil {
		return err
	}
	if ownerID != 0 && existing.OwnerID != ownerID {
		return ErrNotSurveyOwner
	}
	if existing.Status != model.SurveyStatusDraft {
		return ErrSurveyNotDraft
	}
	return s.surveyRepo.Update(ctx, survey)
}

// Delete removes a draft survey.
func (s *SurveyService) Delete(ctx context.Context, id uuid.UUID, ownerID int) error {
	existing, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ownerID != 0 && existing.OwnerID != ownerID {
		return ErrNotSurveyOwner
	}
	if existing.Status != model.SurveyStatusDraft {
		return ErrSurveyNotDraft
	}
	return s.surveyRepo.Delete(ctx, id)
}

// SetQuestions replaces a draft survey's full question list.
func (s *SurveyService) SetQuestions(ctx context.Context, surveyID uuid.UUID, ownerID int, questions []model.AddQuestionRequest) error {
	existing, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return err
	}
	if ownerID != 0 && existing.OwnerID != ownerID {
		return ErrNotSurveyOwner
	}
	if existing.Status != model.SurveyStatusDraft {
		return ErrSurveyNotDraft
	}
	return s.questionRepo.ReplaceAll(ctx, surveyID, questions)
}

// GetQuestions retrieves a survey's ordered question list.
func (s *SurveyService) GetQuestions(ctx context.Context, surveyID uuid.UUID) ([]model.Question, error) {
	return s.questionRepo.ListBySurvey(ctx, surveyID)
}

// Publish changes survey status to PUBLISHED and caches the respondent
// payload in Redis. This is the critical path that populates the fast lane.
func (s *SurveyService) Publish(ctx context.Context, surveyID uuid.UUID, ownerID int) error {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return fmt.Errorf("get survey: %w", err)
	}

	if ownerID != 0 && survey.OwnerID != ownerID {
		return ErrNotSurveyOwner
	}
	if survey.Status != model.SurveyStatusDraft {
		return ErrSurveyNotDraft
	}

	// Prewarm cache for this survey.
	if err := s.WarmSurveyCache(ctx, survey); err != nil {
		return err
	}

	// Update status in PostgreSQL.
	if err := s.surveyRepo.UpdateStatus(ctx, surveyID, model.SurveyStatusPublished); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	s.log.Info().Str("survey_id", surveyID.String()).Msg("Survey published")
	return nil
}

// Close changes survey status to CLOSED and evicts the respondent payload
// so no new sessions can start. Stored responses stay queryable.
func (s *SurveyService) Close(ctx context.Context, surveyID uuid.UUID, ownerID int) error {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return fmt.Errorf("get survey: %w", err)
	}

	if ownerID != 0 && survey.OwnerID != ownerID {
		return ErrNotSurveyOwner
	}
	if survey.Status != model.SurveyStatusPublished {
		return ErrSurveyNotPublished
	}

	if err := s.surveyRepo.UpdateStatus(ctx, surveyID, model.SurveyStatusClosed); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	if err := s.rdb.Del(ctx, config.CacheKey.SurveyPayloadKey(surveyID.String())).Err(); err != nil {
		s.log.Warn().Err(err).Str("survey_id", surveyID.String()).Msg("Failed to evict payload cache")
	}

	s.log.Info().Str("survey_id", surveyID.String()).Msg("Survey closed")
	return nil
}

// WarmSurveyCache loads a survey's respondent payload from PostgreSQL into
// Redis. Used by Publish and PrewarmAllCaches.
func (s *SurveyService) WarmSurveyCache(ctx context.Context, survey *model.Survey) error {
	questions, err := s.questionRepo.ListBySurvey(ctx, survey.ID)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	payload := model.SurveyPayload{
		SurveyID:  survey.ID,
		Title:     survey.Title,
		Questions: questions,
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	if err := s.rdb.Set(ctx, config.CacheKey.SurveyPayloadKey(survey.ID.String()), payloadJSON, 0).Err(); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}

	s.log.Debug().
		Str("survey_id", survey.ID.String()).
		Int("questions", len(questions)).
		Msg("Cache warmed")
	return nil
}

// PrewarmAllCaches loads all published surveys into Redis on application
// startup, avoiding lazy-loading races under thundering herd traffic.
func (s *SurveyService) PrewarmAllCaches(ctx context.Context) error {
	surveys, err := s.surveyRepo.ListPublished(ctx)
	if err != nil {
		return fmt.Errorf("list published surveys: %w", err)
	}

	if len(surveys) == 0 {
		s.log.Info().Msg("No published surveys to prewarm")
		return nil
	}

	s.log.Info().Int("count", len(surveys)).Msg("Prewarming published surveys...")

	warmed := 0
	for i := range surveys {
		if err := s.WarmSurveyCache(ctx, &surveys[i]); err != nil {
			s.log.Warn().
				Err(err).
				Str("survey_id", surveys[i].ID.String()).
				Msg("Failed to warm survey, skipping")
			continue
		}
		warmed++
	}

	s.log.Info().
		Int("warmed", warmed).
		Int("total", len(surveys)).
		Msg("Prewarming complete")
	return nil
}

// GetSurveyPayload retrieves the cached respondent payload from Redis.
func (s *SurveyService) GetSurveyPayload(ctx context.Context, surveyID uuid.UUID) (*model.SurveyPayload, error) {
	data, err := s.rdb.Get(ctx, config.CacheKey.SurveyPayloadKey(surveyID.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSurveyNotPublished
		}
		return nil, fmt.Errorf("get payload: %w", err)
	}

	var payload model.SurveyPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return &payload, nil
}

// LobbySurvey represents a survey as displayed in the student lobby.
type LobbySurvey struct {
	model.Survey
	Answered bool `json:"answered"`
}

// GetLobby returns the published surveys the student is eligible for, with an
// answered flag overlaid from their stored submissions.
func (s *SurveyService) GetLobby(ctx context.Context, student *model.Student) ([]LobbySurvey, error) {
	surveys, err := s.surveyRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published surveys: %w", err)
	}

	answeredIDs, err := s.responseRepo.ListSurveyIDsByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("list answered surveys: %w", err)
	}
	answered := make(map[uuid.UUID]bool, len(answeredIDs))
	for _, id := range answeredIDs {
		answered[id] = true
	}

	lobby := []LobbySurvey{}
	for _, survey := range surveys {
		if !engine.IsEligible(*student, survey) {
			continue
		}
		lobby = append(lobby, LobbySurvey{
			Survey:   survey,
			Answered: answered[survey.ID],
		})
	}

	return lobby, nil
}
