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
	"github.com/campusq/survey-backend/internal/repository"
)

// StatisticsService computes display-ready survey statistics. Aggregation
// itself is pure; this service feeds it from PostgreSQL and caches the
// result in Redis so dashboard polling never hammers the response table.
type StatisticsService struct {
	surveyRepo   *repository.SurveyRepository
	questionRepo *repository.QuestionRepository
	responseRepo *repository.ResponseRepository
	rdb          *redis.Client
	cfg          *config.Config
	log          zerolog.Logger
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(
	surveyRepo *repository.SurveyRepository,
	questionRepo *repository.QuestionRepository,
	responseRepo *repository.ResponseRepository,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *StatisticsService {
	return &StatisticsService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		rdb:          rdb,
		cfg:          cfg,
		log:          log.With().Str("component", "statistics_service").Logger(),
	}
}

// GetSurveyStatistics returns the aggregate for a survey, serving a cached
// copy when one is fresh. ownerID 0 skips the ownership check (superadmin).
func (s *StatisticsService) GetSurveyStatistics(ctx context.Context, surveyID uuid.UUID, ownerID int) (*engine.SurveyStatistics, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}
	if ownerID != 0 && survey.OwnerID != ownerID {
		return nil, ErrNotSurveyOwner
	}

	cacheKey := config.CacheKey.SurveyStatsKey(surveyID.String())
	if data, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var cached engine.SurveyStatistics
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		// Corrupt cache entry: fall through and recompute.
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Stats cache read failed, recomputing")
	}

	questions, err := s.questionRepo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	responses, err := s.responseRepo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	submissions := make([]engine.Submission, 0, len(responses))
	for _, resp := range responses {
		answers := make(map[int]engine.Answer)
		if len(resp.Answers) > 0 {
			if err := json.Unmarshal(resp.Answers, &answers); err != nil {
				return nil, fmt.Errorf("response %s: unmarshal answers: %w", resp.ID, err)
			}
		}
		submissions = append(submissions, engine.Submission{
			SurveyID:    resp.SurveyID,
			StudentID:   resp.StudentID,
			Answers:     answers,
			Comment:     resp.Comment,
			SubmittedAt: resp.SubmittedAt,
		})
	}

	info := engine.SurveyInfo{
		Title:                survey.Title,
		Description:          survey.Description,
		OwnerName:            survey.OwnerName,
		RequiredParticipants: survey.RequiredParticipants,
		TargetGender:         survey.TargetGender,
		TargetAcademicYears:  survey.TargetAcademicYears,
		TargetDepartmentIDs:  survey.TargetDepartmentIDs,
	}

	stats, err := engine.Aggregate(info, questions, submissions)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, data, s.cfg.StatsCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Failed to cache stats")
		}
	}

	return stats, nil
}
