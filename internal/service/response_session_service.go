package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campusq/survey-backend/internal/config"
	"github.com/campusq/survey-backend/internal/engine"
	"github.com/campusq/survey-backend/internal/model"
	"github.com/campusq/survey-backend/internal/repository"
)

// Response session errors.
var (
	ErrSessionNotFound  = errors.New("no active response session")
	ErrAlreadySubmitted = errors.New("student already submitted a response for this survey")
	ErrNotEligible      = errors.New("student is not in the survey's target audience")
)

// SubmissionEvent is published on the survey's results channel whenever a
// respondent submits, so live dashboards can refresh.
type SubmissionEvent struct {
	SurveyID    uuid.UUID `json:"survey_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ResponseSessionService drives respondent sessions. The engine session is a
// plain value; this service checkpoints it as JSON in Redis between requests
// and turns a finished session into a queued submission.
type ResponseSessionService struct {
	surveyService *SurveyService
	surveyRepo    *repository.SurveyRepository
	responseRepo  *repository.ResponseRepository
	rdb           *redis.Client
	cfg           *config.Config
	log           zerolog.Logger
}

// NewResponseSessionService creates a new ResponseSessionService.
func NewResponseSessionService(
	surveyService *SurveyService,
	surveyRepo *repository.SurveyRepository,
	responseRepo *repository.ResponseRepository,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *ResponseSessionService {
	return &ResponseSessionService{
		surveyService: surveyService,
		surveyRepo:    surveyRepo,
		responseRepo:  responseRepo,
		rdb:           rdb,
		cfg:           cfg,
		log:           log.With().Str("component", "response_session_service").Logger(),
	}
}

// Start opens (or resumes) a response session for the student on a published
// survey. Resuming returns the checkpointed session untouched, so a refresh
// or device switch never loses collected answers.
func (s *ResponseSessionService) Start(ctx context.Context, surveyID uuid.UUID, student *model.Student) (*engine.Session, error) {
	// Resume first: an existing checkpoint already passed all entry checks.
	if sess, err := s.load(ctx, surveyID, student.ID); err == nil {
		return sess, nil
	} else if !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}

	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}
	if survey.Status != model.SurveyStatusPublished {
		return nil, ErrSurveyNotPublished
	}
	if !engine.IsEligible(*student, *survey) {
		return nil, ErrNotEligible
	}

	submitted, err := s.responseRepo.Exists(ctx, surveyID, student.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing response: %w", err)
	}
	if submitted {
		return nil, ErrAlreadySubmitted
	}

	// The payload cache is the question source of truth for respondents.
	payload, err := s.surveyService.GetSurveyPayload(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	sess, err := engine.NewSession(surveyID, student.ID, payload.Questions)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("survey_id", surveyID.String()).
		Int("student_id", student.ID).
		Msg("Response session started")
	return sess, nil
}

// Get returns the student's checkpointed session for a survey.
func (s *ResponseSessionService) Get(ctx context.Context, surveyID uuid.UUID, studentID int) (*engine.Session, error) {
	return s.load(ctx, surveyID, studentID)
}

// SetAnswer records an answer on the session and re-checkpoints it.
func (s *ResponseSessionService) SetAnswer(ctx context.Context, surveyID uuid.UUID, studentID, questionID int, a engine.Answer) (*engine.Session, error) {
	sess, err := s.load(ctx, surveyID, studentID)
	if err != nil {
		return nil, err
	}
	if err := sess.SetAnswer(questionID, a); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Next advances the session cursor. advanced is false when the current
// question is required and still unanswered; the session is unchanged then.
func (s *ResponseSessionService) Next(ctx context.Context, surveyID uuid.UUID, studentID int) (sess *engine.Session, advanced bool, err error) {
	sess, err = s.load(ctx, surveyID, studentID)
	if err != nil {
		return nil, false, err
	}
	advanced = sess.Next()
	if advanced {
		if err := s.save(ctx, sess); err != nil {
			return nil, false, err
		}
	}
	return sess, advanced, nil
}

// Previous moves the session cursor back one question.
func (s *ResponseSessionService) Previous(ctx context.Context, surveyID uuid.UUID, studentID int) (*engine.Session, error) {
	sess, err := s.load(ctx, surveyID, studentID)
	if err != nil {
		return nil, err
	}
	sess.Previous()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Submit finalizes the session, queues the submission for batch persistence,
// drops the checkpoint, and notifies live dashboards. The HTTP path never
// writes to PostgreSQL directly.
func (s *ResponseSessionService) Submit(ctx context.Context, surveyID uuid.UUID, studentID int, comment string) (*engine.Submission, error) {
	sess, err := s.load(ctx, surveyID, studentID)
	if err != nil {
		return nil, err
	}

	submission, err := sess.Submit(comment)
	if err != nil {
		return nil, err
	}

	answersJSON, err := json.Marshal(submission.Answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}

	stored := model.SurveyResponse{
		SurveyID:    submission.SurveyID,
		StudentID:   submission.StudentID,
		Answers:     answersJSON,
		Comment:     submission.Comment,
		SubmittedAt: submission.SubmittedAt,
	}
	job, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("marshal submission job: %w", err)
	}

	if err := s.rdb.LPush(ctx, config.WorkerKey.PersistResponsesQueue, job).Err(); err != nil {
		return nil, fmt.Errorf("queue submission: %w", err)
	}

	// Best effort from here: the submission is safely queued.
	if err := s.rdb.Del(ctx, s.sessionKey(surveyID, studentID)).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to drop session checkpoint")
	}
	if err := s.rdb.Del(ctx, config.CacheKey.SurveyStatsKey(surveyID.String())).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to invalidate stats cache")
	}

	event, _ := json.Marshal(SubmissionEvent{SurveyID: surveyID, SubmittedAt: submission.SubmittedAt})
	if err := s.rdb.Publish(ctx, config.CacheKey.SurveyResultsChannel(surveyID.String()), event).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to publish submission event")
	}

	s.log.Info().
		Str("survey_id", surveyID.String()).
		Int("student_id", studentID).
		Int("answers", len(submission.Answers)).
		Msg("Submission queued")
	return submission, nil
}

// Abandon discards the student's session and its checkpoint.
func (s *ResponseSessionService) Abandon(ctx context.Context, surveyID uuid.UUID, studentID int) error {
	sess, err := s.load(ctx, surveyID, studentID)
	if err != nil {
		return err
	}
	sess.Abandon()
	return s.rdb.Del(ctx, s.sessionKey(surveyID, studentID)).Err()
}

func (s *ResponseSessionService) sessionKey(surveyID uuid.UUID, studentID int) string {
	return config.CacheKey.ResponseSessionKey(surveyID.String(), studentID)
}

func (s *ResponseSessionService) load(ctx context.Context, surveyID uuid.UUID, studentID int) (*engine.Session, error) {
	data, err := s.rdb.Get(ctx, s.sessionKey(surveyID, studentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess engine.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *ResponseSessionService) save(ctx context.Context, sess *engine.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	// Each checkpoint refreshes the TTL, so only idle sessions expire.
	if err := s.rdb.Set(ctx, s.sessionKey(sess.SurveyID, sess.StudentID), data, s.cfg.SessionTTL).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
