package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusq/survey-backend/internal/model"
)

// ResponseRepository handles stored survey submissions.
type ResponseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository creates a new ResponseRepository.
func NewResponseRepository(pool *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{pool: pool}
}

// Insert stores one finalized submission. The (survey_id, student_id)
// uniqueness constraint makes resubmission a no-op at the SQL level.
func (r *ResponseRepository) Insert(ctx context.Context, resp *model.SurveyResponse) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO survey_responses (survey_id, student_id, answers, comment, submitted_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (survey_id, student_id) DO NOTHING`,
		resp.SurveyID, resp.StudentID, resp.Answers, resp.Comment, resp.SubmittedAt,
	)
	return err
}

// BulkInsert stores a batch of submissions with a single UNNEST statement.
func (r *ResponseRepository) BulkInsert(ctx context.Context, batch []model.SurveyResponse) error {
	n := len(batch)
	if n == 0 {
		return nil
	}

	surveyIDs := make([]uuid.UUID, 0, n)
	studentIDs := make([]int, 0, n)
	answers := make([]string, 0, n)
	comments := make([]string, 0, n)
	submittedAts := make([]time.Time, 0, n)

	for _, resp := range batch {
		surveyIDs = append(surveyIDs, resp.SurveyID)
		studentIDs = append(studentIDs, resp.StudentID)
		answers = append(answers, string(resp.Answers))
		comments = append(comments, resp.Comment)
		submittedAts = append(submittedAts, resp.SubmittedAt)
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO survey_responses (survey_id, student_id, answers, comment, submitted_at)
		 SELECT u.survey_id, u.student_id, u.answers::jsonb, u.comment, u.submitted_at
		 FROM UNNEST(
			$1::uuid[],
			$2::int[],
			$3::text[],
			$4::text[],
			$5::timestamptz[]
		 ) AS u (survey_id, student_id, answers, comment, submitted_at)
		 ON CONFLICT (survey_id, student_id) DO NOTHING`,
		surveyIDs, studentIDs, answers, comments, submittedAts,
	)
	return err
}

// ListBySurvey retrieves a survey's full response set in submission order,
// the aggregation input.
func (r *ResponseRepository) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]model.SurveyResponse, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, survey_id, student_id, answers, comment, submitted_at
		 FROM survey_responses
		 WHERE survey_id = $1
		 ORDER BY submitted_at, id`, surveyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []model.SurveyResponse
	for rows.Next() {
		var resp model.SurveyResponse
		var raw []byte
		if err := rows.Scan(&resp.ID, &resp.SurveyID, &resp.StudentID, &raw, &resp.Comment, &resp.SubmittedAt); err != nil {
			return nil, err
		}
		resp.Answers = json.RawMessage(raw)
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

// Exists reports whether a student already submitted a response for a survey.
func (r *ResponseRepository) Exists(ctx context.Context, surveyID uuid.UUID, studentID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM survey_responses WHERE survey_id = $1 AND student_id = $2
		 )`, surveyID, studentID,
	).Scan(&exists)
	return exists, err
}

// ListSurveyIDsByStudent returns the ids of surveys the student has already
// answered, for the lobby status overlay.
func (r *ResponseRepository) ListSurveyIDsByStudent(ctx context.Context, studentID int) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT survey_id FROM survey_responses WHERE student_id = $1`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
