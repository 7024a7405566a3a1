package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusq/survey-backend/internal/model"
)

// SurveyRepository handles survey data access.
type SurveyRepository struct {
	pool *pgxpool.Pool
}

// NewSurveyRepository creates a new SurveyRepository.
func NewSurveyRepository(pool *pgxpool.Pool) *SurveyRepository {
	return &SurveyRepository{pool: pool}
}

const surveyColumns = `
	s.id, s.title, s.description, s.owner_id, a.name,
	s.status, s.required_participants, s.target_gender,
	s.target_academic_years, s.target_department_ids,
	(SELECT COUNT(*) FROM questions q WHERE q.survey_id = s.id),
	s.created_at, s.updated_at`

func scanSurvey(row interface{ Scan(dest ...any) error }) (*model.Survey, error) {
	s := &model.Survey{}
	err := row.Scan(
		&s.ID, &s.Title, &s.Description, &s.OwnerID, &s.OwnerName,
		&s.Status, &s.RequiredParticipants, &s.TargetGender,
		&s.TargetAcademicYears, &s.TargetDepartmentIDs,
		&s.QuestionCount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a survey (with owner name) by its UUID.
func (r *SurveyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Survey, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+surveyColumns+`
		 FROM surveys s JOIN admins a ON s.owner_id = a.id
		 WHERE s.id = $1`, id,
	)
	return scanSurvey(row)
}

// Create inserts a new survey.
func (r *SurveyRepository) Create(ctx context.Context, s *model.Survey) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO surveys
			(title, description, owner_id, status, required_participants,
			 target_gender, target_academic_years, target_department_ids)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		s.Title, s.Description, s.OwnerID, s.Status, s.RequiredParticipants,
		s.TargetGender, s.TargetAcademicYears, s.TargetDepartmentIDs,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update overwrites a survey's editable fields.
func (r *SurveyRepository) Update(ctx context.Context, s *model.Survey) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE surveys
		 SET title = $1, description = $2, required_participants = $3,
		     target_gender = $4, target_academic_years = $5,
		     target_department_ids = $6, updated_at = NOW()
		 WHERE id = $7`,
		s.Title, s.Description, s.RequiredParticipants,
		s.TargetGender, s.TargetAcademicYears, s.TargetDepartmentIDs, s.ID,
	)
	return err
}

// UpdateStatus changes a survey's lifecycle status.
func (r *SurveyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SurveyStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE surveys SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	return err
}

// Delete removes a survey. Questions, options and responses cascade.
func (r *SurveyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	return err
}

// ListByOwnerPaginated retrieves surveys for one owner. ownerID 0 lists all
// surveys (superadmin view).
func (r *SurveyRepository) ListByOwnerPaginated(ctx context.Context, ownerID, limit, offset int) ([]model.Survey, int, error) {
	where := ``
	args := []any{}
	if ownerID != 0 {
		where = ` WHERE s.owner_id = $1`
		args = append(args, ownerID)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM surveys s`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + surveyColumns + `
		 FROM surveys s JOIN admins a ON s.owner_id = a.id` + where + `
		 ORDER BY s.created_at DESC`
	if ownerID != 0 {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var surveys []model.Survey
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, 0, err
		}
		surveys = append(surveys, *s)
	}
	return surveys, total, rows.Err()
}

// ListPublished retrieves all currently published surveys. The eligibility
// filter is applied in memory by the caller: target rules combine gender,
// year and department, which is engine logic, not SQL.
func (r *SurveyRepository) ListPublished(ctx context.Context) ([]model.Survey, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+surveyColumns+`
		 FROM surveys s JOIN admins a ON s.owner_id = a.id
		 WHERE s.status = $1
		 ORDER BY s.created_at DESC`, model.SurveyStatusPublished,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var surveys []model.Survey
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		surveys = append(surveys, *s)
	}
	return surveys, rows.Err()
}
