package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusq/survey-backend/internal/model"
)

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `id, student_no, name, gender, academic_year, department_id, password_hash, created_at, updated_at`

func scanStudent(row interface{ Scan(dest ...any) error }) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(
		&s.ID, &s.StudentNo, &s.Name, &s.Gender, &s.AcademicYear,
		&s.DepartmentID, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a student by id.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id,
	)
	return scanStudent(row)
}

// GetByStudentNo retrieves a student by their student number (login id).
func (r *StudentRepository) GetByStudentNo(ctx context.Context, studentNo string) (*model.Student, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_no = $1`, studentNo,
	)
	return scanStudent(row)
}

// Create inserts a new student account.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO students (student_no, name, gender, academic_year, department_id, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		s.StudentNo, s.Name, s.Gender, s.AcademicYear, s.DepartmentID, s.PasswordHash,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update overwrites a student's fields. An empty PasswordHash keeps the
// current one.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students
		 SET student_no = $1, name = $2, gender = $3, academic_year = $4,
		     department_id = $5,
		     password_hash = COALESCE(NULLIF($6, ''), password_hash),
		     updated_at = NOW()
		 WHERE id = $7`,
		s.StudentNo, s.Name, s.Gender, s.AcademicYear, s.DepartmentID, s.PasswordHash, s.ID,
	)
	return err
}

// Delete removes a student account.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	return err
}

// ListPaginated retrieves students ordered by name.
func (r *StudentRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Student, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students
		 ORDER BY name
		 LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, *s)
	}
	return students, total, rows.Err()
}
