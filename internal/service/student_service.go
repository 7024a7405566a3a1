package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/campusq/survey-backend/internal/model"
	"github.com/campusq/survey-backend/internal/repository"
	"github.com/campusq/survey-backend/internal/response"
)

// StudentService handles student account management and login.
type StudentService struct {
	studentRepo *repository.StudentRepository
	authService *AuthService
	log         zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, authService *AuthService, log zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		authService: authService,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// Login authenticates a student and issues a single-device token.
func (s *StudentService) Login(ctx context.Context, studentNo, password string) (*model.StudentLoginResponse, error) {
	student, err := s.studentRepo.GetByStudentNo(ctx, studentNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.authService.CheckPassword(student.PasswordHash, password); err != nil {
		return nil, err
	}

	token, err := s.authService.GenerateStudentToken(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return &model.StudentLoginResponse{Token: token, Student: *student}, nil
}

// GetByID retrieves a student by id.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// List retrieves students with pagination.
func (s *StudentService) List(ctx context.Context, page, perPage int) ([]model.Student, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	students, total, err := s.studentRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if students == nil {
		students = []model.Student{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return students, pagination, nil
}

// Create adds a student account with a hashed password.
func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		StudentNo:    req.StudentNo,
		Name:         req.Name,
		Gender:       req.Gender,
		AcademicYear: req.AcademicYear,
		DepartmentID: req.DepartmentID,
		PasswordHash: hash,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.log.Info().Str("student_no", student.StudentNo).Msg("Student created")
	return student, nil
}

// Update modifies a student account. An empty password keeps the current one.
func (s *StudentService) Update(ctx context.Context, id int, req *model.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student.StudentNo = req.StudentNo
	student.Name = req.Name
	student.Gender = req.Gender
	student.AcademicYear = req.AcademicYear
	student.DepartmentID = req.DepartmentID

	student.PasswordHash = ""
	if req.Password != "" {
		hash, err := s.authService.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		student.PasswordHash = hash
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByID(ctx, id)
}

// Delete removes a student account and clears any active login.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.authService.ResetStudentSession(ctx, id)
}

// ResetLogin clears a student's active login so they can sign in again.
func (s *StudentService) ResetLogin(ctx context.Context, id int) error {
	return s.authService.ResetStudentSession(ctx, id)
}
