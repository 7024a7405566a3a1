package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/campusq/survey-backend/internal/model"
	"github.com/campusq/survey-backend/internal/repository"
)

// AdminService handles admin account management and login.
type AdminService struct {
	adminRepo   *repository.AdminRepository
	authService *AuthService
	log         zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(adminRepo *repository.AdminRepository, authService *AuthService, log zerolog.Logger) *AdminService {
	return &AdminService{
		adminRepo:   adminRepo,
		authService: authService,
		log:         log.With().Str("component", "admin_service").Logger(),
	}
}

// Login authenticates an admin and issues a token with the role embedded.
func (s *AdminService) Login(ctx context.Context, email, password string) (*model.AdminLoginResponse, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.authService.CheckPassword(admin.PasswordHash, password); err != nil {
		return nil, err
	}

	token, err := s.authService.GenerateAdminToken(admin.ID, admin.Role)
	if err != nil {
		return nil, err
	}

	return &model.AdminLoginResponse{Token: token, Admin: *admin}, nil
}

// GetByID retrieves an admin by id.
func (s *AdminService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	return s.adminRepo.GetByID(ctx, id)
}

// List retrieves all admin users.
func (s *AdminService) List(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if admins == nil {
		admins = []model.Admin{}
	}
	return admins, nil
}

// Create adds an admin user with a hashed password.
func (s *AdminService) Create(ctx context.Context, req *model.CreateAdminRequest) (*model.Admin, error) {
	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: hash,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.log.Info().Str("email", admin.Email).Str("role", string(admin.Role)).Msg("Admin created")
	return admin, nil
}

// Delete removes an admin user.
func (s *AdminService) Delete(ctx context.Context, id int) error {
	return s.adminRepo.Delete(ctx, id)
}
