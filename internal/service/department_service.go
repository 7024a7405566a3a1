package service

import (
	"context"

	"github.com/campusq/survey-backend/internal/model"
	"github.com/campusq/survey-backend/internal/repository"
)

// DepartmentService handles department management.
type DepartmentService struct {
	departmentRepo *repository.DepartmentRepository
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(departmentRepo *repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departmentRepo: departmentRepo}
}

// List retrieves all departments.
func (s *DepartmentService) List(ctx context.Context) ([]model.Department, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if departments == nil {
		departments = []model.Department{}
	}
	return departments, nil
}

// Create adds a department.
func (s *DepartmentService) Create(ctx context.Context, d *model.Department) error {
	return s.departmentRepo.Create(ctx, d)
}

// Update modifies a department.
func (s *DepartmentService) Update(ctx context.Context, d *model.Department) error {
	return s.departmentRepo.Update(ctx, d)
}

// Delete removes a department.
func (s *DepartmentService) Delete(ctx context.Context, id int) error {
	return s.departmentRepo.Delete(ctx, id)
}
