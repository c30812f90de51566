package services

import (
	"context"

	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/internal/repositories"
	"github.com/Green254/TaskPulse/pkg/utils"
)

type DepartmentServiceInterface interface {
	List(ctx context.Context) ([]db_models.Department, error)
}

type DepartmentService struct {
	departmentRepo repositories.DepartmentRepository
}

func NewDepartmentService(departmentRepo repositories.DepartmentRepository) DepartmentServiceInterface {
	return &DepartmentService{departmentRepo: departmentRepo}
}

func (s *DepartmentService) List(ctx context.Context) ([]db_models.Department, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return departments, nil
}
