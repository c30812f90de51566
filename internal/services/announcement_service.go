package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/internal/models/request_models"
	"github.com/Green254/TaskPulse/internal/repositories"
	"github.com/Green254/TaskPulse/pkg/utils"
)

const (
	announcementListLimit   = 100
	announcementActiveLimit = 20
)

type AnnouncementServiceInterface interface {
	Create(ctx context.Context, actorID uuid.UUID, req request_models.CreateAnnouncementRequest) (*db_models.Announcement, error)
	ListAll(ctx context.Context) ([]db_models.Announcement, error)
	// ActiveFor returns the currently running broadcasts visible to viewer,
	// pinned entries first.
	ActiveFor(ctx context.Context, viewer *db_models.User) ([]db_models.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AnnouncementService struct {
	announcementRepo repositories.AnnouncementRepository
	departmentRepo   repositories.DepartmentRepository
}

func NewAnnouncementService(
	announcementRepo repositories.AnnouncementRepository,
	departmentRepo repositories.DepartmentRepository,
) AnnouncementServiceInterface {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		departmentRepo:   departmentRepo,
	}
}

// normalizeTarget enforces that the targeting fields agree with the scope:
// role scope needs a role, department scope needs an existing department,
// and scope all drops both.
func (s *AnnouncementService) normalizeTarget(ctx context.Context, req *request_models.CreateAnnouncementRequest) (*uuid.UUID, error) {
	switch req.TargetScope {
	case db_models.AnnouncementScopeRole:
		if req.TargetRole == nil || *req.TargetRole == "" {
			return nil, utils.NewValidationError("target_role", "The target_role field is required when target_scope is role.")
		}
		req.TargetDepartmentID = nil
		return nil, nil

	case db_models.AnnouncementScopeDepartment:
		if req.TargetDepartmentID == nil || *req.TargetDepartmentID == "" {
			return nil, utils.NewValidationError("target_department_id", "The target_department_id field is required when target_scope is department.")
		}
		id, err := uuid.Parse(*req.TargetDepartmentID)
		if err != nil {
			return nil, utils.NewValidationError("target_department_id", "The selected target_department_id is invalid.")
		}
		department, err := s.departmentRepo.FindById(ctx, id)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if department == nil {
			return nil, utils.NewValidationError("target_department_id", "The selected target_department_id is invalid.")
		}
		req.TargetRole = nil
		return &id, nil

	default:
		req.TargetRole = nil
		req.TargetDepartmentID = nil
		return nil, nil
	}
}

func (s *AnnouncementService) Create(ctx context.Context, actorID uuid.UUID, req request_models.CreateAnnouncementRequest) (*db_models.Announcement, error) {
	departmentID, err := s.normalizeTarget(ctx, &req)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	announcement := &db_models.Announcement{
		Title:              req.Title,
		Message:            req.Message,
		Type:               req.Type,
		TargetScope:        req.TargetScope,
		TargetRole:         req.TargetRole,
		TargetDepartmentID: departmentID,
		IsPinned:           req.IsPinned,
		IsActive:           isActive,
		StartsAt:           req.StartsAt,
		EndsAt:             req.EndsAt,
		CreatedBy:          actorID,
	}
	if err := s.announcementRepo.Insert(ctx, announcement); err != nil {
		return nil, utils.ErrDatabaseError
	}

	fresh, err := s.announcementRepo.FindById(ctx, announcement.ID)
	if err != nil || fresh == nil {
		return nil, utils.ErrDatabaseError
	}
	return fresh, nil
}

func (s *AnnouncementService) ListAll(ctx context.Context) ([]db_models.Announcement, error) {
	announcements, err := s.announcementRepo.List(ctx, announcementListLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return announcements, nil
}

func (s *AnnouncementService) ActiveFor(ctx context.Context, viewer *db_models.User) ([]db_models.Announcement, error) {
	announcements, err := s.announcementRepo.ListActiveFor(ctx, viewer, announcementActiveLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return announcements, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.announcementRepo.FindById(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrNotFound
	}
	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
