package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Green254/TaskPulse/internal/authz"
	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/internal/models/response_models"
	"github.com/Green254/TaskPulse/internal/repositories"
	"github.com/Green254/TaskPulse/pkg/utils"
)

type RoleServiceInterface interface {
	List(ctx context.Context) ([]db_models.Role, error)
	ListUsersWithRoles(ctx context.Context) ([]response_models.UserResponse, error)
	Assign(ctx context.Context, userID, roleID uuid.UUID) error
	// Revoke detaches a single role. Detaching admin carries the same self
	// and last-active-admin guards as a role change.
	Revoke(ctx context.Context, actorID, userID, roleID uuid.UUID) error
}

type RoleService struct {
	roleRepo repositories.RoleRepository
	userRepo repositories.UserRepository
}

func NewRoleService(roleRepo repositories.RoleRepository, userRepo repositories.UserRepository) RoleServiceInterface {
	return &RoleService{roleRepo: roleRepo, userRepo: userRepo}
}

func (s *RoleService) List(ctx context.Context) ([]db_models.Role, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return roles, nil
}

func (s *RoleService) ListUsersWithRoles(ctx context.Context) ([]response_models.UserResponse, error) {
	users, err := s.roleRepo.ListUsersWithRoles(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return response_models.NewUserResponses(users), nil
}

func (s *RoleService) loadPair(ctx context.Context, userID, roleID uuid.UUID) (*db_models.User, *db_models.Role, error) {
	user, err := s.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, nil, utils.ErrNotFound
	}

	role, err := s.roleRepo.FindById(ctx, roleID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if role == nil {
		return nil, nil, utils.NewValidationError("role_id", "The selected role_id is invalid.")
	}
	return user, role, nil
}

func (s *RoleService) Assign(ctx context.Context, userID, roleID uuid.UUID) error {
	user, role, err := s.loadPair(ctx, userID, roleID)
	if err != nil {
		return err
	}
	if user.HasRole(role.Name) {
		return nil
	}
	if err := s.roleRepo.Attach(ctx, user.ID, role.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *RoleService) Revoke(ctx context.Context, actorID, userID, roleID uuid.UUID) error {
	user, role, err := s.loadPair(ctx, userID, roleID)
	if err != nil {
		return err
	}

	if role.Name == db_models.RoleAdmin {
		count, err := s.userRepo.CountActiveAdmins(ctx)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if err := authz.CheckRoleUpdate(actorID, user, db_models.RoleUser, count); err != nil {
			return err
		}
	}

	if err := s.roleRepo.Detach(ctx, user.ID, role.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
