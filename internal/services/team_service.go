package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Green254/TaskPulse/internal/authz"
	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/internal/models/request_models"
	"github.com/Green254/TaskPulse/internal/models/response_models"
	"github.com/Green254/TaskPulse/internal/repositories"
	"github.com/Green254/TaskPulse/pkg/utils"
)

type TeamServiceInterface interface {
	// VisibleUsers returns the accounts the actor may pick as task assignees:
	// everyone for admins, self plus linked subordinates for managers, and
	// just the actor for everyone else.
	VisibleUsers(ctx context.Context, actor *db_models.User) ([]response_models.UserResponse, error)
	Subordinates(ctx context.Context, actor *db_models.User, query request_models.SubordinatesQuery) ([]db_models.ManagerSubordinate, error)
	AssignSubordinate(ctx context.Context, actor *db_models.User, req request_models.AssignSubordinateRequest) error
	RemoveSubordinate(ctx context.Context, actor *db_models.User, subordinateID uuid.UUID, req request_models.RemoveSubordinateRequest) error
}

type TeamService struct {
	userRepo        repositories.UserRepository
	subordinateRepo repositories.SubordinateRepository
}

func NewTeamService(
	userRepo repositories.UserRepository,
	subordinateRepo repositories.SubordinateRepository,
) TeamServiceInterface {
	return &TeamService{
		userRepo:        userRepo,
		subordinateRepo: subordinateRepo,
	}
}

func (s *TeamService) VisibleUsers(ctx context.Context, actor *db_models.User) ([]response_models.UserResponse, error) {
	if actor.HasRole(db_models.RoleAdmin) {
		users, err := s.userRepo.List(ctx, repositories.UserListFilter{})
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		return response_models.NewUserResponses(users), nil
	}

	var subordinateIds []uuid.UUID
	if actor.HasRole(db_models.RoleManager) {
		var err error
		subordinateIds, err = s.subordinateRepo.SubordinateIds(ctx, actor.ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	users, err := s.userRepo.ListByIds(ctx, subordinateIds, actor.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return response_models.NewUserResponses(users), nil
}

func (s *TeamService) Subordinates(ctx context.Context, actor *db_models.User, query request_models.SubordinatesQuery) ([]db_models.ManagerSubordinate, error) {
	var managerID *uuid.UUID

	switch {
	case actor.HasRole(db_models.RoleAdmin):
		if query.ManagerID != "" {
			id, err := uuid.Parse(query.ManagerID)
			if err != nil {
				return nil, utils.NewValidationError("manager_id", "The selected manager_id is invalid.")
			}
			managerID = &id
		}
	case actor.HasRole(db_models.RoleManager):
		id := actor.ID
		managerID = &id
	default:
		return nil, utils.NewForbiddenError("Forbidden")
	}

	edges, err := s.subordinateRepo.ListEdges(ctx, managerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return edges, nil
}

// resolveManager loads the requested manager row (when an id was named) and
// lets the authorization rules pick who the mutation applies to.
func (s *TeamService) resolveManager(ctx context.Context, actor *db_models.User, rawManagerID *string) (*db_models.User, error) {
	var requestedID *uuid.UUID
	var requested *db_models.User

	if rawManagerID != nil {
		id, err := uuid.Parse(*rawManagerID)
		if err != nil {
			return nil, utils.NewValidationError("manager_id", "The selected manager_id is invalid.")
		}
		requestedID = &id

		requested, err = s.userRepo.FindById(ctx, id)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	return authz.ResolveManagerForMutation(actor, requestedID, requested)
}

func (s *TeamService) AssignSubordinate(ctx context.Context, actor *db_models.User, req request_models.AssignSubordinateRequest) error {
	manager, err := s.resolveManager(ctx, actor, req.ManagerID)
	if err != nil {
		return err
	}

	subordinateID, err := uuid.Parse(req.SubordinateID)
	if err != nil {
		return utils.NewValidationError("subordinate_id", "The selected subordinate_id is invalid.")
	}
	subordinate, err := s.userRepo.FindById(ctx, subordinateID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if subordinate == nil {
		return utils.NewValidationError("subordinate_id", "The selected subordinate_id is invalid.")
	}

	if err := authz.CheckSubordinate(manager, subordinate); err != nil {
		return err
	}

	if err := s.subordinateRepo.Add(ctx, manager.ID, subordinate.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *TeamService) RemoveSubordinate(ctx context.Context, actor *db_models.User, subordinateID uuid.UUID, req request_models.RemoveSubordinateRequest) error {
	manager, err := s.resolveManager(ctx, actor, req.ManagerID)
	if err != nil {
		return err
	}

	// Removing an edge that never existed is a silent success.
	if err := s.subordinateRepo.Remove(ctx, manager.ID, subordinateID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
