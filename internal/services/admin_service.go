package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/internal/models/request_models"
	"github.com/Green254/TaskPulse/internal/models/response_models"
	"github.com/Green254/TaskPulse/internal/repositories"
	"github.com/Green254/TaskPulse/pkg/utils"
)

type AdminServiceInterface interface {
	Summary(ctx context.Context) (*response_models.AdminSummary, error)
	ListUsers(ctx context.Context, query request_models.ListUsersQuery) ([]response_models.UserResponse, error)
	CreateUser(ctx context.Context, req request_models.CreateUserRequest) (*response_models.UserResponse, error)
	UpdateUserRole(ctx context.Context, actorID, targetID uuid.UUID, role string) (*response_models.UserResponse, error)
	SuspendUser(ctx context.Context, actorID, targetID uuid.UUID, req request_models.SuspendUserRequest) (*response_models.UserResponse, error)
	ReactivateUser(ctx context.Context, targetID uuid.UUID) (*response_models.UserResponse, error)
	DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error
}

type AdminService struct {
	userRepo         repositories.UserRepository
	departmentRepo   repositories.DepartmentRepository
	announcementRepo repositories.AnnouncementRepository
	themeRepo        repositories.ThemeRepository
	mailService      IMailService
}

func NewAdminService(
	userRepo repositories.UserRepository,
	departmentRepo repositories.DepartmentRepository,
	announcementRepo repositories.AnnouncementRepository,
	themeRepo repositories.ThemeRepository,
	mailService IMailService,
) AdminServiceInterface {
	return &AdminService{
		userRepo:         userRepo,
		departmentRepo:   departmentRepo,
		announcementRepo: announcementRepo,
		themeRepo:        themeRepo,
		mailService:      mailService,
	}
}

func (s *AdminService) Summary(ctx context.Context) (*response_models.AdminSummary, error) {
	total, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	suspended, err := s.userRepo.CountCurrentlySuspended(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	departments, err := s.departmentRepo.CountAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	managers, err := s.userRepo.CountWithAnyRole(ctx, db_models.RoleManager)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	staff, err := s.userRepo.CountWithAnyRole(ctx, db_models.RoleStaff, db_models.RoleWatchman, db_models.RoleChef, db_models.RoleUser)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	announcements, err := s.announcementRepo.CountActiveNow(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	activeTheme, err := s.themeRepo.ActiveNow(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.AdminSummary{
		TotalUsers:        total,
		ActiveUsers:       total - suspended,
		SuspendedUsers:    suspended,
		DepartmentCount:   departments,
		ManagerCount:      managers,
		StaffCount:        staff,
		AnnouncementCount: announcements,
		ActiveTheme:       activeTheme,
	}, nil
}

func (s *AdminService) ListUsers(ctx context.Context, query request_models.ListUsersQuery) ([]response_models.UserResponse, error) {
	filter := repositories.UserListFilter{
		Search: query.Search,
		Role:   query.Role,
		Status: query.Status,
	}
	if query.DepartmentID != "" {
		id, err := uuid.Parse(query.DepartmentID)
		if err != nil {
			return nil, utils.NewValidationError("department_id", "The selected department_id is invalid.")
		}
		filter.DepartmentID = &id
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return response_models.NewUserResponses(users), nil
}

// rolesFor expands a primary role name into the stored role set: admin stands
// alone, user stands alone, every other role rides alongside the base role.
func rolesFor(primaryRole string) []string {
	switch primaryRole {
	case db_models.RoleAdmin:
		return []string{db_models.RoleAdmin}
	case db_models.RoleUser, "":
		return []string{db_models.RoleUser}
	default:
		return []string{db_models.RoleUser, primaryRole}
	}
}

func (s *AdminService) CreateUser(ctx context.Context, req request_models.CreateUserRequest) (*response_models.UserResponse, error) {
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return nil, utils.NewValidationError("department_id", "The selected department_id is invalid.")
	}
	department, err := s.departmentRepo.FindById(ctx, departmentID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if department == nil {
		return nil, utils.NewValidationError("department_id", "The selected department_id is invalid.")
	}

	if existing, err := s.userRepo.FindByName(ctx, req.Name); err != nil {
		return nil, utils.ErrDatabaseError
	} else if existing != nil {
		return nil, utils.NewValidationError("name", "The name has already been taken.")
	}
	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err != nil {
		return nil, utils.ErrDatabaseError
	} else if existing != nil {
		return nil, utils.NewValidationError("email", "The email has already been taken.")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	user := &db_models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		DepartmentID: &department.ID,
	}
	if err := s.userRepo.Insert(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.NewValidationError("name", "The name has already been taken.")
		}
		return nil, utils.ErrDatabaseError
	}

	role := req.Role
	if role == "" {
		role = departmentRoleFor(department.Name)
	}
	if err := s.userRepo.SyncRoles(ctx, user, rolesFor(role)); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return s.freshResponse(ctx, user.ID)
}

func (s *AdminService) UpdateUserRole(ctx context.Context, actorID, targetID uuid.UUID, role string) (*response_models.UserResponse, error) {
	updated, err := s.userRepo.GuardedSetRole(ctx, actorID, targetID, role)
	if err != nil {
		return nil, err
	}
	resp := response_models.NewUserResponse(updated)
	return &resp, nil
}

func (s *AdminService) SuspendUser(ctx context.Context, actorID, targetID uuid.UUID, req request_models.SuspendUserRequest) (*response_models.UserResponse, error) {
	if req.Until != nil && req.Until.Before(time.Now()) {
		return nil, utils.NewValidationError("until", "The until must be a date after now.")
	}

	updated, err := s.userRepo.GuardedSuspend(ctx, actorID, targetID, req.Until, req.Reason)
	if err != nil {
		return nil, err
	}

	s.notifySuspended(updated)

	resp := response_models.NewUserResponse(updated)
	return &resp, nil
}

func (s *AdminService) notifySuspended(user *db_models.User) {
	body := "Your account has been suspended."
	if user.SuspendedUntil != nil {
		body = "Your account has been suspended until " + user.SuspendedUntil.Format(time.RFC1123) + "."
	}
	if user.SuspensionReason != nil && *user.SuspensionReason != "" {
		body += " Reason: " + *user.SuspensionReason
	}
	if err := s.mailService.SendMailToNotifyUser(user.Email, "Account suspended", body, "", ""); err != nil {
		log.Printf("Failed to send suspension mail to %s: %v", user.Email, err)
	}
}

func (s *AdminService) ReactivateUser(ctx context.Context, targetID uuid.UUID) (*response_models.UserResponse, error) {
	target, err := s.userRepo.FindById(ctx, targetID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if target == nil {
		return nil, utils.ErrNotFound
	}

	if err := s.userRepo.ClearSuspension(ctx, targetID); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return s.freshResponse(ctx, targetID)
}

func (s *AdminService) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	return s.userRepo.GuardedDelete(ctx, actorID, targetID)
}

func (s *AdminService) freshResponse(ctx context.Context, id uuid.UUID) (*response_models.UserResponse, error) {
	fresh, err := s.userRepo.FindById(ctx, id)
	if err != nil || fresh == nil {
		return nil, utils.ErrDatabaseError
	}
	resp := response_models.NewUserResponse(fresh)
	return &resp, nil
}
