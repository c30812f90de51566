package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/internal/models/request_models"
	"github.com/Green254/TaskPulse/internal/models/response_models"
	"github.com/Green254/TaskPulse/internal/repositories"
	mem "github.com/Green254/TaskPulse/pkg/memcache"
	"github.com/Green254/TaskPulse/pkg/utils"
)

const resetTokenTTL = 30 * time.Minute

type AuthServiceInterface interface {
	Register(ctx context.Context, req request_models.RegisterRequest) (string, *response_models.UserResponse, error)
	Login(ctx context.Context, req request_models.LoginRequest) (string, *response_models.UserResponse, error)
	Logout(ctx context.Context, tokenID uuid.UUID) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req request_models.ResetPasswordRequest) error
}

type AuthService struct {
	userRepo       repositories.UserRepository
	departmentRepo repositories.DepartmentRepository
	tokenRepo      repositories.AccessTokenRepository
	mailService    IMailService
	resetTokens    mem.ResetTokenStore
}

func NewAuthService(
	userRepo repositories.UserRepository,
	departmentRepo repositories.DepartmentRepository,
	tokenRepo repositories.AccessTokenRepository,
	mailService IMailService,
	resetTokens mem.ResetTokenStore,
) AuthServiceInterface {
	return &AuthService{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		tokenRepo:      tokenRepo,
		mailService:    mailService,
		resetTokens:    resetTokens,
	}
}

// departmentRoleFor maps a department to the extra role granted at
// registration. Unknown departments grant nothing beyond the base role.
func departmentRoleFor(departmentName string) string {
	switch strings.ToLower(departmentName) {
	case "management":
		return db_models.RoleManager
	case "security":
		return db_models.RoleWatchman
	case "kitchen":
		return db_models.RoleChef
	case "staff":
		return db_models.RoleStaff
	default:
		return db_models.RoleUser
	}
}

func (s *AuthService) issueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token := &db_models.AccessToken{UserID: userID, Name: "main"}
	if err := s.tokenRepo.Insert(ctx, token); err != nil {
		return "", utils.ErrDatabaseError
	}
	return utils.CreateToken(token.ID, userID)
}

func (s *AuthService) Register(ctx context.Context, req request_models.RegisterRequest) (string, *response_models.UserResponse, error) {
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return "", nil, utils.NewValidationError("department_id", "The selected department_id is invalid.")
	}

	department, err := s.departmentRepo.FindById(ctx, departmentID)
	if err != nil {
		return "", nil, utils.ErrDatabaseError
	}
	if department == nil {
		return "", nil, utils.NewValidationError("department_id", "The selected department_id is invalid.")
	}

	if existing, err := s.userRepo.FindByName(ctx, req.Name); err != nil {
		return "", nil, utils.ErrDatabaseError
	} else if existing != nil {
		return "", nil, utils.NewValidationError("name", "The name has already been taken.")
	}

	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err != nil {
		return "", nil, utils.ErrDatabaseError
	} else if existing != nil {
		return "", nil, utils.NewValidationError("email", "The email has already been taken.")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return "", nil, utils.ErrDatabaseError
	}

	user := &db_models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		DepartmentID: &department.ID,
	}
	if err := s.userRepo.Insert(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return "", nil, utils.NewValidationError("name", "The name has already been taken.")
		}
		return "", nil, utils.ErrDatabaseError
	}

	roleNames := []string{db_models.RoleUser}
	if extra := departmentRoleFor(department.Name); extra != db_models.RoleUser {
		roleNames = append(roleNames, extra)
	}
	if err := s.userRepo.AttachRoles(ctx, user, roleNames); err != nil {
		return "", nil, utils.ErrDatabaseError
	}

	tokenString, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	fresh, err := s.userRepo.FindById(ctx, user.ID)
	if err != nil || fresh == nil {
		return "", nil, utils.ErrDatabaseError
	}

	resp := response_models.NewUserResponse(fresh)
	return tokenString, &resp, nil
}

func (s *AuthService) Login(ctx context.Context, req request_models.LoginRequest) (string, *response_models.UserResponse, error) {
	invalidCredentials := &utils.ValidationError{Fields: map[string][]string{
		"name":  {"The provided credentials are incorrect."},
		"email": {"The provided credentials are incorrect."},
	}}

	user, err := s.userRepo.FindByNameAndEmail(ctx, req.Name, req.Email)
	if err != nil {
		return "", nil, utils.ErrDatabaseError
	}
	if user == nil {
		return "", nil, invalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		return "", nil, invalidCredentials
	}

	if user.IsCurrentlySuspended() {
		return "", nil, utils.NewSuspendedError(user.SuspendedUntil)
	}

	if user.SuspensionExpired() {
		if err := s.userRepo.ClearSuspension(ctx, user.ID); err != nil {
			return "", nil, utils.ErrDatabaseError
		}
		user.IsSuspended = false
		user.SuspendedUntil = nil
		user.SuspensionReason = nil
	}

	tokenString, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	resp := response_models.NewUserResponse(user)
	return tokenString, &resp, nil
}

func (s *AuthService) Logout(ctx context.Context, tokenID uuid.UUID) error {
	if err := s.tokenRepo.Delete(ctx, tokenID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// ForgotPassword never reveals whether the email exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}

	s.resetTokens.Set(token, user.Email, resetTokenTTL)

	if err := s.mailService.SendMailToResetPassword(user.Email, token); err != nil {
		log.Printf("Failed to send reset mail to %s: %v", user.Email, err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, req request_models.ResetPasswordRequest) error {
	invalidToken := utils.NewValidationError("token", "This password reset token is invalid.")

	email := s.resetTokens.Consume(req.Token)
	if email == "" || email != req.Email {
		return invalidToken
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return invalidToken
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if err := s.userRepo.UpdatePasswordByEmail(ctx, req.Email, passwordHash); err != nil {
		return utils.ErrDatabaseError
	}

	// Old sessions die with the old password.
	if err := s.tokenRepo.DeleteAllForUser(ctx, user.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
