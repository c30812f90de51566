package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Green254/TaskPulse/internal/authz"
	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/pkg/utils"
)

// notCurrentlySuspended matches active rows plus suspended rows whose expiry
// has already passed (lazily still flagged, but no longer counting).
const notCurrentlySuspended = "(users.is_suspended = false OR (users.is_suspended = true AND users.suspended_until IS NOT NULL AND users.suspended_until <= ?))"

const currentlySuspended = "(users.is_suspended = true AND (users.suspended_until IS NULL OR users.suspended_until > ?))"

type UserListFilter struct {
	Search       string
	Role         string
	DepartmentID *uuid.UUID
	Status       string // all, active or suspended
}

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByName(ctx context.Context, name string) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindByNameAndEmail(ctx context.Context, name, email string) (*db_models.User, error)
	List(ctx context.Context, filter UserListFilter) ([]db_models.User, error)
	ListByIds(ctx context.Context, ids []uuid.UUID, includeSelf uuid.UUID) ([]db_models.User, error)
	SyncRoles(ctx context.Context, user *db_models.User, roleNames []string) error
	AttachRoles(ctx context.Context, user *db_models.User, roleNames []string) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
	ClearSuspension(ctx context.Context, id uuid.UUID) error
	CountAll(ctx context.Context) (int64, error)
	CountCurrentlySuspended(ctx context.Context) (int64, error)
	CountWithAnyRole(ctx context.Context, roleNames ...string) (int64, error)
	CountActiveAdmins(ctx context.Context) (int64, error)
	GuardedSetRole(ctx context.Context, actorID, targetID uuid.UUID, primaryRole string) (*db_models.User, error)
	GuardedSuspend(ctx context.Context, actorID, targetID uuid.UUID, until *time.Time, reason *string) (*db_models.User, error)
	GuardedDelete(ctx context.Context, actorID, targetID uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// IsUniqueViolation lets services turn a postgres duplicate-key failure into
// a field-scoped validation error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "SQLSTATE 23505") ||
		errors.Is(err, gorm.ErrDuplicatedKey)
}

func (r *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) findOne(ctx context.Context, conds ...interface{}) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Preload("Department").
		First(&user, conds...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) FindByName(ctx context.Context, name string) (*db_models.User, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) FindByNameAndEmail(ctx context.Context, name, email string) (*db_models.User, error) {
	return r.findOne(ctx, "name = ? AND email = ?", name, email)
}

func (r *userRepository) List(ctx context.Context, filter UserListFilter) ([]db_models.User, error) {
	query := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Preload("Roles").
		Preload("Department").
		Order("name")

	if filter.Search != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ?", search, search)
	}

	if filter.Role != "" {
		query = query.
			Joins("JOIN role_users ON role_users.user_id = users.id").
			Joins("JOIN roles ON roles.id = role_users.role_id").
			Where("roles.name = ?", filter.Role)
	}

	if filter.DepartmentID != nil {
		query = query.Where("users.department_id = ?", *filter.DepartmentID)
	}

	now := time.Now()
	switch filter.Status {
	case "suspended":
		query = query.Where(currentlySuspended, now)
	case "active":
		query = query.Where(notCurrentlySuspended, now)
	}

	var users []db_models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListByIds(ctx context.Context, ids []uuid.UUID, includeSelf uuid.UUID) ([]db_models.User, error) {
	all := append([]uuid.UUID{includeSelf}, ids...)

	var users []db_models.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Preload("Department").
		Where("id IN ?", all).
		Order("name").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func ensureRoles(tx *gorm.DB, roleNames []string) ([]db_models.Role, error) {
	roles := make([]db_models.Role, 0, len(roleNames))
	for _, name := range roleNames {
		var role db_models.Role
		if err := tx.Where(db_models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// SyncRoles replaces the user's role set with exactly roleNames.
func (r *userRepository) SyncRoles(ctx context.Context, user *db_models.User, roleNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return syncRolesTx(tx, user, roleNames)
	})
}

func syncRolesTx(tx *gorm.DB, user *db_models.User, roleNames []string) error {
	roles, err := ensureRoles(tx, roleNames)
	if err != nil {
		return err
	}
	return tx.Model(user).Association("Roles").Replace(roles)
}

// AttachRoles adds roleNames without detaching existing assignments.
func (r *userRepository) AttachRoles(ctx context.Context, user *db_models.User, roleNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roles, err := ensureRoles(tx, roleNames)
		if err != nil {
			return err
		}
		return tx.Model(user).Association("Roles").Append(roles)
	})
}

func (r *userRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash).Error
}

// ClearSuspension normalizes a record back to Active.
func (r *userRepository) ClearSuspension(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_suspended":      false,
			"suspended_until":   nil,
			"suspension_reason": nil,
		}).Error
}

func (r *userRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) CountCurrentlySuspended(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where(currentlySuspended, time.Now()).
		Count(&count).Error
	return count, err
}

func (r *userRepository) CountWithAnyRole(ctx context.Context, roleNames ...string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Distinct("users.id").
		Joins("JOIN role_users ON role_users.user_id = users.id").
		Joins("JOIN roles ON roles.id = role_users.role_id").
		Where("roles.name IN ?", roleNames).
		Count(&count).Error
	return count, err
}

func (r *userRepository) CountActiveAdmins(ctx context.Context) (int64, error) {
	return activeAdminCount(r.db.WithContext(ctx))
}

func activeAdminCount(tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.
		Model(&db_models.User{}).
		Distinct("users.id").
		Joins("JOIN role_users ON role_users.user_id = users.id").
		Joins("JOIN roles ON roles.id = role_users.role_id").
		Where("roles.name = ?", db_models.RoleAdmin).
		Where(notCurrentlySuspended, time.Now()).
		Count(&count).Error
	return count, err
}

func lockTarget(tx *gorm.DB, targetID uuid.UUID) (*db_models.User, error) {
	var target db_models.User
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&target, "id = ?", targetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if err := tx.Preload("Roles").Preload("Department").First(&target, "id = ?", targetID).Error; err != nil {
		return nil, err
	}
	return &target, nil
}

// GuardedSetRole runs the role change and its last-admin/self guards inside
// one transaction so two concurrent demotions cannot both observe a safe
// admin count.
func (r *userRepository) GuardedSetRole(ctx context.Context, actorID, targetID uuid.UUID, primaryRole string) (*db_models.User, error) {
	var out *db_models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := lockTarget(tx, targetID)
		if err != nil {
			return err
		}

		count, err := activeAdminCount(tx)
		if err != nil {
			return err
		}
		if err := authz.CheckRoleUpdate(actorID, target, primaryRole, count); err != nil {
			return err
		}

		roleNames := []string{db_models.RoleUser}
		if primaryRole == db_models.RoleAdmin {
			roleNames = []string{db_models.RoleAdmin}
		} else if primaryRole != db_models.RoleUser {
			roleNames = append(roleNames, primaryRole)
		}
		if err := syncRolesTx(tx, target, roleNames); err != nil {
			return err
		}

		var refreshed db_models.User
		if err := tx.Preload("Roles").Preload("Department").First(&refreshed, "id = ?", targetID).Error; err != nil {
			return err
		}
		out = &refreshed
		return nil
	})
	return out, err
}

// GuardedSuspend transitions target to Suspended and revokes every issued
// token, holding the target row lock across the admin-count check.
func (r *userRepository) GuardedSuspend(ctx context.Context, actorID, targetID uuid.UUID, until *time.Time, reason *string) (*db_models.User, error) {
	var out *db_models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := lockTarget(tx, targetID)
		if err != nil {
			return err
		}

		count, err := activeAdminCount(tx)
		if err != nil {
			return err
		}
		if err := authz.CheckSuspend(actorID, target, count); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"is_suspended":      true,
			"suspended_until":   until,
			"suspension_reason": reason,
		}
		if err := tx.Model(target).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("user_id = ?", targetID).Delete(&db_models.AccessToken{}).Error; err != nil {
			return err
		}

		var refreshed db_models.User
		if err := tx.Preload("Roles").Preload("Department").First(&refreshed, "id = ?", targetID).Error; err != nil {
			return err
		}
		out = &refreshed
		return nil
	})
	return out, err
}

// GuardedDelete removes the account, its tokens and its delegation edges.
func (r *userRepository) GuardedDelete(ctx context.Context, actorID, targetID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := lockTarget(tx, targetID)
		if err != nil {
			return err
		}

		count, err := activeAdminCount(tx)
		if err != nil {
			return err
		}
		if err := authz.CheckDelete(actorID, target, count); err != nil {
			return err
		}

		if err := tx.Unscoped().Where("user_id = ?", targetID).Delete(&db_models.AccessToken{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().
			Where("manager_id = ? OR subordinate_id = ?", targetID, targetID).
			Delete(&db_models.ManagerSubordinate{}).Error; err != nil {
			return err
		}
		if err := tx.Model(target).Association("Roles").Clear(); err != nil {
			return err
		}

		return tx.Unscoped().Delete(&db_models.User{}, "id = ?", targetID).Error
	})
}
