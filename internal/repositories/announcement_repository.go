package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Green254/TaskPulse/internal/models/db_models"
)

// activeWindow matches broadcasts whose active flag is set and whose optional
// start/end window contains now.
const activeWindow = "is_active = true AND (starts_at IS NULL OR starts_at <= ?) AND (ends_at IS NULL OR ends_at >= ?)"

type AnnouncementRepository interface {
	Insert(ctx context.Context, announcement *db_models.Announcement) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int) ([]db_models.Announcement, error)
	// ListActiveFor filters currently active broadcasts down to the ones the
	// viewer should see: scope all, scope role matching any held role, or
	// scope department matching the viewer's department.
	ListActiveFor(ctx context.Context, viewer *db_models.User, limit int) ([]db_models.Announcement, error)
	CountActiveNow(ctx context.Context) (int64, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Insert(ctx context.Context, announcement *db_models.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *announcementRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Announcement, error) {
	var announcement db_models.Announcement
	err := r.db.WithContext(ctx).First(&announcement, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Announcement{}, "id = ?", id).Error
}

func (r *announcementRepository) List(ctx context.Context, limit int) ([]db_models.Announcement, error) {
	var announcements []db_models.Announcement
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Department").
		Order("created_at DESC").
		Limit(limit).
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *announcementRepository) ListActiveFor(ctx context.Context, viewer *db_models.User, limit int) ([]db_models.Announcement, error) {
	now := time.Now()
	roleNames := viewer.RoleNames()

	query := r.db.WithContext(ctx).
		Preload("Department").
		Where(activeWindow, now, now)

	scope := r.db.Where("target_scope = ?", db_models.AnnouncementScopeAll)
	if len(roleNames) > 0 {
		scope = scope.Or("target_scope = ? AND target_role IN ?", db_models.AnnouncementScopeRole, roleNames)
	}
	if viewer.DepartmentID != nil {
		scope = scope.Or("target_scope = ? AND target_department_id = ?", db_models.AnnouncementScopeDepartment, *viewer.DepartmentID)
	}
	query = query.Where(scope)

	var announcements []db_models.Announcement
	err := query.
		Order("is_pinned DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *announcementRepository) CountActiveNow(ctx context.Context) (int64, error) {
	now := time.Now()
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Announcement{}).
		Where(activeWindow, now, now).
		Count(&count).Error
	return count, err
}
