package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Green254/TaskPulse/internal/models/db_models"
)

type TaskListFilter struct {
	// ScopeUserID restricts results to tasks the given non-admin user may
	// see: created by them, assigned to them, or in a project they own.
	ScopeUserID *uuid.UUID
	Status      string
	ProjectID   *uuid.UUID
	AssignedTo  *uuid.UUID
	Page        int
	PerPage     int
}

type TaskRepository interface {
	Insert(ctx context.Context, task *db_models.Task) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Task, error)
	Updates(ctx context.Context, task *db_models.Task, fields map[string]interface{}) error
	SoftDelete(ctx context.Context, task *db_models.Task, deletedBy uuid.UUID) error
	List(ctx context.Context, filter TaskListFilter) ([]db_models.Task, int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Insert(ctx context.Context, task *db_models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Task, error) {
	var task db_models.Task
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Assignee").
		Preload("Assignee.Roles").
		First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Updates(ctx context.Context, task *db_models.Task, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(task).Updates(fields).Error
}

func (r *taskRepository) SoftDelete(ctx context.Context, task *db_models.Task, deletedBy uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(task).Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Delete(task).Error
	})
}

func (r *taskRepository) List(ctx context.Context, filter TaskListFilter) ([]db_models.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&db_models.Task{})

	if filter.ScopeUserID != nil {
		uid := *filter.ScopeUserID
		query = query.Where(
			"tasks.created_by = ? OR tasks.assigned_to = ? OR tasks.project_id IN (?)",
			uid, uid,
			r.db.Model(&db_models.Project{}).Select("id").Where("created_by = ? OR user_id = ?", uid, uid),
		)
	}

	if filter.Status != "" {
		query = query.Where("tasks.status = ?", filter.Status)
	}
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.AssignedTo != nil {
		query = query.Where("tasks.assigned_to = ?", *filter.AssignedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 15
	}

	var tasks []db_models.Task
	err := query.
		Preload("Project").
		Preload("Assignee").
		Order("tasks.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}
