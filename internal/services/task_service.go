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

const defaultTaskPerPage = 15

type TaskServiceInterface interface {
	List(ctx context.Context, actor *db_models.User, query request_models.ListTasksQuery) (*response_models.Paginated, error)
	Create(ctx context.Context, actor *db_models.User, req request_models.CreateTaskRequest) (*db_models.Task, error)
	Get(ctx context.Context, actor *db_models.User, id uuid.UUID) (*db_models.Task, error)
	Update(ctx context.Context, actor *db_models.User, id uuid.UUID, req request_models.UpdateTaskRequest) (*db_models.Task, error)
	Delete(ctx context.Context, actor *db_models.User, id uuid.UUID) error
}

type TaskService struct {
	taskRepo        repositories.TaskRepository
	projectRepo     repositories.ProjectRepository
	userRepo        repositories.UserRepository
	subordinateRepo repositories.SubordinateRepository
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	subordinateRepo repositories.SubordinateRepository,
) TaskServiceInterface {
	return &TaskService{
		taskRepo:        taskRepo,
		projectRepo:     projectRepo,
		userRepo:        userRepo,
		subordinateRepo: subordinateRepo,
	}
}

func parseOptionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, utils.NewValidationError(field, "The selected "+field+" is invalid.")
	}
	return &id, nil
}

// resolveAssignee loads whatever the authorization rules need (the target
// account and, for managers, the delegation edge) and delegates the decision.
func (s *TaskService) resolveAssignee(ctx context.Context, actor *db_models.User, requested *uuid.UUID) (*uuid.UUID, error) {
	var target *db_models.User
	if requested != nil {
		var err error
		target, err = s.userRepo.FindById(ctx, *requested)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	hasEdge := false
	if actor.HasRole(db_models.RoleManager) && requested != nil && *requested != actor.ID {
		var err error
		hasEdge, err = s.subordinateRepo.Exists(ctx, actor.ID, *requested)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	return authz.ResolveAssignee(actor, requested, target, hasEdge)
}

// resolveProjectForWrite returns the project a task write lands in. An
// explicit id must exist and be accessible; otherwise the actor's personal
// workspace is used, created on first touch.
func (s *TaskService) resolveProjectForWrite(ctx context.Context, actor *db_models.User, projectID *uuid.UUID) (*db_models.Project, error) {
	if projectID == nil {
		project, err := s.projectRepo.GetOrCreatePersonal(ctx, actor.ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		return project, nil
	}

	project, err := s.projectRepo.FindById(ctx, *projectID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if project == nil {
		return nil, utils.NewValidationError("project_id", "The selected project_id is invalid.")
	}
	if !authz.CanAccessProject(actor, project) {
		return nil, utils.NewForbiddenError("Forbidden")
	}
	return project, nil
}

func (s *TaskService) List(ctx context.Context, actor *db_models.User, query request_models.ListTasksQuery) (*response_models.Paginated, error) {
	filter := repositories.TaskListFilter{
		Status:  query.Status,
		Page:    query.Page,
		PerPage: query.PerPage,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = defaultTaskPerPage
	}

	if !actor.HasRole(db_models.RoleAdmin) {
		id := actor.ID
		filter.ScopeUserID = &id
	}

	if query.ProjectID != "" {
		id, err := uuid.Parse(query.ProjectID)
		if err != nil {
			return nil, utils.NewValidationError("project_id", "The selected project_id is invalid.")
		}
		filter.ProjectID = &id
	}
	if query.AssignedTo != "" {
		id, err := uuid.Parse(query.AssignedTo)
		if err != nil {
			return nil, utils.NewValidationError("assigned_to", "The selected assigned_to is invalid.")
		}
		filter.AssignedTo = &id
	}

	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	page := response_models.NewPaginated(tasks, filter.Page, filter.PerPage, total)
	return &page, nil
}

func (s *TaskService) Create(ctx context.Context, actor *db_models.User, req request_models.CreateTaskRequest) (*db_models.Task, error) {
	projectID, err := parseOptionalUUID(req.ProjectID, "project_id")
	if err != nil {
		return nil, err
	}
	project, err := s.resolveProjectForWrite(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	requested, err := parseOptionalUUID(req.AssignedTo, "assigned_to")
	if err != nil {
		return nil, err
	}
	assignee, err := s.resolveAssignee(ctx, actor, requested)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = db_models.TaskStatusPending
	}

	task := &db_models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
		ProjectID:   project.ID,
		AssignedTo:  assignee,
		UserID:      actor.ID,
		CreatedBy:   actor.ID,
		UpdatedBy:   actor.ID,
	}
	if err := s.taskRepo.Insert(ctx, task); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return s.loadTask(ctx, task.ID)
}

func (s *TaskService) Get(ctx context.Context, actor *db_models.User, id uuid.UUID) (*db_models.Task, error) {
	task, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.AuthorizeTaskAccess(actor, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, actor *db_models.User, id uuid.UUID, req request_models.UpdateTaskRequest) (*db_models.Task, error) {
	task, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.AuthorizeTaskAccess(actor, task); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"updated_by": actor.ID}

	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}

	if req.ProjectID != nil {
		projectID, err := parseOptionalUUID(req.ProjectID, "project_id")
		if err != nil {
			return nil, err
		}
		project, err := s.resolveProjectForWrite(ctx, actor, projectID)
		if err != nil {
			return nil, err
		}
		fields["project_id"] = project.ID
	}

	assigneePresent, rawAssignee, err := req.AssignedToUpdate()
	if err != nil {
		return nil, utils.NewValidationError("assigned_to", "The selected assigned_to is invalid.")
	}
	if assigneePresent {
		requested, err := parseOptionalUUID(rawAssignee, "assigned_to")
		if err != nil {
			return nil, err
		}
		assignee, err := s.resolveAssignee(ctx, actor, requested)
		if err != nil {
			return nil, err
		}
		fields["assigned_to"] = assignee
	}

	if err := s.taskRepo.Updates(ctx, task, fields); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return s.loadTask(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, actor *db_models.User, id uuid.UUID) error {
	task, err := s.loadTask(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.AuthorizeTaskAccess(actor, task); err != nil {
		return err
	}
	if err := s.taskRepo.SoftDelete(ctx, task, actor.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *TaskService) loadTask(ctx context.Context, id uuid.UUID) (*db_models.Task, error) {
	task, err := s.taskRepo.FindById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if task == nil {
		return nil, utils.ErrNotFound
	}
	return task, nil
}
