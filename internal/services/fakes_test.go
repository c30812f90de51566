package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Green254/TaskPulse/internal/authz"
	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/internal/repositories"
	"github.com/Green254/TaskPulse/pkg/utils"
)

// In-memory repository doubles. They mirror the storage contracts closely
// enough for service-level tests: nil-on-missing lookups, idempotent edge
// writes, and the guarded admin mutations running the same authorization
// checks the real transactions run.

type fakeUserRepo struct {
	users map[uuid.UUID]*db_models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*db_models.User)}
}

func (f *fakeUserRepo) add(u *db_models.User) *db_models.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) Insert(_ context.Context, user *db_models.User) error {
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByName(_ context.Context, name string) (*db_models.User, error) {
	for _, u := range f.users {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByNameAndEmail(_ context.Context, name, email string) (*db_models.User, error) {
	for _, u := range f.users {
		if u.Name == name && u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(_ context.Context, filter repositories.UserListFilter) ([]db_models.User, error) {
	var out []db_models.User
	for _, u := range f.users {
		if filter.Role != "" && !u.HasRole(filter.Role) {
			continue
		}
		if filter.Status == "suspended" && !u.IsCurrentlySuspended() {
			continue
		}
		if filter.Status == "active" && u.IsCurrentlySuspended() {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeUserRepo) ListByIds(_ context.Context, ids []uuid.UUID, includeSelf uuid.UUID) ([]db_models.User, error) {
	wanted := map[uuid.UUID]bool{includeSelf: true}
	for _, id := range ids {
		wanted[id] = true
	}
	var out []db_models.User
	for id, u := range f.users {
		if wanted[id] {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func rolesFromNames(names []string) []db_models.Role {
	roles := make([]db_models.Role, 0, len(names))
	for _, name := range names {
		role := db_models.Role{Name: name}
		role.ID = uuid.New()
		roles = append(roles, role)
	}
	return roles
}

func (f *fakeUserRepo) SyncRoles(_ context.Context, user *db_models.User, roleNames []string) error {
	stored := f.users[user.ID]
	stored.Roles = rolesFromNames(roleNames)
	return nil
}

func (f *fakeUserRepo) AttachRoles(_ context.Context, user *db_models.User, roleNames []string) error {
	stored := f.users[user.ID]
	for _, name := range roleNames {
		if !stored.HasRole(name) {
			role := db_models.Role{Name: name}
			role.ID = uuid.New()
			stored.Roles = append(stored.Roles, role)
		}
	}
	return nil
}

func (f *fakeUserRepo) UpdatePasswordByEmail(_ context.Context, email, passwordHash string) error {
	for _, u := range f.users {
		if u.Email == email {
			u.PasswordHash = passwordHash
		}
	}
	return nil
}

func (f *fakeUserRepo) ClearSuspension(_ context.Context, id uuid.UUID) error {
	if u, ok := f.users[id]; ok {
		u.IsSuspended = false
		u.SuspendedUntil = nil
		u.SuspensionReason = nil
	}
	return nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) CountCurrentlySuspended(_ context.Context) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.IsCurrentlySuspended() {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) CountWithAnyRole(_ context.Context, roleNames ...string) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.HasAnyRole(roleNames...) {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) CountActiveAdmins(_ context.Context) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.HasRole(db_models.RoleAdmin) && !u.IsCurrentlySuspended() {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) GuardedSetRole(ctx context.Context, actorID, targetID uuid.UUID, primaryRole string) (*db_models.User, error) {
	target, ok := f.users[targetID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	count, _ := f.CountActiveAdmins(ctx)
	if err := authz.CheckRoleUpdate(actorID, target, primaryRole, count); err != nil {
		return nil, err
	}
	names := []string{db_models.RoleUser}
	if primaryRole == db_models.RoleAdmin {
		names = []string{db_models.RoleAdmin}
	} else if primaryRole != db_models.RoleUser {
		names = append(names, primaryRole)
	}
	target.Roles = rolesFromNames(names)
	return target, nil
}

func (f *fakeUserRepo) GuardedSuspend(ctx context.Context, actorID, targetID uuid.UUID, until *time.Time, reason *string) (*db_models.User, error) {
	target, ok := f.users[targetID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	count, _ := f.CountActiveAdmins(ctx)
	if err := authz.CheckSuspend(actorID, target, count); err != nil {
		return nil, err
	}
	target.IsSuspended = true
	target.SuspendedUntil = until
	target.SuspensionReason = reason
	return target, nil
}

func (f *fakeUserRepo) GuardedDelete(ctx context.Context, actorID, targetID uuid.UUID) error {
	target, ok := f.users[targetID]
	if !ok {
		return utils.ErrNotFound
	}
	count, _ := f.CountActiveAdmins(ctx)
	if err := authz.CheckDelete(actorID, target, count); err != nil {
		return err
	}
	delete(f.users, targetID)
	return nil
}

type fakeTokenRepo struct {
	tokens map[uuid.UUID]*db_models.AccessToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[uuid.UUID]*db_models.AccessToken)}
}

func (f *fakeTokenRepo) Insert(_ context.Context, token *db_models.AccessToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	f.tokens[token.ID] = token
	return nil
}

func (f *fakeTokenRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.AccessToken, error) {
	return f.tokens[id], nil
}

func (f *fakeTokenRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.tokens, id)
	return nil
}

func (f *fakeTokenRepo) DeleteAllForUser(_ context.Context, userID uuid.UUID) error {
	for id, token := range f.tokens {
		if token.UserID == userID {
			delete(f.tokens, id)
		}
	}
	return nil
}

func (f *fakeTokenRepo) countFor(userID uuid.UUID) int {
	count := 0
	for _, token := range f.tokens {
		if token.UserID == userID {
			count++
		}
	}
	return count
}

type fakeDepartmentRepo struct {
	departments map[uuid.UUID]*db_models.Department
}

func newFakeDepartmentRepo(names ...string) *fakeDepartmentRepo {
	f := &fakeDepartmentRepo{departments: make(map[uuid.UUID]*db_models.Department)}
	for _, name := range names {
		d := &db_models.Department{Name: name}
		d.ID = uuid.New()
		f.departments[d.ID] = d
	}
	return f
}

func (f *fakeDepartmentRepo) byName(name string) *db_models.Department {
	for _, d := range f.departments {
		if d.Name == name {
			return d
		}
	}
	return nil
}

func (f *fakeDepartmentRepo) List(_ context.Context) ([]db_models.Department, error) {
	var out []db_models.Department
	for _, d := range f.departments {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeDepartmentRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.Department, error) {
	return f.departments[id], nil
}

func (f *fakeDepartmentRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.departments)), nil
}

type fakeProjectRepo struct {
	projects map[uuid.UUID]*db_models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[uuid.UUID]*db_models.Project)}
}

func (f *fakeProjectRepo) add(p *db_models.Project) *db_models.Project {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.projects[p.ID] = p
	return p
}

func (f *fakeProjectRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.Project, error) {
	return f.projects[id], nil
}

func (f *fakeProjectRepo) GetOrCreatePersonal(_ context.Context, userID uuid.UUID) (*db_models.Project, error) {
	for _, p := range f.projects {
		if p.Name == db_models.PersonalWorkspaceName && p.UserID == userID {
			return p, nil
		}
	}
	return f.add(&db_models.Project{
		Name:      db_models.PersonalWorkspaceName,
		UserID:    userID,
		CreatedBy: userID,
	}), nil
}

type fakeTaskRepo struct {
	tasks    map[uuid.UUID]*db_models.Task
	projects *fakeProjectRepo
}

func newFakeTaskRepo(projects *fakeProjectRepo) *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*db_models.Task), projects: projects}
}

func (f *fakeTaskRepo) Insert(_ context.Context, task *db_models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	if project, ok := f.projects.projects[task.ProjectID]; ok {
		task.Project = project
	}
	return task, nil
}

func (f *fakeTaskRepo) Updates(_ context.Context, task *db_models.Task, fields map[string]interface{}) error {
	stored := f.tasks[task.ID]
	for key, value := range fields {
		switch key {
		case "title":
			stored.Title = value.(string)
		case "description":
			stored.Description = value.(string)
		case "status":
			stored.Status = value.(string)
		case "due_date":
			due := value.(time.Time)
			stored.DueDate = &due
		case "project_id":
			stored.ProjectID = value.(uuid.UUID)
		case "assigned_to":
			stored.AssignedTo = value.(*uuid.UUID)
		case "updated_by":
			stored.UpdatedBy = value.(uuid.UUID)
		}
	}
	return nil
}

func (f *fakeTaskRepo) SoftDelete(_ context.Context, task *db_models.Task, deletedBy uuid.UUID) error {
	stored := f.tasks[task.ID]
	stored.DeletedBy = &deletedBy
	delete(f.tasks, task.ID)
	return nil
}

func (f *fakeTaskRepo) List(_ context.Context, filter repositories.TaskListFilter) ([]db_models.Task, int64, error) {
	var matched []db_models.Task
	for _, task := range f.tasks {
		if filter.ScopeUserID != nil {
			uid := *filter.ScopeUserID
			inProject := false
			if project, ok := f.projects.projects[task.ProjectID]; ok {
				inProject = project.UserID == uid || project.CreatedBy == uid
			}
			if task.CreatedBy != uid && !inProject &&
				(task.AssignedTo == nil || *task.AssignedTo != uid) {
				continue
			}
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.ProjectID != nil && task.ProjectID != *filter.ProjectID {
			continue
		}
		if filter.AssignedTo != nil &&
			(task.AssignedTo == nil || *task.AssignedTo != *filter.AssignedTo) {
			continue
		}
		matched = append(matched, *task)
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.PerPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

type fakeSubordinateRepo struct {
	edges map[[2]uuid.UUID]bool
	users *fakeUserRepo
}

func newFakeSubordinateRepo(users *fakeUserRepo) *fakeSubordinateRepo {
	return &fakeSubordinateRepo{edges: make(map[[2]uuid.UUID]bool), users: users}
}

func (f *fakeSubordinateRepo) Add(_ context.Context, managerID, subordinateID uuid.UUID) error {
	f.edges[[2]uuid.UUID{managerID, subordinateID}] = true
	return nil
}

func (f *fakeSubordinateRepo) Remove(_ context.Context, managerID, subordinateID uuid.UUID) error {
	delete(f.edges, [2]uuid.UUID{managerID, subordinateID})
	return nil
}

func (f *fakeSubordinateRepo) Exists(_ context.Context, managerID, subordinateID uuid.UUID) (bool, error) {
	return f.edges[[2]uuid.UUID{managerID, subordinateID}], nil
}

func (f *fakeSubordinateRepo) ListEdges(_ context.Context, managerID *uuid.UUID) ([]db_models.ManagerSubordinate, error) {
	var out []db_models.ManagerSubordinate
	for pair := range f.edges {
		if managerID != nil && pair[0] != *managerID {
			continue
		}
		out = append(out, db_models.ManagerSubordinate{ManagerID: pair[0], SubordinateID: pair[1]})
	}
	return out, nil
}

func (f *fakeSubordinateRepo) SubordinateIds(_ context.Context, managerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for pair := range f.edges {
		if pair[0] == managerID {
			ids = append(ids, pair[1])
		}
	}
	return ids, nil
}

type fakeAnnouncementRepo struct {
	announcements map[uuid.UUID]*db_models.Announcement
	lastListLimit int
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{announcements: make(map[uuid.UUID]*db_models.Announcement)}
}

func (f *fakeAnnouncementRepo) Insert(_ context.Context, a *db_models.Announcement) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.announcements[a.ID] = a
	return nil
}

func (f *fakeAnnouncementRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.Announcement, error) {
	return f.announcements[id], nil
}

func (f *fakeAnnouncementRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.announcements, id)
	return nil
}

func (f *fakeAnnouncementRepo) List(_ context.Context, limit int) ([]db_models.Announcement, error) {
	f.lastListLimit = limit
	var out []db_models.Announcement
	for _, a := range f.announcements {
		out = append(out, *a)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAnnouncementRepo) activeNow(a *db_models.Announcement) bool {
	now := time.Now()
	if !a.IsActive {
		return false
	}
	if a.StartsAt != nil && a.StartsAt.After(now) {
		return false
	}
	if a.EndsAt != nil && a.EndsAt.Before(now) {
		return false
	}
	return true
}

func (f *fakeAnnouncementRepo) ListActiveFor(_ context.Context, viewer *db_models.User, limit int) ([]db_models.Announcement, error) {
	var out []db_models.Announcement
	for _, a := range f.announcements {
		if !f.activeNow(a) {
			continue
		}
		switch a.TargetScope {
		case db_models.AnnouncementScopeAll:
			out = append(out, *a)
		case db_models.AnnouncementScopeRole:
			if a.TargetRole != nil && viewer.HasRole(*a.TargetRole) {
				out = append(out, *a)
			}
		case db_models.AnnouncementScopeDepartment:
			if a.TargetDepartmentID != nil && viewer.DepartmentID != nil &&
				*a.TargetDepartmentID == *viewer.DepartmentID {
				out = append(out, *a)
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAnnouncementRepo) CountActiveNow(_ context.Context) (int64, error) {
	var count int64
	for _, a := range f.announcements {
		if f.activeNow(a) {
			count++
		}
	}
	return count, nil
}

type fakeThemeRepo struct {
	themes map[uuid.UUID]*db_models.SystemTheme
}

func newFakeThemeRepo() *fakeThemeRepo {
	return &fakeThemeRepo{themes: make(map[uuid.UUID]*db_models.SystemTheme)}
}

func (f *fakeThemeRepo) Insert(_ context.Context, theme *db_models.SystemTheme) error {
	if theme.ID == uuid.Nil {
		theme.ID = uuid.New()
	}
	f.themes[theme.ID] = theme
	return nil
}

func (f *fakeThemeRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.SystemTheme, error) {
	return f.themes[id], nil
}

func (f *fakeThemeRepo) List(_ context.Context, limit int) ([]db_models.SystemTheme, error) {
	var out []db_models.SystemTheme
	for _, theme := range f.themes {
		out = append(out, *theme)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeThemeRepo) Activate(_ context.Context, id uuid.UUID) (*db_models.SystemTheme, error) {
	theme, ok := f.themes[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	for otherID, other := range f.themes {
		if otherID != id {
			other.IsActive = false
		}
	}
	theme.IsActive = true
	if theme.StartsAt == nil {
		now := time.Now()
		theme.StartsAt = &now
	}
	return theme, nil
}

func (f *fakeThemeRepo) DeactivateAll(_ context.Context) error {
	for _, theme := range f.themes {
		theme.IsActive = false
	}
	return nil
}

func (f *fakeThemeRepo) ActiveNow(_ context.Context) (*db_models.SystemTheme, error) {
	now := time.Now()
	for _, theme := range f.themes {
		if !theme.IsActive {
			continue
		}
		if theme.StartsAt != nil && theme.StartsAt.After(now) {
			continue
		}
		if theme.EndsAt != nil && theme.EndsAt.Before(now) {
			continue
		}
		return theme, nil
	}
	return nil, nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailService struct {
	sent []sentMail
}

func (f *fakeMailService) SendMailToNotifyUser(to, subject, body, _, _ string) error {
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeMailService) SendMailToResetPassword(email, token string) error {
	f.sent = append(f.sent, sentMail{To: email, Subject: "Reset your password", Body: token})
	return nil
}

var (
	_ repositories.UserRepository         = (*fakeUserRepo)(nil)
	_ repositories.AccessTokenRepository  = (*fakeTokenRepo)(nil)
	_ repositories.DepartmentRepository   = (*fakeDepartmentRepo)(nil)
	_ repositories.ProjectRepository      = (*fakeProjectRepo)(nil)
	_ repositories.TaskRepository         = (*fakeTaskRepo)(nil)
	_ repositories.SubordinateRepository  = (*fakeSubordinateRepo)(nil)
	_ repositories.AnnouncementRepository = (*fakeAnnouncementRepo)(nil)
	_ repositories.ThemeRepository        = (*fakeThemeRepo)(nil)
	_ IMailService                        = (*fakeMailService)(nil)
)
