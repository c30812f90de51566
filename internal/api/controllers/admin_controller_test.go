package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/internal/models/request_models"
	"github.com/Green254/TaskPulse/internal/models/response_models"
	"github.com/Green254/TaskPulse/internal/services"
	"github.com/Green254/TaskPulse/pkg/middleware"
)

type stubAdminService struct{}

func (stubAdminService) Summary(context.Context) (*response_models.AdminSummary, error) {
	return &response_models.AdminSummary{}, nil
}

func (stubAdminService) ListUsers(context.Context, request_models.ListUsersQuery) ([]response_models.UserResponse, error) {
	return nil, nil
}

func (stubAdminService) CreateUser(context.Context, request_models.CreateUserRequest) (*response_models.UserResponse, error) {
	return &response_models.UserResponse{}, nil
}

func (stubAdminService) UpdateUserRole(_ context.Context, _, targetID uuid.UUID, _ string) (*response_models.UserResponse, error) {
	return &response_models.UserResponse{ID: targetID}, nil
}

func (stubAdminService) SuspendUser(_ context.Context, _, targetID uuid.UUID, _ request_models.SuspendUserRequest) (*response_models.UserResponse, error) {
	return &response_models.UserResponse{ID: targetID}, nil
}

func (stubAdminService) ReactivateUser(_ context.Context, targetID uuid.UUID) (*response_models.UserResponse, error) {
	return &response_models.UserResponse{ID: targetID}, nil
}

func (stubAdminService) DeleteUser(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type stubAnnouncementService struct{}

func (stubAnnouncementService) Create(_ context.Context, _ uuid.UUID, req request_models.CreateAnnouncementRequest) (*db_models.Announcement, error) {
	return &db_models.Announcement{Title: req.Title}, nil
}

func (stubAnnouncementService) ListAll(context.Context) ([]db_models.Announcement, error) {
	return nil, nil
}

func (stubAnnouncementService) ActiveFor(context.Context, *db_models.User) ([]db_models.Announcement, error) {
	return nil, nil
}

func (stubAnnouncementService) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubThemeService struct{}

func (stubThemeService) Create(_ context.Context, _ uuid.UUID, req request_models.CreateThemeRequest) (*db_models.SystemTheme, error) {
	return &db_models.SystemTheme{Name: req.Name}, nil
}

func (stubThemeService) List(context.Context) ([]db_models.SystemTheme, error) {
	return nil, nil
}

func (stubThemeService) Activate(context.Context, uuid.UUID) (*db_models.SystemTheme, error) {
	return &db_models.SystemTheme{IsActive: true}, nil
}

func (stubThemeService) ActiveNow(context.Context) (*db_models.SystemTheme, error) {
	return nil, nil
}

var (
	_ services.AdminServiceInterface        = stubAdminService{}
	_ services.AnnouncementServiceInterface = stubAnnouncementService{}
	_ services.ThemeServiceInterface        = stubThemeService{}
)

func newAdminTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewAdminController(stubAdminService{}, stubAnnouncementService{}, stubThemeService{})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		actor := &db_models.User{}
		actor.ID = uuid.New()
		c.Set(middleware.ContextUserKey, actor)
	})
	r.PATCH("/admin/users/:id/role", ctrl.UpdateUserRole)
	r.PATCH("/admin/users/:id/suspend", ctrl.SuspendUser)
	r.POST("/admin/announcements", ctrl.CreateAnnouncement)
	r.PATCH("/admin/themes/:id/activate", ctrl.ActivateTheme)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var decoded map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec, decoded
}

func TestSuspendUserResponseEnvelope(t *testing.T) {
	r := newAdminTestRouter()

	rec, body := doJSON(r, http.MethodPatch, "/admin/users/"+uuid.NewString()+"/suspend", `{"reason":"policy breach"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User suspended successfully.", body["message"])
	assert.Contains(t, body, "user")
}

func TestUpdateUserRoleResponseEnvelope(t *testing.T) {
	r := newAdminTestRouter()

	rec, body := doJSON(r, http.MethodPatch, "/admin/users/"+uuid.NewString()+"/role", `{"role":"manager"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User hierarchy updated.", body["message"])
	assert.Contains(t, body, "user")
}

func TestCreateAnnouncementResponseEnvelope(t *testing.T) {
	r := newAdminTestRouter()

	rec, body := doJSON(r, http.MethodPost, "/admin/announcements",
		`{"title":"Heads up","message":"hello","type":"info","target_scope":"all"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Announcement posted.", body["message"])
	assert.Contains(t, body, "announcement")
}

func TestActivateThemeResponseEnvelope(t *testing.T) {
	r := newAdminTestRouter()

	rec, body := doJSON(r, http.MethodPatch, "/admin/themes/"+uuid.NewString()+"/activate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Theme activated successfully.", body["message"])
	assert.Contains(t, body, "theme")
}
