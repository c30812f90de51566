package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Green254/TaskPulse/internal/models/request_models"
	"github.com/Green254/TaskPulse/internal/services"
	"github.com/Green254/TaskPulse/pkg/middleware"
	"github.com/Green254/TaskPulse/pkg/utils"
)

type AdminController struct {
	adminService        services.AdminServiceInterface
	announcementService services.AnnouncementServiceInterface
	themeService        services.ThemeServiceInterface
}

func NewAdminController(
	adminService services.AdminServiceInterface,
	announcementService services.AnnouncementServiceInterface,
	themeService services.ThemeServiceInterface,
) *AdminController {
	return &AdminController{
		adminService:        adminService,
		announcementService: announcementService,
		themeService:        themeService,
	}
}

func (a *AdminController) Summary(c *gin.Context) {
	summary, err := a.adminService.Summary(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (a *AdminController) ListUsers(c *gin.Context) {
	var query request_models.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	users, err := a.adminService.ListUsers(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (a *AdminController) CreateUser(c *gin.Context) {
	var req request_models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	user, err := a.adminService.CreateUser(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully.", "user": user})
}

func (a *AdminController) UpdateUserRole(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	user, err := a.adminService.UpdateUserRole(c.Request.Context(), middleware.CurrentUser(c).ID, id, req.Role)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User hierarchy updated.", "user": user})
}

func (a *AdminController) SuspendUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req request_models.SuspendUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondBindingError(c, err)
		return
	}

	user, err := a.adminService.SuspendUser(c.Request.Context(), middleware.CurrentUser(c).ID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User suspended successfully.", "user": user})
}

func (a *AdminController) ReactivateUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	user, err := a.adminService.ReactivateUser(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User reactivated successfully.", "user": user})
}

func (a *AdminController) DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := a.adminService.DeleteUser(c.Request.Context(), middleware.CurrentUser(c).ID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}

func (a *AdminController) CreateAnnouncement(c *gin.Context) {
	var req request_models.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	announcement, err := a.announcementService.Create(c.Request.Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Announcement posted.", "announcement": announcement})
}

func (a *AdminController) ListAnnouncements(c *gin.Context) {
	announcements, err := a.announcementService.ListAll(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": announcements})
}

func (a *AdminController) DeleteAnnouncement(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := a.announcementService.Delete(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted."})
}

func (a *AdminController) CreateTheme(c *gin.Context) {
	var req request_models.CreateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	theme, err := a.themeService.Create(c.Request.Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Theme created successfully.", "theme": theme})
}

func (a *AdminController) ListThemes(c *gin.Context) {
	themes, err := a.themeService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": themes})
}

func (a *AdminController) ActivateTheme(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	theme, err := a.themeService.Activate(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Theme activated successfully.", "theme": theme})
}
