package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Green254/TaskPulse/internal/models/request_models"
	"github.com/Green254/TaskPulse/internal/services"
	"github.com/Green254/TaskPulse/pkg/middleware"
	"github.com/Green254/TaskPulse/pkg/utils"
)

type RoleController struct {
	roleService services.RoleServiceInterface
}

func NewRoleController(roleService services.RoleServiceInterface) *RoleController {
	return &RoleController{roleService: roleService}
}

func (r *RoleController) List(c *gin.Context) {
	roles, err := r.roleService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": roles})
}

func (r *RoleController) UsersWithRoles(c *gin.Context) {
	users, err := r.roleService.ListUsersWithRoles(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (r *RoleController) Assign(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req request_models.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		utils.RespondValidationError(c, utils.NewValidationError("role_id", "The selected role_id is invalid."))
		return
	}

	if err := r.roleService.Assign(c.Request.Context(), userID, roleID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role assigned successfully"})
}

func (r *RoleController) Revoke(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req request_models.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		utils.RespondValidationError(c, utils.NewValidationError("role_id", "The selected role_id is invalid."))
		return
	}

	actor := middleware.CurrentUser(c)
	if err := r.roleService.Revoke(c.Request.Context(), actor.ID, userID, roleID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role removed successfully"})
}
