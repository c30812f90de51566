package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Green254/TaskPulse/internal/models/request_models"
	"github.com/Green254/TaskPulse/internal/services"
	"github.com/Green254/TaskPulse/pkg/middleware"
	"github.com/Green254/TaskPulse/pkg/utils"
)

type TeamController struct {
	teamService services.TeamServiceInterface
}

func NewTeamController(teamService services.TeamServiceInterface) *TeamController {
	return &TeamController{teamService: teamService}
}

// Users lists the accounts the caller may assign tasks to.
func (t *TeamController) Users(c *gin.Context) {
	users, err := t.teamService.VisibleUsers(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (t *TeamController) Subordinates(c *gin.Context) {
	var query request_models.SubordinatesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	edges, err := t.teamService.Subordinates(c.Request.Context(), middleware.CurrentUser(c), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": edges})
}

func (t *TeamController) AssignSubordinate(c *gin.Context) {
	var req request_models.AssignSubordinateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	if err := t.teamService.AssignSubordinate(c.Request.Context(), middleware.CurrentUser(c), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subordinate assigned."})
}

func (t *TeamController) RemoveSubordinate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req request_models.RemoveSubordinateRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondBindingError(c, err)
		return
	}

	if err := t.teamService.RemoveSubordinate(c.Request.Context(), middleware.CurrentUser(c), id, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subordinate removed."})
}
