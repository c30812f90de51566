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

type TaskController struct {
	taskService services.TaskServiceInterface
}

func NewTaskController(taskService services.TaskServiceInterface) *TaskController {
	return &TaskController{taskService: taskService}
}

// idParam treats a malformed id the same as a missing row.
func idParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found."})
		return uuid.Nil, false
	}
	return id, true
}

func (t *TaskController) List(c *gin.Context) {
	var query request_models.ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	page, err := t.taskService.List(c.Request.Context(), middleware.CurrentUser(c), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (t *TaskController) Create(c *gin.Context) {
	var req request_models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	task, err := t.taskService.Create(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (t *TaskController) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	task, err := t.taskService.Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (t *TaskController) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	task, err := t.taskService.Update(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (t *TaskController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := t.taskService.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted."})
}
