package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Green254/TaskPulse/internal/services"
	"github.com/Green254/TaskPulse/pkg/utils"
)

type DepartmentController struct {
	departmentService services.DepartmentServiceInterface
}

func NewDepartmentController(departmentService services.DepartmentServiceInterface) *DepartmentController {
	return &DepartmentController{departmentService: departmentService}
}

func (d *DepartmentController) List(c *gin.Context) {
	departments, err := d.departmentService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": departments})
}
