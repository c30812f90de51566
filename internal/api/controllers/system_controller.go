package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Green254/TaskPulse/internal/services"
	"github.com/Green254/TaskPulse/pkg/middleware"
	"github.com/Green254/TaskPulse/pkg/utils"
)

// SystemController serves the read-only surface every signed-in account gets:
// the broadcasts targeted at them and the theme currently in effect.
type SystemController struct {
	announcementService services.AnnouncementServiceInterface
	themeService        services.ThemeServiceInterface
}

func NewSystemController(
	announcementService services.AnnouncementServiceInterface,
	themeService services.ThemeServiceInterface,
) *SystemController {
	return &SystemController{
		announcementService: announcementService,
		themeService:        themeService,
	}
}

func (s *SystemController) ActiveAnnouncements(c *gin.Context) {
	announcements, err := s.announcementService.ActiveFor(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": announcements})
}

func (s *SystemController) ActiveTheme(c *gin.Context) {
	theme, err := s.themeService.ActiveNow(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}
