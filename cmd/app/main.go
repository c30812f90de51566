package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/Green254/TaskPulse/cmd/fx/controllers_fx"
	"github.com/Green254/TaskPulse/cmd/fx/db_fx"
	"github.com/Green254/TaskPulse/cmd/fx/mail_fx"
	"github.com/Green254/TaskPulse/cmd/fx/memcache_fx"
	"github.com/Green254/TaskPulse/cmd/fx/repositories_fx"
	"github.com/Green254/TaskPulse/cmd/fx/services_fx"
	"github.com/Green254/TaskPulse/internal/api/controllers"
	"github.com/Green254/TaskPulse/internal/repositories"
	"github.com/Green254/TaskPulse/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	app := fx.New(
		db_fx.Module,
		mail_fx.Module,
		memcache_fx.Module,
		repositories_fx.Module,
		services_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	authController *controllers.AuthController,
	taskController *controllers.TaskController,
	teamController *controllers.TeamController,
	adminController *controllers.AdminController,
	systemController *controllers.SystemController,
	roleController *controllers.RoleController,
	departmentController *controllers.DepartmentController,
	tokenRepo repositories.AccessTokenRepository,
	userRepo repositories.UserRepository,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	// Public surface.
	r.GET("/departments", departmentController.List)
	r.POST("/register", authController.Register)
	r.POST("/login", authController.Login)
	r.POST("/auth/forgot-password", authController.ForgotPassword)
	r.POST("/auth/reset-password", authController.ResetPassword)

	// Everything below requires a live token and a non-suspended account.
	authed := r.Group("/")
	authed.Use(middleware.JWTAuthMiddleware(tokenRepo, userRepo))
	{
		authed.GET("/me", authController.Me)
		authed.POST("/logout", authController.Logout)

		authed.GET("/team/users", teamController.Users)
		authed.GET("/team/subordinates", teamController.Subordinates)
		authed.POST("/team/subordinates", teamController.AssignSubordinate)
		authed.DELETE("/team/subordinates/:id", teamController.RemoveSubordinate)

		authed.GET("/tasks", taskController.List)
		authed.POST("/tasks", taskController.Create)
		authed.GET("/tasks/:id", taskController.Get)
		authed.PUT("/tasks/:id", taskController.Update)
		authed.PATCH("/tasks/:id", taskController.Update)
		authed.DELETE("/tasks/:id", taskController.Delete)

		authed.GET("/system/announcements", systemController.ActiveAnnouncements)
		authed.GET("/system/theme", systemController.ActiveTheme)
	}

	admin := authed.Group("/")
	admin.Use(middleware.RoleMiddleware("admin"))
	{
		admin.GET("/admin/summary", adminController.Summary)

		admin.GET("/admin/users", adminController.ListUsers)
		admin.POST("/admin/users", adminController.CreateUser)
		admin.PATCH("/admin/users/:id/role", adminController.UpdateUserRole)
		admin.PATCH("/admin/users/:id/suspend", adminController.SuspendUser)
		admin.PATCH("/admin/users/:id/reactivate", adminController.ReactivateUser)
		admin.DELETE("/admin/users/:id", adminController.DeleteUser)

		admin.GET("/admin/announcements", adminController.ListAnnouncements)
		admin.POST("/admin/announcements", adminController.CreateAnnouncement)
		admin.DELETE("/admin/announcements/:id", adminController.DeleteAnnouncement)

		admin.GET("/admin/themes", adminController.ListThemes)
		admin.POST("/admin/themes", adminController.CreateTheme)
		admin.PATCH("/admin/themes/:id/activate", adminController.ActivateTheme)

		admin.GET("/roles", roleController.List)
		admin.GET("/roles/users", roleController.UsersWithRoles)
		admin.POST("/roles/assign/:id", roleController.Assign)
		admin.POST("/roles/remove/:id", roleController.Revoke)
	}

	return r
}
