package routes

import (
	"github.com/gin-gonic/gin"

	"equipment-checklist-api/controllers"
	"equipment-checklist-api/middleware"
	"equipment-checklist-api/models"
	"equipment-checklist-api/services"
)

func SetupRoutes(router *gin.Engine, ctrl *controllers.Set, identity *services.IdentityService) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", ctrl.Auth.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Equipment Checklist API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(identity))
		{
			// User profile
			protected.GET("/profile", ctrl.Auth.GetProfile)
			protected.PUT("/change-password", ctrl.Auth.ChangePassword)

			// Equipment definitions (all authenticated users)
			protected.GET("/equipment", ctrl.Equipment.GetEquipment)

			// Checklist submissions
			submissions := protected.Group("/submissions")
			{
				submissions.GET("", ctrl.Submissions.GetSubmissions)
				submissions.GET("/:id", ctrl.Submissions.GetSubmission)
				submissions.GET("/:id/report", ctrl.Submissions.DownloadReport)

				// Only operators fill checklists
				submissions.POST("", middleware.RequireRole(models.RoleOperator), ctrl.Submissions.CreateSubmission)

				// Only supervisors approve
				submissions.POST("/:id/approve", middleware.RequireRole(models.RoleSupervisor), ctrl.Submissions.ApproveSubmission)
			}

			// Supervisor-only surface
			supervisor := protected.Group("")
			supervisor.Use(middleware.RequireRole(models.RoleSupervisor))
			{
				// User management
				supervisor.GET("/users", ctrl.Users.ListUsers)
				supervisor.POST("/users", ctrl.Users.SaveUser)
				supervisor.DELETE("/users/:username", ctrl.Users.DeleteUser)

				// Reports
				supervisor.GET("/dashboard/stats", ctrl.Dashboard.GetDashboardStats)
				supervisor.GET("/export/weekly", ctrl.Export.ExportWeekly)
			}
		}
	}
}
