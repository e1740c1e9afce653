package sessions

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSessionRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/titles/:id/sessions", controller.ListSessions) // GET /api/v1/titles/:id/sessions

	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("/titles/:id/sessions/ensure", controller.EnsureSessions) // POST /api/v1/admin/titles/:id/sessions/ensure
		admin.GET("/jobs/coverage", controller.JobStatus)                    // GET /api/v1/admin/jobs/coverage
	}
}
