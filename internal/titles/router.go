package titles

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTitleRoutes(router *gin.RouterGroup, controller Controller) {
	// Public browsing
	public := router.Group("/titles")
	{
		public.GET("", controller.ListTitles)   // GET /api/v1/titles
		public.GET("/:id", controller.GetTitle) // GET /api/v1/titles/:id
	}

	admin := router.Group("/admin/titles")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateTitle) // POST /api/v1/admin/titles
	}
}
