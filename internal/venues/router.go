package venues

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupVenueRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Registry browsing
	templates := rg.Group("/venue-templates")
	{
		templates.GET("", controller.ListTemplates)                  // GET /api/v1/venue-templates
		templates.GET("/:name/layout", controller.GetTemplateLayout) // GET /api/v1/venue-templates/:name/layout
		templates.POST("/select", controller.SelectTemplate)         // POST /api/v1/venue-templates/select
	}
	rg.GET("/cities", controller.ListCities) // GET /api/v1/cities

	rg.GET("/cinemas", controller.ListCinemas)            // GET /api/v1/cinemas
	rg.GET("/halls", controller.ListHalls)                // GET /api/v1/halls
	rg.GET("/halls/:id/layout", controller.GetHallLayout) // GET /api/v1/halls/:id/layout

	admin := rg.Group("/admin/cinemas")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateCinema)            // POST /api/v1/admin/cinemas
		admin.POST("/:id/halls", controller.ProvisionHall) // POST /api/v1/admin/cinemas/:id/halls
	}
}
