// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"ticketly/internal/sessions"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/titles"
	"ticketly/internal/venues"
	"ticketly/pkg/cache"

	"github.com/gin-gonic/gin"
)

const serviceName = "ticketly-backend"

// Dependencies are built by main and shared by the route groups
type Dependencies struct {
	Cache     cache.Service
	Registry  *venues.Registry
	Publisher sessions.Publisher
	Sessions  sessions.Options
}

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	deps   Dependencies

	titleService   titles.Service
	venueService   venues.Service
	sessionService sessions.Service
	coverageJob    *sessions.CoverageJob
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, deps Dependencies) *Router {
	return &Router{
		config: cfg,
		db:     db,
		deps:   deps,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// titles feed both venues and sessions, keep this order
		r.setupTitleRoutes(api)
		r.setupVenueRoutes(api)
		r.setupSessionRoutes(api)
	}
}

// CoverageJob returns the background coverage job once routes are set up.
func (r *Router) CoverageJob() *sessions.CoverageJob {
	return r.coverageJob
}

// SessionService is exposed for the seeder.
func (r *Router) SessionService() sessions.Service {
	return r.sessionService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   serviceName,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"templates":   len(r.deps.Registry.Templates()),
			"cities":      len(r.deps.Registry.Cities()),
			"redis":       r.db.Redis != nil,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupTitleRoutes(rg *gin.RouterGroup) {
	titleRepo := titles.NewRepository(r.db.GetPostgreSQL())
	r.titleService = titles.NewService(titleRepo)
	titleController := titles.NewController(r.titleService)

	titles.SetupTitleRoutes(rg, titleController)
}

// setupVenueRoutes configures templates, cinemas and halls
func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) {
	venueRepo := venues.NewRepository(r.db.GetPostgreSQL())
	r.venueService = venues.NewService(venueRepo, r.deps.Registry, r.titleService, r.deps.Cache)
	venueController := venues.NewController(r.venueService)

	venues.SetupVenueRoutes(rg, venueController)
}

// setupSessionRoutes configures showtimes and the coverage job
func (r *Router) setupSessionRoutes(rg *gin.RouterGroup) {
	sessionRepo := sessions.NewRepository(r.db.GetPostgreSQL())
	locker := sessions.NewLocker(r.db.GetRedisClient())

	r.sessionService = sessions.NewService(
		sessionRepo,
		r.venueService,
		r.titleService,
		locker,
		r.deps.Publisher,
		r.deps.Cache,
		r.deps.Sessions,
	)
	r.coverageJob = sessions.NewCoverageJob(r.sessionService, r.config.Scheduler.Interval)
	sessionController := sessions.NewController(r.sessionService, r.coverageJob)

	sessions.SetupSessionRoutes(rg, sessionController)
}
