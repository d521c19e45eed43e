package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/urmzd/valetd/pkg/api/handlers"
	"github.com/urmzd/valetd/pkg/api/types"
	"github.com/urmzd/valetd/pkg/robot"
	"github.com/urmzd/valetd/pkg/schema"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine    *gin.Engine
	robot     *robot.Robot
	validator *schema.Validator
	mounted   []string
}

// NewRouter creates a new API router
func NewRouter(r *robot.Robot, validator *schema.Validator) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:    engine,
		robot:     r,
		validator: validator,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	healthHandler := handlers.NewHealthHandler(r.robot)
	r.engine.GET("/health", healthHandler.Health)

	v2 := r.engine.Group("/api/v2")
	{
		v2.GET("/health", healthHandler.Health)

		robotHandler := handlers.NewRobotHandler(r.robot)
		rb := v2.Group("/robot")
		{
			rb.GET("", robotHandler.Info)
			rb.GET("/capabilities", robotHandler.Capabilities)
			rb.GET("/state", robotHandler.State)
			rb.GET("/state/attributes", robotHandler.Attributes)

			deps := RouterDeps{
				Presets:   robot.NewZonePresetStore(r.robot.Config()),
				Validator: r.validator,
			}
			for _, t := range MountCapabilities(rb.Group("/capabilities"), r.robot.Capabilities(), deps) {
				r.mounted = append(r.mounted, string(t))
			}
		}
	}

	// Unmounted capabilities and unknown paths
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Route not found",
		})
	})
}

// Mounted returns the capability types that have REST routes.
func (r *Router) Mounted() []string {
	return r.mounted
}

// Handler returns the HTTP handler
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
