package handlers

import (
	"slices"
	"time"

	_ "battery_cycling/docs"
	"battery_cycling/internal/logger"
	"battery_cycling/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tunes HTTP behaviour that is not owned by a service.
type Options struct {
	// LegacyErrorStatus answers every handled simulation error with 200.
	LegacyErrorStatus bool
	// AllowedOrigins lists CORS origins; empty or "*" allows any origin.
	AllowedOrigins []string
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(h.corsConfig()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	// Kept at the root for existing front-ends.
	router.POST("/simulate", h.simulate)

	h.registerAuthRoutes(router)
	h.registerPublicAPIRoutes(router)
	h.registerProtectedAPIRoutes(router)

	router.GET("/ws/simulate", h.wsSimulate)

	return router
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{runIDHeader},
		AllowCredentials: true,
		AllowWebSockets:  true,
		MaxAge:           12 * time.Hour,
	}
	if len(h.opts.AllowedOrigins) == 0 || slices.Contains(h.opts.AllowedOrigins, "*") {
		// reflect the caller's origin so credentials still work
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = h.opts.AllowedOrigins
	}
	return cfg
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerPublicAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.POST("/simulate", h.simulate)
		api.GET("/variables", h.listVariables)
		api.POST("/experiment", h.previewExperiment)
	}
}

func (h *Handler) registerProtectedAPIRoutes(r *gin.Engine) {
	runs := r.Group("/api/v1/runs", h.userIdMiddleware)
	{
		runs.GET("", h.listRuns)
		runs.GET("/:id", h.getRun)
	}
}
