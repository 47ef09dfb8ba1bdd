// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/carbon-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	factorController    *controller.FactorController
	inputController     *controller.InputController
	dashboardController *controller.DashboardController
	reportController    *controller.ReportController
	unitController      *controller.UnitController
	loginRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	factorController *controller.FactorController,
	inputController *controller.InputController,
	dashboardController *controller.DashboardController,
	reportController *controller.ReportController,
	unitController *controller.UnitController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		authController:      authController,
		factorController:    factorController,
		inputController:     inputController,
		dashboardController: dashboardController,
		reportController:    reportController,
		unitController:      unitController,
		loginRateLimiter:    loginRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test", "e2e":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	if environment != "test" {
		r.engine.Use(gin.Logger())
	}

	r.engine.GET("/health", r.healthController.Check)
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.authController.Register)
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		auth.POST("/refresh", r.authController.RefreshToken)
		auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
	}

	v1.GET("/units/convert", r.unitController.Convert)

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	factors := protected.Group("/factors")
	{
		factors.GET("", r.factorController.List)
		factors.POST("", r.factorController.Create)
	}

	inputs := protected.Group("/inputs")
	{
		inputs.GET("", r.inputController.List)
		inputs.POST("", r.inputController.Create)
	}

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("/summary", r.dashboardController.Summary)
		dashboard.GET("/scopes", r.dashboardController.Scopes)
		dashboard.GET("/monthly", r.dashboardController.Monthly)
	}

	reports := protected.Group("/reports")
	{
		reports.GET("", r.reportController.List)
		reports.POST("", r.reportController.Create)
		reports.GET("/:id", r.reportController.Get)
	}
}
