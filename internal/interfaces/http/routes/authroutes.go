package routes

import (
	"github.com/gin-gonic/gin"

	"vantage/internal/interfaces/http/handlers"
	"vantage/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler *handlers.AuthHandler
	Guard       *middleware.Guard
	LoginLimit  *middleware.RateLimiter // may be nil if Redis is not configured
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		if cfg.LoginLimit != nil {
			auth.POST("/login", cfg.LoginLimit.Limit(), cfg.AuthHandler.Login)
		} else {
			auth.POST("/login", cfg.AuthHandler.Login)
		}

		auth.GET("/me", cfg.Guard.RequireAuthenticated(), cfg.AuthHandler.Me)
	}
}
