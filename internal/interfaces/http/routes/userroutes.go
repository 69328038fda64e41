package routes

import (
	"github.com/gin-gonic/gin"

	"vantage/internal/domain/rbac"
	"vantage/internal/interfaces/http/handlers"
	"vantage/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user management routes.
type UserRouteConfig struct {
	UserHandler *handlers.UserHandler
	Guard       *middleware.Guard
}

// SetupUserRoutes configures user management routes. Each operation declares
// the permission it needs; the guard enforces them per request.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	users := engine.Group("/users")
	{
		users.POST("", cfg.Guard.Require(rbac.Req("users", "create")), cfg.UserHandler.Create)
		users.GET("", cfg.Guard.Require(rbac.Req("users", "read")), cfg.UserHandler.List)

		users.GET("/:id", cfg.Guard.Require(rbac.Req("users", "read")), cfg.UserHandler.Get)
		users.PATCH("/:id", cfg.Guard.Require(rbac.Req("users", "update")), cfg.UserHandler.Update)
		users.PUT("/:id/password", cfg.Guard.Require(rbac.Req("users", "update")), cfg.UserHandler.ResetPassword)
		users.DELETE("/:id", cfg.Guard.Require(rbac.Req("users", "delete")), cfg.UserHandler.Delete)
	}
}
