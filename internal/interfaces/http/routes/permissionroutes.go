package routes

import (
	"github.com/gin-gonic/gin"

	"vantage/internal/domain/rbac"
	"vantage/internal/interfaces/http/handlers"
	"vantage/internal/interfaces/http/middleware"
)

// PermissionRouteConfig holds dependencies for permission registry routes.
type PermissionRouteConfig struct {
	PermissionHandler *handlers.PermissionHandler
	Guard             *middleware.Guard
}

// SetupPermissionRoutes configures permission registry routes.
func SetupPermissionRoutes(engine *gin.Engine, cfg *PermissionRouteConfig) {
	permissions := engine.Group("/permissions")
	{
		permissions.POST("", cfg.Guard.Require(rbac.Req("permissions", "create")), cfg.PermissionHandler.Create)
		permissions.GET("", cfg.Guard.Require(rbac.Req("permissions", "read")), cfg.PermissionHandler.List)

		permissions.GET("/:id", cfg.Guard.Require(rbac.Req("permissions", "read")), cfg.PermissionHandler.Get)
		permissions.PATCH("/:id", cfg.Guard.Require(rbac.Req("permissions", "update")), cfg.PermissionHandler.Update)
		permissions.DELETE("/:id", cfg.Guard.Require(rbac.Req("permissions", "delete")), cfg.PermissionHandler.Delete)
	}
}
