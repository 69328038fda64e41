package routes

import (
	"github.com/gin-gonic/gin"

	"vantage/internal/domain/rbac"
	"vantage/internal/interfaces/http/handlers"
	"vantage/internal/interfaces/http/middleware"
)

// RoleRouteConfig holds dependencies for role management routes.
type RoleRouteConfig struct {
	RoleHandler *handlers.RoleHandler
	Guard       *middleware.Guard
}

// SetupRoleRoutes configures role management routes.
func SetupRoleRoutes(engine *gin.Engine, cfg *RoleRouteConfig) {
	roles := engine.Group("/roles")
	{
		roles.POST("", cfg.Guard.Require(rbac.Req("roles", "create")), cfg.RoleHandler.Create)
		roles.GET("", cfg.Guard.Require(rbac.Req("roles", "read")), cfg.RoleHandler.List)

		roles.GET("/:id", cfg.Guard.Require(rbac.Req("roles", "read")), cfg.RoleHandler.Get)
		roles.PATCH("/:id", cfg.Guard.Require(rbac.Req("roles", "update")), cfg.RoleHandler.Update)
		roles.DELETE("/:id", cfg.Guard.Require(rbac.Req("roles", "delete")), cfg.RoleHandler.Delete)

		// Assigning permissions touches both sides of the relation, so it
		// needs both update grants.
		roles.PUT("/:id/permissions",
			cfg.Guard.Require(rbac.Req("roles", "update"), rbac.Req("permissions", "read")),
			cfg.RoleHandler.AssignPermissions)
		roles.GET("/:id/permissions",
			cfg.Guard.Require(rbac.Req("roles", "read"), rbac.Req("permissions", "read")),
			cfg.RoleHandler.GetPermissions)
	}
}
