package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authApp "vantage/internal/application/auth"
	rbacApp "vantage/internal/application/rbac"
	userApp "vantage/internal/application/user"
	"vantage/internal/domain/user"
	"vantage/internal/infrastructure/auth"
	"vantage/internal/infrastructure/config"
	"vantage/internal/infrastructure/repository"
	"vantage/internal/interfaces/http/handlers"
	"vantage/internal/interfaces/http/middleware"
	"vantage/internal/interfaces/http/routes"
	"vantage/internal/shared/logger"
)

// Router wires repositories, services, handlers and middleware into a gin
// engine.
type Router struct {
	engine      *gin.Engine
	guard       *middleware.Guard
	rbacService *rbacApp.Service
}

// identityResolverAdapter narrows the user repository to the guard's view.
type identityResolverAdapter struct {
	repo user.Repository
}

func (a *identityResolverAdapter) ResolveUser(ctx context.Context, userID uint) (*user.User, error) {
	return a.repo.GetByID(ctx, userID)
}

// NewRouter creates the HTTP router with all dependencies. redisClient may be
// nil; login throttling is then disabled.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	userRepo := repository.NewUserRepository(db, log)
	roleRepo := repository.NewRoleRepository(db, log)
	permissionRepo := repository.NewPermissionRepository(db, log)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	tokenService := auth.NewTokenService(&cfg.Auth.JWT)

	rbacService := rbacApp.NewService(roleRepo, permissionRepo, log)
	authService := authApp.NewService(userRepo, hasher, tokenService, log)
	userService := userApp.NewService(userRepo, roleRepo, hasher, log)

	guard := middleware.NewGuard(tokenService, &identityResolverAdapter{userRepo}, rbacService, log)

	var loginLimit *middleware.RateLimiter
	if redisClient != nil {
		loginLimit = middleware.NewRateLimiter(redisClient, cfg.RateLimit.LoginPerMinute, time.Minute)
	}

	authHandler := handlers.NewAuthHandler(authService, log)
	userHandler := handlers.NewUserHandler(userService, log)
	roleHandler := handlers.NewRoleHandler(rbacService, log)
	permissionHandler := handlers.NewPermissionHandler(rbacService, log)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupAuthRoutes(engine, &routes.AuthRouteConfig{
		AuthHandler: authHandler,
		Guard:       guard,
		LoginLimit:  loginLimit,
	})
	routes.SetupUserRoutes(engine, &routes.UserRouteConfig{
		UserHandler: userHandler,
		Guard:       guard,
	})
	routes.SetupRoleRoutes(engine, &routes.RoleRouteConfig{
		RoleHandler: roleHandler,
		Guard:       guard,
	})
	routes.SetupPermissionRoutes(engine, &routes.PermissionRouteConfig{
		PermissionHandler: permissionHandler,
		Guard:             guard,
	})

	return &Router{
		engine:      engine,
		guard:       guard,
		rbacService: rbacService,
	}
}

// ValidateRequirements checks every permission declared on a route against
// the permission registry. A typo in a route declaration would otherwise deny
// everyone silently; failing startup makes it visible immediately.
func (r *Router) ValidateRequirements(ctx context.Context) error {
	for _, req := range r.guard.DeclaredRequirements() {
		exists, err := r.rbacService.RequirementExists(ctx, req)
		if err != nil {
			return fmt.Errorf("check permission %q: %w", req.String(), err)
		}
		if !exists {
			return fmt.Errorf("route declares unregistered permission %q", req.String())
		}
	}
	return nil
}

// Engine returns the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
