package middleware

import (
	"context"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"vantage/internal/domain/rbac"
	"vantage/internal/domain/user"
	"vantage/internal/infrastructure/auth"
	"vantage/internal/shared/constants"
	"vantage/internal/shared/errors"
	"vantage/internal/shared/logger"
	"vantage/internal/shared/utils"
)

const contextKeyCurrentUser = "current_user"

// TokenVerifier validates a signed credential and yields its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// IdentityResolver maps a verified token subject to a user record.
type IdentityResolver interface {
	ResolveUser(ctx context.Context, userID uint) (*user.User, error)
}

// PermissionChecker is the core decision primitive: does the role grant the
// (module, action) pair. Implementations must fail closed: an unresolvable
// role is false, a store fault is an error (which the guard also treats as a
// denial).
type PermissionChecker interface {
	HasPermission(ctx context.Context, roleID uint, module, action string) (bool, error)
}

// Guard is the request-time enforcement point. Each protected operation
// declares its required permissions as structured (module, action) pairs at
// route registration; the guard decides allow/deny per request.
//
// The guard is stateless across requests. Its only side effect on allow is
// attaching the resolved user to the request context; a denial changes no
// state anywhere.
type Guard struct {
	tokens TokenVerifier
	users  IdentityResolver
	roles  PermissionChecker
	logger logger.Interface

	mu       sync.Mutex
	declared []rbac.Requirement
}

func NewGuard(tokens TokenVerifier, users IdentityResolver, roles PermissionChecker, logger logger.Interface) *Guard {
	return &Guard{
		tokens: tokens,
		users:  users,
		roles:  roles,
		logger: logger,
	}
}

// Require returns a middleware enforcing the given permission requirements.
// All requirements must be satisfied (conjunctive); the check short-circuits
// on the first missing one. With no requirements the middleware allows
// unconditionally: permission checks are opt-in per operation.
//
// Every declared requirement is recorded so the router can validate the full
// set against the permission registry before the server accepts traffic.
func (g *Guard) Require(requirements ...rbac.Requirement) gin.HandlerFunc {
	g.record(requirements)

	return func(c *gin.Context) {
		if len(requirements) == 0 {
			c.Next()
			return
		}

		identity, denied := g.resolveIdentity(c)
		if denied != nil {
			g.deny(c, denied)
			return
		}

		for _, req := range requirements {
			allowed, err := g.roles.HasPermission(c.Request.Context(), identity.RoleID(), req.Module, req.Action)
			if err != nil {
				g.logger.Errorw("permission check failed",
					"user_id", identity.ID(), "permission", req.String(), "error", err)
				g.deny(c, errors.NewStoreUnavailableError())
				return
			}
			if !allowed {
				g.deny(c, errors.NewPermissionDeniedError(req.String()))
				return
			}
		}

		g.attach(c, identity)
		c.Next()
	}
}

// RequireAuthenticated returns a middleware that resolves and attaches the
// caller's identity without checking any permission. Used by operations that
// only need to know who is calling (e.g. /auth/me).
func (g *Guard) RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, denied := g.resolveIdentity(c)
		if denied != nil {
			g.deny(c, denied)
			return
		}

		g.attach(c, identity)
		c.Next()
	}
}

// resolveIdentity runs the credential gates in order: bearer extraction
// (cheap, before any verification work), token verification, then subject
// resolution against the identity store.
func (g *Guard) resolveIdentity(c *gin.Context) (*user.User, *errors.AuthError) {
	token, ok := extractBearerToken(c)
	if !ok {
		return nil, errors.NewMissingCredentialError()
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		// Uniform denial for every verification failure: an expired token is
		// indistinguishable from a garbled one
		return nil, errors.NewInvalidCredentialError()
	}

	// The role is re-read from the store via the resolved user, so role
	// changes take effect without re-issuing tokens
	identity, err := g.users.ResolveUser(c.Request.Context(), claims.UserID)
	if err != nil {
		g.logger.Errorw("identity resolution failed", "user_id", claims.UserID, "error", err)
		return nil, errors.NewStoreUnavailableError()
	}
	if identity == nil {
		return nil, errors.NewIdentityNotFoundError()
	}

	return identity, nil
}

func (g *Guard) attach(c *gin.Context, identity *user.User) {
	c.Set(contextKeyCurrentUser, identity)
	c.Set(constants.ContextKeyUserID, identity.ID())
	c.Set(constants.ContextKeyUserEmail, identity.Email())
	c.Set(constants.ContextKeyRoleID, identity.RoleID())
}

func (g *Guard) deny(c *gin.Context, authErr *errors.AuthError) {
	if authErr.ShouldLog {
		g.logger.Errorw("authorization denied",
			"path", c.Request.URL.Path, "reason", authErr.Message)
	} else {
		g.logger.Debugw("authorization denied",
			"path", c.Request.URL.Path, "reason", authErr.Message)
	}

	utils.ErrorResponseWithError(c, authErr)
	c.Abort()
}

func (g *Guard) record(requirements []rbac.Requirement) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.declared = append(g.declared, requirements...)
}

// DeclaredRequirements returns every requirement declared through Require so
// far, deduplicated. The router validates this set against the permission
// registry at startup.
func (g *Guard) DeclaredRequirements() []rbac.Requirement {
	g.mu.Lock()
	defer g.mu.Unlock()

	seen := make(map[rbac.Requirement]bool, len(g.declared))
	out := make([]rbac.Requirement, 0, len(g.declared))
	for _, req := range g.declared {
		if seen[req] {
			continue
		}
		seen[req] = true
		out = append(out, req)
	}
	return out
}

// CurrentUser returns the identity the guard attached to the request.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	value, exists := c.Get(contextKeyCurrentUser)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*user.User)
	return identity, ok
}

func extractBearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
