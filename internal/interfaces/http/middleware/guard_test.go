package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vantage/internal/domain/rbac"
	"vantage/internal/domain/user"
	"vantage/internal/infrastructure/auth"
	"vantage/internal/shared/config"
	"vantage/internal/shared/constants"
	"vantage/internal/shared/logger"
)

type mockVerifier struct {
	claims *auth.Claims
	err    error
	calls  int
}

func (m *mockVerifier) Verify(token string) (*auth.Claims, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

type mockResolver struct {
	user  *user.User
	err   error
	calls int
}

func (m *mockResolver) ResolveUser(ctx context.Context, userID uint) (*user.User, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

type mockChecker struct {
	granted map[string]bool
	err     error
	checked []string
}

func (m *mockChecker) HasPermission(ctx context.Context, roleID uint, module, action string) (bool, error) {
	key := module + ":" + action
	m.checked = append(m.checked, key)
	if m.err != nil {
		return false, m.err
	}
	return m.granted[key], nil
}

func testIdentity(t *testing.T) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(42, "admin@example.com", "Admin", "hash", 7, true, time.Now(), time.Now())
	require.NoError(t, err)
	return u
}

func testClaims() *auth.Claims {
	return &auth.Claims{UserID: 42, Email: "admin@example.com", RoleID: 7}
}

func setupGuardRouter(guard *Guard, handler gin.HandlerFunc, reqs ...rbac.Requirement) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", guard.Require(reqs...), handler)
	return router
}

func performRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGuard_NoRequirementsAllowsAnonymous(t *testing.T) {
	verifier := &mockVerifier{}
	guard := NewGuard(verifier, &mockResolver{}, &mockChecker{}, logger.NewLogger())

	router := setupGuardRouter(guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performRequest(router, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, verifier.calls, "verifier must not run for unguarded operations")
}

func TestGuard_MissingCredential(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bearer without token", "Bearer "},
		{"bare token without scheme", "some.jwt.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &mockVerifier{}
			guard := NewGuard(verifier, &mockResolver{}, &mockChecker{}, logger.NewLogger())
			router := setupGuardRouter(guard, func(c *gin.Context) {
				c.Status(http.StatusOK)
			}, rbac.Req("users", "read"))

			w := performRequest(router, tt.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "access token required")
			assert.Zero(t, verifier.calls, "no verification work before a token is extracted")
		})
	}
}

func TestGuard_InvalidCredentialUniformMessage(t *testing.T) {
	// Expired and garbled tokens must produce the same client-facing denial.
	svc := auth.NewTokenService(&config.JWTConfig{Secret: "test-secret", AccessExpMinutes: -1})
	expired, err := svc.Generate(42, "admin@example.com", 7)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired token", expired},
		{"garbled token", "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &mockResolver{user: testIdentity(t)}
			guard := NewGuard(svc, resolver, &mockChecker{}, logger.NewLogger())
			router := setupGuardRouter(guard, func(c *gin.Context) {
				c.Status(http.StatusOK)
			}, rbac.Req("users", "read"))

			w := performRequest(router, "Bearer "+tt.token)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "invalid token")
			assert.Zero(t, resolver.calls, "identity must not be resolved for a bad token")
		})
	}
}

func TestGuard_IdentityNotFound(t *testing.T) {
	verifier := &mockVerifier{claims: testClaims()}
	resolver := &mockResolver{user: nil}
	checker := &mockChecker{granted: map[string]bool{"users:read": true}}
	guard := NewGuard(verifier, resolver, checker, logger.NewLogger())

	router := setupGuardRouter(guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	}, rbac.Req("users", "read"))

	w := performRequest(router, "Bearer valid.jwt.token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
	assert.Empty(t, checker.checked, "no permission checks for an unknown subject")
}

func TestGuard_PermissionDeniedNamesFirstMissing(t *testing.T) {
	verifier := &mockVerifier{claims: testClaims()}
	resolver := &mockResolver{user: testIdentity(t)}
	checker := &mockChecker{granted: map[string]bool{"users:read": true}}
	guard := NewGuard(verifier, resolver, checker, logger.NewLogger())

	router := setupGuardRouter(guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	}, rbac.Req("users", "read"), rbac.Req("users", "delete"), rbac.Req("roles", "delete"))

	w := performRequest(router, "Bearer valid.jwt.token")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient permissions. required: users:delete")
	assert.Equal(t, []string{"users:read", "users:delete"}, checker.checked,
		"check must short-circuit on the first missing permission")
}

func TestGuard_AllRequirementsSatisfied(t *testing.T) {
	verifier := &mockVerifier{claims: testClaims()}
	resolver := &mockResolver{user: testIdentity(t)}
	checker := &mockChecker{granted: map[string]bool{"users:read": true, "users:update": true}}
	guard := NewGuard(verifier, resolver, checker, logger.NewLogger())

	var gotUserID, gotRoleID uint
	var gotEmail string
	router := setupGuardRouter(guard, func(c *gin.Context) {
		gotUserID = c.GetUint(constants.ContextKeyUserID)
		gotEmail = c.GetString(constants.ContextKeyUserEmail)
		gotRoleID = c.GetUint(constants.ContextKeyRoleID)
		c.Status(http.StatusOK)
	}, rbac.Req("users", "read"), rbac.Req("users", "update"))

	w := performRequest(router, "Bearer valid.jwt.token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), gotUserID)
	assert.Equal(t, "admin@example.com", gotEmail)
	assert.Equal(t, uint(7), gotRoleID)
}

func TestGuard_StoreUnavailableFailsClosed(t *testing.T) {
	t.Run("permission store fault", func(t *testing.T) {
		verifier := &mockVerifier{claims: testClaims()}
		resolver := &mockResolver{user: testIdentity(t)}
		checker := &mockChecker{err: fmt.Errorf("dial tcp: connection refused")}
		guard := NewGuard(verifier, resolver, checker, logger.NewLogger())

		router := setupGuardRouter(guard, func(c *gin.Context) {
			c.Status(http.StatusOK)
		}, rbac.Req("users", "read"))

		w := performRequest(router, "Bearer valid.jwt.token")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "authorization temporarily unavailable")
		assert.NotContains(t, w.Body.String(), "connection refused",
			"storage error text must not leak to the caller")
	})

	t.Run("identity store fault", func(t *testing.T) {
		verifier := &mockVerifier{claims: testClaims()}
		resolver := &mockResolver{err: fmt.Errorf("dial tcp: connection refused")}
		guard := NewGuard(verifier, resolver, &mockChecker{}, logger.NewLogger())

		router := setupGuardRouter(guard, func(c *gin.Context) {
			c.Status(http.StatusOK)
		}, rbac.Req("users", "read"))

		w := performRequest(router, "Bearer valid.jwt.token")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestGuard_RequireAuthenticated(t *testing.T) {
	verifier := &mockVerifier{claims: testClaims()}
	resolver := &mockResolver{user: testIdentity(t)}
	checker := &mockChecker{}
	guard := NewGuard(verifier, resolver, checker, logger.NewLogger())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", guard.RequireAuthenticated(), func(c *gin.Context) {
		identity, ok := CurrentUser(c)
		require.True(t, ok)
		c.String(http.StatusOK, identity.Email())
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@example.com", w.Body.String())
	assert.Empty(t, checker.checked, "authentication-only routes check no permissions")
}

func TestGuard_DeclaredRequirements(t *testing.T) {
	guard := NewGuard(&mockVerifier{}, &mockResolver{}, &mockChecker{}, logger.NewLogger())

	guard.Require(rbac.Req("users", "read"))
	guard.Require(rbac.Req("users", "read"), rbac.Req("users", "create"))
	guard.Require()

	declared := guard.DeclaredRequirements()
	assert.ElementsMatch(t, []rbac.Requirement{
		rbac.Req("users", "read"),
		rbac.Req("users", "create"),
	}, declared)
}
