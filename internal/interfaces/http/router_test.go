package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vantage/internal/domain/user"
	"vantage/internal/infrastructure/auth"
	"vantage/internal/infrastructure/config"
	"vantage/internal/infrastructure/migration"
	"vantage/internal/infrastructure/persistence/seeds"
	"vantage/internal/infrastructure/repository"
	sharedConfig "vantage/internal/shared/config"
	"vantage/internal/shared/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: sharedConfig.ServerConfig{Mode: gin.TestMode},
		Auth: sharedConfig.AuthConfig{
			Password: sharedConfig.PasswordConfig{BcryptCost: 4},
			JWT:      sharedConfig.JWTConfig{Secret: "test-secret", AccessExpMinutes: 60},
		},
	}
}

// setupRouter builds the full stack against an in-memory database, seeds the
// default catalog and creates one account per seeded role.
func setupRouter(t *testing.T) (*Router, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(db))
	require.NoError(t, seeds.Run(db))

	return NewRouter(db, nil, testConfig(), logger.NewLogger()), db
}

func createAccount(t *testing.T, db *gorm.DB, email, password, roleName string) {
	t.Helper()
	log := logger.NewLogger()
	roleRepo := repository.NewRoleRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)
	hasher := auth.NewBcryptPasswordHasher(4)

	role, err := roleRepo.GetByName(context.Background(), roleName)
	require.NoError(t, err)
	require.NotNil(t, role)

	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	account, err := user.NewUser(email, "Test "+roleName, hash, role.ID())
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), account))
}

func grantPermissions(t *testing.T, db *gorm.DB, roleName string, names ...string) {
	t.Helper()
	log := logger.NewLogger()
	roleRepo := repository.NewRoleRepository(db, log)
	permRepo := repository.NewPermissionRepository(db, log)
	ctx := context.Background()

	role, err := roleRepo.GetByName(ctx, roleName)
	require.NoError(t, err)
	require.NotNil(t, role)

	ids := make([]uint, 0, len(names))
	for _, name := range names {
		perm, err := permRepo.GetByName(ctx, name)
		require.NoError(t, err)
		require.NotNil(t, perm, "permission %s must be seeded", name)
		ids = append(ids, perm.ID())
	}
	require.NoError(t, roleRepo.ReplacePermissions(ctx, role.ID(), ids))
}

func login(t *testing.T, router *Router, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func doRequest(router *Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.Engine().ServeHTTP(w, req)
	return w
}

func TestRouter_ValidateRequirements(t *testing.T) {
	t.Run("passes against seeded catalog", func(t *testing.T) {
		router, _ := setupRouter(t)
		assert.NoError(t, router.ValidateRequirements(context.Background()))
	})

	t.Run("fails when a declared permission is missing", func(t *testing.T) {
		router, db := setupRouter(t)
		require.NoError(t, db.Exec("DELETE FROM permissions WHERE name = ?", "users:create").Error)

		err := router.ValidateRequirements(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "users:create")
	})
}

func TestRouter_Health(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_LoginAndMe(t *testing.T) {
	router, db := setupRouter(t)
	createAccount(t, db, "root@example.com", "root-password", "super_admin")

	token := login(t, router, "root@example.com", "root-password")

	w := doRequest(router, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "root@example.com")
}

func TestRouter_LoginRejectsBadPassword(t *testing.T) {
	router, db := setupRouter(t)
	createAccount(t, db, "root@example.com", "root-password", "super_admin")

	body, _ := json.Marshal(map[string]string{"email": "root@example.com", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_SuperAdminBypassesPermissionChecks(t *testing.T) {
	router, db := setupRouter(t)
	createAccount(t, db, "root@example.com", "root-password", "super_admin")
	token := login(t, router, "root@example.com", "root-password")

	for _, path := range []string{"/users", "/roles", "/permissions"} {
		w := doRequest(router, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusOK, w.Code, "super admin must reach %s", path)
	}
}

func TestRouter_PermissionEnforcement(t *testing.T) {
	router, db := setupRouter(t)
	grantPermissions(t, db, "manager", "users:read")
	createAccount(t, db, "manager@example.com", "manager-password", "manager")
	token := login(t, router, "manager@example.com", "manager-password")

	t.Run("granted operation succeeds", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/users", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing permission is denied with its name", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/users", token, map[string]interface{}{
			"email": "x@example.com", "name": "X", "password": "long-password", "role_id": 1,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "users:create")
	})

	t.Run("no token", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/users", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRouter_UserCRUDRoundTrip(t *testing.T) {
	router, db := setupRouter(t)
	createAccount(t, db, "root@example.com", "root-password", "super_admin")
	token := login(t, router, "root@example.com", "root-password")

	// look up the seeded user role's ID through the API
	w := doRequest(router, http.MethodGet, "/roles?name=user", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rolesResp struct {
		Data struct {
			Roles []struct {
				ID uint `json:"id"`
			} `json:"roles"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rolesResp))
	require.Len(t, rolesResp.Data.Roles, 1)
	roleID := rolesResp.Data.Roles[0].ID

	w = doRequest(router, http.MethodPost, "/users", token, map[string]interface{}{
		"email":    "new@example.com",
		"name":     "New User",
		"password": "long-password",
		"role_id":  roleID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var createResp struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))

	w = doRequest(router, http.MethodDelete, fmt.Sprintf("/users/%d", createResp.Data.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, fmt.Sprintf("/users/%d", createResp.Data.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_AssignPermissionsEndpoint(t *testing.T) {
	router, db := setupRouter(t)
	createAccount(t, db, "root@example.com", "root-password", "super_admin")
	token := login(t, router, "root@example.com", "root-password")

	log := logger.NewLogger()
	permRepo := repository.NewPermissionRepository(db, log)
	roleRepo := repository.NewRoleRepository(db, log)
	ctx := context.Background()

	perm, err := permRepo.GetByName(ctx, "roles:read")
	require.NoError(t, err)
	role, err := roleRepo.GetByName(ctx, "user")
	require.NoError(t, err)

	w := doRequest(router, http.MethodPut, fmt.Sprintf("/roles/%d/permissions", role.ID()), token,
		map[string]interface{}{"permission_ids": []uint{perm.ID()}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated, err := roleRepo.GetByID(ctx, role.ID())
	require.NoError(t, err)
	assert.Equal(t, []uint{perm.ID()}, updated.PermissionIDs())

	t.Run("unknown permission rejected", func(t *testing.T) {
		w := doRequest(router, http.MethodPut, fmt.Sprintf("/roles/%d/permissions", role.ID()), token,
			map[string]interface{}{"permission_ids": []uint{99999}})
		assert.Equal(t, http.StatusNotFound, w.Code)

		after, err := roleRepo.GetByID(ctx, role.ID())
		require.NoError(t, err)
		assert.Equal(t, []uint{perm.ID()}, after.PermissionIDs(), "failed assign must keep prior set")
	})
}
