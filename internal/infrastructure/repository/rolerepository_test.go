package repository

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vantage/internal/domain/rbac"
	"vantage/internal/infrastructure/persistence/models"
	"vantage/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.PermissionModel{},
		&models.RoleModel{},
		&models.RolePermissionModel{},
		&models.UserModel{},
	)
	require.NoError(t, err)

	return db
}

func createTestPermission(t *testing.T, db *gorm.DB, module, action string) uint {
	t.Helper()
	repo := NewPermissionRepository(db, logger.NewLogger())
	perm, err := rbac.NewPermission(module, action, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), perm))
	return perm.ID()
}

func createTestRole(t *testing.T, repo rbac.RoleRepository, name string, permissionIDs []uint) *rbac.Role {
	t.Helper()
	role, err := rbac.NewRole(name, name, "", false, permissionIDs)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), role))
	return role
}

func TestRoleRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoleRepository(db, logger.NewLogger())
	ctx := context.Background()

	permID := createTestPermission(t, db, "users", "read")
	role := createTestRole(t, repo, "manager", []uint{permID})
	assert.NotZero(t, role.ID())

	found, err := repo.GetByID(ctx, role.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "manager", found.Name())
	assert.Equal(t, []uint{permID}, found.PermissionIDs())

	byName, err := repo.GetByName(ctx, "manager")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, found.ID(), byName.ID())
}

func TestRoleRepository_GetByID_Unknown(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoleRepository(db, logger.NewLogger())

	found, err := repo.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRoleRepository_ReplacePermissions(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces wholesale", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRoleRepository(db, logger.NewLogger())

		p1 := createTestPermission(t, db, "users", "read")
		p2 := createTestPermission(t, db, "users", "create")
		p3 := createTestPermission(t, db, "roles", "read")
		role := createTestRole(t, repo, "manager", []uint{p1, p2})

		err := repo.ReplacePermissions(ctx, role.ID(), []uint{p3})
		require.NoError(t, err)

		found, err := repo.GetByID(ctx, role.ID())
		require.NoError(t, err)
		assert.Equal(t, []uint{p3}, found.PermissionIDs(), "old links must not survive a replace")
	})

	t.Run("replace with empty set clears all links", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRoleRepository(db, logger.NewLogger())

		p1 := createTestPermission(t, db, "users", "read")
		role := createTestRole(t, repo, "manager", []uint{p1})

		require.NoError(t, repo.ReplacePermissions(ctx, role.ID(), nil))

		found, err := repo.GetByID(ctx, role.ID())
		require.NoError(t, err)
		assert.Empty(t, found.PermissionIDs())
	})

	t.Run("unresolved permission aborts and keeps prior set", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRoleRepository(db, logger.NewLogger())

		p1 := createTestPermission(t, db, "users", "read")
		p2 := createTestPermission(t, db, "users", "create")
		role := createTestRole(t, repo, "manager", []uint{p1})

		err := repo.ReplacePermissions(ctx, role.ID(), []uint{p2, 999})
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, gorm.ErrRecordNotFound))

		found, err := repo.GetByID(ctx, role.ID())
		require.NoError(t, err)
		assert.Equal(t, []uint{p1}, found.PermissionIDs(), "failed replace must leave the set untouched")
	})

	t.Run("unknown role", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRoleRepository(db, logger.NewLogger())

		err := repo.ReplacePermissions(ctx, 999, nil)
		assert.True(t, stderrors.Is(err, gorm.ErrRecordNotFound))
	})
}

func TestRoleRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoleRepository(db, logger.NewLogger())
	ctx := context.Background()

	p1 := createTestPermission(t, db, "users", "read")
	role := createTestRole(t, repo, "manager", []uint{p1})

	require.NoError(t, repo.Delete(ctx, role.ID()))

	found, err := repo.GetByID(ctx, role.ID())
	require.NoError(t, err)
	assert.Nil(t, found)

	var linkCount int64
	require.NoError(t, db.Model(&models.RolePermissionModel{}).
		Where("role_id = ?", role.ID()).Count(&linkCount).Error)
	assert.Zero(t, linkCount, "deleting a role must remove its permission links")

	// the permission itself survives
	var permCount int64
	require.NoError(t, db.Model(&models.PermissionModel{}).
		Where("id = ?", p1).Count(&permCount).Error)
	assert.EqualValues(t, 1, permCount)
}

func TestRoleRepository_DuplicateName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoleRepository(db, logger.NewLogger())
	ctx := context.Background()

	createTestRole(t, repo, "manager", nil)

	dup, err := rbac.NewRole("manager", "Manager Again", "", false, nil)
	require.NoError(t, err)
	err = repo.Create(ctx, dup)
	require.Error(t, err)

	exists, err := repo.ExistsByName(ctx, "manager")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRoleRepository_GetPermissions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoleRepository(db, logger.NewLogger())
	ctx := context.Background()

	p1 := createTestPermission(t, db, "users", "read")
	p2 := createTestPermission(t, db, "users", "create")
	role := createTestRole(t, repo, "manager", []uint{p1, p2})

	permissions, err := repo.GetPermissions(ctx, role.ID())
	require.NoError(t, err)
	require.Len(t, permissions, 2)

	names := []string{permissions[0].Name(), permissions[1].Name()}
	assert.ElementsMatch(t, []string{"users:read", "users:create"}, names)
}
