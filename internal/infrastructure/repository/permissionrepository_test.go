package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vantage/internal/domain/rbac"
	"vantage/internal/shared/logger"
)

func TestPermissionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPermissionRepository(db, logger.NewLogger())
	ctx := context.Background()

	perm, err := rbac.NewPermission("users", "create", "create user accounts")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, perm))
	assert.NotZero(t, perm.ID())

	found, err := repo.GetByID(ctx, perm.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "users:create", found.Name())
	assert.Equal(t, "users", found.Module())
	assert.Equal(t, "create", found.Action())

	byName, err := repo.GetByName(ctx, "users:create")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, found.ID(), byName.ID())
}

func TestPermissionRepository_DuplicateName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPermissionRepository(db, logger.NewLogger())
	ctx := context.Background()

	first, err := rbac.NewPermission("users", "create", "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	second, err := rbac.NewPermission("users", "create", "duplicate")
	require.NoError(t, err)
	assert.Error(t, repo.Create(ctx, second))
}

func TestPermissionRepository_CountByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPermissionRepository(db, logger.NewLogger())
	ctx := context.Background()

	p1 := createTestPermission(t, db, "users", "read")
	p2 := createTestPermission(t, db, "users", "create")

	count, err := repo.CountByIDs(ctx, []uint{p1, p2})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountByIDs(ctx, []uint{p1, 999})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = repo.CountByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPermissionRepository_ReferencingRoleCount(t *testing.T) {
	db := setupTestDB(t)
	permRepo := NewPermissionRepository(db, logger.NewLogger())
	roleRepo := NewRoleRepository(db, logger.NewLogger())
	ctx := context.Background()

	p1 := createTestPermission(t, db, "users", "read")
	p2 := createTestPermission(t, db, "users", "create")
	createTestRole(t, roleRepo, "manager", []uint{p1})
	createTestRole(t, roleRepo, "viewer", []uint{p1})

	count, err := permRepo.ReferencingRoleCount(ctx, p1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = permRepo.ReferencingRoleCount(ctx, p2)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPermissionRepository_ListByModule(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPermissionRepository(db, logger.NewLogger())
	ctx := context.Background()

	createTestPermission(t, db, "users", "read")
	createTestPermission(t, db, "users", "create")
	createTestPermission(t, db, "roles", "read")

	permissions, total, err := repo.List(ctx, rbac.PermissionFilter{Module: "users"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, permission := range permissions {
		assert.Equal(t, "users", permission.Module())
	}
}
