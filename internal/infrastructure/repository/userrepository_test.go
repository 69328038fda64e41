package repository

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vantage/internal/domain/user"
	"vantage/internal/shared/logger"
)

func createTestUser(t *testing.T, repo user.Repository, email string) *user.User {
	t.Helper()
	account, err := user.NewUser(email, "Test User", "$2a$04$fakehashfakehashfakehash", 1)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), account))
	return account
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, logger.NewLogger())
	ctx := context.Background()

	account := createTestUser(t, repo, "admin@example.com")
	assert.NotZero(t, account.ID())

	found, err := repo.GetByID(ctx, account.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "admin@example.com", found.Email())
	assert.Equal(t, account.PasswordHash(), found.PasswordHash())
}

func TestUserRepository_GetByEmail_CaseSensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, logger.NewLogger())
	ctx := context.Background()

	createTestUser(t, repo, "Admin@Example.com")

	found, err := repo.GetByEmail(ctx, "Admin@Example.com")
	require.NoError(t, err)
	assert.NotNil(t, found)

	// a different casing is a different identity
	miss, err := repo.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, logger.NewLogger())
	ctx := context.Background()

	createTestUser(t, repo, "dup@example.com")

	second, err := user.NewUser("dup@example.com", "Other", "hash", 1)
	require.NoError(t, err)
	assert.Error(t, repo.Create(ctx, second))

	exists, err := repo.ExistsByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, logger.NewLogger())
	ctx := context.Background()

	account := createTestUser(t, repo, "gone@example.com")

	require.NoError(t, repo.Delete(ctx, account.ID()))

	found, err := repo.GetByID(ctx, account.ID())
	require.NoError(t, err)
	assert.Nil(t, found)

	err = repo.Delete(ctx, account.ID())
	assert.True(t, stderrors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, logger.NewLogger())
	ctx := context.Background()

	createTestUser(t, repo, "a@example.com")
	createTestUser(t, repo, "b@example.com")

	users, total, err := repo.List(ctx, user.Filter{Email: "a@example.com"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "a@example.com", users[0].Email())

	_, total, err = repo.List(ctx, user.Filter{RoleID: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
