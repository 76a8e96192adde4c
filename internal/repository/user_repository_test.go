package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/dbtest"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
)

func createUser(t *testing.T, repo UserRepository, email, name string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "hash", Name: name}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(dbtest.New(t))
	ctx := context.Background()

	user := createUser(t, repo, "ada@example.com", "Ada")
	assert.NotZero(t, user.ID)

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.Name)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_DuplicateEmailRejected(t *testing.T) {
	repo := NewUserRepository(dbtest.New(t))
	createUser(t, repo, "dup@example.com", "One")

	err := repo.Create(context.Background(), &model.User{Email: "dup@example.com", PasswordHash: "x", Name: "Two"})
	assert.Error(t, err)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	repo := NewUserRepository(dbtest.New(t))
	ctx := context.Background()
	user := createUser(t, repo, "grace@example.com", "Grace")

	require.NoError(t, repo.UpdateProfile(ctx, user.ID, "Grace H", nil))
	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace H", got.Name)
	assert.Equal(t, "hash", got.PasswordHash)

	newHash := "new-hash"
	require.NoError(t, repo.UpdateProfile(ctx, user.ID, "Grace H", &newHash))
	got, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
}
