package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "blogapp/internal/errors"
	"blogapp/internal/model"
)

func strPtr(s string) *string { return &s }

func TestUserService_UpdateSelfOnly(t *testing.T) {
	alice := uuid.New()
	repo := new(MockUserRepository)
	service := NewUserService(repo, testHasher(), nil)

	_, err := service.UpdateUser(context.Background(), uuid.New(), alice, UpdateUserInput{Username: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.ErrorIs(t, service.DeleteUser(context.Background(), uuid.New(), alice), apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything)
}

func TestUserService_UpdateRehashesAndRenames(t *testing.T) {
	hasher := testHasher()
	oldHash, err := hasher.Hash("pw1")
	require.NoError(t, err)
	alice := &model.User{ID: uuid.New(), Username: "alice", Email: "alice@x.com", PasswordHash: oldHash}

	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, alice.ID).Return(alice, nil)
	repo.On("FindByUsername", mock.Anything, "alicia").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Update", mock.Anything, alice, true).Return(nil)

	service := NewUserService(repo, hasher, nil)
	updated, err := service.UpdateUser(context.Background(), alice.ID, alice.ID, UpdateUserInput{
		Username: strPtr("alicia"),
		Password: strPtr("pw2"),
	})

	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Username)
	assert.False(t, hasher.Verify("pw1", updated.PasswordHash))
	assert.True(t, hasher.Verify("pw2", updated.PasswordHash))
	repo.AssertExpectations(t)
}

func TestUserService_UpdateConflict(t *testing.T) {
	alice := &model.User{ID: uuid.New(), Username: "alice", Email: "alice@x.com"}
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, alice.ID).Return(alice, nil)
	repo.On("FindByEmail", mock.Anything, "bob@x.com").Return(&model.User{ID: uuid.New()}, nil)

	service := NewUserService(repo, testHasher(), nil)
	_, err := service.UpdateUser(context.Background(), alice.ID, alice.ID, UpdateUserInput{Email: strPtr("bob@x.com")})
	assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_GetAndDelete(t *testing.T) {
	alice := uuid.New()
	missing := uuid.New()
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, alice).Return(&model.User{ID: alice, Username: "alice"}, nil)
	repo.On("FindByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)
	repo.On("DeleteCascade", mock.Anything, alice).Return(nil)

	service := NewUserService(repo, testHasher(), nil)
	ctx := context.Background()

	user, err := service.GetUser(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = service.GetUser(ctx, missing)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	assert.NoError(t, service.DeleteUser(ctx, alice, alice))
	repo.AssertExpectations(t)
}
