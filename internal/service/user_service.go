package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogapp/internal/auth"
	"blogapp/internal/cache"
	apperrors "blogapp/internal/errors"
	"blogapp/internal/model"
	"blogapp/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UpdateUserInput carries optional profile changes; nil fields are left untouched.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
}

// UserService exposes profile operations.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, actorID, targetID uuid.UUID, input UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error
}

type userService struct {
	repo   repository.UserRepository
	hasher *auth.PasswordHasher
	cache  *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, hasher *auth.PasswordHasher, cache *cache.Client) UserService {
	return &userService{repo: repo, hasher: hasher, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

// GetUser returns a public profile, served from cache when possible.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// PasswordHash is tagged json:"-" so it never reaches the cache.
	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// UpdateUser changes the caller's own profile, re-hashing the password when given.
func (s *userService) UpdateUser(ctx context.Context, actorID, targetID uuid.UUID, input UpdateUserInput) (*model.User, error) {
	if err := auth.AuthorizeSelf(targetID, actorID); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	var username, email string
	if input.Username != nil {
		username = normalizeUsername(*input.Username)
	}
	if input.Email != nil {
		email = normalizeEmail(*input.Email)
	}
	if err := ensureAvailable(ctx, s.repo, user.ID, username, email); err != nil {
		return nil, err
	}

	renamed := username != "" && username != user.Username
	if renamed {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.repo.Update(ctx, user, renamed); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}

// DeleteUser removes the caller's own account together with their posts and comments.
func (s *userService) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	if err := auth.AuthorizeSelf(targetID, actorID); err != nil {
		return err
	}

	if err := s.repo.DeleteCascade(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(targetID))
	return nil
}
