package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogapp/internal/auth"
	apperrors "blogapp/internal/errors"
	"blogapp/internal/model"
	"blogapp/internal/repository"
)

// AuthService handles registration and the session lifecycle.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, claims *auth.Claims, user *model.User, err error)
	Logout(ctx context.Context, claims *auth.Claims) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	hasher     *auth.PasswordHasher
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new user with hashed password.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = normalizeUsername(username)
	email = normalizeEmail(email)

	if err := ensureAvailable(ctx, s.userRepo, uuid.Nil, username, email); err != nil {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and mints a session token. Unknown email and
// wrong password produce the same error after a comparable amount of work.
func (s *authService) Login(ctx context.Context, email, password string) (string, *auth.Claims, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.Burn(password)
			return "", nil, nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, nil, apperrors.ErrInvalidCredentials
	}

	token, claims, err := s.jwtService.GenerateSessionToken(user.ID, user.Username)
	if err != nil {
		return "", nil, nil, fmt.Errorf("generate session token: %w", err)
	}

	return token, claims, user, nil
}

// Logout revokes the session behind claims until it would have expired.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return nil
	}
	return s.tokenStore.RevokeToken(ctx, claims.ID, claims.Remaining())
}

// CurrentUser loads the profile of an authenticated user.
func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// account deleted while the token was still live
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ensureAvailable fails with ErrUserAlreadyExists when username or email
// belongs to an account other than self.
func ensureAvailable(ctx context.Context, repo repository.UserRepository, self uuid.UUID, username, email string) error {
	if username != "" {
		existing, err := repo.FindByUsername(ctx, username)
		if err == nil && existing != nil && existing.ID != self {
			return apperrors.ErrUserAlreadyExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check username: %w", err)
		}
	}
	if email != "" {
		existing, err := repo.FindByEmail(ctx, email)
		if err == nil && existing != nil && existing.ID != self {
			return apperrors.ErrUserAlreadyExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check email: %w", err)
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
