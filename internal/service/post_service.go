package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogapp/internal/auth"
	apperrors "blogapp/internal/errors"
	"blogapp/internal/model"
	"blogapp/internal/repository"
)

// PostInput holds the author-editable fields of a post.
type PostInput struct {
	Title      string
	Desc       string
	Photo      string
	Categories []string
	// ClaimedUserID is whatever owner id the client put in the payload. It is
	// only compared against the session, never stored.
	ClaimedUserID string
}

// PostService handles post operations.
type PostService interface {
	CreatePost(ctx context.Context, actorID uuid.UUID, input PostInput) (*model.Post, error)
	UpdatePost(ctx context.Context, actorID, postID uuid.UUID, input PostInput) (*model.Post, error)
	DeletePost(ctx context.Context, actorID, postID uuid.UUID) error
	GetPost(ctx context.Context, postID uuid.UUID) (*model.Post, error)
	ListPosts(ctx context.Context, search string) ([]model.Post, error)
	ListUserPosts(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// CreatePost stores a post owned by actorID. Owner id and author name come
// from the session user, regardless of what the payload claims.
func (s *postService) CreatePost(ctx context.Context, actorID uuid.UUID, input PostInput) (*model.Post, error) {
	author, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	warnOnClaimMismatch("create post", actorID, input.ClaimedUserID)

	post := &model.Post{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(input.Title),
		Desc:          strings.TrimSpace(input.Desc),
		Photo:         strings.TrimSpace(input.Photo),
		OwnerUserID:   author.ID,
		OwnerUsername: author.Username,
		Categories:    NormalizeCategories(input.Categories),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// UpdatePost edits a post after the ownership check.
func (s *postService) UpdatePost(ctx context.Context, actorID, postID uuid.UUID, input PostInput) (*model.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(post, actorID); err != nil {
		return nil, err
	}
	warnOnClaimMismatch("update post", actorID, input.ClaimedUserID)

	post.Title = strings.TrimSpace(input.Title)
	post.Desc = strings.TrimSpace(input.Desc)
	post.Photo = strings.TrimSpace(input.Photo)
	post.Categories = NormalizeCategories(input.Categories)

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// DeletePost removes a post and its comments after the ownership check.
func (s *postService) DeletePost(ctx context.Context, actorID, postID uuid.UUID) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := auth.Authorize(post, actorID); err != nil {
		return err
	}

	if err := s.postRepo.DeleteWithComments(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// GetPost retrieves a post by ID.
func (s *postService) GetPost(ctx context.Context, postID uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

// ListPosts lists posts, optionally filtered by title.
func (s *postService) ListPosts(ctx context.Context, search string) ([]model.Post, error) {
	posts, err := s.postRepo.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// ListUserPosts lists posts by author.
func (s *postService) ListUserPosts(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	posts, err := s.postRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}
	return posts, nil
}

// NormalizeCategories trims, drops empties and duplicates, and keeps at most
// model.MaxCategories entries in their original order.
func NormalizeCategories(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
		if len(out) == model.MaxCategories {
			break
		}
	}
	return out
}

// loadActor resolves the session user to a stored account.
func loadActor(ctx context.Context, repo repository.UserRepository, actorID uuid.UUID) (*model.User, error) {
	user, err := repo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func warnOnClaimMismatch(op string, actorID uuid.UUID, claimed string) {
	if claimed != "" && claimed != actorID.String() {
		log.Printf("%s: payload userId %q ignored for session user %s", op, claimed, actorID)
	}
}
