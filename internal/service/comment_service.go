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

// CommentService handles comment operations.
type CommentService interface {
	CreateComment(ctx context.Context, actorID, postID uuid.UUID, text, claimedUserID string) (*model.Comment, error)
	UpdateComment(ctx context.Context, actorID, commentID uuid.UUID, text string) (*model.Comment, error)
	DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error
	ListPostComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, userRepo repository.UserRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

func (s *commentService) CreateComment(ctx context.Context, actorID, postID uuid.UUID, text, claimedUserID string) (*model.Comment, error) {
	author, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	warnOnClaimMismatch("create comment", actorID, claimedUserID)

	comment := &model.Comment{
		ID:            uuid.New(),
		PostID:        postID,
		Comment:       strings.TrimSpace(text),
		OwnerUserID:   author.ID,
		OwnerUsername: author.Username,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, actorID, commentID uuid.UUID, text string) (*model.Comment, error) {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(comment, actorID); err != nil {
		return nil, err
	}

	comment.Comment = strings.TrimSpace(text)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err := auth.Authorize(comment, actorID); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *commentService) ListPostComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *commentService) findComment(ctx context.Context, commentID uuid.UUID) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return comment, nil
}
