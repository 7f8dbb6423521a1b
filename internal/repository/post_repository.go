package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogapp/internal/model"
)

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	// List returns posts newest first, filtered by a title substring when search is non-empty.
	List(ctx context.Context, search string) ([]model.Post, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error)
	// DeleteWithComments removes a post together with its comments.
	DeleteWithComments(ctx context.Context, id uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update saves the editable fields of a post. Ownership columns are never written.
func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Model(post).
		Select("Title", "Desc", "Photo", "Categories", "UpdatedAt").
		Updates(post).Error
}

// FindByID finds a post by ID.
func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List lists posts, optionally by title substring.
func (r *postRepository) List(ctx context.Context, search string) ([]model.Post, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("title LIKE ? ESCAPE '!'", "%"+escapeLike(search)+"%")
	}
	posts := []model.Post{}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByOwner lists the posts written by one user.
func (r *postRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	posts := []model.Post{}
	if err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// DeleteWithComments deletes a post and its comments in one transaction.
func (r *postRepository) DeleteWithComments(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.Post{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error
	})
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
