package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogapp/internal/model"
)

// UserRepository defines persistence operations for the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// Update saves the user; when renamed, the denormalized author name on
	// the user's posts and comments is rewritten in the same transaction.
	Update(ctx context.Context, user *model.User, renamed bool) error
	// DeleteCascade removes the user, their posts, their comments and every
	// comment left on their posts.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User, renamed bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		if !renamed {
			return nil
		}
		if err := tx.Model(&model.Post{}).
			Where("owner_user_id = ?", user.ID).
			Update("owner_username", user.Username).Error; err != nil {
			return err
		}
		return tx.Model(&model.Comment{}).
			Where("owner_user_id = ?", user.ID).
			Update("owner_username", user.Username).Error
	})
}

func (r *userRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		ownPosts := tx.Model(&model.Post{}).Select("id").Where("owner_user_id = ?", id)
		if err := tx.Where("post_id IN (?) OR owner_user_id = ?", ownPosts, id).
			Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("owner_user_id = ?", id).Delete(&model.Post{}).Error
	})
}
