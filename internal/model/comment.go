package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a reply attached to a post.
type Comment struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	PostID        uuid.UUID `json:"postId" gorm:"type:char(36);not null;index"`
	Comment       string    `json:"comment" gorm:"type:text;not null"`
	OwnerUserID   uuid.UUID `json:"ownerUserId" gorm:"type:char(36);not null;index"`
	OwnerUsername string    `json:"ownerUsername" gorm:"size:64;not null"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OwnerID returns the id of the user who wrote the comment.
func (c *Comment) OwnerID() uuid.UUID {
	return c.OwnerUserID
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
