package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxCategories bounds the number of categories attached to a post.
const MaxCategories = 5

// Post is a blog entry owned by the user who created it.
type Post struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title         string    `json:"title" gorm:"size:255;not null;index"`
	Desc          string    `json:"desc" gorm:"column:body;type:text;not null"`
	Photo         string    `json:"photo" gorm:"size:255"`
	OwnerUserID   uuid.UUID `json:"ownerUserId" gorm:"type:char(36);not null;index"`
	OwnerUsername string    `json:"ownerUsername" gorm:"size:64;not null"`
	Categories    []string  `json:"categories" gorm:"serializer:json;type:text"`
	CreatedAt     time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OwnerID returns the id of the user who created the post.
func (p *Post) OwnerID() uuid.UUID {
	return p.OwnerUserID
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	return nil
}
