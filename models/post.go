package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post represents a blog article published by an editor.
type Post struct {
	ID         uint                          `gorm:"primaryKey" json:"id"`
	Title      string                        `gorm:"not null" json:"title"`
	Slug       string                        `gorm:"uniqueIndex;not null" json:"slug"`
	Content    string                        `gorm:"type:text;not null" json:"content"`
	Excerpt    *string                       `json:"excerpt"`
	Category   string                        `gorm:"not null;index" json:"category"`
	Tags       datatypes.JSONSlice[string]   `json:"tags"`
	AuthorID   string                        `gorm:"not null;index" json:"author_id"` // Auth0 user ID (from 'sub' claim)
	AuthorName string                        `gorm:"not null" json:"author_name"`
	ImageS3Key *string                       `json:"image_s3_key"`                 // nullable, S3 key for the cover image
	ImageURL   *string                       `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for the cover image
	Views      int                           `gorm:"not null;default:0" json:"views"`
	CreatedAt  time.Time                     `json:"created_at"`
	UpdatedAt  time.Time                     `json:"updated_at"`
}

// TableName specifies the table name for the Post model
func (Post) TableName() string {
	return "posts"
}
