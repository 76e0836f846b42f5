package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	AccountID uint      `gorm:"not null;index" json:"account_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_account" json:"post_id"`
	AccountID uint      `gorm:"not null;uniqueIndex:idx_likes_post_account" json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Read records that an account has opened a post.
type Read struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_reads_post_account" json:"post_id"`
	AccountID uint      `gorm:"not null;uniqueIndex:idx_reads_post_account" json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}
