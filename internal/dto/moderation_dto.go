package dto

import (
	"time"

	"github.com/teckbook/teckbook-backend/internal/models"
)

type CensorPostRequest struct {
	Reason      string `json:"reason"`
	ApplyStrike bool   `json:"apply_strike"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

// CensorResult reports the side effects of censoring a post. TotalStrikes is
// only set when a strike was requested.
type CensorResult struct {
	StrikeApplied bool `json:"strike_applied"`
	TotalStrikes  *int `json:"total_strikes"`
	AutoSuspended bool `json:"auto_suspended"`
}

type StrikeResult struct {
	TotalStrikes  int  `json:"total_strikes"`
	AutoSuspended bool `json:"auto_suspended"`
}

// ModerationPost is the moderation panel view of a post.
type ModerationPost struct {
	ID             uint            `json:"id"`
	Title          string          `json:"title"`
	Body           string          `json:"body"`
	Type           models.PostType `json:"type"`
	AuthorID       uint            `json:"author_id"`
	AuthorName     string          `json:"author_name"`
	AuthorRole     models.Role     `json:"author_role"`
	ClassroomTitle string          `json:"classroom_title"`
	PublishedAt    time.Time       `json:"published_at"`
	LikeCount      int             `json:"like_count"`
	CommentCount   int             `json:"comment_count"`
	IsActive       bool            `json:"is_active"`
	State          string          `json:"state"`
	CensorReason   *string         `json:"censor_reason,omitempty"`
	CensoredAt     *time.Time      `json:"censored_at,omitempty"`
}

type HistoryResponse struct {
	History []models.AuditEntry `json:"history"`
}
