package dto

import "github.com/teckbook/teckbook-backend/internal/models"

type CreatePostRequest struct {
	Title         string          `json:"title"`
	Body          string          `json:"body"`
	Type          models.PostType `json:"type"`
	ClassroomID   *uint           `json:"classroom_id"`
	AllowComments *bool           `json:"allow_comments"`
}

type UpdatePostRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

type CreateCommentRequest struct {
	Body     string `json:"body"`
	ParentID *uint  `json:"parent_id"`
}
