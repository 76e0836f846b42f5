package models

import "time"

type PostType string

const (
	PostTypeAnnouncement PostType = "announcement"
	PostTypeMaterial     PostType = "material"
	PostTypeQuestion     PostType = "question"
	PostTypeEvent        PostType = "event"
)

func (t PostType) Valid() bool {
	switch t {
	case PostTypeAnnouncement, PostTypeMaterial, PostTypeQuestion, PostTypeEvent:
		return true
	}
	return false
}

// Post is an announcement published by an account, optionally inside a classroom.
// Censorship fields are written only by the moderation service.
type Post struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	AuthorID         uint       `gorm:"not null;index" json:"author_id"`
	ClassroomID      *uint      `gorm:"index" json:"classroom_id"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Body             string     `gorm:"type:text;not null" json:"body"`
	Type             PostType   `gorm:"size:20;not null;default:'announcement'" json:"type"`
	AllowComments    bool       `gorm:"not null" json:"allow_comments"`
	IsActive         bool       `gorm:"not null;index" json:"is_active"`
	IsCensored       bool       `gorm:"not null;default:false;index" json:"is_censored"`
	CensorReason     *string    `gorm:"type:text" json:"censor_reason"`
	CensoringAdminID *uint      `json:"censoring_admin_id"`
	CensoredAt       *time.Time `json:"censored_at"`
	LikeCount        int        `gorm:"not null;default:0" json:"like_count"`
	CommentCount     int        `gorm:"not null;default:0" json:"comment_count"`
	PublishedAt      time.Time  `gorm:"not null;index" json:"published_at"`
	EditedAt         *time.Time `json:"edited_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Author    Account    `gorm:"foreignKey:AuthorID" json:"-"`
	Classroom *Classroom `gorm:"foreignKey:ClassroomID" json:"-"`
}

// Visible reports whether the post can be shown to regular users.
func (p *Post) Visible() bool {
	return p.IsActive && !p.IsCensored
}
