package models

import "time"

type ClassroomState string

const (
	ClassroomActive   ClassroomState = "active"
	ClassroomArchived ClassroomState = "archived"
)

// Classroom is a virtual classroom owned by a professor.
type Classroom struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	AccessCode  string         `gorm:"size:20;not null;uniqueIndex" json:"access_code"`
	ProfessorID uint           `gorm:"not null;index" json:"professor_id"`
	State       ClassroomState `gorm:"size:20;not null;default:'active';index" json:"state"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type MembershipState string

const (
	MembershipActive  MembershipState = "active"
	MembershipPending MembershipState = "pending"
	MembershipLeft    MembershipState = "left"
)

type ClassroomMember struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ClassroomID uint            `gorm:"not null;uniqueIndex:idx_classroom_member" json:"classroom_id"`
	AccountID   uint            `gorm:"not null;uniqueIndex:idx_classroom_member" json:"account_id"`
	State       MembershipState `gorm:"size:20;not null;default:'active'" json:"state"`
	CreatedAt   time.Time       `json:"created_at"`
}
