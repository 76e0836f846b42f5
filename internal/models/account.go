package models

import (
	"time"

	"gorm.io/gorm"
)

// Account is a platform user: student, professor or administrator.
type Account struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Email            string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password         string         `gorm:"not null" json:"-"`
	FirstName        string         `gorm:"size:255" json:"first_name"`
	LastName         string         `gorm:"size:255" json:"last_name"`
	Role             Role           `gorm:"size:20;not null;index" json:"role"`
	IsActive         bool           `gorm:"not null" json:"is_active"`
	IsSuspended      bool           `gorm:"not null;default:false;index" json:"is_suspended"`
	SuspendedUntil   *time.Time     `json:"suspended_until"`
	SuspensionReason *string        `gorm:"type:text" json:"suspension_reason"`
	StrikeCount      int            `gorm:"not null;default:0" json:"strike_count"`
	LastLoginAt      *time.Time     `json:"last_login_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Account) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// CanPublish reports whether the account may create posts and interactions.
func (a *Account) CanPublish() bool {
	return a.IsActive && !a.IsSuspended
}
