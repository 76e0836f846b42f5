package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrAuditImmutable = errors.New("audit entries are append-only")

type AuditAction string

const (
	AuditCensorPost        AuditAction = "censor_post"
	AuditUncensorPost      AuditAction = "uncensor_post"
	AuditApplyStrike       AuditAction = "apply_strike"
	AuditSuspendAccount    AuditAction = "suspend_account"
	AuditReactivateAccount AuditAction = "reactivate_account"
	AuditResetStrikes      AuditAction = "reset_strikes"
	AuditCreateProfessor   AuditAction = "create_professor"
)

func (a AuditAction) Valid() bool {
	switch a {
	case AuditCensorPost, AuditUncensorPost, AuditApplyStrike, AuditSuspendAccount,
		AuditReactivateAccount, AuditResetStrikes, AuditCreateProfessor:
		return true
	}
	return false
}

// AuditEntry is an append-only record of one moderation action. Rows are never
// updated or deleted.
type AuditEntry struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	AdminID         uint              `gorm:"not null;index" json:"admin_id"`
	Action          AuditAction       `gorm:"size:30;not null;index" json:"action"`
	TargetAccountID *uint             `gorm:"index" json:"target_account_id"`
	TargetPostID    *uint             `gorm:"index" json:"target_post_id"`
	Description     string            `gorm:"type:text;not null" json:"description"`
	Reason          *string           `gorm:"type:text" json:"reason"`
	Metadata        datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt       time.Time         `gorm:"not null;index" json:"created_at"`
}

func (AuditEntry) TableName() string {
	return "moderation_audit_entries"
}

func (AuditEntry) BeforeUpdate(*gorm.DB) error {
	return ErrAuditImmutable
}

func (AuditEntry) BeforeDelete(*gorm.DB) error {
	return ErrAuditImmutable
}
