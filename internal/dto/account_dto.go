package dto

import (
	"time"

	"github.com/teckbook/teckbook-backend/internal/models"
)

type CreateAccountRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AccountSummary is the admin panel view of an account.
type AccountSummary struct {
	ID               uint        `json:"id"`
	Email            string      `json:"email"`
	FirstName        string      `json:"first_name"`
	LastName         string      `json:"last_name"`
	FullName         string      `json:"full_name"`
	Role             models.Role `json:"role"`
	StrikeCount      int         `json:"strike_count"`
	IsActive         bool        `json:"is_active"`
	IsSuspended      bool        `json:"is_suspended"`
	SuspendedUntil   *time.Time  `json:"suspended_until"`
	SuspensionReason *string     `json:"suspension_reason"`
	CreatedAt        time.Time   `json:"created_at"`
}

func NewAccountSummary(a *models.Account) AccountSummary {
	return AccountSummary{
		ID:               a.ID,
		Email:            a.Email,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		FullName:         a.FullName(),
		Role:             a.Role,
		StrikeCount:      a.StrikeCount,
		IsActive:         a.IsActive,
		IsSuspended:      a.IsSuspended,
		SuspendedUntil:   a.SuspendedUntil,
		SuspensionReason: a.SuspensionReason,
		CreatedAt:        a.CreatedAt,
	}
}
