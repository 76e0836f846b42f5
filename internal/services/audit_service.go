package services

import (
	"strings"
	"time"

	"github.com/teckbook/teckbook-backend/internal/apperrors"
	"github.com/teckbook/teckbook-backend/internal/models"
	"gorm.io/gorm"
)

// AuditService appends and reads moderation audit entries.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// AuditFilter narrows List results. Zero values match everything.
type AuditFilter struct {
	AdminID uint
	Action  models.AuditAction
}

// Append writes entry using tx, or the service connection when tx is nil.
// Storage failures are returned wrapped and never retried. ErrInvalidInput
// flags a caller bug (no actor, unknown action, empty description or no
// target); the moderation engine always builds complete entries.
func (s *AuditService) Append(tx *gorm.DB, entry *models.AuditEntry) error {
	if tx == nil {
		tx = s.db
	}
	if entry.AdminID == 0 || !entry.Action.Valid() || strings.TrimSpace(entry.Description) == "" {
		return ErrInvalidInput
	}
	if entry.TargetAccountID == nil && entry.TargetPostID == nil {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.ID = 0

	if err := tx.Create(entry).Error; err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

// QueryByPost returns every entry targeting postID, newest first.
func (s *AuditService) QueryByPost(postID uint) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	err := s.db.Where("target_post_id = ?", postID).
		Order("created_at DESC").Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return entries, nil
}

// QueryByAccount returns every entry targeting accountID, newest first.
func (s *AuditService) QueryByAccount(accountID uint) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	err := s.db.Where("target_account_id = ?", accountID).
		Order("created_at DESC").Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return entries, nil
}

// List returns a page of entries matching filter, newest first, plus the total
// number of matches.
func (s *AuditService) List(filter AuditFilter, page Page) ([]models.AuditEntry, int64, error) {
	if filter.Action != "" && !filter.Action.Valid() {
		return nil, 0, ErrInvalidAction
	}

	query := s.db.Model(&models.AuditEntry{})
	if filter.AdminID != 0 {
		query = query.Where("admin_id = ?", filter.AdminID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Storage(err)
	}

	var entries []models.AuditEntry
	err := query.Scopes(Paginate(page)).
		Order("created_at DESC").Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}
	return entries, total, nil
}
