package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/teckbook/teckbook-backend/internal/apperrors"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/metrics"
	"github.com/teckbook/teckbook-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// StrikeThreshold is the strike count at which an account is suspended.
	StrikeThreshold = 3
	// SuspensionWindow is how long every suspension lasts.
	SuspensionWindow = 7 * 24 * time.Hour
	MaxReasonLength  = 1000

	listBodyLimit = 200
)

// ModerationService applies censorship, strike and suspension transitions.
// Every mutating operation runs in one transaction together with the audit
// entries it produces.
type ModerationService struct {
	db    *gorm.DB
	audit *AuditService
	now   func() time.Time
}

func NewModerationService(db *gorm.DB, audit *AuditService) *ModerationService {
	return &ModerationService{
		db:    db,
		audit: audit,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for timestamps and suspension windows.
func (s *ModerationService) SetClock(now func() time.Time) {
	s.now = now
}

// PostFilter narrows the moderation post listing.
type PostFilter struct {
	State  string // "hidden", "visible" or empty for all
	Search string
}

// PendingFilter narrows the pending-content listing.
type PendingFilter struct {
	Type        models.PostType
	ClassroomID uint
}

// CensorPost hides a visible post. When applyStrike is set and the author is
// not an administrator, the author receives a strike and is suspended on
// reaching StrikeThreshold.
func (s *ModerationService) CensorPost(postID, adminID uint, reason string, applyStrike bool) (*dto.CensorResult, error) {
	now := s.now()
	result := &dto.CensorResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadActor(tx, adminID); err != nil {
			return err
		}

		post, err := lockPost(tx, postID)
		if err != nil {
			return err
		}
		if post.IsCensored {
			return ErrAlreadyCensored
		}

		r, err := normalizeReason(reason)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Post{}).
			Where("id = ? AND is_censored = ?", post.ID, false).
			Updates(map[string]interface{}{
				"is_censored":        true,
				"censor_reason":      r,
				"censoring_admin_id": adminID,
				"censored_at":        now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCensored
		}

		var author *models.Account
		if applyStrike {
			author, err = lockAccount(tx, post.AuthorID)
			if errors.Is(err, ErrAccountNotFound) {
				slog.Warn("censored post has no live author, strike skipped", "post_id", post.ID, "author_id", post.AuthorID)
				author, err = nil, nil
			}
			if err != nil {
				return err
			}
		}
		if author != nil {
			total := author.StrikeCount
			if author.Role.Moderatable() {
				total, err = incrementStrikes(tx, author.ID)
				if err != nil {
					return err
				}
				result.StrikeApplied = true
			}
			result.TotalStrikes = &total
		}

		metadata := datatypes.JSONMap{
			"apply_strike":   applyStrike,
			"strike_applied": result.StrikeApplied,
		}
		if result.TotalStrikes != nil {
			metadata["total_strikes"] = *result.TotalStrikes
		}
		authorID := post.AuthorID
		if err := s.audit.Append(tx, &models.AuditEntry{
			AdminID:         adminID,
			Action:          models.AuditCensorPost,
			TargetAccountID: &authorID,
			TargetPostID:    &post.ID,
			Description:     fmt.Sprintf("Post %q censored", post.Title),
			Reason:          &r,
			Metadata:        metadata,
			CreatedAt:       now,
		}); err != nil {
			return err
		}

		if result.StrikeApplied && *result.TotalStrikes >= StrikeThreshold && !author.IsSuspended {
			if err := s.autoSuspend(tx, author.ID, adminID, *result.TotalStrikes, now, &post.ID); err != nil {
				return err
			}
			result.AutoSuspended = true
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("censor_post", err)
	}

	s.committed(models.AuditCensorPost)
	if result.AutoSuspended {
		s.committed(models.AuditSuspendAccount)
		metrics.AutoSuspensions.Inc()
	}
	slog.Info("post censored", "action", models.AuditCensorPost, "post_id", postID, "admin_id", adminID,
		"strike_applied", result.StrikeApplied, "auto_suspended", result.AutoSuspended)
	return result, nil
}

// UncensorPost makes a censored post visible again.
func (s *ModerationService) UncensorPost(postID, adminID uint) error {
	now := s.now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadActor(tx, adminID); err != nil {
			return err
		}

		post, err := lockPost(tx, postID)
		if err != nil {
			return err
		}
		if !post.IsCensored {
			return ErrNotCensored
		}

		res := tx.Model(&models.Post{}).
			Where("id = ? AND is_censored = ?", post.ID, true).
			Updates(map[string]interface{}{
				"is_censored":        false,
				"censor_reason":      nil,
				"censoring_admin_id": nil,
				"censored_at":        nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotCensored
		}

		metadata := datatypes.JSONMap{}
		if post.CensorReason != nil {
			metadata["previous_reason"] = *post.CensorReason
		}
		if post.CensoringAdminID != nil {
			metadata["previous_admin_id"] = *post.CensoringAdminID
		}
		authorID := post.AuthorID
		return s.audit.Append(tx, &models.AuditEntry{
			AdminID:         adminID,
			Action:          models.AuditUncensorPost,
			TargetAccountID: &authorID,
			TargetPostID:    &post.ID,
			Description:     "Post reactivated by moderator",
			Metadata:        metadata,
			CreatedAt:       now,
		})
	})
	if err != nil {
		return s.fail("uncensor_post", err)
	}

	s.committed(models.AuditUncensorPost)
	slog.Info("post uncensored", "action", models.AuditUncensorPost, "post_id", postID, "admin_id", adminID)
	return nil
}

// SuspendAccount suspends an active account for SuspensionWindow.
func (s *ModerationService) SuspendAccount(accountID, adminID uint, reason string) error {
	now := s.now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadActor(tx, adminID); err != nil {
			return err
		}

		target, err := lockModeratable(tx, accountID)
		if err != nil {
			return err
		}
		if target.IsSuspended {
			return ErrAlreadySuspended
		}

		r, err := normalizeReason(reason)
		if err != nil {
			return err
		}

		until := now.Add(SuspensionWindow)
		if err := suspend(tx, target.ID, until, r); err != nil {
			return err
		}
		return s.audit.Append(tx, &models.AuditEntry{
			AdminID:         adminID,
			Action:          models.AuditSuspendAccount,
			TargetAccountID: &target.ID,
			Description:     fmt.Sprintf("Account %d suspended", target.ID),
			Reason:          &r,
			Metadata: datatypes.JSONMap{
				"automatic":       false,
				"strikes":         target.StrikeCount,
				"suspended_until": until,
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return s.fail("suspend_account", err)
	}

	s.committed(models.AuditSuspendAccount)
	slog.Info("account suspended", "action", models.AuditSuspendAccount, "account_id", accountID, "admin_id", adminID)
	return nil
}

// ReactivateAccount lifts a suspension. The strike count is left untouched.
func (s *ModerationService) ReactivateAccount(accountID, adminID uint) error {
	now := s.now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadActor(tx, adminID); err != nil {
			return err
		}

		target, err := lockModeratable(tx, accountID)
		if err != nil {
			return err
		}
		if !target.IsSuspended {
			return ErrNotSuspended
		}

		err = tx.Model(&models.Account{}).Where("id = ?", target.ID).
			Updates(map[string]interface{}{
				"is_suspended":      false,
				"suspended_until":   nil,
				"suspension_reason": nil,
			}).Error
		if err != nil {
			return err
		}

		metadata := datatypes.JSONMap{"strikes": target.StrikeCount}
		if target.SuspensionReason != nil {
			metadata["previous_reason"] = *target.SuspensionReason
		}
		return s.audit.Append(tx, &models.AuditEntry{
			AdminID:         adminID,
			Action:          models.AuditReactivateAccount,
			TargetAccountID: &target.ID,
			Description:     fmt.Sprintf("Account %d reactivated", target.ID),
			Metadata:        metadata,
			CreatedAt:       now,
		})
	})
	if err != nil {
		return s.fail("reactivate_account", err)
	}

	s.committed(models.AuditReactivateAccount)
	slog.Info("account reactivated", "action", models.AuditReactivateAccount, "account_id", accountID, "admin_id", adminID)
	return nil
}

// ApplyStrike adds one strike to an account. Reaching StrikeThreshold while
// active suspends the account; strikes on an already suspended account only
// increment the counter and leave the suspension window as it is.
func (s *ModerationService) ApplyStrike(accountID, adminID uint, reason string) (*dto.StrikeResult, error) {
	now := s.now()
	result := &dto.StrikeResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadActor(tx, adminID); err != nil {
			return err
		}

		target, err := lockModeratable(tx, accountID)
		if err != nil {
			return err
		}

		r, err := normalizeReason(reason)
		if err != nil {
			return err
		}

		total, err := incrementStrikes(tx, target.ID)
		if err != nil {
			return err
		}
		result.TotalStrikes = total

		if err := s.audit.Append(tx, &models.AuditEntry{
			AdminID:         adminID,
			Action:          models.AuditApplyStrike,
			TargetAccountID: &target.ID,
			Description:     fmt.Sprintf("Strike applied to account %d", target.ID),
			Reason:          &r,
			Metadata:        datatypes.JSONMap{"total_strikes": total},
			CreatedAt:       now,
		}); err != nil {
			return err
		}

		if total >= StrikeThreshold && !target.IsSuspended {
			if err := s.autoSuspend(tx, target.ID, adminID, total, now, nil); err != nil {
				return err
			}
			result.AutoSuspended = true
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("apply_strike", err)
	}

	s.committed(models.AuditApplyStrike)
	if result.AutoSuspended {
		s.committed(models.AuditSuspendAccount)
		metrics.AutoSuspensions.Inc()
	}
	slog.Info("strike applied", "action", models.AuditApplyStrike, "account_id", accountID, "admin_id", adminID,
		"total_strikes", result.TotalStrikes, "auto_suspended", result.AutoSuspended)
	return result, nil
}

// ResetStrikes sets an account's strike count back to zero. Suspension state
// is not changed.
func (s *ModerationService) ResetStrikes(accountID, adminID uint, reason string) error {
	now := s.now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadActor(tx, adminID); err != nil {
			return err
		}

		target, err := lockModeratable(tx, accountID)
		if err != nil {
			return err
		}
		if target.StrikeCount == 0 {
			return ErrNoStrikes
		}

		r, err := normalizeReason(reason)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Account{}).Where("id = ?", target.ID).
			Update("strike_count", 0).Error; err != nil {
			return err
		}
		return s.audit.Append(tx, &models.AuditEntry{
			AdminID:         adminID,
			Action:          models.AuditResetStrikes,
			TargetAccountID: &target.ID,
			Description:     fmt.Sprintf("Strikes reset for account %d", target.ID),
			Reason:          &r,
			Metadata:        datatypes.JSONMap{"previous_strikes": target.StrikeCount},
			CreatedAt:       now,
		})
	})
	if err != nil {
		return s.fail("reset_strikes", err)
	}

	s.committed(models.AuditResetStrikes)
	slog.Info("strikes reset", "action", models.AuditResetStrikes, "account_id", accountID, "admin_id", adminID)
	return nil
}

// GetPost returns the full moderation view of one post.
func (s *ModerationService) GetPost(postID uint) (*dto.ModerationPost, error) {
	var post models.Post
	err := s.db.Preload("Author", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Classroom").
		First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	view := toModerationPost(&post, false)
	return &view, nil
}

// ListPosts returns posts for the moderation panel, newest first.
func (s *ModerationService) ListPosts(filter PostFilter, page Page) ([]dto.ModerationPost, int64, error) {
	query := s.db.Model(&models.Post{})
	switch filter.State {
	case "":
	case "hidden":
		query = query.Where("is_censored = ?", true)
	case "visible":
		query = query.Where("is_censored = ?", false)
	default:
		return nil, 0, ErrInvalidInput
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(body) LIKE ?", like, like)
	}
	return s.pagePosts(query, page)
}

// PendingPosts returns active posts awaiting review, newest first.
func (s *ModerationService) PendingPosts(filter PendingFilter, page Page) ([]dto.ModerationPost, int64, error) {
	query := s.db.Model(&models.Post{}).Where("is_active = ?", true)
	if filter.Type != "" {
		if !filter.Type.Valid() {
			return nil, 0, ErrInvalidInput
		}
		query = query.Where("type = ?", filter.Type)
	}
	if filter.ClassroomID != 0 {
		query = query.Where("classroom_id = ?", filter.ClassroomID)
	}
	return s.pagePosts(query, page)
}

// PostHistory returns the audit trail of a post, newest first.
func (s *ModerationService) PostHistory(postID uint) ([]models.AuditEntry, error) {
	var count int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}
	return s.audit.QueryByPost(postID)
}

func (s *ModerationService) pagePosts(query *gorm.DB, page Page) ([]dto.ModerationPost, int64, error) {
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Storage(err)
	}

	var posts []models.Post
	err := query.Scopes(Paginate(page)).
		Preload("Author", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Classroom").
		Order("published_at DESC").Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}

	views := make([]dto.ModerationPost, len(posts))
	for i := range posts {
		views[i] = toModerationPost(&posts[i], true)
	}
	return views, total, nil
}

func (s *ModerationService) autoSuspend(tx *gorm.DB, accountID, adminID uint, strikes int, now time.Time, postID *uint) error {
	reason := fmt.Sprintf("Automatic suspension after accumulating %d strikes", strikes)
	until := now.Add(SuspensionWindow)
	if err := suspend(tx, accountID, until, reason); err != nil {
		return err
	}

	metadata := datatypes.JSONMap{
		"automatic":       true,
		"strikes":         strikes,
		"suspended_until": until,
	}
	if postID != nil {
		metadata["post_id"] = *postID
	}
	return s.audit.Append(tx, &models.AuditEntry{
		AdminID:         adminID,
		Action:          models.AuditSuspendAccount,
		TargetAccountID: &accountID,
		Description:     fmt.Sprintf("Account %d suspended automatically", accountID),
		Reason:          &reason,
		Metadata:        metadata,
		CreatedAt:       now,
	})
}

func (s *ModerationService) committed(action models.AuditAction) {
	metrics.ModerationActions.WithLabelValues(string(action)).Inc()
}

func (s *ModerationService) fail(operation string, err error) error {
	err = apperrors.Storage(err)
	code := apperrors.Code(err)
	if code == "" {
		code = "UNKNOWN"
	}
	metrics.ModerationFailures.WithLabelValues(operation, code).Inc()
	if errors.Is(err, apperrors.ErrStorage) {
		slog.Error("moderation operation failed", "action", operation, "error", err)
	}
	return err
}

func normalizeReason(reason string) (string, error) {
	r := strings.TrimSpace(reason)
	if r == "" || utf8.RuneCountInString(r) > MaxReasonLength {
		return "", ErrInvalidReason
	}
	return r, nil
}

// loadActor checks that adminID names an active administrator.
func loadActor(tx *gorm.DB, adminID uint) (*models.Account, error) {
	var actor models.Account
	err := tx.First(&actor, adminID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrActorNotAdmin
	}
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanModerate() || !actor.IsActive {
		return nil, ErrActorNotAdmin
	}
	return &actor, nil
}

func lockPost(tx *gorm.DB, postID uint) (*models.Post, error) {
	var post models.Post
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func lockAccount(tx *gorm.DB, accountID uint) (*models.Account, error) {
	var account models.Account
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, accountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func lockModeratable(tx *gorm.DB, accountID uint) (*models.Account, error) {
	account, err := lockAccount(tx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.Role.Moderatable() {
		return nil, ErrCannotModerateAdmin
	}
	return account, nil
}

// incrementStrikes adds one strike in a single UPDATE and returns the new count.
func incrementStrikes(tx *gorm.DB, accountID uint) (int, error) {
	err := tx.Model(&models.Account{}).Where("id = ?", accountID).
		Update("strike_count", gorm.Expr("strike_count + ?", 1)).Error
	if err != nil {
		return 0, err
	}

	var account models.Account
	if err := tx.Select("id", "strike_count").First(&account, accountID).Error; err != nil {
		return 0, err
	}
	return account.StrikeCount, nil
}

func suspend(tx *gorm.DB, accountID uint, until time.Time, reason string) error {
	return tx.Model(&models.Account{}).Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"is_suspended":      true,
			"suspended_until":   until,
			"suspension_reason": reason,
		}).Error
}

func toModerationPost(p *models.Post, truncate bool) dto.ModerationPost {
	body := p.Body
	if truncate && utf8.RuneCountInString(body) > listBodyLimit {
		body = string([]rune(body)[:listBodyLimit]) + "..."
	}

	classroom := "General"
	if p.Classroom != nil {
		classroom = p.Classroom.Title
	}

	state := "visible"
	if p.IsCensored {
		state = "hidden"
	}

	return dto.ModerationPost{
		ID:             p.ID,
		Title:          p.Title,
		Body:           body,
		Type:           p.Type,
		AuthorID:       p.AuthorID,
		AuthorName:     p.Author.FullName(),
		AuthorRole:     p.Author.Role,
		ClassroomTitle: classroom,
		PublishedAt:    p.PublishedAt,
		LikeCount:      p.LikeCount,
		CommentCount:   p.CommentCount,
		IsActive:       p.IsActive,
		State:          state,
		CensorReason:   p.CensorReason,
		CensoredAt:     p.CensoredAt,
	}
}
