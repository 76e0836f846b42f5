package services

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/teckbook/teckbook-backend/internal/apperrors"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContentService creates posts and the interactions attached to them. Post
// counters are adjusted in the same transaction as the row that changes them.
type ContentService struct {
	db     *gorm.DB
	filter *ContentFilter
	now    func() time.Time
}

func NewContentService(db *gorm.DB, filter *ContentFilter) *ContentService {
	return &ContentService{
		db:     db,
		filter: filter,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *ContentService) CreatePost(authorID uint, req *dto.CreatePostRequest) (*models.Post, error) {
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	if title == "" || body == "" || len(title) > 255 {
		return nil, ErrInvalidInput
	}
	postType := req.Type
	if postType == "" {
		postType = models.PostTypeAnnouncement
	}
	if !postType.Valid() {
		return nil, ErrInvalidInput
	}
	if err := s.screen(title, body); err != nil {
		return nil, err
	}

	allowComments := true
	if req.AllowComments != nil {
		allowComments = *req.AllowComments
	}

	post := models.Post{
		AuthorID:      authorID,
		ClassroomID:   req.ClassroomID,
		Title:         title,
		Body:          body,
		Type:          postType,
		AllowComments: allowComments,
		IsActive:      true,
		PublishedAt:   s.now(),
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadPublisher(tx, authorID); err != nil {
			return err
		}
		if req.ClassroomID != nil {
			var count int64
			if err := tx.Model(&models.Classroom{}).
				Where("id = ? AND state = ?", *req.ClassroomID, models.ClassroomActive).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrClassroomNotFound
			}
		}
		return tx.Create(&post).Error
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	slog.Info("post created", "post_id", post.ID, "account_id", authorID)
	return &post, nil
}

// UpdatePost lets the author change the title and body. Censorship fields are
// never touched here.
func (s *ContentService) UpdatePost(postID, accountID uint, req *dto.UpdatePostRequest) (*models.Post, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || len(title) > 255 {
			return nil, ErrInvalidInput
		}
		updates["title"] = title
	}
	if req.Body != nil {
		body := strings.TrimSpace(*req.Body)
		if body == "" {
			return nil, ErrInvalidInput
		}
		updates["body"] = body
	}
	if len(updates) == 0 {
		return nil, ErrInvalidInput
	}
	title, _ := updates["title"].(string)
	body, _ := updates["body"].(string)
	if err := s.screen(title, body); err != nil {
		return nil, err
	}
	updates["edited_at"] = s.now()

	var post models.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := lockPost(tx, postID)
		if err != nil {
			return err
		}
		if p.AuthorID != accountID {
			return ErrNotOwner
		}
		if !p.IsActive {
			return ErrPostUnavailable
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&post, p.ID).Error
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return &post, nil
}

// DeletePost deactivates a post on behalf of its author.
func (s *ContentService) DeletePost(postID, accountID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := lockPost(tx, postID)
		if err != nil {
			return err
		}
		if p.AuthorID != accountID {
			return ErrNotOwner
		}
		if !p.IsActive {
			return ErrPostUnavailable
		}
		return tx.Model(&models.Post{}).Where("id = ?", p.ID).Update("is_active", false).Error
	})
	return apperrors.Storage(err)
}

func (s *ContentService) AddComment(postID, accountID uint, req *dto.CreateCommentRequest) (*models.Comment, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, ErrInvalidInput
	}
	if err := s.screen("", body); err != nil {
		return nil, err
	}

	comment := models.Comment{
		PostID:    postID,
		AccountID: accountID,
		ParentID:  req.ParentID,
		Body:      body,
		IsActive:  true,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadPublisher(tx, accountID); err != nil {
			return err
		}
		post, err := lockInteractable(tx, postID)
		if err != nil {
			return err
		}
		if !post.AllowComments {
			return ErrCommentsDisabled
		}
		if req.ParentID != nil {
			var count int64
			if err := tx.Model(&models.Comment{}).
				Where("id = ? AND post_id = ? AND is_active = ?", *req.ParentID, postID, true).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrCommentNotFound
			}
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return adjustCounter(tx, postID, "comment_count", 1)
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return &comment, nil
}

// RemoveComment deactivates a comment written by accountID.
func (s *ContentService) RemoveComment(commentID, accountID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&comment, commentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		if err != nil {
			return err
		}
		if comment.AccountID != accountID {
			return ErrNotOwner
		}
		if !comment.IsActive {
			return ErrCommentNotFound
		}
		if err := tx.Model(&models.Comment{}).Where("id = ?", comment.ID).Update("is_active", false).Error; err != nil {
			return err
		}
		return adjustCounter(tx, comment.PostID, "comment_count", -1)
	})
	return apperrors.Storage(err)
}

// Like records a like and returns the post's new like count.
func (s *ContentService) Like(postID, accountID uint) (int, error) {
	var count int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadPublisher(tx, accountID); err != nil {
			return err
		}
		if _, err := lockInteractable(tx, postID); err != nil {
			return err
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Like{PostID: postID, AccountID: accountID, CreatedAt: s.now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyLiked
		}
		if err := adjustCounter(tx, postID, "like_count", 1); err != nil {
			return err
		}
		c, err := readCounter(tx, postID, "like_count")
		count = c
		return err
	})
	if err != nil {
		return 0, apperrors.Storage(err)
	}
	return count, nil
}

// Unlike removes a like and returns the post's new like count.
func (s *ContentService) Unlike(postID, accountID uint) (int, error) {
	var count int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockPost(tx, postID); err != nil {
			return err
		}
		res := tx.Where("post_id = ? AND account_id = ?", postID, accountID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotLiked
		}
		if err := adjustCounter(tx, postID, "like_count", -1); err != nil {
			return err
		}
		c, err := readCounter(tx, postID, "like_count")
		count = c
		return err
	})
	if err != nil {
		return 0, apperrors.Storage(err)
	}
	return count, nil
}

// MarkRead records that accountID opened a visible post. Repeated reads are
// ignored.
func (s *ContentService) MarkRead(postID, accountID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.First(&post, postID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		if err != nil {
			return err
		}
		if !post.Visible() {
			return ErrPostUnavailable
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Read{PostID: postID, AccountID: accountID, CreatedAt: s.now()}).Error
	})
	return apperrors.Storage(err)
}

// Feed returns visible posts, newest first.
func (s *ContentService) Feed(classroomID uint, page Page) ([]models.Post, int64, error) {
	query := s.db.Model(&models.Post{}).Where("is_active = ? AND is_censored = ?", true, false)
	if classroomID != 0 {
		query = query.Where("classroom_id = ?", classroomID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Storage(err)
	}
	var posts []models.Post
	err := query.Scopes(Paginate(page)).
		Order("published_at DESC").Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}
	return posts, total, nil
}

func (s *ContentService) screen(parts ...string) error {
	for _, text := range parts {
		if ok, reason := s.filter.Check(text); !ok {
			return apperrors.New(apperrors.ErrInvalidArgument, ErrContentBlocked.Code, RejectionMessage(reason))
		}
	}
	return nil
}

// loadPublisher returns the account if it may create content.
func loadPublisher(tx *gorm.DB, accountID uint) (*models.Account, error) {
	var account models.Account
	err := tx.First(&account, accountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	if !account.CanPublish() {
		return nil, ErrAccountRestricted
	}
	return &account, nil
}

func lockInteractable(tx *gorm.DB, postID uint) (*models.Post, error) {
	post, err := lockPost(tx, postID)
	if err != nil {
		return nil, err
	}
	if !post.Visible() {
		return nil, ErrPostUnavailable
	}
	return post, nil
}

func adjustCounter(tx *gorm.DB, postID uint, column string, delta int) error {
	query := tx.Model(&models.Post{}).Where("id = ?", postID)
	if delta < 0 {
		query = query.Where(column+" >= ?", -delta)
	}
	return query.UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

func readCounter(tx *gorm.DB, postID uint, column string) (int, error) {
	var post models.Post
	if err := tx.Select("id", column).First(&post, postID).Error; err != nil {
		return 0, err
	}
	if column == "like_count" {
		return post.LikeCount, nil
	}
	return post.CommentCount, nil
}
