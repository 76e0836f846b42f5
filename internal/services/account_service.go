package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/teckbook/teckbook-backend/internal/apperrors"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/models"
	"gorm.io/gorm"
)

// AccountFilter narrows the admin account listing.
type AccountFilter struct {
	Role    models.Role
	Active  *bool
	Strikes string // "with", "without", an exact count, or empty
	Search  string
}

type AccountService struct {
	db    *gorm.DB
	audit *AuditService
}

func NewAccountService(db *gorm.DB, audit *AuditService) *AccountService {
	return &AccountService{db: db, audit: audit}
}

func (s *AccountService) List(filter AccountFilter, page Page) ([]dto.AccountSummary, int64, error) {
	query := s.db.Model(&models.Account{})
	if filter.Role != "" {
		if !filter.Role.Valid() {
			return nil, 0, ErrInvalidRole
		}
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	switch filter.Strikes {
	case "":
	case "with":
		query = query.Where("strike_count > 0")
	case "without":
		query = query.Where("strike_count = 0")
	default:
		n, err := strconv.Atoi(filter.Strikes)
		if err != nil || n < 0 {
			return nil, 0, ErrInvalidInput
		}
		query = query.Where("strike_count = ?", n)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Storage(err)
	}

	var accounts []models.Account
	err := query.Scopes(Paginate(page)).
		Order("created_at DESC").Order("id DESC").
		Find(&accounts).Error
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}

	summaries := make([]dto.AccountSummary, len(accounts))
	for i := range accounts {
		summaries[i] = dto.NewAccountSummary(&accounts[i])
	}
	return summaries, total, nil
}

func (s *AccountService) Get(id uint) (*dto.AccountSummary, error) {
	account, err := s.Find(id)
	if err != nil {
		return nil, err
	}
	summary := dto.NewAccountSummary(account)
	return &summary, nil
}

// History returns every audit entry that targets the account, newest first.
func (s *AccountService) History(id uint) ([]models.AuditEntry, error) {
	if _, err := s.Find(id); err != nil {
		return nil, err
	}
	return s.audit.QueryByAccount(id)
}

// CreateProfessor registers a professor account on behalf of an administrator.
func (s *AccountService) CreateProfessor(adminID uint, req *dto.CreateAccountRequest) (*dto.AccountSummary, error) {
	var created models.Account
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadActor(tx, adminID); err != nil {
			return err
		}

		account, err := newAccount(tx, req, models.RoleProfessor)
		if err != nil {
			return err
		}
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		created = *account

		return s.audit.Append(tx, &models.AuditEntry{
			AdminID:         adminID,
			Action:          models.AuditCreateProfessor,
			TargetAccountID: &account.ID,
			Description:     fmt.Sprintf("Professor %s created", account.Email),
			CreatedAt:       time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	slog.Info("professor created", "action", models.AuditCreateProfessor, "account_id", created.ID, "admin_id", adminID)
	summary := dto.NewAccountSummary(&created)
	return &summary, nil
}

// Create registers an account with the given role without an acting
// administrator. It backs the operator CLI.
func (s *AccountService) Create(req *dto.CreateAccountRequest, role models.Role) (*dto.AccountSummary, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	var created models.Account
	err := s.db.Transaction(func(tx *gorm.DB) error {
		account, err := newAccount(tx, req, role)
		if err != nil {
			return err
		}
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		created = *account
		return nil
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	slog.Info("account created", "account_id", created.ID, "role", created.Role)
	summary := dto.NewAccountSummary(&created)
	return &summary, nil
}

// Find returns the stored account, or ErrAccountNotFound.
func (s *AccountService) Find(id uint) (*models.Account, error) {
	var account models.Account
	err := s.db.First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return &account, nil
}

func newAccount(tx *gorm.DB, req *dto.CreateAccountRequest, role models.Role) (*models.Account, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil || strings.TrimSpace(req.FirstName) == "" {
		return nil, ErrInvalidInput
	}

	var count int64
	if err := tx.Unscoped().Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return &models.Account{
		Email:     email,
		Password:  hash,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      role,
		IsActive:  true,
	}, nil
}
