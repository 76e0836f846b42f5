package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/teckbook/teckbook-backend/internal/apperrors"
	"github.com/teckbook/teckbook-backend/internal/config"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
	now func() time.Time
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
		now: time.Now,
	}
}

// Login authenticates any active account.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	account, err := s.authenticate(req)
	if err != nil {
		return nil, err
	}
	return s.issue(account)
}

// AdminLogin authenticates an account and requires the administrator role.
func (s *AuthService) AdminLogin(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	account, err := s.authenticate(req)
	if err != nil {
		return nil, err
	}
	if !account.Role.CanModerate() {
		slog.Warn("non-admin attempted admin login", "account_id", account.ID)
		return nil, ErrAdminOnly
	}
	return s.issue(account)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var account models.Account
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var stored models.RefreshToken
		err := tx.Where("token_hash = ? AND revoked = ?", tokenHash, false).First(&stored).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		if err != nil {
			return err
		}

		res := tx.Model(&models.RefreshToken{}).
			Where("id = ? AND revoked = ?", stored.ID, false).
			Update("revoked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 || s.now().After(stored.ExpiresAt) {
			return ErrInvalidToken
		}

		err = tx.First(&account, stored.AccountID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		if err != nil {
			return err
		}
		if !account.IsActive {
			return ErrAccountRestricted
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return s.issue(&account)
}

// Logout revokes a refresh token. Unknown tokens are ignored.
func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	err := s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hashToken(req.RefreshToken)).
		Update("revoked", true).Error
	return apperrors.Storage(err)
}

// HashPassword hashes a plaintext password, enforcing the minimum length.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) authenticate(req *dto.LoginRequest) (*models.Account, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	var account models.Account
	if err := s.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperrors.Storage(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, ErrAccountRestricted
	}

	now := s.now().UTC()
	if err := s.db.Model(&account).Update("last_login_at", now).Error; err != nil {
		slog.Warn("failed to record last login", "account_id", account.ID, "error", err)
	}
	account.LastLoginAt = &now
	return &account, nil
}

func (s *AuthService) issue(account *models.Account) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(account)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(account)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:        account.ID,
			Email:     account.Email,
			FirstName: account.FirstName,
			LastName:  account.LastName,
			Role:      account.Role,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(account *models.Account) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(account.ID), 10),
		"email": account.Email,
		"role":  string(account.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(account *models.Account) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.RefreshToken{
		AccountID: account.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: s.now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", apperrors.Storage(fmt.Errorf("failed to store refresh token: %w", err))
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
