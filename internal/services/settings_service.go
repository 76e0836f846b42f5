package services

import (
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/teckbook/teckbook-backend/internal/apperrors"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var settingKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_.]{0,99}$`)

// DefaultSettings are created by Seed when missing.
var DefaultSettings = []models.SystemSetting{
	{Key: "platform_name", Value: "TeckBook", Type: models.SettingText, Category: "general", Public: true},
	{Key: "maintenance_mode", Value: "false", Type: models.SettingBool, Category: "general", Public: true},
	{Key: "max_post_length", Value: "5000", Type: models.SettingInt, Category: "content", Public: true},
	{Key: "support_email", Value: "soporte@teckbook.local", Type: models.SettingText, Category: "contact", Public: true},
	{Key: "registration_open", Value: "true", Type: models.SettingBool, Category: "accounts", Public: false},
}

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Public returns every public setting keyed by name, with values decoded to
// their declared type.
func (s *SettingsService) Public() (map[string]interface{}, error) {
	var settings []models.SystemSetting
	if err := s.db.Where("public = ?", true).Order("key").Find(&settings).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	result := make(map[string]interface{}, len(settings))
	for _, setting := range settings {
		value, err := DecodeSetting(setting.Type, setting.Value)
		if err != nil {
			slog.Warn("stored setting does not match its type", "key", setting.Key, "type", setting.Type)
			value = setting.Value
		}
		result[setting.Key] = value
	}
	return result, nil
}

func (s *SettingsService) List(category string) ([]models.SystemSetting, error) {
	query := s.db.Order("category").Order("key")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var settings []models.SystemSetting
	if err := query.Find(&settings).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	return settings, nil
}

func (s *SettingsService) Get(key string) (*models.SystemSetting, error) {
	var setting models.SystemSetting
	err := s.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSettingNotFound
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return &setting, nil
}

// Set creates or replaces a setting after checking that the value parses as
// its declared type.
func (s *SettingsService) Set(key string, req *dto.SetSettingRequest) (*models.SystemSetting, error) {
	if !settingKeyPattern.MatchString(key) {
		return nil, ErrInvalidInput
	}
	settingType := req.Type
	if settingType == "" {
		settingType = models.SettingText
	}
	if !settingType.Valid() {
		return nil, ErrInvalidInput
	}
	if _, err := DecodeSetting(settingType, req.Value); err != nil {
		return nil, ErrInvalidInput
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "general"
	}

	setting := models.SystemSetting{
		Key:         key,
		Value:       req.Value,
		Description: req.Description,
		Type:        settingType,
		Category:    category,
		Public:      req.Public,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "type", "category", "public", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	slog.Info("setting updated", "key", key, "type", settingType)
	return s.Get(key)
}

func (s *SettingsService) Delete(key string) error {
	res := s.db.Where("key = ?", key).Delete(&models.SystemSetting{})
	if res.Error != nil {
		return apperrors.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSettingNotFound
	}
	return nil
}

// Seed inserts DefaultSettings that do not exist yet. Existing values are kept.
func (s *SettingsService) Seed() error {
	for _, def := range DefaultSettings {
		setting := def
		if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&setting).Error; err != nil {
			return apperrors.Storage(err)
		}
	}
	return nil
}

// DecodeSetting converts a stored string into the Go value for its type.
func DecodeSetting(t models.SettingType, raw string) (interface{}, error) {
	switch t {
	case models.SettingInt:
		return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	case models.SettingDecimal:
		return strconv.ParseFloat(strings.TrimSpace(raw), 64)
	case models.SettingBool:
		return strconv.ParseBool(strings.TrimSpace(raw))
	case models.SettingJSON:
		var value interface{}
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, err
		}
		return value, nil
	case models.SettingText:
		return raw, nil
	}
	return nil, ErrInvalidInput
}
