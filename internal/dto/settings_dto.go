package dto

import "github.com/teckbook/teckbook-backend/internal/models"

type SetSettingRequest struct {
	Value       string             `json:"value"`
	Type        models.SettingType `json:"type"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Public      bool               `json:"public"`
}
