package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/models"
	"github.com/teckbook/teckbook-backend/internal/services"
	"github.com/teckbook/teckbook-backend/internal/testutil"
)

func TestSettingsLifecycle(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := services.NewSettingsService(db)
	require.NoError(t, svc.Seed())
	require.NoError(t, svc.Seed())

	public, err := svc.Public()
	require.NoError(t, err)
	assert.Equal(t, "TeckBook", public["platform_name"])
	assert.Equal(t, false, public["maintenance_mode"])
	assert.EqualValues(t, 5000, public["max_post_length"])
	assert.NotContains(t, public, "registration_open")

	_, err = svc.Set("max_post_length", &dto.SetSettingRequest{Value: "lots", Type: models.SettingInt})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	updated, err := svc.Set("max_post_length", &dto.SetSettingRequest{
		Value: "8000", Type: models.SettingInt, Category: "content", Public: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "8000", updated.Value)

	_, err = svc.Set("grading.scale", &dto.SetSettingRequest{Value: `{"max": 10}`, Type: models.SettingJSON, Public: true})
	require.NoError(t, err)

	public, err = svc.Public()
	require.NoError(t, err)
	assert.EqualValues(t, 8000, public["max_post_length"])
	assert.Equal(t, map[string]interface{}{"max": float64(10)}, public["grading.scale"])

	require.NoError(t, svc.Delete("grading.scale"))
	assert.ErrorIs(t, svc.Delete("grading.scale"), services.ErrSettingNotFound)

	_, err = svc.Set("Bad Key", &dto.SetSettingRequest{Value: "x"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestDecodeSetting(t *testing.T) {
	v, err := services.DecodeSetting(models.SettingDecimal, "3.75")
	require.NoError(t, err)
	assert.Equal(t, 3.75, v)

	v, err = services.DecodeSetting(models.SettingBool, "true")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = services.DecodeSetting(models.SettingJSON, "{broken")
	assert.Error(t, err)
}
