package services_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teckbook/teckbook-backend/internal/apperrors"
	"github.com/teckbook/teckbook-backend/internal/config"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/models"
	"github.com/teckbook/teckbook-backend/internal/services"
	"github.com/teckbook/teckbook-backend/internal/testutil"
)

var testConfig = &config.Config{
	JWTSecret:        "test-secret",
	JWTAccessExpiry:  15 * time.Minute,
	JWTRefreshExpiry: time.Hour,
}

func TestLoginIssuesClaims(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := services.NewAuthService(db, testConfig)
	professor := testutil.CreateAccount(t, db, models.RoleProfessor)

	resp, err := svc.Login(&dto.LoginRequest{Email: professor.Email, Password: testutil.Password})
	require.NoError(t, err)
	assert.Equal(t, professor.ID, resp.User.ID)
	assert.Equal(t, models.RoleProfessor, resp.User.Role)
	assert.NotEmpty(t, resp.RefreshToken)

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte(testConfig.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "PROFESSOR", claims["role"])
	assert.Equal(t, professor.Email, claims["email"])
	assert.NotEmpty(t, claims["sub"])

	assert.NotNil(t, testutil.Reload(t, db, professor.ID).LastLoginAt)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := services.NewAuthService(db, testConfig)
	student := testutil.CreateAccount(t, db, models.RoleStudent)
	inactive := testutil.CreateAccount(t, db, models.RoleStudent, func(a *models.Account) { a.IsActive = false })

	_, err := svc.Login(&dto.LoginRequest{Email: student.Email, Password: "wrong-password"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@teckbook.test", Password: testutil.Password})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: inactive.Email, Password: testutil.Password})
	assert.ErrorIs(t, err, services.ErrAccountRestricted)
}

func TestAdminLoginRequiresAdministrator(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := services.NewAuthService(db, testConfig)
	admin := testutil.CreateAccount(t, db, models.RoleAdministrator)
	professor := testutil.CreateAccount(t, db, models.RoleProfessor)

	_, err := svc.AdminLogin(&dto.LoginRequest{Email: admin.Email, Password: testutil.Password})
	require.NoError(t, err)

	_, err = svc.AdminLogin(&dto.LoginRequest{Email: professor.Email, Password: testutil.Password})
	assert.ErrorIs(t, err, services.ErrAdminOnly)
}

func TestRefreshRotatesTokens(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := services.NewAuthService(db, testConfig)
	student := testutil.CreateAccount(t, db, models.RoleStudent)

	first, err := svc.Login(&dto.LoginRequest{Email: student.Email, Password: testutil.Password})
	require.NoError(t, err)

	second, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: second.RefreshToken}))
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: second.RefreshToken})
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestRefreshReportsStorageFaults(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := services.NewAuthService(db, testConfig)
	student := testutil.CreateAccount(t, db, models.RoleStudent)

	resp, err := svc.Login(&dto.LoginRequest{Email: student.Email, Password: testutil.Password})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(&models.RefreshToken{}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.NotErrorIs(t, err, services.ErrInvalidToken)
}
