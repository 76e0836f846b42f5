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

func TestCreateProfessorIsAudited(t *testing.T) {
	db := testutil.OpenDB(t)
	audit := services.NewAuditService(db)
	svc := services.NewAccountService(db, audit)
	admin := testutil.CreateAccount(t, db, models.RoleAdministrator)

	created, err := svc.CreateProfessor(admin.ID, &dto.CreateAccountRequest{
		Email:     "  Maria.Lopez@TeckBook.test ",
		Password:  "s3cure-pass",
		FirstName: "Maria",
		LastName:  "Lopez",
	})
	require.NoError(t, err)
	assert.Equal(t, "maria.lopez@teckbook.test", created.Email)
	assert.Equal(t, models.RoleProfessor, created.Role)
	assert.True(t, created.IsActive)

	history, err := svc.History(created.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.AuditCreateProfessor, history[0].Action)
	assert.Equal(t, admin.ID, history[0].AdminID)

	_, err = svc.CreateProfessor(admin.ID, &dto.CreateAccountRequest{
		Email: "maria.lopez@teckbook.test", Password: "another-pass", FirstName: "M",
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	_, err = svc.CreateProfessor(admin.ID, &dto.CreateAccountRequest{
		Email: "short@teckbook.test", Password: "short", FirstName: "S",
	})
	assert.ErrorIs(t, err, services.ErrWeakPassword)

	_, err = svc.CreateProfessor(created.ID, &dto.CreateAccountRequest{
		Email: "p2@teckbook.test", Password: "long-enough", FirstName: "P",
	})
	assert.ErrorIs(t, err, services.ErrActorNotAdmin)
}

func TestListAccountsFilters(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := services.NewAccountService(db, services.NewAuditService(db))
	testutil.CreateAccount(t, db, models.RoleAdministrator)
	testutil.CreateAccount(t, db, models.RoleStudent, withStrikes(2), func(a *models.Account) { a.FirstName = "Lucia" })
	testutil.CreateAccount(t, db, models.RoleStudent, func(a *models.Account) { a.IsActive = false })
	testutil.CreateAccount(t, db, models.RoleProfessor)

	students, total, err := svc.List(services.AccountFilter{Role: models.RoleStudent}, services.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, students, 2)

	active := true
	_, total, err = svc.List(services.AccountFilter{Active: &active}, services.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	striked, _, err := svc.List(services.AccountFilter{Strikes: "with"}, services.Page{})
	require.NoError(t, err)
	require.Len(t, striked, 1)
	assert.Equal(t, 2, striked[0].StrikeCount)

	exact, _, err := svc.List(services.AccountFilter{Strikes: "2"}, services.Page{})
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, "Lucia", exact[0].FirstName)

	none, total, err := svc.List(services.AccountFilter{Strikes: "1"}, services.Page{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)

	_, _, err = svc.List(services.AccountFilter{Strikes: "-1"}, services.Page{})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	_, _, err = svc.List(services.AccountFilter{Strikes: "some"}, services.Page{})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	found, _, err := svc.List(services.AccountFilter{Search: "luc"}, services.Page{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Lucia", found[0].FirstName)

	_, _, err = svc.List(services.AccountFilter{Role: "JANITOR"}, services.Page{})
	assert.ErrorIs(t, err, services.ErrInvalidRole)

	_, err = svc.Get(98765)
	assert.ErrorIs(t, err, services.ErrAccountNotFound)
}
