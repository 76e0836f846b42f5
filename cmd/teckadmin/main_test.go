package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teckbook/teckbook-backend/internal/config"
	"github.com/teckbook/teckbook-backend/internal/models"
	"github.com/teckbook/teckbook-backend/internal/testutil"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

type cliHarness struct {
	path  string
	opens int
	out   bytes.Buffer
	app   *cli.App
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	h := &cliHarness{path: filepath.Join(t.TempDir(), "teckadmin.sqlite")}
	h.app = newApp(func() (*config.Config, *gorm.DB, error) {
		h.opens++
		return &config.Config{LogRetentionDays: 30}, testutil.OpenFile(t, h.path), nil
	})
	h.app.Writer = &h.out
	h.app.ErrWriter = &h.out
	h.app.ExitErrHandler = func(*cli.Context, error) {}
	return h
}

func (h *cliHarness) run(args ...string) error {
	return h.app.Run(append([]string{"teckadmin"}, args...))
}

func TestCreateAccountRejectsAdministratorRole(t *testing.T) {
	h := newCLIHarness(t)

	err := h.run("create-account", "--role", "ADMINISTRATOR",
		"--email", "root@teckbook.test", "--password", "long-enough", "--first-name", "Root")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role must be STUDENT or PROFESSOR")
	assert.Zero(t, h.opens)
}

func TestCreateAccountAndAdmin(t *testing.T) {
	h := newCLIHarness(t)

	require.NoError(t, h.run("create-account", "--role", "professor",
		"--email", "Ana@TeckBook.test", "--password", "long-enough", "--first-name", "Ana"))
	require.NoError(t, h.run("create-admin",
		"--email", "root@teckbook.test", "--password", "long-enough", "--first-name", "Root"))
	assert.Contains(t, h.out.String(), "created PROFESSOR account")
	assert.Contains(t, h.out.String(), "created ADMINISTRATOR account")

	err := h.run("create-admin",
		"--email", "root@teckbook.test", "--password", "long-enough", "--first-name", "Root")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already registered")

	db := testutil.OpenFile(t, h.path)
	var accounts []models.Account
	require.NoError(t, db.Order("id").Find(&accounts).Error)
	require.Len(t, accounts, 2)
	assert.Equal(t, "ana@teckbook.test", accounts[0].Email)
	assert.Equal(t, models.RoleProfessor, accounts[0].Role)
	assert.Equal(t, models.RoleAdministrator, accounts[1].Role)
	assert.True(t, accounts[1].IsActive)
}

func TestMigrateSeedsSettings(t *testing.T) {
	h := newCLIHarness(t)

	require.NoError(t, h.run("migrate"))
	assert.Contains(t, h.out.String(), "migrations applied")

	db := testutil.OpenFile(t, h.path)
	var count int64
	require.NoError(t, db.Model(&models.SystemSetting{}).Count(&count).Error)
	assert.Positive(t, count)
}

func TestSweepLogsUsesDaysFlag(t *testing.T) {
	h := newCLIHarness(t)
	db := testutil.OpenFile(t, h.path)
	require.NoError(t, db.Create(&models.SystemLog{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC().AddDate(0, 0, -10),
		Level:     "ERROR",
		Message:   "stale",
	}).Error)

	require.NoError(t, h.run("sweep-logs"))
	assert.Contains(t, h.out.String(), "deleted 0 log rows")

	require.NoError(t, h.run("sweep-logs", "--days", "5"))
	assert.Contains(t, h.out.String(), "deleted 1 log rows")
}
