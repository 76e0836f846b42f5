// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/teckbook/teckbook-backend/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB opens a migrated SQLite database in a per-test temp directory.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	return OpenFile(t, filepath.Join(t.TempDir(), "test.sqlite"))
}

// OpenFile opens and migrates the SQLite database at path. Several
// connections may share one file.
func OpenFile(t testing.TB, path string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
