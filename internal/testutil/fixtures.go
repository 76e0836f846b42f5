package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/teckbook/teckbook-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password is the plaintext password of every account created by CreateAccount.
const Password = "password123"

var passwordHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

// CreateAccount inserts an active account with the given role. Options run
// before the insert.
func CreateAccount(t testing.TB, db *gorm.DB, role models.Role, opts ...func(*models.Account)) *models.Account {
	t.Helper()

	account := &models.Account{
		Email:     strings.ToLower(string(role)) + "-" + uuid.NewString()[:8] + "@teckbook.test",
		Password:  passwordHash,
		FirstName: "Test",
		LastName:  string(role),
		Role:      role,
		IsActive:  true,
	}
	for _, opt := range opts {
		opt(account)
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatal(err)
	}
	return account
}

// CreatePost inserts a visible post written by authorID.
func CreatePost(t testing.TB, db *gorm.DB, authorID uint, opts ...func(*models.Post)) *models.Post {
	t.Helper()

	post := &models.Post{
		AuthorID:      authorID,
		Title:         "Exam schedule",
		Body:          "The midterm exam will take place next Monday.",
		Type:          models.PostTypeAnnouncement,
		AllowComments: true,
		IsActive:      true,
		PublishedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(post)
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatal(err)
	}
	return post
}

// CreateClassroom inserts an active classroom owned by professorID.
func CreateClassroom(t testing.TB, db *gorm.DB, professorID uint, title string) *models.Classroom {
	t.Helper()

	classroom := &models.Classroom{
		Title:       title,
		AccessCode:  strings.ToUpper(uuid.NewString()[:8]),
		ProfessorID: professorID,
		State:       models.ClassroomActive,
	}
	if err := db.Create(classroom).Error; err != nil {
		t.Fatal(err)
	}
	return classroom
}

// Reload re-reads an account from the database.
func Reload(t testing.TB, db *gorm.DB, id uint) *models.Account {
	t.Helper()

	var account models.Account
	if err := db.First(&account, id).Error; err != nil {
		t.Fatal(err)
	}
	return &account
}

// ReloadPost re-reads a post from the database.
func ReloadPost(t testing.TB, db *gorm.DB, id uint) *models.Post {
	t.Helper()

	var post models.Post
	if err := db.First(&post, id).Error; err != nil {
		t.Fatal(err)
	}
	return &post
}
