package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teckbook/teckbook-backend/internal/apperrors"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/models"
	"github.com/teckbook/teckbook-backend/internal/services"
	"github.com/teckbook/teckbook-backend/internal/testutil"
	"gorm.io/gorm"
)

func newContentService(t *testing.T) (*gorm.DB, *services.ContentService) {
	t.Helper()
	db := testutil.OpenDB(t)
	return db, services.NewContentService(db, services.NewContentFilter())
}

func TestCreatePost(t *testing.T) {
	db, svc := newContentService(t)
	professor := testutil.CreateAccount(t, db, models.RoleProfessor)
	classroom := testutil.CreateClassroom(t, db, professor.ID, "Chemistry")

	post, err := svc.CreatePost(professor.ID, &dto.CreatePostRequest{
		Title:       "Lab safety",
		Body:        "Goggles are mandatory from today.",
		ClassroomID: &classroom.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PostTypeAnnouncement, post.Type)
	assert.True(t, post.IsActive)
	assert.True(t, post.AllowComments)
	assert.False(t, post.IsCensored)

	missing := uint(999)
	_, err = svc.CreatePost(professor.ID, &dto.CreatePostRequest{Title: "x", Body: "y", ClassroomID: &missing})
	assert.ErrorIs(t, err, services.ErrClassroomNotFound)

	_, err = svc.CreatePost(professor.ID, &dto.CreatePostRequest{Title: "Notice", Body: "this is bullshit"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Equal(t, services.ErrContentBlocked.Code, apperrors.Code(err))

	_, err = svc.CreatePost(professor.ID, &dto.CreatePostRequest{Title: " ", Body: "body"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestSuspendedAccountsCannotPublish(t *testing.T) {
	db, svc := newContentService(t)
	student := testutil.CreateAccount(t, db, models.RoleStudent, func(a *models.Account) { a.IsSuspended = true })
	other := testutil.CreateAccount(t, db, models.RoleStudent)
	post := testutil.CreatePost(t, db, other.ID)

	_, err := svc.CreatePost(student.ID, &dto.CreatePostRequest{Title: "Hi", Body: "Hello class"})
	assert.ErrorIs(t, err, services.ErrAccountRestricted)

	_, err = svc.AddComment(post.ID, student.ID, &dto.CreateCommentRequest{Body: "hello"})
	assert.ErrorIs(t, err, services.ErrAccountRestricted)

	_, err = svc.Like(post.ID, student.ID)
	assert.ErrorIs(t, err, services.ErrAccountRestricted)
}

func TestCommentCounters(t *testing.T) {
	db, svc := newContentService(t)
	author := testutil.CreateAccount(t, db, models.RoleProfessor)
	student := testutil.CreateAccount(t, db, models.RoleStudent)
	post := testutil.CreatePost(t, db, author.ID)

	first, err := svc.AddComment(post.ID, student.ID, &dto.CreateCommentRequest{Body: "When is the deadline?"})
	require.NoError(t, err)
	reply, err := svc.AddComment(post.ID, author.ID, &dto.CreateCommentRequest{Body: "Friday.", ParentID: &first.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, testutil.ReloadPost(t, db, post.ID).CommentCount)

	assert.ErrorIs(t, svc.RemoveComment(reply.ID, student.ID), services.ErrNotOwner)
	require.NoError(t, svc.RemoveComment(reply.ID, author.ID))
	assert.ErrorIs(t, svc.RemoveComment(reply.ID, author.ID), services.ErrCommentNotFound)
	assert.Equal(t, 1, testutil.ReloadPost(t, db, post.ID).CommentCount)

	bogusParent := uint(12345)
	_, err = svc.AddComment(post.ID, student.ID, &dto.CreateCommentRequest{Body: "orphan", ParentID: &bogusParent})
	assert.ErrorIs(t, err, services.ErrCommentNotFound)
}

func TestCommentsDisabled(t *testing.T) {
	db, svc := newContentService(t)
	author := testutil.CreateAccount(t, db, models.RoleProfessor)
	post := testutil.CreatePost(t, db, author.ID, func(p *models.Post) { p.AllowComments = false })

	_, err := svc.AddComment(post.ID, author.ID, &dto.CreateCommentRequest{Body: "note"})
	assert.ErrorIs(t, err, services.ErrCommentsDisabled)
	assert.Zero(t, testutil.ReloadPost(t, db, post.ID).CommentCount)
}

func TestLikeCounters(t *testing.T) {
	db, svc := newContentService(t)
	author := testutil.CreateAccount(t, db, models.RoleProfessor)
	student := testutil.CreateAccount(t, db, models.RoleStudent)
	post := testutil.CreatePost(t, db, author.ID)

	count, err := svc.Like(post.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svc.Like(post.ID, student.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyLiked)

	count, err = svc.Like(post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = svc.Unlike(post.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svc.Unlike(post.ID, student.ID)
	assert.ErrorIs(t, err, services.ErrNotLiked)
	assert.Equal(t, 1, testutil.ReloadPost(t, db, post.ID).LikeCount)
}

func TestCensoredPostsRejectInteractions(t *testing.T) {
	db, svc := newContentService(t)
	author := testutil.CreateAccount(t, db, models.RoleStudent)
	reader := testutil.CreateAccount(t, db, models.RoleStudent)
	reason := "spam"
	post := testutil.CreatePost(t, db, author.ID, func(p *models.Post) {
		p.IsCensored = true
		p.CensorReason = &reason
	})

	_, err := svc.Like(post.ID, reader.ID)
	assert.ErrorIs(t, err, services.ErrPostUnavailable)
	_, err = svc.AddComment(post.ID, reader.ID, &dto.CreateCommentRequest{Body: "hi"})
	assert.ErrorIs(t, err, services.ErrPostUnavailable)
	assert.ErrorIs(t, svc.MarkRead(post.ID, reader.ID), services.ErrPostUnavailable)

	feed, total, err := svc.Feed(0, services.Page{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, feed)
}

func TestAuthorEditsKeepCensorship(t *testing.T) {
	db, svc := newContentService(t)
	author := testutil.CreateAccount(t, db, models.RoleStudent)
	other := testutil.CreateAccount(t, db, models.RoleStudent)
	reason := "misleading"
	post := testutil.CreatePost(t, db, author.ID, func(p *models.Post) {
		p.IsCensored = true
		p.CensorReason = &reason
	})

	title := "Corrected title"
	updated, err := svc.UpdatePost(post.ID, author.ID, &dto.UpdatePostRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Corrected title", updated.Title)
	assert.True(t, updated.IsCensored)
	assert.NotNil(t, updated.EditedAt)

	_, err = svc.UpdatePost(post.ID, other.ID, &dto.UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, services.ErrNotOwner)

	assert.ErrorIs(t, svc.DeletePost(post.ID, other.ID), services.ErrNotOwner)
	require.NoError(t, svc.DeletePost(post.ID, author.ID))
	assert.False(t, testutil.ReloadPost(t, db, post.ID).IsActive)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	db, svc := newContentService(t)
	author := testutil.CreateAccount(t, db, models.RoleProfessor)
	student := testutil.CreateAccount(t, db, models.RoleStudent)
	post := testutil.CreatePost(t, db, author.ID)

	require.NoError(t, svc.MarkRead(post.ID, student.ID))
	require.NoError(t, svc.MarkRead(post.ID, student.ID))

	var reads int64
	require.NoError(t, db.Model(&models.Read{}).Count(&reads).Error)
	assert.EqualValues(t, 1, reads)
}
