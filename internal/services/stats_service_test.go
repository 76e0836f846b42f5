package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teckbook/teckbook-backend/internal/models"
	"github.com/teckbook/teckbook-backend/internal/services"
	"github.com/teckbook/teckbook-backend/internal/testutil"
)

func TestStats(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := services.NewStatsService(db)
	author := testutil.CreateAccount(t, db, models.RoleProfessor)
	reader := testutil.CreateAccount(t, db, models.RoleStudent)

	recent := testutil.CreatePost(t, db, author.ID)
	testutil.CreatePost(t, db, author.ID, func(p *models.Post) { p.PublishedAt = time.Now().UTC().AddDate(0, 0, -40) })
	testutil.CreatePost(t, db, author.ID, func(p *models.Post) { p.IsActive = false })
	require.NoError(t, db.Create(&models.Like{PostID: recent.ID, AccountID: reader.ID}).Error)

	stats, err := svc.Stats(0)
	require.NoError(t, err)
	assert.Equal(t, services.DefaultStatsPeriod, stats.PeriodDays)
	assert.EqualValues(t, 3, stats.Content.TotalPosts)
	assert.EqualValues(t, 2, stats.Content.ActivePosts)
	assert.EqualValues(t, 2, stats.Content.PeriodPosts)
	assert.Equal(t, 0.07, stats.Content.GrowthRate)
	assert.EqualValues(t, 1, stats.Engagement.TotalLikes)
	assert.Equal(t, 0.33, stats.Engagement.AverageLikesPerPost)

	_, err = svc.Stats(1000)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestDashboard(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := services.NewStatsService(db)
	professor := testutil.CreateAccount(t, db, models.RoleProfessor)
	student := testutil.CreateAccount(t, db, models.RoleStudent, withStrikes(services.StrikeThreshold-1))
	math := testutil.CreateClassroom(t, db, professor.ID, "Math")
	art := testutil.CreateClassroom(t, db, professor.ID, "Art")

	require.NoError(t, db.Create(&models.ClassroomMember{ClassroomID: math.ID, AccountID: student.ID, State: models.MembershipActive}).Error)
	require.NoError(t, db.Create(&models.ClassroomMember{ClassroomID: math.ID, AccountID: professor.ID, State: models.MembershipActive}).Error)
	require.NoError(t, db.Create(&models.ClassroomMember{ClassroomID: art.ID, AccountID: student.ID, State: models.MembershipPending}).Error)

	testutil.CreatePost(t, db, professor.ID, func(p *models.Post) { p.ClassroomID = &art.ID })
	testutil.CreatePost(t, db, professor.ID, func(p *models.Post) { p.ClassroomID = &art.ID })
	testutil.CreatePost(t, db, professor.ID, func(p *models.Post) { p.ClassroomID = &math.ID })

	dash, err := svc.Dashboard()
	require.NoError(t, err)
	assert.EqualValues(t, 2, dash.Basics.TotalAccounts)
	assert.EqualValues(t, 3, dash.Basics.PostsToday)
	assert.EqualValues(t, 2, dash.Basics.ActiveClassrooms)

	require.Len(t, dash.WeeklyPosts, 7)
	assert.EqualValues(t, 3, dash.WeeklyPosts[6].Posts)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), dash.WeeklyPosts[6].Date)

	require.Len(t, dash.TopClassrooms, 1)
	assert.Equal(t, "Math", dash.TopClassrooms[0].Title)
	assert.EqualValues(t, 2, dash.TopClassrooms[0].Members)

	require.Len(t, dash.PostsByClassroom, 2)
	assert.Equal(t, "Art", dash.PostsByClassroom[0].Name)
	assert.EqualValues(t, 2, dash.PostsByClassroom[0].Value)

	require.Len(t, dash.RecentAlerts, 1)
	assert.Equal(t, "strikes", dash.RecentAlerts[0].Kind)
	assert.Equal(t, 1, dash.RecentAlerts[0].ID)
}
