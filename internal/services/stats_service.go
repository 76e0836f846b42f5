package services

import (
	"fmt"
	"math"
	"time"

	"github.com/teckbook/teckbook-backend/internal/apperrors"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultStatsPeriod = 30
	MaxStatsPeriod     = 365
)

// StatsService computes read-only aggregates for the admin dashboard.
type StatsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *StatsService) Dashboard() (*dto.DashboardResponse, error) {
	now := s.now()
	today := startOfDay(now)

	resp := &dto.DashboardResponse{}
	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&resp.Basics.TotalAccounts, s.db.Model(&models.Account{})},
		{&resp.Basics.ActiveAccounts, s.db.Model(&models.Account{}).Where("is_active = ?", true)},
		{&resp.Basics.PostsToday, s.db.Model(&models.Post{}).Where("published_at >= ?", today)},
		{&resp.Basics.PendingContent, s.db.Model(&models.Post{}).
			Where("is_active = ? AND published_at >= ?", true, now.Add(-24*time.Hour))},
		{&resp.Basics.TotalClassrooms, s.db.Model(&models.Classroom{})},
		{&resp.Basics.ActiveClassrooms, s.db.Model(&models.Classroom{}).Where("state = ?", models.ClassroomActive)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, apperrors.Storage(err)
		}
	}

	weekly, err := s.weeklyPosts(today)
	if err != nil {
		return nil, err
	}
	resp.WeeklyPosts = weekly

	err = s.db.Table("classrooms").
		Select("classrooms.title AS title, classrooms.access_code AS access_code, COUNT(classroom_members.id) AS members").
		Joins("JOIN classroom_members ON classroom_members.classroom_id = classrooms.id AND classroom_members.state = ?", models.MembershipActive).
		Group("classrooms.id, classrooms.title, classrooms.access_code").
		Order("members DESC").Order("classrooms.id").
		Limit(5).
		Scan(&resp.TopClassrooms).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	err = s.db.Table("classrooms").
		Select("classrooms.title AS name, COUNT(posts.id) AS value").
		Joins("JOIN posts ON posts.classroom_id = classrooms.id AND posts.is_active = ? AND posts.is_censored = ?", true, false).
		Group("classrooms.id, classrooms.title").
		Order("value DESC").Order("classrooms.id").
		Limit(6).
		Scan(&resp.PostsByClassroom).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	alerts, err := s.alerts(now)
	if err != nil {
		return nil, err
	}
	resp.RecentAlerts = alerts
	return resp, nil
}

// Stats summarises content and engagement. period is in days; zero selects
// DefaultStatsPeriod.
func (s *StatsService) Stats(period int) (*dto.StatsResponse, error) {
	if period == 0 {
		period = DefaultStatsPeriod
	}
	if period < 1 || period > MaxStatsPeriod {
		return nil, ErrInvalidInput
	}
	since := s.now().AddDate(0, 0, -period)

	resp := &dto.StatsResponse{PeriodDays: period}
	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&resp.Content.TotalPosts, s.db.Model(&models.Post{})},
		{&resp.Content.ActivePosts, s.db.Model(&models.Post{}).Where("is_active = ? AND is_censored = ?", true, false)},
		{&resp.Content.PeriodPosts, s.db.Model(&models.Post{}).Where("published_at >= ?", since)},
		{&resp.Engagement.TotalLikes, s.db.Model(&models.Like{})},
		{&resp.Engagement.TotalComments, s.db.Model(&models.Comment{}).Where("is_active = ?", true)},
		{&resp.Engagement.TotalReads, s.db.Model(&models.Read{})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, apperrors.Storage(err)
		}
	}

	resp.Content.GrowthRate = round2(float64(resp.Content.PeriodPosts) / float64(period))
	if resp.Content.TotalPosts > 0 {
		total := float64(resp.Content.TotalPosts)
		resp.Engagement.AverageLikesPerPost = round2(float64(resp.Engagement.TotalLikes) / total)
		resp.Engagement.AverageCommentsPerPost = round2(float64(resp.Engagement.TotalComments) / total)
	}
	return resp, nil
}

// weeklyPosts buckets the last seven days of posts by UTC calendar day.
func (s *StatsService) weeklyPosts(today time.Time) ([]dto.DayCount, error) {
	start := today.AddDate(0, 0, -6)

	var published []time.Time
	err := s.db.Model(&models.Post{}).
		Where("published_at >= ?", start).
		Pluck("published_at", &published).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	days := make([]dto.DayCount, 7)
	for i := range days {
		day := start.AddDate(0, 0, i)
		days[i] = dto.DayCount{Day: day.Weekday().String()[:3], Date: day.Format("2006-01-02")}
	}
	for _, t := range published {
		idx := int(startOfDay(t.UTC()).Sub(start).Hours() / 24)
		if idx >= 0 && idx < len(days) {
			days[idx].Posts++
		}
	}
	return days, nil
}

func (s *StatsService) alerts(now time.Time) ([]dto.Alert, error) {
	var censored, suspended, atRisk int64
	if err := s.db.Model(&models.Post{}).
		Where("is_censored = ? AND censored_at >= ?", true, now.Add(-24*time.Hour)).
		Count(&censored).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	if err := s.db.Model(&models.Account{}).Where("is_suspended = ?", true).Count(&suspended).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	if err := s.db.Model(&models.Account{}).
		Where("is_suspended = ? AND strike_count = ?", false, StrikeThreshold-1).
		Count(&atRisk).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	alerts := []dto.Alert{}
	if censored > 0 {
		alerts = append(alerts, dto.Alert{Kind: "censorship", Message: fmt.Sprintf("%d posts censored", censored), Window: "24h"})
	}
	if suspended > 0 {
		alerts = append(alerts, dto.Alert{Kind: "suspension", Message: fmt.Sprintf("%d accounts suspended", suspended), Window: "current"})
	}
	if atRisk > 0 {
		alerts = append(alerts, dto.Alert{Kind: "strikes", Message: fmt.Sprintf("%d accounts one strike from suspension", atRisk), Window: "current"})
	}
	for i := range alerts {
		alerts[i].ID = i + 1
	}
	return alerts, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
