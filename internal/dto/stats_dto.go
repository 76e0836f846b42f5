package dto

type DashboardResponse struct {
	Basics           DashboardBasics    `json:"basics"`
	WeeklyPosts      []DayCount         `json:"weekly_posts"`
	TopClassrooms    []ClassroomMembers `json:"top_classrooms"`
	PostsByClassroom []NamedValue       `json:"posts_by_classroom"`
	RecentAlerts     []Alert            `json:"recent_alerts"`
}

type DashboardBasics struct {
	TotalAccounts    int64 `json:"total_accounts"`
	ActiveAccounts   int64 `json:"active_accounts"`
	PostsToday       int64 `json:"posts_today"`
	PendingContent   int64 `json:"pending_content"`
	TotalClassrooms  int64 `json:"total_classrooms"`
	ActiveClassrooms int64 `json:"active_classrooms"`
}

type DayCount struct {
	Day   string `json:"day"`
	Date  string `json:"date"`
	Posts int64  `json:"posts"`
}

type ClassroomMembers struct {
	Title      string `json:"title"`
	AccessCode string `json:"access_code"`
	Members    int64  `json:"members"`
}

type NamedValue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type Alert struct {
	ID      int    `json:"id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Window  string `json:"window"`
}

type StatsResponse struct {
	PeriodDays int             `json:"period_days"`
	Content    ContentStats    `json:"content"`
	Engagement EngagementStats `json:"engagement"`
}

type ContentStats struct {
	TotalPosts  int64   `json:"total_posts"`
	ActivePosts int64   `json:"active_posts"`
	PeriodPosts int64   `json:"period_posts"`
	GrowthRate  float64 `json:"growth_rate"`
}

type EngagementStats struct {
	TotalLikes             int64   `json:"total_likes"`
	TotalComments          int64   `json:"total_comments"`
	TotalReads             int64   `json:"total_reads"`
	AverageLikesPerPost    float64 `json:"average_likes_per_post"`
	AverageCommentsPerPost float64 `json:"average_comments_per_post"`
}
