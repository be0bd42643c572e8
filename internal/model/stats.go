package model

// AchievementProgress summarizes one game's achievement completion for the
// stats dashboard.
type AchievementProgress struct {
	GameID               int64  `json:"id"`
	Title                string `json:"title"`
	UnlockedAchievements int    `json:"unlocked_achievements"`
	TotalAchievements    int    `json:"total_achievements"`
}

// RecentCompletion is a recently finished game for the stats dashboard.
type RecentCompletion struct {
	GameID         int64  `json:"id"`
	Title          string `json:"title"`
	CoverURL       string `json:"cover_url"`
	CompletionDate string `json:"completion_date"`
}

// Stats is the aggregate payload behind GET /api/stats.
type Stats struct {
	TotalGames           int                   `json:"total_games"`
	CompletedGames       int                   `json:"completed_games"`
	TotalHours           float64               `json:"total_hours"`
	AchievementsUnlocked int                   `json:"achievements_unlocked"`
	AchievementsTotal    int                   `json:"achievements_total"`
	AchievementProgress  []AchievementProgress `json:"achievement_progress"`
	StatusBreakdown      map[string]int        `json:"status_breakdown"`
	PlatformBreakdown    map[string]int        `json:"platform_breakdown"`
	RecentCompletions    []RecentCompletion    `json:"recent_completions"`
	DailyHistory         []DailySnapshot       `json:"daily_history"`
}
