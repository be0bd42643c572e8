package model

import "time"

type Game struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Platform       string    `json:"platform"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes"`
	Rating         *int      `json:"rating"`
	HoursPlayed    *float64  `json:"hours_played"`
	SteamAppID     *int64    `json:"steam_app_id"`
	CoverURL       string    `json:"cover_url"`
	CompletionDate string    `json:"completion_date"` // YYYY-MM-DD, empty if not completed
	IsFavorite     bool      `json:"is_favorite"`
	CreatedAt      time.Time `json:"created_at"`
	Tags           []string  `json:"tags"`

	// Derived achievement progress, populated on list/get.
	UnlockedAchievements int `json:"unlocked_achievements"`
	TotalAchievements    int `json:"total_achievements"`
}

// Hours returns the played hours with absent treated as zero.
func (g *Game) Hours() float64 {
	if g.HoursPlayed == nil {
		return 0
	}
	return *g.HoursPlayed
}

// RatingValue returns the rating with absent treated as zero.
func (g *Game) RatingValue() int {
	if g.Rating == nil {
		return 0
	}
	return *g.Rating
}

// CompletionPercent returns the unlocked/total achievement percentage,
// zero when the game has no achievements.
func (g *Game) CompletionPercent() float64 {
	if g.TotalAchievements == 0 {
		return 0
	}
	return float64(g.UnlockedAchievements) / float64(g.TotalAchievements) * 100
}
