package model

// DailySnapshot records the library-wide cumulative hours at the end of a day.
type DailySnapshot struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	TotalHours float64 `json:"total_hours"`
}

// GameSnapshot records one game's cumulative hours within a daily snapshot.
type GameSnapshot struct {
	Date        string  `json:"date"`
	GameID      int64   `json:"game_id"`
	GameTitle   string  `json:"game_title"`
	HoursPlayed float64 `json:"hours_played"`
	CoverURL    string  `json:"cover_url"`
}

// GameHoursDelta is one row of a day-over-day breakdown: how many hours a
// game gained between a day and the previous one.
type GameHoursDelta struct {
	GameID     int64   `json:"game_id"`
	GameTitle  string  `json:"game_title"`
	HoursAdded float64 `json:"hours_added"`
	TotalHours float64 `json:"total_hours"`
	CoverURL   string  `json:"cover_url"`
}
