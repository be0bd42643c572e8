package model

import "time"

// Top10Entry is one slot of the curated favorites ranking. Positions are
// dense 1..N with N <= 10.
type Top10Entry struct {
	Position  int       `json:"position"`
	GameID    int64     `json:"game_id"`
	Reason    string    `json:"reason"`
	GameTitle string    `json:"game_title"`
	CoverURL  string    `json:"cover_url"`
	UpdatedAt time.Time `json:"updated_at"`
}
