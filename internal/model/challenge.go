package model

import "time"

// Challenge is a self-imposed completionist goal for a game, distinct from
// platform achievements (e.g. "beat the game hitless").
type Challenge struct {
	ID             int64     `json:"id"`
	GameID         int64     `json:"game_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Difficulty     *int      `json:"difficulty"` // 1-100 when set
	TimeToComplete string    `json:"time_to_complete"`
	CompletionDate string    `json:"completion_date"`
	Notes          string    `json:"notes"`
	Completed      bool      `json:"completed"`
	CreatedAt      time.Time `json:"created_at"`
}

// ChallengeWithGame is a Challenge joined with its game's title for the
// cross-game challenge list.
type ChallengeWithGame struct {
	Challenge
	GameTitle string `json:"game_title"`
}
