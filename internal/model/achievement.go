package model

type Achievement struct {
	ID          int64  `json:"id"`
	GameID      int64  `json:"game_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // unlock date, YYYY-MM-DD, empty if unknown
	Unlocked    bool   `json:"unlocked"`
	IconURL     string `json:"icon_url"`
}
