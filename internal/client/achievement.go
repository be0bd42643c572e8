package client

import (
	"fmt"
	"net/http"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

// AchievementParams carries the writable fields of an achievement. A nil
// Unlocked on create means earned; on import it means locked.
type AchievementParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Unlocked    *bool  `json:"unlocked"`
	IconURL     string `json:"icon_url"`
}

func (c *Client) ListAchievements(gameID int64) ([]model.Achievement, error) {
	var achievements []model.Achievement
	path := fmt.Sprintf("/api/games/%d/achievements", gameID)
	if err := c.do(http.MethodGet, path, nil, &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}

func (c *Client) CreateAchievement(gameID int64, p AchievementParams) (*model.Achievement, error) {
	var achievement model.Achievement
	path := fmt.Sprintf("/api/games/%d/achievements", gameID)
	if err := c.do(http.MethodPost, path, p, &achievement); err != nil {
		return nil, err
	}
	return &achievement, nil
}

// SetAchievementUnlocked flips an achievement between earned and locked. An
// empty date on unlock lets the server stamp today.
func (c *Client) SetAchievementUnlocked(gameID, achievementID int64, unlocked bool, date string) error {
	req := struct {
		Unlocked bool   `json:"unlocked"`
		Date     string `json:"date"`
	}{Unlocked: unlocked, Date: date}

	path := fmt.Sprintf("/api/games/%d/achievements/%d", gameID, achievementID)
	return c.do(http.MethodPut, path, req, nil)
}

func (c *Client) DeleteAchievement(gameID, achievementID int64) error {
	path := fmt.Sprintf("/api/games/%d/achievements/%d", gameID, achievementID)
	return c.do(http.MethodDelete, path, nil, nil)
}

// ImportAchievements replaces a game's achievement list wholesale and
// returns how many rows the server kept.
func (c *Client) ImportAchievements(gameID int64, achievements []AchievementParams) (int, error) {
	req := struct {
		Achievements []AchievementParams `json:"achievements"`
	}{Achievements: achievements}

	var resp struct {
		Imported int `json:"imported"`
	}
	path := fmt.Sprintf("/api/games/%d/achievements/import", gameID)
	if err := c.do(http.MethodPost, path, req, &resp); err != nil {
		return 0, err
	}
	return resp.Imported, nil
}
