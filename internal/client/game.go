package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

// GameParams carries the writable fields of a game for create and update.
type GameParams struct {
	Title          string   `json:"title"`
	Platform       string   `json:"platform"`
	Status         string   `json:"status"`
	Notes          string   `json:"notes"`
	Rating         *int     `json:"rating"`
	HoursPlayed    *float64 `json:"hours_played"`
	SteamAppID     *int64   `json:"steam_app_id"`
	CoverURL       string   `json:"cover_url"`
	CompletionDate string   `json:"completion_date"`
	Tags           []string `json:"tags"`
}

func (c *Client) ListGames() ([]model.Game, error) {
	var games []model.Game
	if err := c.do(http.MethodGet, "/api/games", nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *Client) GetGame(id int64) (*model.Game, error) {
	var game model.Game
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/games/%d", id), nil, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (c *Client) CreateGame(p GameParams) (*model.Game, error) {
	var game model.Game
	if err := c.do(http.MethodPost, "/api/games", p, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (c *Client) UpdateGame(id int64, p GameParams) (*model.Game, error) {
	var game model.Game
	if err := c.do(http.MethodPut, fmt.Sprintf("/api/games/%d", id), p, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (c *Client) DeleteGame(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/games/%d", id), nil, nil)
}

// ToggleFavorite flips a game's favorite marker and returns the new value.
func (c *Client) ToggleFavorite(id int64) (bool, error) {
	var resp struct {
		IsFavorite bool `json:"is_favorite"`
	}
	if err := c.do(http.MethodPut, fmt.Sprintf("/api/games/%d/favorite", id), nil, &resp); err != nil {
		return false, err
	}
	return resp.IsFavorite, nil
}

// RandomGame picks a game matching the optional filters. When nothing
// matches, the error is an *APIError with status 404 and the server's
// explanation.
func (c *Client) RandomGame(status, platform string, maxHours *float64) (*model.Game, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if platform != "" {
		q.Set("platform", platform)
	}
	if maxHours != nil {
		q.Set("max_hours", strconv.FormatFloat(*maxHours, 'f', -1, 64))
	}
	path := "/api/random-game"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var game model.Game
	if err := c.do(http.MethodGet, path, nil, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// BatchResult reports how a bulk delete went, id by id.
type BatchResult struct {
	Deleted   int     `json:"deleted"`
	Failed    int     `json:"failed"`
	FailedIDs []int64 `json:"failed_ids"`
}

// BatchDelete removes several games in one request. Missing games count as
// failed rather than aborting the rest.
func (c *Client) BatchDelete(ids []int64) (*BatchResult, error) {
	req := struct {
		IDs []int64 `json:"ids"`
	}{IDs: ids}

	var result BatchResult
	if err := c.do(http.MethodPost, "/api/batch/delete", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
