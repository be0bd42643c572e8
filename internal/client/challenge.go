package client

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

// ChallengeParams carries the writable fields of a completionist challenge.
type ChallengeParams struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Difficulty     *int   `json:"difficulty"`
	TimeToComplete string `json:"time_to_complete"`
	CompletionDate string `json:"completion_date"`
	Notes          string `json:"notes"`
	Completed      bool   `json:"completed"`
}

// ListChallenges returns one game's challenges, ordered by the given sort
// column when set.
func (c *Client) ListChallenges(gameID int64, sort string) ([]model.Challenge, error) {
	path := fmt.Sprintf("/api/games/%d/completionist", gameID)
	if sort != "" {
		path += "?sort=" + url.QueryEscape(sort)
	}

	var challenges []model.Challenge
	if err := c.do(http.MethodGet, path, nil, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// AllChallenges returns every challenge across the library joined with game
// titles. status narrows to "completed" or "in_progress" when set.
func (c *Client) AllChallenges(sort, status string) ([]model.ChallengeWithGame, error) {
	q := url.Values{}
	if sort != "" {
		q.Set("sort", sort)
	}
	if status != "" {
		q.Set("status", status)
	}
	path := "/api/completionist/all"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var challenges []model.ChallengeWithGame
	if err := c.do(http.MethodGet, path, nil, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

func (c *Client) CreateChallenge(gameID int64, p ChallengeParams) (*model.Challenge, error) {
	var challenge model.Challenge
	path := fmt.Sprintf("/api/games/%d/completionist", gameID)
	if err := c.do(http.MethodPost, path, p, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (c *Client) UpdateChallenge(gameID, challengeID int64, p ChallengeParams) error {
	path := fmt.Sprintf("/api/games/%d/completionist/%d", gameID, challengeID)
	return c.do(http.MethodPut, path, p, nil)
}

func (c *Client) DeleteChallenge(gameID, challengeID int64) error {
	path := fmt.Sprintf("/api/games/%d/completionist/%d", gameID, challengeID)
	return c.do(http.MethodDelete, path, nil, nil)
}
