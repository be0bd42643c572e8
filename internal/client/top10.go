package client

import (
	"net/http"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

func (c *Client) Top10() ([]model.Top10Entry, error) {
	var entries []model.Top10Entry
	if err := c.do(http.MethodGet, "/api/top10", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplaceTop10 swaps the whole ranking in one request and returns the saved
// list. Only Position, GameID, and Reason are sent; the server rejects
// sparse or duplicate positions with a 400.
func (c *Client) ReplaceTop10(entries []model.Top10Entry) ([]model.Top10Entry, error) {
	req := struct {
		Entries []model.Top10Entry `json:"entries"`
	}{Entries: entries}

	var saved []model.Top10Entry
	if err := c.do(http.MethodPost, "/api/top10", req, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}
