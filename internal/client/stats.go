package client

import (
	"net/http"
	"net/url"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

func (c *Client) Stats() (*model.Stats, error) {
	var stats model.Stats
	if err := c.do(http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// DaySnapshot returns the per-game hour gains for one day against the day
// before. A day with no snapshot is an *APIError with status 404.
func (c *Client) DaySnapshot(date string) ([]model.GameHoursDelta, error) {
	var deltas []model.GameHoursDelta
	path := "/api/daily-snapshots/" + url.PathEscape(date)
	if err := c.do(http.MethodGet, path, nil, &deltas); err != nil {
		return nil, err
	}
	return deltas, nil
}

// CaptureSnapshot records today's hours immediately instead of waiting for
// the scheduler, and returns the snapshot date.
func (c *Client) CaptureSnapshot() (string, error) {
	var resp struct {
		Date string `json:"date"`
	}
	if err := c.do(http.MethodPost, "/api/daily-snapshots/capture", nil, &resp); err != nil {
		return "", err
	}
	return resp.Date, nil
}

// Settings returns the server's internal key/value settings, like the last
// Steam sync and last snapshot time.
func (c *Client) Settings() (map[string]string, error) {
	var settings map[string]string
	if err := c.do(http.MethodGet, "/api/settings", nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}
