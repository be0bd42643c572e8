package client

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/Lilac-Rose/gametracker/internal/model"
	"github.com/Lilac-Rose/gametracker/internal/steam"
)

// SteamSearch looks a title up in the Steam store through the server. An
// empty term returns an empty list.
func (c *Client) SteamSearch(term string) ([]steam.SearchResult, error) {
	var results []steam.SearchResult
	path := "/api/steam/search?q=" + url.QueryEscape(term)
	if err := c.do(http.MethodGet, path, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// SteamAchievements previews a Steam app's achievement list without writing
// anything to the library.
func (c *Client) SteamAchievements(appID int64) ([]steam.Achievement, error) {
	var achievements []steam.Achievement
	path := fmt.Sprintf("/api/steam/achievements/%d", appID)
	if err := c.do(http.MethodGet, path, nil, &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}

func (c *Client) SteamGameDetails(appID int64) (*steam.GameDetails, error) {
	var details steam.GameDetails
	path := fmt.Sprintf("/api/steam/game-details/%d", appID)
	if err := c.do(http.MethodGet, path, nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// SteamSync refreshes one linked game's playtime from Steam and returns the
// updated record.
func (c *Client) SteamSync(gameID int64) (*model.Game, error) {
	var game model.Game
	path := fmt.Sprintf("/api/steam/sync/%d", gameID)
	if err := c.do(http.MethodPost, path, nil, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// SteamImportLibrary creates a backlog entry for every owned Steam game not
// yet tracked.
func (c *Client) SteamImportLibrary() (*steam.ImportResult, error) {
	var result steam.ImportResult
	if err := c.do(http.MethodPost, "/api/steam/import-library", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
