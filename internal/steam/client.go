package steam

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultAPIBaseURL   = "https://api.steampowered.com"
	defaultStoreBaseURL = "https://store.steampowered.com"

	searchLimit = 5
	maxTags     = 5
)

// ErrNotConfigured is returned by calls that need a Steam Web API key and
// user ID when either is missing.
var ErrNotConfigured = errors.New("steam client not configured")

// Client talks to the Steam Web API and the storefront API.
type Client struct {
	apiKey       string
	steamID      string
	apiBaseURL   string
	storeBaseURL string
	httpClient   *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURLs overrides both API hosts, for tests.
func WithBaseURLs(api, store string) Option {
	return func(cl *Client) {
		cl.apiBaseURL = api
		cl.storeBaseURL = store
	}
}

func NewClient(apiKey, steamID string, opts ...Option) *Client {
	c := &Client{
		apiKey:       apiKey,
		steamID:      steamID,
		apiBaseURL:   defaultAPIBaseURL,
		storeBaseURL: defaultStoreBaseURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if both the API key and the user's 64-bit Steam ID
// are set. Storefront lookups work without either.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.steamID != ""
}

// HeaderImageURL returns the CDN URL of a game's header capsule.
func HeaderImageURL(appID int64) string {
	return fmt.Sprintf("https://cdn.cloudflare.steamstatic.com/steam/apps/%d/header.jpg", appID)
}

// SearchResult is one storefront search hit.
type SearchResult struct {
	AppID    int64  `json:"app_id"`
	Name     string `json:"name"`
	CoverURL string `json:"cover_url"`
}

// Search queries the storefront for games matching term and returns at most
// five results. No API key is needed.
func (c *Client) Search(term string) ([]SearchResult, error) {
	u := fmt.Sprintf("%s/api/storesearch/?term=%s&l=english&cc=US", c.storeBaseURL, url.QueryEscape(term))
	resp, err := c.httpClient.Get(u)
	if err != nil {
		return nil, fmt.Errorf("storefront search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storefront search: status %d", resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := []SearchResult{}
	for _, item := range payload.Items {
		if len(results) == searchLimit {
			break
		}
		results = append(results, SearchResult{
			AppID:    item.ID,
			Name:     item.Name,
			CoverURL: HeaderImageURL(item.ID),
		})
	}
	return results, nil
}

// Achievement is a schema achievement merged with the user's unlock state.
type Achievement struct {
	APIName     string `json:"api_name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
	Unlocked    bool   `json:"unlocked"`
	UnlockDate  string `json:"unlock_date,omitempty"`
}

// Achievements fetches the full achievement schema for a game and, when a
// Steam ID is configured, overlays the user's unlock state and dates.
func (c *Client) Achievements(appID int64) ([]Achievement, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	schema, err := c.fetchSchema(appID)
	if err != nil {
		return nil, err
	}

	unlocks := map[string]playerAchievement{}
	if c.steamID != "" {
		unlocks, err = c.fetchPlayerAchievements(appID)
		if err != nil {
			// Profiles can be private or lack stats for this game; the
			// schema alone is still useful, with everything locked.
			unlocks = map[string]playerAchievement{}
		}
	}

	merged := []Achievement{}
	for _, sa := range schema {
		a := Achievement{
			APIName:     sa.Name,
			Title:       sa.DisplayName,
			Description: sa.Description,
			IconURL:     sa.Icon,
		}
		if a.Title == "" {
			a.Title = sa.Name
		}
		if ua, ok := unlocks[sa.Name]; ok {
			a.Unlocked = ua.Achieved == 1
			if ua.UnlockTime > 0 {
				a.UnlockDate = time.Unix(ua.UnlockTime, 0).UTC().Format("2006-01-02")
			}
		}
		merged = append(merged, a)
	}
	return merged, nil
}

type schemaAchievement struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (c *Client) fetchSchema(appID int64) ([]schemaAchievement, error) {
	u := fmt.Sprintf("%s/ISteamUserStats/GetSchemaForGame/v2/?key=%s&appid=%d", c.apiBaseURL, c.apiKey, appID)
	resp, err := c.httpClient.Get(u)
	if err != nil {
		return nil, fmt.Errorf("fetch schema: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch schema: status %d", resp.StatusCode)
	}

	var payload struct {
		Game struct {
			AvailableGameStats struct {
				Achievements []schemaAchievement `json:"achievements"`
			} `json:"availableGameStats"`
		} `json:"game"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode schema response: %w", err)
	}
	return payload.Game.AvailableGameStats.Achievements, nil
}

type playerAchievement struct {
	APIName    string `json:"apiname"`
	Achieved   int    `json:"achieved"`
	UnlockTime int64  `json:"unlocktime"`
}

func (c *Client) fetchPlayerAchievements(appID int64) (map[string]playerAchievement, error) {
	u := fmt.Sprintf("%s/ISteamUserStats/GetPlayerAchievements/v0001/?appid=%d&key=%s&steamid=%s",
		c.apiBaseURL, appID, c.apiKey, c.steamID)
	resp, err := c.httpClient.Get(u)
	if err != nil {
		return nil, fmt.Errorf("fetch player achievements: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch player achievements: status %d", resp.StatusCode)
	}

	var payload struct {
		PlayerStats struct {
			Success      bool                `json:"success"`
			Achievements []playerAchievement `json:"achievements"`
		} `json:"playerstats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode player achievements: %w", err)
	}
	if !payload.PlayerStats.Success {
		return nil, fmt.Errorf("player achievements unavailable for app %d", appID)
	}

	byName := make(map[string]playerAchievement, len(payload.PlayerStats.Achievements))
	for _, a := range payload.PlayerStats.Achievements {
		byName[a.APIName] = a
	}
	return byName, nil
}

// OwnedGame is one entry from the user's library.
type OwnedGame struct {
	AppID int64   `json:"app_id"`
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

// OwnedGames fetches the user's library with playtime converted from minutes
// to hours, rounded to one decimal.
func (c *Client) OwnedGames() ([]OwnedGame, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	u := fmt.Sprintf("%s/IPlayerService/GetOwnedGames/v0001/?key=%s&steamid=%s&include_appinfo=1&include_played_free_games=1",
		c.apiBaseURL, c.apiKey, c.steamID)
	resp, err := c.httpClient.Get(u)
	if err != nil {
		return nil, fmt.Errorf("fetch owned games: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch owned games: status %d", resp.StatusCode)
	}

	var payload struct {
		Response struct {
			Games []struct {
				AppID           int64  `json:"appid"`
				Name            string `json:"name"`
				PlaytimeForever int64  `json:"playtime_forever"`
			} `json:"games"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode owned games response: %w", err)
	}

	games := []OwnedGame{}
	for _, g := range payload.Response.Games {
		games = append(games, OwnedGame{
			AppID: g.AppID,
			Name:  g.Name,
			Hours: math.Round(float64(g.PlaytimeForever)/60*10) / 10,
		})
	}
	return games, nil
}

// GameDetails combines the user's playtime for a game with store-page tags.
type GameDetails struct {
	HoursPlayed *float64 `json:"hours_played"`
	Tags        []string `json:"tags"`
}

// Details is best-effort: each part that cannot be fetched is simply left
// empty, so an unconfigured key still yields store tags.
func (c *Client) Details(appID int64) GameDetails {
	d := GameDetails{Tags: []string{}}

	if c.Configured() {
		if games, err := c.OwnedGames(); err == nil {
			for _, g := range games {
				if g.AppID == appID && g.Hours > 0 {
					h := g.Hours
					d.HoursPlayed = &h
					break
				}
			}
		}
	}

	if tags, err := c.fetchStoreTags(appID); err == nil {
		d.Tags = tags
	}
	return d
}

func (c *Client) fetchStoreTags(appID int64) ([]string, error) {
	u := fmt.Sprintf("%s/api/appdetails?appids=%d", c.storeBaseURL, appID)
	resp, err := c.httpClient.Get(u)
	if err != nil {
		return nil, fmt.Errorf("fetch app details: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch app details: status %d", resp.StatusCode)
	}

	var payload map[string]struct {
		Success bool `json:"success"`
		Data    struct {
			Genres []struct {
				Description string `json:"description"`
			} `json:"genres"`
			Categories []struct {
				Description string `json:"description"`
			} `json:"categories"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode app details response: %w", err)
	}

	entry, ok := payload[fmt.Sprintf("%d", appID)]
	if !ok || !entry.Success {
		return nil, fmt.Errorf("no app details for %d", appID)
	}

	var raw []string
	for i, g := range entry.Data.Genres {
		if i == 5 {
			break
		}
		raw = append(raw, g.Description)
	}
	for i, cat := range entry.Data.Categories {
		if i == 3 {
			break
		}
		raw = append(raw, cat.Description)
	}

	seen := make(map[string]bool, len(raw))
	tags := []string{}
	for _, t := range raw {
		if seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
		if len(tags) == maxTags {
			break
		}
	}
	return tags, nil
}
