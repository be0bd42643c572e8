package steam

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeSteam serves both the Web API and storefront endpoints used by Client.
func fakeSteam(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", "76561198000000000",
		WithBaseURLs(server.URL, server.URL),
		WithHTTPClient(server.Client()),
	)
}

func TestSearchLimitsToFive(t *testing.T) {
	client := fakeSteam(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/storesearch/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("term") != "hollow knight" {
			t.Errorf("term = %q", r.URL.Query().Get("term"))
		}
		items := []map[string]any{}
		for i := 1; i <= 7; i++ {
			items = append(items, map[string]any{"id": i, "name": fmt.Sprintf("Game %d", i)})
		}
		json.NewEncoder(w).Encode(map[string]any{"items": items})
	})

	results, err := client.Search("hollow knight")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("len = %d, want 5", len(results))
	}
	if results[0].Name != "Game 1" {
		t.Errorf("first = %q", results[0].Name)
	}
	want := "https://cdn.cloudflare.steamstatic.com/steam/apps/1/header.jpg"
	if results[0].CoverURL != want {
		t.Errorf("cover_url = %q, want %q", results[0].CoverURL, want)
	}
}

func TestSearchErrorStatus(t *testing.T) {
	client := fakeSteam(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := client.Search("anything"); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestAchievementsMerge(t *testing.T) {
	client := fakeSteam(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "GetSchemaForGame"):
			json.NewEncoder(w).Encode(map[string]any{
				"game": map[string]any{
					"availableGameStats": map[string]any{
						"achievements": []map[string]any{
							{"name": "ACH_WIN", "displayName": "Winner", "description": "Win once", "icon": "https://example.com/win.png"},
							{"name": "ACH_SECRET", "displayName": "", "description": "", "icon": ""},
						},
					},
				},
			})
		case strings.Contains(r.URL.Path, "GetPlayerAchievements"):
			json.NewEncoder(w).Encode(map[string]any{
				"playerstats": map[string]any{
					"success": true,
					"achievements": []map[string]any{
						{"apiname": "ACH_WIN", "achieved": 1, "unlocktime": 1735689600},
						{"apiname": "ACH_SECRET", "achieved": 0, "unlocktime": 0},
					},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	achs, err := client.Achievements(367520)
	if err != nil {
		t.Fatalf("achievements: %v", err)
	}
	if len(achs) != 2 {
		t.Fatalf("len = %d, want 2", len(achs))
	}

	win := achs[0]
	if win.Title != "Winner" || !win.Unlocked {
		t.Errorf("win = %+v, want unlocked Winner", win)
	}
	if win.UnlockDate != "2025-01-01" {
		t.Errorf("unlock_date = %q, want 2025-01-01", win.UnlockDate)
	}
	if win.IconURL != "https://example.com/win.png" {
		t.Errorf("icon_url = %q", win.IconURL)
	}

	secret := achs[1]
	if secret.Title != "ACH_SECRET" {
		t.Errorf("title = %q, want api name fallback", secret.Title)
	}
	if secret.Unlocked || secret.UnlockDate != "" {
		t.Errorf("secret = %+v, want locked with no date", secret)
	}
}

func TestAchievementsPrivateProfile(t *testing.T) {
	client := fakeSteam(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "GetSchemaForGame"):
			json.NewEncoder(w).Encode(map[string]any{
				"game": map[string]any{
					"availableGameStats": map[string]any{
						"achievements": []map[string]any{
							{"name": "ACH_WIN", "displayName": "Winner"},
						},
					},
				},
			})
		case strings.Contains(r.URL.Path, "GetPlayerAchievements"):
			json.NewEncoder(w).Encode(map[string]any{
				"playerstats": map[string]any{"success": false},
			})
		}
	})

	achs, err := client.Achievements(367520)
	if err != nil {
		t.Fatalf("achievements: %v", err)
	}
	if len(achs) != 1 || achs[0].Unlocked {
		t.Errorf("achs = %+v, want schema with everything locked", achs)
	}
}

func TestAchievementsNotConfigured(t *testing.T) {
	client := NewClient("", "")
	if _, err := client.Achievements(1); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestOwnedGamesHours(t *testing.T) {
	client := fakeSteam(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"response": map[string]any{
				"games": []map[string]any{
					{"appid": 1, "name": "Ninety Minutes", "playtime_forever": 90},
					{"appid": 2, "name": "Unplayed", "playtime_forever": 0},
					{"appid": 3, "name": "Rounded", "playtime_forever": 125},
				},
			},
		})
	})

	games, err := client.OwnedGames()
	if err != nil {
		t.Fatalf("owned games: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("len = %d, want 3", len(games))
	}
	if games[0].Hours != 1.5 {
		t.Errorf("hours = %v, want 1.5", games[0].Hours)
	}
	if games[1].Hours != 0 {
		t.Errorf("hours = %v, want 0", games[1].Hours)
	}
	if games[2].Hours != 2.1 {
		t.Errorf("hours = %v, want 2.1 (125 minutes)", games[2].Hours)
	}
}

func TestOwnedGamesNotConfigured(t *testing.T) {
	client := NewClient("key-only", "")
	if _, err := client.OwnedGames(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestDetailsTags(t *testing.T) {
	client := fakeSteam(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "GetOwnedGames"):
			json.NewEncoder(w).Encode(map[string]any{
				"response": map[string]any{
					"games": []map[string]any{
						{"appid": 400, "name": "Portal", "playtime_forever": 180},
					},
				},
			})
		case strings.HasPrefix(r.URL.Path, "/api/appdetails"):
			json.NewEncoder(w).Encode(map[string]any{
				"400": map[string]any{
					"success": true,
					"data": map[string]any{
						"genres": []map[string]any{
							{"description": "Puzzle"},
							{"description": "Action"},
							{"description": "Indie"},
							{"description": "Adventure"},
							{"description": "Casual"},
							{"description": "Ignored Sixth"},
						},
						"categories": []map[string]any{
							{"description": "Single-player"},
							{"description": "Puzzle"},
							{"description": "Steam Cloud"},
						},
					},
				},
			})
		}
	})

	details := client.Details(400)
	if details.HoursPlayed == nil || *details.HoursPlayed != 3.0 {
		t.Errorf("hours_played = %v, want 3.0", details.HoursPlayed)
	}
	// 5 genres then categories, deduped, capped at 5
	want := []string{"Puzzle", "Action", "Indie", "Adventure", "Casual"}
	if len(details.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", details.Tags, want)
	}
	for i, tag := range want {
		if details.Tags[i] != tag {
			t.Errorf("tags[%d] = %q, want %q", i, details.Tags[i], tag)
		}
	}
}

func TestDetailsBestEffort(t *testing.T) {
	client := fakeSteam(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	details := client.Details(400)
	if details.HoursPlayed != nil {
		t.Errorf("hours_played = %v, want nil when fetch fails", details.HoursPlayed)
	}
	if details.Tags == nil || len(details.Tags) != 0 {
		t.Errorf("tags = %v, want empty slice", details.Tags)
	}
}
