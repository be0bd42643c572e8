package store

import (
	"testing"

	"github.com/Lilac-Rose/gametracker/internal/database"
)

func setupGameTestDB(t *testing.T) (*GameStore, *AchievementStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewGameStore(db), NewAchievementStore(db)
}

func TestGameCRUD(t *testing.T) {
	gs, _ := setupGameTestDB(t)

	rating := 9
	hours := 42.5
	game, err := gs.Create(GameParams{
		Title:       "Hollow Knight",
		Platform:    "PC",
		Status:      "Playing",
		Notes:       "Gorgeous",
		Rating:      &rating,
		HoursPlayed: &hours,
		Tags:        []string{"Metroidvania", "Indie"},
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if game.Title != "Hollow Knight" {
		t.Errorf("title = %q, want %q", game.Title, "Hollow Knight")
	}
	if game.Platform != "PC" {
		t.Errorf("platform = %q, want %q", game.Platform, "PC")
	}
	if game.Rating == nil || *game.Rating != 9 {
		t.Errorf("rating = %v, want 9", game.Rating)
	}
	if game.HoursPlayed == nil || *game.HoursPlayed != 42.5 {
		t.Errorf("hours_played = %v, want 42.5", game.HoursPlayed)
	}
	if len(game.Tags) != 2 || game.Tags[0] != "Metroidvania" || game.Tags[1] != "Indie" {
		t.Errorf("tags = %v, want [Metroidvania Indie]", game.Tags)
	}
	if game.IsFavorite {
		t.Error("expected not favorite")
	}

	// Get by ID
	got, err := gs.GetByID(game.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got == nil {
		t.Fatal("expected game, got nil")
	}
	if got.Title != "Hollow Knight" {
		t.Errorf("title = %q, want %q", got.Title, "Hollow Knight")
	}

	// Update replaces fields and tags wholesale
	updated, err := gs.Update(game.ID, GameParams{
		Title:          "Hollow Knight",
		Platform:       "Switch",
		Status:         "Completed",
		CompletionDate: "2025-06-01",
		Tags:           []string{"Metroidvania"},
	})
	if err != nil {
		t.Fatalf("update game: %v", err)
	}
	if updated.Platform != "Switch" {
		t.Errorf("platform = %q, want %q", updated.Platform, "Switch")
	}
	if updated.Status != "Completed" {
		t.Errorf("status = %q, want %q", updated.Status, "Completed")
	}
	if updated.CompletionDate != "2025-06-01" {
		t.Errorf("completion_date = %q, want %q", updated.CompletionDate, "2025-06-01")
	}
	if updated.Rating != nil {
		t.Errorf("rating = %v, want nil after update without rating", updated.Rating)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "Metroidvania" {
		t.Errorf("tags = %v, want [Metroidvania]", updated.Tags)
	}

	// Delete
	if err := gs.Delete(game.ID); err != nil {
		t.Fatalf("delete game: %v", err)
	}
	gone, err := gs.GetByID(game.ID)
	if err != nil {
		t.Fatalf("get deleted game: %v", err)
	}
	if gone != nil {
		t.Error("expected nil after delete")
	}
}

func TestGameGetByIDNotFound(t *testing.T) {
	gs, _ := setupGameTestDB(t)

	got, err := gs.GetByID(9999)
	if err != nil {
		t.Fatalf("get missing game: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestGameListNewestFirst(t *testing.T) {
	gs, _ := setupGameTestDB(t)

	for _, title := range []string{"First", "Second", "Third"} {
		if _, err := gs.Create(GameParams{Title: title}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}

	games, err := gs.List()
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("len = %d, want 3", len(games))
	}
	if games[0].Title != "Third" || games[2].Title != "First" {
		t.Errorf("order = [%s %s %s], want newest first", games[0].Title, games[1].Title, games[2].Title)
	}
	if games[0].Tags == nil {
		t.Error("tags should be empty slice, not nil")
	}
}

func TestGameAchievementCounts(t *testing.T) {
	gs, as := setupGameTestDB(t)

	game, err := gs.Create(GameParams{Title: "Celeste"})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	bare, err := gs.Create(GameParams{Title: "Tetris"})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	if _, err := as.Create(game.ID, "Chapter 1", "", "2025-01-01", true, ""); err != nil {
		t.Fatalf("create achievement: %v", err)
	}
	if _, err := as.Create(game.ID, "Chapter 2", "", "2025-01-02", true, ""); err != nil {
		t.Fatalf("create achievement: %v", err)
	}
	if _, err := as.Create(game.ID, "Golden Berry", "", "", false, ""); err != nil {
		t.Fatalf("create achievement: %v", err)
	}

	got, err := gs.GetByID(game.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.UnlockedAchievements != 2 {
		t.Errorf("unlocked = %d, want 2", got.UnlockedAchievements)
	}
	if got.TotalAchievements != 3 {
		t.Errorf("total = %d, want 3", got.TotalAchievements)
	}

	empty, err := gs.GetByID(bare.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if empty.UnlockedAchievements != 0 || empty.TotalAchievements != 0 {
		t.Errorf("counts = %d/%d, want 0/0", empty.UnlockedAchievements, empty.TotalAchievements)
	}
}

func TestGameToggleFavorite(t *testing.T) {
	gs, _ := setupGameTestDB(t)

	game, err := gs.Create(GameParams{Title: "Outer Wilds"})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	on, err := gs.ToggleFavorite(game.ID)
	if err != nil {
		t.Fatalf("toggle favorite: %v", err)
	}
	if !on.IsFavorite {
		t.Error("expected favorite after first toggle")
	}

	off, err := gs.ToggleFavorite(game.ID)
	if err != nil {
		t.Fatalf("toggle favorite: %v", err)
	}
	if off.IsFavorite {
		t.Error("expected not favorite after second toggle")
	}

	missing, err := gs.ToggleFavorite(9999)
	if err != nil {
		t.Fatalf("toggle missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing game")
	}
}

func TestGameRandom(t *testing.T) {
	gs, _ := setupGameTestDB(t)

	short := 5.0
	long := 80.0
	if _, err := gs.Create(GameParams{Title: "Short PC", Platform: "PC", Status: "Backlog", HoursPlayed: &short}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := gs.Create(GameParams{Title: "Long Switch", Platform: "Switch", Status: "Playing", HoursPlayed: &long}); err != nil {
		t.Fatalf("create: %v", err)
	}

	g, err := gs.Random("Backlog", "", nil)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if g == nil || g.Title != "Short PC" {
		t.Errorf("random(Backlog) = %v, want Short PC", g)
	}

	max := 10.0
	g, err = gs.Random("", "", &max)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if g == nil || g.Title != "Short PC" {
		t.Errorf("random(maxHours=10) = %v, want Short PC", g)
	}

	g, err = gs.Random("Dropped", "", nil)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if g != nil {
		t.Errorf("random(Dropped) = %v, want nil", g)
	}
}

func TestGameSteamLookups(t *testing.T) {
	gs, _ := setupGameTestDB(t)

	appID := int64(367520)
	if _, err := gs.Create(GameParams{Title: "Hollow Knight", SteamAppID: &appID}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := gs.Create(GameParams{Title: "Chess"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	ids, err := gs.ExistingSteamAppIDs()
	if err != nil {
		t.Fatalf("existing steam app ids: %v", err)
	}
	if !ids[367520] || len(ids) != 1 {
		t.Errorf("ids = %v, want {367520}", ids)
	}
}
