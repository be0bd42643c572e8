package store

import (
	"testing"

	"github.com/Lilac-Rose/gametracker/internal/model"
)

func TestAchievementCRUD(t *testing.T) {
	gs, as := setupGameTestDB(t)

	game, err := gs.Create(GameParams{Title: "Celeste"})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	a, err := as.Create(game.ID, "Reach the Summit", "Finish Chapter 7", "2025-03-10", true, "https://example.com/icon.png")
	if err != nil {
		t.Fatalf("create achievement: %v", err)
	}
	if a.Title != "Reach the Summit" {
		t.Errorf("title = %q, want %q", a.Title, "Reach the Summit")
	}
	if !a.Unlocked {
		t.Error("expected unlocked")
	}
	if a.Date != "2025-03-10" {
		t.Errorf("date = %q, want %q", a.Date, "2025-03-10")
	}
	if a.IconURL != "https://example.com/icon.png" {
		t.Errorf("icon_url = %q", a.IconURL)
	}

	// Relock clears the date
	relocked, err := as.SetUnlocked(a.ID, false, "")
	if err != nil {
		t.Fatalf("set unlocked: %v", err)
	}
	if relocked.Unlocked {
		t.Error("expected locked")
	}
	if relocked.Date != "" {
		t.Errorf("date = %q, want empty after relock", relocked.Date)
	}

	if err := as.Delete(a.ID); err != nil {
		t.Fatalf("delete achievement: %v", err)
	}
	gone, err := as.GetByID(a.ID)
	if err != nil {
		t.Fatalf("get deleted: %v", err)
	}
	if gone != nil {
		t.Error("expected nil after delete")
	}
}

func TestAchievementListNewestDateFirst(t *testing.T) {
	gs, as := setupGameTestDB(t)

	game, err := gs.Create(GameParams{Title: "Hades"})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	if _, err := as.Create(game.ID, "Old", "", "2024-01-01", true, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := as.Create(game.ID, "New", "", "2025-05-05", true, ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := as.ListForGame(game.ID)
	if err != nil {
		t.Fatalf("list achievements: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].Title != "New" {
		t.Errorf("first = %q, want New", list[0].Title)
	}
}

func TestAchievementReplaceForGame(t *testing.T) {
	gs, as := setupGameTestDB(t)

	game, err := gs.Create(GameParams{Title: "Hollow Knight"})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := as.Create(game.ID, "Stale", "", "", false, ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	inserted, err := as.ReplaceForGame(game.ID, []model.Achievement{
		{Title: "False Knight", Unlocked: true, Date: "2025-01-15"},
		{Title: "Radiance", Unlocked: false},
	})
	if err != nil {
		t.Fatalf("replace achievements: %v", err)
	}
	if inserted != 2 {
		t.Errorf("inserted = %d, want 2", inserted)
	}

	list, err := as.ListForGame(game.ID)
	if err != nil {
		t.Fatalf("list achievements: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2 (old set replaced)", len(list))
	}
	for _, a := range list {
		if a.Title == "Stale" {
			t.Error("old achievement survived replace")
		}
	}
}

func TestAchievementDeletedWithGame(t *testing.T) {
	gs, as := setupGameTestDB(t)

	game, err := gs.Create(GameParams{Title: "Doomed"})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := as.Create(game.ID, "Orphan", "", "", true, ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := gs.Delete(game.ID); err != nil {
		t.Fatalf("delete game: %v", err)
	}
	list, err := as.ListForGame(game.ID)
	if err != nil {
		t.Fatalf("list achievements: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("len = %d, want 0 after cascade", len(list))
	}
}
