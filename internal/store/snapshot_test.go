package store

import (
	"math"
	"testing"

	"github.com/Lilac-Rose/gametracker/internal/database"
)

func setupSnapshotTestDB(t *testing.T) (*SnapshotStore, *GameStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSnapshotStore(db), NewGameStore(db)
}

func TestSnapshotRecordAndGet(t *testing.T) {
	ss, gs := setupSnapshotTestDB(t)

	h1, h2 := 10.5, 4.5
	if _, err := gs.Create(GameParams{Title: "A", HoursPlayed: &h1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := gs.Create(GameParams{Title: "B", HoursPlayed: &h2}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := gs.Create(GameParams{Title: "Unplayed"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := ss.Record("2025-08-20"); err != nil {
		t.Fatalf("record snapshot: %v", err)
	}

	snap, err := ss.GetTotal("2025-08-20")
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if snap == nil {
		t.Fatal("expected snapshot, got nil")
	}
	if snap.TotalHours != 15.0 {
		t.Errorf("total_hours = %v, want 15.0", snap.TotalHours)
	}

	missing, err := ss.GetTotal("2025-08-19")
	if err != nil {
		t.Fatalf("get missing snapshot: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unrecorded date")
	}
}

func TestSnapshotRecordOverwritesSameDay(t *testing.T) {
	ss, gs := setupSnapshotTestDB(t)

	h := 2.0
	game, err := gs.Create(GameParams{Title: "A", HoursPlayed: &h})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := ss.Record("2025-08-20"); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := gs.UpdateHours(game.ID, 6.0); err != nil {
		t.Fatalf("update hours: %v", err)
	}
	if err := ss.Record("2025-08-20"); err != nil {
		t.Fatalf("re-record: %v", err)
	}

	snap, err := ss.GetTotal("2025-08-20")
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if snap.TotalHours != 6.0 {
		t.Errorf("total_hours = %v, want 6.0 after overwrite", snap.TotalHours)
	}
}

func TestSnapshotListRecentAscending(t *testing.T) {
	ss, gs := setupSnapshotTestDB(t)

	h := 1.0
	game, err := gs.Create(GameParams{Title: "A", HoursPlayed: &h})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i, date := range []string{"2025-08-18", "2025-08-19", "2025-08-20"} {
		if err := gs.UpdateHours(game.ID, float64(i+1)); err != nil {
			t.Fatalf("update hours: %v", err)
		}
		if err := ss.Record(date); err != nil {
			t.Fatalf("record %s: %v", date, err)
		}
	}

	snaps, err := ss.ListRecent(2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("len = %d, want 2", len(snaps))
	}
	if snaps[0].Date != "2025-08-19" || snaps[1].Date != "2025-08-20" {
		t.Errorf("dates = [%s %s], want ascending ending at newest", snaps[0].Date, snaps[1].Date)
	}
}

func TestSnapshotBreakdownDeltas(t *testing.T) {
	ss, gs := setupSnapshotTestDB(t)

	h1, h2, h3 := 10.0, 5.0, 3.0
	played, err := gs.Create(GameParams{Title: "Played", HoursPlayed: &h1, CoverURL: "https://example.com/p.jpg"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := gs.Create(GameParams{Title: "Idle", HoursPlayed: &h2}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := ss.Record("2025-08-19"); err != nil {
		t.Fatalf("record day one: %v", err)
	}

	// Day two: Played gains 2.5h, Idle stays flat, Fresh appears with 3h
	if err := gs.UpdateHours(played.ID, 12.5); err != nil {
		t.Fatalf("update hours: %v", err)
	}
	if _, err := gs.Create(GameParams{Title: "Fresh", HoursPlayed: &h3}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := ss.Record("2025-08-20"); err != nil {
		t.Fatalf("record day two: %v", err)
	}

	deltas, err := ss.BreakdownForDate("2025-08-20")
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if len(deltas) != 2 {
		t.Fatalf("len = %d, want 2 (flat game excluded)", len(deltas))
	}
	if deltas[0].GameTitle != "Played" {
		t.Errorf("deltas[0] = %q, want the most-played game first", deltas[0].GameTitle)
	}

	byTitle := map[string]float64{}
	for _, d := range deltas {
		byTitle[d.GameTitle] = d.HoursAdded
	}
	if math.Abs(byTitle["Played"]-2.5) > 0.001 {
		t.Errorf("Played delta = %v, want 2.5", byTitle["Played"])
	}
	if math.Abs(byTitle["Fresh"]-3.0) > 0.001 {
		t.Errorf("Fresh delta = %v, want 3.0 (counts from zero)", byTitle["Fresh"])
	}
	for _, d := range deltas {
		if d.GameTitle == "Played" && d.TotalHours != 12.5 {
			t.Errorf("Played total = %v, want 12.5", d.TotalHours)
		}
	}
}

func TestSnapshotBreakdownStrictPreviousDay(t *testing.T) {
	ss, gs := setupSnapshotTestDB(t)

	h := 6.0
	game, err := gs.Create(GameParams{Title: "Gapped", HoursPlayed: &h})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := ss.Record("2025-08-18"); err != nil {
		t.Fatalf("record: %v", err)
	}

	// The tracker was off on the 19th; the 20th compares against the 19th,
	// not the 18th, so the whole total counts as that day's gain.
	if err := gs.UpdateHours(game.ID, 6.5); err != nil {
		t.Fatalf("update hours: %v", err)
	}
	if err := ss.Record("2025-08-20"); err != nil {
		t.Fatalf("record: %v", err)
	}

	deltas, err := ss.BreakdownForDate("2025-08-20")
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if len(deltas) != 1 || deltas[0].HoursAdded != 6.5 {
		t.Errorf("deltas = %v, want 6.5 counted from zero across the gap", deltas)
	}
}

func TestSnapshotBreakdownFirstDay(t *testing.T) {
	ss, gs := setupSnapshotTestDB(t)

	h := 8.0
	if _, err := gs.Create(GameParams{Title: "Only", HoursPlayed: &h}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := ss.Record("2025-08-20"); err != nil {
		t.Fatalf("record: %v", err)
	}

	deltas, err := ss.BreakdownForDate("2025-08-20")
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if len(deltas) != 1 || deltas[0].HoursAdded != 8.0 {
		t.Errorf("deltas = %v, want full hours with no prior snapshot", deltas)
	}
}

func TestSnapshotBreakdownIgnoresNoise(t *testing.T) {
	ss, gs := setupSnapshotTestDB(t)

	h := 10.0
	game, err := gs.Create(GameParams{Title: "Barely", HoursPlayed: &h})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := ss.Record("2025-08-19"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := gs.UpdateHours(game.ID, 10.1); err != nil {
		t.Fatalf("update hours: %v", err)
	}
	if err := ss.Record("2025-08-20"); err != nil {
		t.Fatalf("record: %v", err)
	}

	deltas, err := ss.BreakdownForDate("2025-08-20")
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if len(deltas) != 0 {
		t.Errorf("deltas = %v, want none for a 0.1h bump", deltas)
	}
}
