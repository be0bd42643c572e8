package store

import (
	"testing"

	"github.com/Lilac-Rose/gametracker/internal/database"
)

func setupSettingsTestDB(t *testing.T) *SettingsStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSettingsStore(db)
}

func TestSettingsSetAndGet(t *testing.T) {
	ss := setupSettingsTestDB(t)

	if err := ss.Set("last_snapshot_date", "2025-08-20"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := ss.Get("last_snapshot_date")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "2025-08-20" {
		t.Errorf("value = %q, want %q", got, "2025-08-20")
	}

	// Upsert overwrites
	if err := ss.Set("last_snapshot_date", "2025-08-21"); err != nil {
		t.Fatalf("set again: %v", err)
	}
	got, err = ss.Get("last_snapshot_date")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "2025-08-21" {
		t.Errorf("value = %q, want %q", got, "2025-08-21")
	}
}

func TestSettingsGetMissing(t *testing.T) {
	ss := setupSettingsTestDB(t)

	if _, err := ss.Get("nope"); err == nil {
		t.Error("expected error for missing key")
	}

	got, err := ss.GetDefault("nope", "fallback")
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if got != "fallback" {
		t.Errorf("value = %q, want fallback", got)
	}
}

func TestSettingsGetAll(t *testing.T) {
	ss := setupSettingsTestDB(t)

	if err := ss.Set("a", "1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := ss.Set("b", "2"); err != nil {
		t.Fatalf("set: %v", err)
	}

	all, err := ss.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 || all["a"] != "1" || all["b"] != "2" {
		t.Errorf("all = %v", all)
	}
}
