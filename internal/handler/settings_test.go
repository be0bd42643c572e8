package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lilac-Rose/gametracker/internal/store"
)

func TestSettingsGet(t *testing.T) {
	db := testDB(t)
	ss := store.NewSettingsStore(db)
	h := NewSettingsHandler(ss)

	if err := ss.Set("last_steam_sync", "2026-08-25T10:00:00Z"); err != nil {
		t.Fatalf("set setting: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/settings", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var settings map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if settings["last_steam_sync"] != "2026-08-25T10:00:00Z" {
		t.Errorf("settings = %v, want last_steam_sync present", settings)
	}
}
