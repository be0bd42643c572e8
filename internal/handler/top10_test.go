package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lilac-Rose/gametracker/internal/model"
	"github.com/Lilac-Rose/gametracker/internal/store"
)

func setupTop10Handler(t *testing.T) (*Top10Handler, *store.GameStore) {
	t.Helper()
	db := testDB(t)
	gs := store.NewGameStore(db)
	return NewTop10Handler(store.NewTop10Store(db), nil), gs
}

func TestTop10Replace(t *testing.T) {
	h, gs := setupTop10Handler(t)
	mustCreateGame(t, gs, "First pick")
	mustCreateGame(t, gs, "Second pick")

	body := `{"entries": [
		{"position": 1, "game_id": 2, "reason": "masterpiece"},
		{"position": 2, "game_id": 1}
	]}`
	req := httptest.NewRequest("PUT", "/api/top10", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Replace(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var entries []model.Top10Entry
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].GameTitle != "Second pick" || entries[0].Reason != "masterpiece" {
		t.Errorf("entries[0] = %+v, want Second pick at position 1", entries[0])
	}
}

func TestTop10ReplaceInvalid(t *testing.T) {
	h, gs := setupTop10Handler(t)
	mustCreateGame(t, gs, "Only game")

	cases := []struct {
		name string
		body string
	}{
		{"duplicate position", `{"entries": [{"position": 1, "game_id": 1}, {"position": 1, "game_id": 1}]}`},
		{"position out of range", `{"entries": [{"position": 11, "game_id": 1}]}`},
		{"bad json", `{"entries": `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", "/api/top10", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Replace(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestTop10ReplaceEmptyClears(t *testing.T) {
	h, gs := setupTop10Handler(t)
	mustCreateGame(t, gs, "Former favorite")

	seed := `{"entries": [{"position": 1, "game_id": 1}]}`
	req := httptest.NewRequest("PUT", "/api/top10", strings.NewReader(seed))
	rec := httptest.NewRecorder()
	h.Replace(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed status = %d, want %d", rec.Code, http.StatusOK)
	}

	req = httptest.NewRequest("PUT", "/api/top10", strings.NewReader(`{"entries": []}`))
	rec = httptest.NewRecorder()
	h.Replace(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want empty list", got)
	}
}
