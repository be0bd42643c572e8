package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lilac-Rose/gametracker/internal/store"
)

func TestBatchDelete(t *testing.T) {
	db := testDB(t)
	gs := store.NewGameStore(db)
	h := NewBatchHandler(gs, nil)

	mustCreateGame(t, gs, "Keep")
	mustCreateGame(t, gs, "Drop A")
	mustCreateGame(t, gs, "Drop B")

	body := `{"ids": [2, 3, 99]}`
	req := httptest.NewRequest("POST", "/api/batch/delete", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		Deleted   int     `json:"deleted"`
		Failed    int     `json:"failed"`
		FailedIDs []int64 `json:"failed_ids"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Deleted != 2 || resp.Failed != 1 {
		t.Errorf("response = %+v, want 2 deleted and 1 failed", resp)
	}
	if len(resp.FailedIDs) != 1 || resp.FailedIDs[0] != 99 {
		t.Errorf("failed_ids = %v, want [99]", resp.FailedIDs)
	}

	games, err := gs.List()
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 1 || games[0].Title != "Keep" {
		t.Errorf("games = %+v, want only Keep left", games)
	}
}

func TestBatchDeleteEmptyIDs(t *testing.T) {
	h := NewBatchHandler(store.NewGameStore(testDB(t)), nil)

	req := httptest.NewRequest("POST", "/api/batch/delete", strings.NewReader(`{"ids": []}`))
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
