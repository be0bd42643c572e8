package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Lilac-Rose/gametracker/internal/model"
	"github.com/Lilac-Rose/gametracker/internal/store"
	"github.com/Lilac-Rose/gametracker/internal/websocket"
)

type Top10Handler struct {
	top10Store *store.Top10Store
	hub        *websocket.Hub
}

func NewTop10Handler(ts *store.Top10Store, hub *websocket.Hub) *Top10Handler {
	return &Top10Handler{top10Store: ts, hub: hub}
}

func (h *Top10Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.top10Store.List()
	if err != nil {
		log.Printf("failed to list top 10: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list top 10"})
		return
	}
	if entries == nil {
		entries = []model.Top10Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Replace swaps the whole ranking in one request. The store validates the
// position and game uniqueness rules, so a bad list comes back as a 400.
func (h *Top10Handler) Replace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Entries []model.Top10Entry `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.top10Store.Replace(req.Entries); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	entries, err := h.top10Store.List()
	if err != nil {
		log.Printf("failed to list top 10: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list top 10"})
		return
	}
	if entries == nil {
		entries = []model.Top10Entry{}
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage(websocket.EntityTop10, websocket.ActionUpdated, 0, nil))
	}

	writeJSON(w, http.StatusOK, entries)
}
