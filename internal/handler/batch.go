package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Lilac-Rose/gametracker/internal/store"
	"github.com/Lilac-Rose/gametracker/internal/websocket"
)

type BatchHandler struct {
	gameStore *store.GameStore
	hub       *websocket.Hub
}

func NewBatchHandler(gs *store.GameStore, hub *websocket.Hub) *BatchHandler {
	return &BatchHandler{gameStore: gs, hub: hub}
}

// Delete removes several games in one request. Each id is handled
// independently, so one missing game does not abort the rest.
func (h *BatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if len(req.IDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ids is required"})
		return
	}

	deleted := 0
	failedIDs := []int64{}
	for _, id := range req.IDs {
		game, err := h.gameStore.GetByID(id)
		if err != nil {
			log.Printf("failed to get game %d: %v", id, err)
			failedIDs = append(failedIDs, id)
			continue
		}
		if game == nil {
			failedIDs = append(failedIDs, id)
			continue
		}
		if err := h.gameStore.Delete(id); err != nil {
			log.Printf("failed to delete game %d: %v", id, err)
			failedIDs = append(failedIDs, id)
			continue
		}
		deleted++
		if h.hub != nil {
			h.hub.Broadcast(websocket.NewMessage(websocket.EntityGame, websocket.ActionDeleted, id, nil))
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"deleted":    deleted,
		"failed":     len(failedIDs),
		"failed_ids": failedIDs,
	})
}
