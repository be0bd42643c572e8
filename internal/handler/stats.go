package handler

import (
	"log"
	"net/http"

	"github.com/Lilac-Rose/gametracker/internal/store"
)

type StatsHandler struct {
	statsStore *store.StatsStore
}

func NewStatsHandler(ss *store.StatsStore) *StatsHandler {
	return &StatsHandler{statsStore: ss}
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsStore.Collect()
	if err != nil {
		log.Printf("failed to collect stats: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to collect stats"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
