package handler

import (
	"log"
	"net/http"

	"github.com/Lilac-Rose/gametracker/internal/store"
)

// SettingsHandler exposes the internal key/value settings read-only, so the
// UI can show things like the last Steam sync and last snapshot time.
type SettingsHandler struct {
	settingsStore *store.SettingsStore
}

func NewSettingsHandler(ss *store.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settingsStore: ss}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsStore.GetAll()
	if err != nil {
		log.Printf("failed to get settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get settings"})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
