package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Lilac-Rose/gametracker/internal/steam"
	"github.com/Lilac-Rose/gametracker/internal/websocket"
)

type SteamHandler struct {
	client *steam.Client
	sync   *steam.SyncService
	hub    *websocket.Hub
}

func NewSteamHandler(client *steam.Client, sync *steam.SyncService, hub *websocket.Hub) *SteamHandler {
	return &SteamHandler{client: client, sync: sync, hub: hub}
}

// Search looks a title up in the Steam store. An empty query is not an error,
// just an empty result, so the UI can fire it on every keystroke.
func (h *SteamHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		writeJSON(w, http.StatusOK, []steam.SearchResult{})
		return
	}

	results, err := h.client.Search(term)
	if err != nil {
		log.Printf("steam search failed: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "steam search failed"})
		return
	}
	if results == nil {
		results = []steam.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

// Achievements previews a Steam app's achievement list without touching the
// library. An unconfigured client yields an empty list rather than an error.
func (h *SteamHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	appID, err := parsePathID(r, "appID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid app id"})
		return
	}

	achievements, err := h.client.Achievements(appID)
	if err != nil {
		if errors.Is(err, steam.ErrNotConfigured) {
			writeJSON(w, http.StatusOK, []steam.Achievement{})
			return
		}
		log.Printf("steam achievements fetch failed: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "steam achievements fetch failed"})
		return
	}
	if achievements == nil {
		achievements = []steam.Achievement{}
	}
	writeJSON(w, http.StatusOK, achievements)
}

// Details returns store-page playtime and tags for an app. Best effort: the
// store API is flaky, so missing data comes back as empty fields, not errors.
func (h *SteamHandler) Details(w http.ResponseWriter, r *http.Request) {
	appID, err := parsePathID(r, "appID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid app id"})
		return
	}
	writeJSON(w, http.StatusOK, h.client.Details(appID))
}

// Sync refreshes one linked game's playtime from Steam and returns the
// updated record.
func (h *SteamHandler) Sync(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	result, err := h.sync.SyncGame(id)
	if err != nil {
		switch {
		case errors.Is(err, steam.ErrNotConfigured):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "steam api key and steam id are not configured"})
		case errors.Is(err, steam.ErrNotLinked):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "game is not linked to a steam app"})
		default:
			log.Printf("steam sync failed: %v", err)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "steam sync failed"})
		}
		return
	}
	if result == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage(websocket.EntityGame, websocket.ActionUpdated, id, map[string]any{"source": "steam"}))
	}

	writeJSON(w, http.StatusOK, result)
}

// Import pulls the whole owned-games library from Steam, creating a Backlog
// entry for every app not already tracked.
func (h *SteamHandler) Import(w http.ResponseWriter, r *http.Request) {
	result, err := h.sync.ImportLibrary()
	if err != nil {
		if errors.Is(err, steam.ErrNotConfigured) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "steam api key and steam id are not configured"})
			return
		}
		log.Printf("steam import failed: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "steam import failed"})
		return
	}

	if h.hub != nil && result.Imported > 0 {
		h.hub.Broadcast(websocket.NewMessage(websocket.EntityGame, websocket.ActionImported, 0, map[string]any{"count": result.Imported, "run_id": result.RunID}))
	}

	writeJSON(w, http.StatusOK, result)
}
