package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Lilac-Rose/gametracker/internal/model"
	"github.com/Lilac-Rose/gametracker/internal/store"
	"github.com/Lilac-Rose/gametracker/internal/websocket"
)

type GameHandler struct {
	gameStore *store.GameStore
	hub       *websocket.Hub
}

func NewGameHandler(gs *store.GameStore, hub *websocket.Hub) *GameHandler {
	return &GameHandler{gameStore: gs, hub: hub}
}

func (h *GameHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type gameRequest struct {
	Title          string   `json:"title"`
	Platform       string   `json:"platform"`
	Status         string   `json:"status"`
	Notes          string   `json:"notes"`
	Rating         *int     `json:"rating"`
	HoursPlayed    *float64 `json:"hours_played"`
	SteamAppID     *int64   `json:"steam_app_id"`
	CoverURL       string   `json:"cover_url"`
	CompletionDate string   `json:"completion_date"`
	Tags           []string `json:"tags"`
}

func (r *gameRequest) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return "title is required"
	}
	if r.Rating != nil && (*r.Rating < 0 || *r.Rating > 5) {
		return "rating must be between 0 and 5"
	}
	if r.HoursPlayed != nil && *r.HoursPlayed < 0 {
		return "hours_played must not be negative"
	}
	return ""
}

func (r *gameRequest) params() store.GameParams {
	return store.GameParams{
		Title:          r.Title,
		Platform:       strings.TrimSpace(r.Platform),
		Status:         strings.TrimSpace(r.Status),
		Notes:          r.Notes,
		Rating:         r.Rating,
		HoursPlayed:    r.HoursPlayed,
		SteamAppID:     r.SteamAppID,
		CoverURL:       strings.TrimSpace(r.CoverURL),
		CompletionDate: strings.TrimSpace(r.CompletionDate),
		Tags:           r.Tags,
	}
}

func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameStore.List()
	if err != nil {
		log.Printf("failed to list games: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list games"})
		return
	}
	if games == nil {
		games = []model.Game{}
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	game, err := h.gameStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get game"})
		return
	}
	if game == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	game, err := h.gameStore.Create(req.params())
	if err != nil {
		log.Printf("failed to create game: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create game"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityGame, websocket.ActionCreated, game.ID, nil))

	writeJSON(w, http.StatusCreated, game)
}

func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.gameStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get game"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
		return
	}

	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	game, err := h.gameStore.Update(id, req.params())
	if err != nil {
		log.Printf("failed to update game: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update game"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityGame, websocket.ActionUpdated, game.ID, nil))

	writeJSON(w, http.StatusOK, game)
}

func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.gameStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get game"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
		return
	}

	if err := h.gameStore.Delete(id); err != nil {
		log.Printf("failed to delete game: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete game"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityGame, websocket.ActionDeleted, id, nil))

	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	game, err := h.gameStore.ToggleFavorite(id)
	if err != nil {
		log.Printf("failed to toggle favorite: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to toggle favorite"})
		return
	}
	if game == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityGame, websocket.ActionUpdated, game.ID, nil))

	writeJSON(w, http.StatusOK, map[string]bool{"is_favorite": game.IsFavorite})
}

// Random picks a game matching optional status, platform, and max_hours
// query filters.
func (h *GameHandler) Random(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	platform := strings.TrimSpace(r.URL.Query().Get("platform"))

	var maxHours *float64
	if raw := r.URL.Query().Get("max_hours"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid max_hours"})
			return
		}
		maxHours = &v
	}

	game, err := h.gameStore.Random(status, platform, maxHours)
	if err != nil {
		log.Printf("failed to pick random game: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to pick random game"})
		return
	}
	if game == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No games match your criteria"})
		return
	}
	writeJSON(w, http.StatusOK, game)
}
