package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Lilac-Rose/gametracker/internal/model"
	"github.com/Lilac-Rose/gametracker/internal/store"
	"github.com/Lilac-Rose/gametracker/internal/websocket"
)

type AchievementHandler struct {
	achievementStore *store.AchievementStore
	gameStore        *store.GameStore
	hub              *websocket.Hub
}

func NewAchievementHandler(as *store.AchievementStore, gs *store.GameStore, hub *websocket.Hub) *AchievementHandler {
	return &AchievementHandler{achievementStore: as, gameStore: gs, hub: hub}
}

func (h *AchievementHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

// gameFor resolves the {id} path value to an existing game, writing the
// error response itself when the game is missing or the id is malformed.
func (h *AchievementHandler) gameFor(w http.ResponseWriter, r *http.Request) *model.Game {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return nil
	}
	game, err := h.gameStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get game"})
		return nil
	}
	if game == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
		return nil
	}
	return game
}

func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	game := h.gameFor(w, r)
	if game == nil {
		return
	}

	achievements, err := h.achievementStore.ListForGame(game.ID)
	if err != nil {
		log.Printf("failed to list achievements: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list achievements"})
		return
	}
	if achievements == nil {
		achievements = []model.Achievement{}
	}
	writeJSON(w, http.StatusOK, achievements)
}

type achievementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Unlocked    *bool  `json:"unlocked"`
	IconURL     string `json:"icon_url"`
}

func (h *AchievementHandler) Create(w http.ResponseWriter, r *http.Request) {
	game := h.gameFor(w, r)
	if game == nil {
		return
	}

	var req achievementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	// A manually added achievement is assumed earned unless said otherwise.
	unlocked := true
	if req.Unlocked != nil {
		unlocked = *req.Unlocked
	}
	date := strings.TrimSpace(req.Date)
	if unlocked && date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	achievement, err := h.achievementStore.Create(game.ID, req.Title, req.Description, date, unlocked, strings.TrimSpace(req.IconURL))
	if err != nil {
		log.Printf("failed to create achievement: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create achievement"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityAchievement, websocket.ActionCreated, achievement.ID, map[string]any{"game_id": game.ID}))

	writeJSON(w, http.StatusCreated, achievement)
}

// SetUnlocked flips an achievement between earned and locked, stamping or
// clearing the unlock date to match.
func (h *AchievementHandler) SetUnlocked(w http.ResponseWriter, r *http.Request) {
	game := h.gameFor(w, r)
	if game == nil {
		return
	}

	achID, err := parsePathID(r, "achievementID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid achievement id"})
		return
	}

	existing, err := h.achievementStore.GetByID(achID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get achievement"})
		return
	}
	if existing == nil || existing.GameID != game.ID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "achievement not found"})
		return
	}

	var req struct {
		Unlocked bool   `json:"unlocked"`
		Date     string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	date := strings.TrimSpace(req.Date)
	if req.Unlocked && date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	if _, err := h.achievementStore.SetUnlocked(achID, req.Unlocked, date); err != nil {
		log.Printf("failed to update achievement: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update achievement"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityAchievement, websocket.ActionUpdated, achID, map[string]any{"game_id": game.ID}))

	w.WriteHeader(http.StatusNoContent)
}

func (h *AchievementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	game := h.gameFor(w, r)
	if game == nil {
		return
	}

	achID, err := parsePathID(r, "achievementID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid achievement id"})
		return
	}

	existing, err := h.achievementStore.GetByID(achID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get achievement"})
		return
	}
	if existing == nil || existing.GameID != game.ID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "achievement not found"})
		return
	}

	if err := h.achievementStore.Delete(achID); err != nil {
		log.Printf("failed to delete achievement: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete achievement"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityAchievement, websocket.ActionDeleted, achID, map[string]any{"game_id": game.ID}))

	w.WriteHeader(http.StatusNoContent)
}

// Import replaces a game's achievement list wholesale, typically with a list
// fetched from Steam on the client side.
func (h *AchievementHandler) Import(w http.ResponseWriter, r *http.Request) {
	game := h.gameFor(w, r)
	if game == nil {
		return
	}

	var req struct {
		Achievements []achievementRequest `json:"achievements"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	achievements := make([]model.Achievement, 0, len(req.Achievements))
	for _, a := range req.Achievements {
		title := strings.TrimSpace(a.Title)
		if title == "" {
			continue
		}
		unlocked := false
		if a.Unlocked != nil {
			unlocked = *a.Unlocked
		}
		achievements = append(achievements, model.Achievement{
			Title:       title,
			Description: a.Description,
			Date:        strings.TrimSpace(a.Date),
			Unlocked:    unlocked,
			IconURL:     strings.TrimSpace(a.IconURL),
		})
	}

	imported, err := h.achievementStore.ReplaceForGame(game.ID, achievements)
	if err != nil {
		log.Printf("failed to import achievements: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to import achievements"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityAchievement, websocket.ActionImported, game.ID, map[string]any{"count": imported}))

	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}
