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

type ChallengeHandler struct {
	challengeStore *store.ChallengeStore
	gameStore      *store.GameStore
	hub            *websocket.Hub
}

func NewChallengeHandler(cs *store.ChallengeStore, gs *store.GameStore, hub *websocket.Hub) *ChallengeHandler {
	return &ChallengeHandler{challengeStore: cs, gameStore: gs, hub: hub}
}

func (h *ChallengeHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

func (h *ChallengeHandler) gameFor(w http.ResponseWriter, r *http.Request) *model.Game {
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

type challengeRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Difficulty     *int   `json:"difficulty"`
	TimeToComplete string `json:"time_to_complete"`
	CompletionDate string `json:"completion_date"`
	Notes          string `json:"notes"`
	Completed      bool   `json:"completed"`
}

func (r *challengeRequest) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return "title is required"
	}
	if r.Difficulty != nil && (*r.Difficulty < 1 || *r.Difficulty > 100) {
		return "difficulty must be between 1 and 100"
	}
	return ""
}

func (r *challengeRequest) params() store.ChallengeParams {
	date := strings.TrimSpace(r.CompletionDate)
	// Marking a challenge done without a date records today.
	if r.Completed && date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if !r.Completed {
		date = ""
	}
	return store.ChallengeParams{
		Title:          r.Title,
		Description:    r.Description,
		Difficulty:     r.Difficulty,
		TimeToComplete: strings.TrimSpace(r.TimeToComplete),
		CompletionDate: date,
		Notes:          r.Notes,
		Completed:      r.Completed,
	}
}

func (h *ChallengeHandler) ListForGame(w http.ResponseWriter, r *http.Request) {
	game := h.gameFor(w, r)
	if game == nil {
		return
	}

	challenges, err := h.challengeStore.ListForGame(game.ID, r.URL.Query().Get("sort"))
	if err != nil {
		log.Printf("failed to list challenges: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list challenges"})
		return
	}
	if challenges == nil {
		challenges = []model.Challenge{}
	}
	writeJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	game := h.gameFor(w, r)
	if game == nil {
		return
	}

	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	challenge, err := h.challengeStore.Create(game.ID, req.params())
	if err != nil {
		log.Printf("failed to create challenge: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create challenge"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityChallenge, websocket.ActionCreated, challenge.ID, map[string]any{"game_id": game.ID}))

	writeJSON(w, http.StatusCreated, challenge)
}

// challengeFor resolves the {challengeID} path value against the given game,
// writing the error response itself when the lookup fails. Challenges reached
// through another game's URL read as missing.
func (h *ChallengeHandler) challengeFor(w http.ResponseWriter, r *http.Request, game *model.Game) *model.Challenge {
	id, err := parsePathID(r, "challengeID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid challenge id"})
		return nil
	}
	challenge, err := h.challengeStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get challenge"})
		return nil
	}
	if challenge == nil || challenge.GameID != game.ID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "challenge not found"})
		return nil
	}
	return challenge
}

func (h *ChallengeHandler) Update(w http.ResponseWriter, r *http.Request) {
	game := h.gameFor(w, r)
	if game == nil {
		return
	}
	existing := h.challengeFor(w, r, game)
	if existing == nil {
		return
	}

	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	if _, err := h.challengeStore.Update(existing.ID, req.params()); err != nil {
		log.Printf("failed to update challenge: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update challenge"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityChallenge, websocket.ActionUpdated, existing.ID, map[string]any{"game_id": game.ID}))

	w.WriteHeader(http.StatusNoContent)
}

func (h *ChallengeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	game := h.gameFor(w, r)
	if game == nil {
		return
	}
	existing := h.challengeFor(w, r, game)
	if existing == nil {
		return
	}

	if err := h.challengeStore.Delete(existing.ID); err != nil {
		log.Printf("failed to delete challenge: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete challenge"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityChallenge, websocket.ActionDeleted, existing.ID, map[string]any{"game_id": game.ID}))

	w.WriteHeader(http.StatusNoContent)
}

// ListAll returns every challenge across the library, joined with game
// titles, filtered by ?status= and ordered by ?sort=.
func (h *ChallengeHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challengeStore.ListAll(r.URL.Query().Get("sort"), r.URL.Query().Get("status"))
	if err != nil {
		log.Printf("failed to list challenges: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list challenges"})
		return
	}
	if challenges == nil {
		challenges = []model.ChallengeWithGame{}
	}
	writeJSON(w, http.StatusOK, challenges)
}
