package steam

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Lilac-Rose/gametracker/internal/model"
	"github.com/Lilac-Rose/gametracker/internal/store"
)

// ErrNotLinked is returned when a game has no Steam app ID to sync against.
var ErrNotLinked = errors.New("game is not linked to a steam app")

// lastSyncKey records when Steam data last flowed into the library.
const lastSyncKey = "last_steam_sync"

// SyncService pulls playtime from Steam into the library. Achievements are
// left to the preview/import endpoints so the user can review them first.
type SyncService struct {
	client   *Client
	games    *store.GameStore
	settings *store.SettingsStore
	logger   *slog.Logger
}

func NewSyncService(client *Client, games *store.GameStore, settings *store.SettingsStore, logger *slog.Logger) *SyncService {
	return &SyncService{
		client:   client,
		games:    games,
		settings: settings,
		logger:   logger.With("component", "steam"),
	}
}

// SyncGame refreshes a game's playtime from the user's Steam library and
// returns the updated record. Returns (nil, nil) if the game does not exist.
// Hours are only written when Steam reports the game with nonzero playtime,
// so a sync never wipes manually tracked hours.
func (s *SyncService) SyncGame(gameID int64) (*model.Game, error) {
	if !s.client.Configured() {
		return nil, ErrNotConfigured
	}

	game, err := s.games.GetByID(gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, nil
	}
	if game.SteamAppID == nil {
		return nil, ErrNotLinked
	}
	appID := *game.SteamAppID

	owned, err := s.client.OwnedGames()
	if err != nil {
		return nil, fmt.Errorf("sync game %d: %w", gameID, err)
	}

	var hours float64
	for _, g := range owned {
		if g.AppID == appID {
			hours = g.Hours
			break
		}
	}
	if hours > 0 {
		if err := s.games.UpdateHours(gameID, hours); err != nil {
			return nil, err
		}
	}

	s.markSynced()
	s.logger.Info("game synced", "game_id", gameID, "app_id", appID, "hours", hours)

	return s.games.GetByID(gameID)
}

// ImportResult reports the outcome of a library import run.
type ImportResult struct {
	RunID    string `json:"run_id"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// ImportLibrary creates a backlog entry for every owned Steam game not yet
// tracked. Already-linked app IDs are skipped, so re-running is safe.
func (s *SyncService) ImportLibrary() (*ImportResult, error) {
	if !s.client.Configured() {
		return nil, ErrNotConfigured
	}

	runID := uuid.New().String()
	owned, err := s.client.OwnedGames()
	if err != nil {
		return nil, err
	}
	existing, err := s.games.ExistingSteamAppIDs()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{RunID: runID}
	for _, g := range owned {
		if existing[g.AppID] {
			result.Skipped++
			continue
		}

		appID := g.AppID
		params := store.GameParams{
			Title:      g.Name,
			Platform:   "PC",
			Status:     "Backlog",
			SteamAppID: &appID,
			CoverURL:   HeaderImageURL(appID),
		}
		if g.Hours > 0 {
			h := g.Hours
			params.HoursPlayed = &h
		}
		if _, err := s.games.Create(params); err != nil {
			return nil, fmt.Errorf("import %q: %w", g.Name, err)
		}
		result.Imported++
	}

	s.markSynced()
	s.logger.Info("library import finished",
		"run_id", runID,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	return result, nil
}

// markSynced stamps the sync time. Failures are logged, not returned.
func (s *SyncService) markSynced() {
	if err := s.settings.Set(lastSyncKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		s.logger.Warn("failed to record sync time", "error", err)
	}
}
